package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ProfileRole determines which notifications a profile receives.
type ProfileRole string

const (
	RoleOwner   ProfileRole = "owner"
	RoleManager ProfileRole = "manager"
	RoleWorker  ProfileRole = "worker"
)

func (r ProfileRole) Valid() bool {
	return r == RoleOwner || r == RoleManager || r == RoleWorker
}

// Profile represents a person working with the backend, e.g. a site owner
// or a supervisor.
type Profile struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Role ProfileRole
}

var (
	ErrProfileNameNotUnique = errors.New("the profile name must be unique")
	ErrProfileRoleInvalid   = errors.New("the profile role must be one of owner, manager, worker")
)

func (p *Profile) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)

	if p.Role == "" {
		p.Role = RoleWorker
	}

	return nil
}

func (p *Profile) AfterSave(_ *gorm.DB) error {
	if !p.Role.Valid() {
		return ErrProfileRoleInvalid
	}

	return nil
}
