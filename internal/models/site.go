package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Site represents a construction site.
//
// A site is the highest level of organization, all other resources
// reference it directly or transitively.
type Site struct {
	DefaultModel
	Name    string `gorm:"uniqueIndex"`
	Address string
	Note    string
}

var ErrSiteNameNotUnique = errors.New("the site name must be unique")

func (s *Site) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Address = strings.TrimSpace(s.Address)
	s.Note = strings.TrimSpace(s.Note)

	return nil
}
