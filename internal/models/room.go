package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Room represents one room of a site. It owns the material requirements
// aggregated from its zones.
type Room struct {
	DefaultModel
	Site   Site      `json:"-"`
	SiteID uuid.UUID `gorm:"uniqueIndex:room_name_site"`
	Name   string    `gorm:"uniqueIndex:room_name_site"`

	// Surface dimensions in meters
	Length decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Width  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Height decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var ErrRoomNameNotUnique = errors.New("the room name must be unique for the site")

func (r *Room) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	return nil
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Room)
	return r.checkIntegrity(tx, *toSave)
}

func (r *Room) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("SiteID") {
		toSave := tx.Statement.Dest.(Room)
		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (r *Room) checkIntegrity(tx *gorm.DB, toSave Room) error {
	return tx.First(&Site{}, toSave.SiteID).Error
}
