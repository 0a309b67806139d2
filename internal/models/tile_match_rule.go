package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TileMatchRule maps purchase line item names to tiles.
//
// Rules are evaluated in priority order against the name of untagged
// line items; Match supports * globbing, e.g. "Tile 60x60*".
type TileMatchRule struct {
	DefaultModel
	Priority uint
	Match    string
	Tile     Tile `json:"-"`
	TileID   uuid.UUID
}

func (r *TileMatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	return nil
}

func (r *TileMatchRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*TileMatchRule)
	return r.checkIntegrity(tx, *toSave)
}

func (r *TileMatchRule) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("TileID") {
		toSave := tx.Statement.Dest.(TileMatchRule)
		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (r *TileMatchRule) checkIntegrity(tx *gorm.DB, toSave TileMatchRule) error {
	return tx.First(&Tile{}, toSave.TileID).Error
}
