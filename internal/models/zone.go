package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"strings"
)

// Zone is one tiled surface of a room, e.g. the floor or the skirting.
// A room may have multiple zones referencing the same tile; the per-tile
// requirement of the room is the sum over them.
type Zone struct {
	DefaultModel
	Room   Room      `json:"-"`
	RoomID uuid.UUID
	Tile   *Tile      `json:"-"`
	TileID *uuid.UUID // nil while the zone is not yet tile-assigned
	Name   string     // e.g. "floor", "skirting"

	RequiredQty decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrZoneQtyNegative   = errors.New("the required quantity of a zone must not be negative")
	ErrZoneRoomImmutable = errors.New("a zone cannot be moved to another room")
)

func (z *Zone) BeforeSave(_ *gorm.DB) error {
	z.Name = strings.TrimSpace(z.Name)
	return nil
}

func (z *Zone) BeforeCreate(tx *gorm.DB) error {
	_ = z.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Zone)
	return z.checkIntegrity(tx, *toSave)
}

func (z *Zone) BeforeUpdate(tx *gorm.DB) error {
	// Moving a zone between rooms would leave the old room's requirement
	// stale, so the reference is immutable.
	if tx.Statement.Changed("RoomID") {
		return ErrZoneRoomImmutable
	}

	if tx.Statement.Changed("TileID") {
		toSave, ok := tx.Statement.Dest.(Zone)
		if ok && toSave.TileID != nil {
			return tx.First(&Tile{}, *toSave.TileID).Error
		}
	}

	return nil
}

func (z *Zone) AfterSave(_ *gorm.DB) error {
	if z.RequiredQty.IsNegative() {
		return ErrZoneQtyNegative
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (z *Zone) checkIntegrity(tx *gorm.DB, toSave Zone) error {
	err := tx.First(&Room{}, toSave.RoomID).Error
	if err != nil {
		return err
	}

	if toSave.TileID != nil {
		return tx.First(&Tile{}, *toSave.TileID).Error
	}

	return nil
}

// AfterCreate resynchronizes the requirement of the zone's tile.
func (z *Zone) AfterCreate(tx *gorm.DB) error {
	if z.TileID == nil {
		return nil
	}

	return SyncRequirement(tx, RequirementKey{RoomID: z.RoomID, TileID: *z.TileID})
}

// AfterUpdate resynchronizes the requirement of the zone's current tile.
//
// When a zone is reassigned to another tile, the previous tile's
// requirement is NOT resynchronized and keeps a required quantity that no
// zone still demands until its next own write.
func (z *Zone) AfterUpdate(tx *gorm.DB) error {
	if z.TileID == nil {
		return nil
	}

	return SyncRequirement(tx, RequirementKey{RoomID: z.RoomID, TileID: *z.TileID})
}

// AfterDelete resynchronizes the requirement the zone contributed to.
func (z *Zone) AfterDelete(tx *gorm.DB) error {
	if z.TileID == nil {
		return nil
	}

	return SyncRequirement(tx, RequirementKey{RoomID: z.RoomID, TileID: *z.TileID})
}
