package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sitewise/backend/internal/aggregate"
)

// Requirement aggregates how much of one tile a room needs and how much
// of it has been delivered so far.
//
// RequiredQty is recomputed from the room's zones on every zone write.
// ReceivedQty is owned exclusively by the fulfillment producers (tagged
// purchase lines and received shortage requests) and only ever grows.
// The shortage is never stored, it is projected at read time.
type Requirement struct {
	Timestamps
	Room   Room      `json:"-"`
	RoomID uuid.UUID `gorm:"primaryKey"`
	Tile   Tile      `json:"-"`
	TileID uuid.UUID `gorm:"primaryKey"`

	RequiredQty decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	ReceivedQty decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var ErrRequirementNotUnique = errors.New("there is already a requirement for this room and tile")

// RequirementKey identifies one requirement aggregate.
type RequirementKey struct {
	RoomID uuid.UUID
	TileID uuid.UUID
}

// FulfillmentStatus is the read-time state of a requirement.
type FulfillmentStatus string

const (
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
	FulfillmentShortage  FulfillmentStatus = "shortage"
)

// RequirementView contains the values derived from a requirement at read
// time. They are never persisted.
type RequirementView struct {
	ShortageQty decimal.Decimal
	Status      FulfillmentStatus
}

// projectRequirement derives the shortage from the stored quantities.
// Over-delivery projects to a shortage of zero, not a negative value.
func projectRequirement(r Requirement) RequirementView {
	shortage := r.RequiredQty.Sub(r.ReceivedQty)
	if shortage.IsNegative() {
		shortage = decimal.Zero
	}

	status := FulfillmentShortage
	if shortage.IsZero() {
		status = FulfillmentFulfilled
	}

	return RequirementView{
		ShortageQty: shortage,
		Status:      status,
	}
}

// SyncRequirement recomputes the required quantity for one (room, tile)
// pair as the sum over the room's zones referencing that tile.
//
// The requirement row is upserted: created with a received quantity of
// zero when absent, otherwise only the required quantity is updated. The
// received quantity is never touched here, it belongs to the fulfillment
// producers.
//
// The recomputation is a pure summation over the current zones, so
// calling it again without an intervening zone write is a no-op.
func SyncRequirement(tx *gorm.DB, key RequirementKey) error {
	var zones []Zone
	err := tx.Where("room_id = ? AND tile_id = ?", key.RoomID, key.TileID).Find(&zones).Error
	if err != nil {
		return err
	}

	required := decimal.Zero
	for _, zone := range zones {
		required = required.Add(zone.RequiredQty)
	}

	syncRuns.WithLabelValues("requirement").Inc()

	var requirement Requirement
	err = tx.First(&requirement, "room_id = ? AND tile_id = ?", key.RoomID, key.TileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
			if len(zones) == 0 {
				return nil
			}

			return tx.Create(&Requirement{
				RoomID:      key.RoomID,
				TileID:      key.TileID,
				RequiredQty: required,
				ReceivedQty: decimal.Zero,
			}).Error
		}

		return err
	}

	return tx.Model(&Requirement{}).
		Where("room_id = ? AND tile_id = ?", key.RoomID, key.TileID).
		Update("required_qty", required).Error
}

// RequirementLedger is the requirement instance of the reconciliation
// pattern: zone writes recompute the stored required quantity, reads
// project the shortage.
var RequirementLedger = aggregate.Definition[RequirementKey, Requirement, RequirementView]{
	Recompute: SyncRequirement,
	Project:   projectRequirement,
}
