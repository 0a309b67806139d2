package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShortageStatus is the workflow state of a shortage request.
type ShortageStatus string

const (
	ShortagePending  ShortageStatus = "pending"
	ShortageApproved ShortageStatus = "approved"
	ShortageRejected ShortageStatus = "rejected"
	ShortageReceived ShortageStatus = "received"
)

func (s ShortageStatus) Valid() bool {
	return s == ShortagePending || s == ShortageApproved || s == ShortageRejected || s == ShortageReceived
}

// canTransitionTo defines the allowed status workflow: a request is
// approved or rejected first, and only an approved request can be
// marked as received.
func (s ShortageStatus) canTransitionTo(next ShortageStatus) bool {
	switch s {
	case ShortagePending:
		return next == ShortageApproved || next == ShortageRejected
	case ShortageApproved:
		return next == ShortageReceived
	default:
		return false
	}
}

// ShortageRequest asks for additional material for one room.
//
// Unlike a tagged purchase, a shortage request is filed against exactly
// one room, so marking it as received credits the (room, tile)
// requirement without any matching ambiguity (Producer B of the
// requirement ledger).
type ShortageRequest struct {
	DefaultModel
	Site   Site `json:"-"`
	SiteID uuid.UUID
	Room   Room `json:"-"`
	RoomID uuid.UUID
	Tile   Tile `json:"-"`
	TileID uuid.UUID

	RequestedQty decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Status       ShortageStatus
	ApprovedBy   *uuid.UUID
	Note         string

	// fulfill marks a validated transition to received so that
	// AfterUpdate applies the receipt exactly once. Not persisted.
	fulfill bool
}

var (
	ErrShortageQtyNotPositive    = errors.New("the requested quantity must be larger than zero")
	ErrShortageStatusInvalid     = errors.New("the shortage request status must be one of pending, approved, rejected, received")
	ErrShortageTransitionInvalid = errors.New("this status change is not allowed")
	ErrShortageRoomNotInSite     = errors.New("the room does not belong to the site of the shortage request")
)

func (s *ShortageRequest) BeforeSave(_ *gorm.DB) error {
	s.Note = strings.TrimSpace(s.Note)

	if s.Status == "" {
		s.Status = ShortagePending
	}

	return nil
}

func (s *ShortageRequest) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*ShortageRequest)
	return s.checkIntegrity(tx, *toSave)
}

func (s *ShortageRequest) BeforeUpdate(tx *gorm.DB) error {
	if !tx.Statement.Changed("Status") {
		return nil
	}

	next := destShortageStatus(tx.Statement.Dest)
	if !next.Valid() {
		return ErrShortageStatusInvalid
	}

	if !s.Status.canTransitionTo(next) {
		return fmt.Errorf("%w: %s to %s", ErrShortageTransitionInvalid, s.Status, next)
	}

	if next == ShortageReceived {
		s.fulfill = true
	}

	return nil
}

func (s *ShortageRequest) AfterSave(_ *gorm.DB) error {
	if !s.RequestedQty.IsPositive() {
		return ErrShortageQtyNotPositive
	}

	return nil
}

// AfterUpdate applies the receipt once the transition to received has
// been validated and written.
func (s *ShortageRequest) AfterUpdate(tx *gorm.DB) error {
	if !s.fulfill {
		return nil
	}
	s.fulfill = false

	return s.applyReceipt(tx)
}

// applyReceipt credits the requested quantity to the exact (room, tile)
// requirement of the request.
//
// A shortage implies an existing requirement, so a missing row should
// not happen; if it does anyway, the event is dropped as a no-op rather
// than failing the status change.
func (s *ShortageRequest) applyReceipt(tx *gorm.DB) error {
	res := tx.Model(&Requirement{}).
		Where("room_id = ? AND tile_id = ?", s.RoomID, s.TileID).
		Update("received_qty", gorm.Expr("received_qty + ?", s.RequestedQty))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		log.Warn().
			Str("room", s.RoomID.String()).
			Str("tile", s.TileID.String()).
			Msg("dropping shortage receipt, no requirement exists for this room and tile")
		return nil
	}

	fulfillmentEvents.WithLabelValues("shortage").Inc()
	return nil
}

// checkIntegrity verifies references to other resources
func (s *ShortageRequest) checkIntegrity(tx *gorm.DB, toSave ShortageRequest) error {
	err := tx.First(&Site{}, toSave.SiteID).Error
	if err != nil {
		return err
	}

	var room Room
	err = tx.First(&room, toSave.RoomID).Error
	if err != nil {
		return err
	}

	if room.SiteID != toSave.SiteID {
		return ErrShortageRoomNotInSite
	}

	return tx.First(&Tile{}, toSave.TileID).Error
}

// destShortageStatus extracts the target status from the update
// statement destination.
func destShortageStatus(dest any) ShortageStatus {
	switch d := dest.(type) {
	case ShortageRequest:
		return d.Status
	case *ShortageRequest:
		return d.Status
	default:
		return ""
	}
}
