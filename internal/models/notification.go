package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types used by the backend.
const (
	NotificationTypeTilePurchasedUnassigned = "tile_purchased_unassigned"
	NotificationTypeShortageRequested       = "shortage_requested"
	NotificationTypeShortageDecided         = "shortage_decided"
)

// Notification is an advisory message for a profile.
//
// Notifications are append-only and outside the consistency contract of
// the ledgers: they are consumed by polling reads and marked as read
// with a flag.
type Notification struct {
	DefaultModel
	User   Profile `json:"-"`
	UserID uuid.UUID
	Title  string
	Body   string
	Type   string
	// ReferenceID points to the resource the notification is about,
	// e.g. the unassigned line item.
	ReferenceID *uuid.UUID
	Read        bool
}

func (n *Notification) BeforeSave(_ *gorm.DB) error {
	n.Title = strings.TrimSpace(n.Title)
	n.Body = strings.TrimSpace(n.Body)

	return nil
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	_ = n.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Notification)
	return n.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (n *Notification) checkIntegrity(tx *gorm.DB, toSave Notification) error {
	return tx.First(&Profile{}, toSave.UserID).Error
}
