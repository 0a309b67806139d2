package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"strings"
)

// LineItem is one position of an expense, e.g. "40 boxes of 60x60 tiles".
//
// A line item tagged with a tile is a quantity-producing event: its
// quantity is credited to one requirement of the expense's site in the
// same transaction as the insert.
type LineItem struct {
	DefaultModel
	Expense   Expense `json:"-"`
	ExpenseID uuid.UUID
	Name      string
	Qty       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	UnitPrice decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Tile      *Tile           `json:"-"`
	TileID    *uuid.UUID

	// Unmatched reports that the line was tagged with a tile but no
	// requirement in the site could receive the quantity. The purchase
	// itself is still valid data; callers raise a notification for it.
	Unmatched bool `json:"-" gorm:"-"`
}

var ErrLineItemQtyNotPositive = errors.New("line item quantities must be larger than zero")

func (l *LineItem) BeforeSave(_ *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	return nil
}

func (l *LineItem) BeforeCreate(tx *gorm.DB) error {
	_ = l.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*LineItem)
	err := l.checkIntegrity(tx, *toSave)
	if err != nil {
		return err
	}

	// Untagged lines are matched against the tile match rules so that
	// recurring vendor item names resolve to their tile automatically.
	if l.TileID == nil {
		return l.resolveTile(tx)
	}

	return nil
}

func (l *LineItem) AfterSave(_ *gorm.DB) error {
	if !l.Qty.IsPositive() {
		return ErrLineItemQtyNotPositive
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (l *LineItem) checkIntegrity(tx *gorm.DB, toSave LineItem) error {
	err := tx.First(&Expense{}, toSave.ExpenseID).Error
	if err != nil {
		return err
	}

	if toSave.TileID != nil {
		return tx.First(&Tile{}, *toSave.TileID).Error
	}

	return nil
}

// resolveTile applies the tile match rules to the line item name. Since
// rules are loaded in priority order, the first match wins.
func (l *LineItem) resolveTile(tx *gorm.DB) error {
	var rules []TileMatchRule
	err := tx.Order("priority asc, match asc").Find(&rules).Error
	if err != nil {
		return err
	}

	for _, rule := range rules {
		if glob.Glob(rule.Match, l.Name) {
			id := rule.TileID
			l.TileID = &id
			return nil
		}
	}

	return nil
}

// AfterCreate credits a tagged purchase to a requirement of the
// expense's site (Producer A of the requirement ledger).
func (l *LineItem) AfterCreate(tx *gorm.DB) error {
	if l.TileID == nil {
		return nil
	}

	return l.applyPurchase(tx)
}

// applyPurchase finds the requirements of the expense's site for the
// line's tile and credits the quantity to exactly one of them.
//
// When several rooms of the site require the same tile, the purchase
// does not specify which room received the material. The first
// requirement in room creation order wins. With no match at all, the
// line is flagged Unmatched and no requirement is touched.
func (l *LineItem) applyPurchase(tx *gorm.DB) error {
	var expense Expense
	err := tx.First(&expense, l.ExpenseID).Error
	if err != nil {
		return err
	}

	var requirements []Requirement
	err = tx.
		Joins("JOIN rooms ON rooms.id = requirements.room_id").
		Where("rooms.site_id = ? AND requirements.tile_id = ?", expense.SiteID, *l.TileID).
		Order("rooms.created_at ASC").
		Find(&requirements).Error
	if err != nil {
		return err
	}

	if len(requirements) == 0 {
		l.Unmatched = true
		unmatchedPurchases.Inc()
		return nil
	}

	target := requirements[0]
	fulfillmentEvents.WithLabelValues("purchase").Inc()

	// Relative update so that concurrent producers crediting the same
	// requirement do not lose increments to a read-modify-write race.
	return tx.Model(&Requirement{}).
		Where("room_id = ? AND tile_id = ?", target.RoomID, target.TileID).
		Update("received_qty", gorm.Expr("received_qty + ?", l.Qty)).Error
}
