package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents one payment towards an expense.
//
// Every payment write triggers the recomputation of the owning expense's
// paid amount and status in the same transaction: a payment is never
// recorded without its parent ledger reflecting it.
type Payment struct {
	DefaultModel
	Expense   Expense   `json:"-"`
	ExpenseID uuid.UUID // Immutable after creation
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date      time.Time
	Method    string // e.g. "cash", "transfer"
	Note      string
}

var (
	ErrPaymentAmountNotPositive = errors.New("payment amounts must be larger than zero")
	ErrPaymentExpenseImmutable  = errors.New("a payment cannot be moved to another expense")
)

func (p *Payment) BeforeSave(_ *gorm.DB) error {
	p.Method = strings.TrimSpace(p.Method)
	p.Note = strings.TrimSpace(p.Note)

	if p.Date.IsZero() {
		p.Date = time.Now().In(time.UTC)
	} else {
		p.Date = p.Date.In(time.UTC)
	}

	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Payment)
	return p.checkIntegrity(tx, *toSave)
}

func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("ExpenseID") {
		return ErrPaymentExpenseImmutable
	}

	return nil
}

func (p *Payment) AfterSave(_ *gorm.DB) error {
	if !p.Amount.IsPositive() {
		return ErrPaymentAmountNotPositive
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (p *Payment) checkIntegrity(tx *gorm.DB, toSave Payment) error {
	return tx.First(&Expense{}, toSave.ExpenseID).Error
}

func (p *Payment) AfterCreate(tx *gorm.DB) error {
	return SyncPaymentStatus(tx, p.ExpenseID)
}

func (p *Payment) AfterUpdate(tx *gorm.DB) error {
	return SyncPaymentStatus(tx, p.ExpenseID)
}

// AfterDelete subtracts the payment from the ledger symmetrically.
func (p *Payment) AfterDelete(tx *gorm.DB) error {
	return SyncPaymentStatus(tx, p.ExpenseID)
}
