package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sitewise/backend/internal/aggregate"
)

// PaymentStatus is the stored, write-time-derived state of an expense's
// payment ledger. It is persisted (unlike the requirement shortage)
// because vendor aging reports filter on it.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Expense represents a vendor bill for a site.
//
// PaidAmount and PaymentStatus are derived from the expense's payments
// and must never be set directly; they are recomputed transactionally
// with every payment write.
type Expense struct {
	DefaultModel
	Site        Site `json:"-"`
	SiteID      uuid.UUID
	VendorName  string
	Description string
	Date        time.Time

	TotalAmount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidAmount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentStatus PaymentStatus
}

var ErrExpenseTotalNegative = errors.New("the total amount of an expense must not be negative")

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.VendorName = strings.TrimSpace(e.VendorName)
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	// A new expense has no payments yet
	e.PaidAmount = decimal.Zero
	e.PaymentStatus = paymentStatusFor(e.PaidAmount, e.TotalAmount)

	toSave := tx.Statement.Dest.(*Expense)
	return e.checkIntegrity(tx, *toSave)
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("SiteID") {
		toSave := tx.Statement.Dest.(Expense)
		return e.checkIntegrity(tx, toSave)
	}

	return nil
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if e.TotalAmount.IsNegative() {
		return ErrExpenseTotalNegative
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (e *Expense) checkIntegrity(tx *gorm.DB, toSave Expense) error {
	return tx.First(&Site{}, toSave.SiteID).Error
}

// paymentStatusFor derives the payment status from the paid and total
// amounts. Pure.
func paymentStatusFor(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}

// SyncPaymentStatus recomputes the paid amount of an expense as the sum
// over its current payments and derives the payment status from it.
//
// Summation happens on decimals, never on binary floats: a ledger that
// drifts by fractions of a unit parks the status at "partial" forever.
//
// It runs in the transaction of the payment write that triggered it; if
// it fails, the payment write is rolled back with it.
func SyncPaymentStatus(tx *gorm.DB, expenseID uuid.UUID) error {
	var expense Expense
	err := tx.First(&expense, expenseID).Error
	if err != nil {
		return err
	}

	var payments []Payment
	err = tx.Where("expense_id = ?", expenseID).Find(&payments).Error
	if err != nil {
		return err
	}

	paid := decimal.Zero
	for _, payment := range payments {
		paid = paid.Add(payment.Amount)
	}

	syncRuns.WithLabelValues("payment_ledger").Inc()

	return tx.Model(&Expense{}).
		Where("id = ?", expenseID).
		Updates(map[string]any{
			"paid_amount":    paid,
			"payment_status": paymentStatusFor(paid, expense.TotalAmount),
		}).Error
}

// ExpenseBalance contains the values derived from an expense at read
// time.
type ExpenseBalance struct {
	Outstanding decimal.Decimal
}

func projectExpense(e Expense) ExpenseBalance {
	return ExpenseBalance{
		Outstanding: e.TotalAmount.Sub(e.PaidAmount),
	}
}

// PaymentLedger is the payment instance of the reconciliation pattern:
// payment writes recompute the stored paid amount and status, reads
// project the outstanding balance.
var PaymentLedger = aggregate.Definition[uuid.UUID, Expense, ExpenseBalance]{
	Recompute: SyncPaymentStatus,
	Project:   projectExpense,
}
