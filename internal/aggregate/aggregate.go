// Package aggregate keeps a stored derived field on a parent row
// consistent with an independently mutated set of child rows.
//
// A Definition couples the two halves of the pattern:
//
//   - Recompute recalculates the stored derived fields for one parent and
//     runs in the same transaction as the child write that triggered it.
//     If it fails, the whole logical operation fails.
//   - Project derives read-only values from a parent row at query time.
//     These values are never stored, so they cannot go stale.
//
// The backend instantiates this twice: the payment ledger on expenses and
// the material requirement ledger on (room, tile) pairs.
package aggregate

import (
	"gorm.io/gorm"
)

// Definition describes one derived-aggregate reconciliation.
//
// K is the parent key, P the parent row and V the projected read-time view.
type Definition[K any, P any, V any] struct {
	// Recompute recalculates and persists the stored derived fields for
	// the parent identified by key. Must be a pure summation over the
	// current children so that repeated calls are idempotent.
	Recompute func(tx *gorm.DB, key K) error

	// Project computes the read-time view from a parent row. Pure.
	Project func(parent P) V
}

// Sync runs write and the recomputation for key as one transaction.
//
// A reader never observes the child write without the recomputed parent,
// or vice versa. When write is nil only the recomputation runs, which is
// used for parent edits that shift a derived threshold (e.g. changing an
// expense's total amount).
func (d Definition[K, P, V]) Sync(db *gorm.DB, key K, write func(tx *gorm.DB) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if write != nil {
			if err := write(tx); err != nil {
				return err
			}
		}

		return d.Recompute(tx, key)
	})
}
