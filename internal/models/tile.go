package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Tile represents a tile or other surface material that can be assigned
// to zones and purchased on expenses.
type Tile struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Size string // Label like "60x60"
	Unit string // Counting unit, e.g. "box" or "sqm"
	Note string
}

var ErrTileNameNotUnique = errors.New("the tile name must be unique")

func (t *Tile) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Size = strings.TrimSpace(t.Size)
	t.Unit = strings.TrimSpace(t.Unit)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}
