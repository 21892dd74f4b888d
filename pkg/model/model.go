// Package model defines the postcard template document: canvas instances
// wrapping blocks, which own rows of cells holding atoms and nested rows.
//
// Nodes own their children by value through slices of pointers; there is no
// side index. Every walk (find, clone, id regeneration) is a depth-first
// traversal of the tree itself.
package model

import (
	"errors"

	"github.com/google/uuid"
)

// Version is the template schema version written by this package.
const Version = 2

var (
	// ErrUnknownAtomType is returned when decoding an atom with an unsupported tag.
	ErrUnknownAtomType = errors.New("model: unknown atom type")
	// ErrUnknownMenuItemType is returned when decoding a menu item with an unsupported tag.
	ErrUnknownMenuItemType = errors.New("model: unknown menu item type")
)

// NewID returns a fresh process-unique node identifier.
func NewID() string {
	return uuid.NewString()
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Float returns a pointer to v. Handy for optional numeric settings.
func Float(v float64) *float64 {
	return &v
}
