// Package store is the data access layer. Each entity gets a small
// interface plus a GORM-backed implementation, so feed assembly and the
// social rules never touch the storage engine directly.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id, slug or username misses.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
