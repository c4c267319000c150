package repositories

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDuplicate is returned when a write breaks a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
)

// storeError marks a driver failure as ErrStoreUnavailable, keeping the
// operation name and the driver message for logs.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
