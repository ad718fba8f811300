package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all services. Handlers map these onto HTTP statuses;
// anything wrapping ErrPersistence is a storage-layer failure (network,
// permission, serialization) and surfaces as a 500.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrPersistence = errors.New("persistence error")
)

// ValidationError reports a missing or out-of-range field on a create/update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrPersistence, err)
}
