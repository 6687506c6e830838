package domain

import (
	"github.com/allisson/panchayath-admin/internal/errors"
)

// Directory domain errors.
var (
	// ErrRecordNotFound indicates the requested directory record does not exist.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "directory record not found")

	// ErrInvalidKind indicates the kind is not one of the enumerated values.
	ErrInvalidKind = errors.Wrap(errors.ErrInvalidInput, "invalid directory kind")

	// ErrInvalidName indicates the record name is blank.
	ErrInvalidName = errors.Wrap(errors.ErrInvalidInput, "invalid directory record name")
)
