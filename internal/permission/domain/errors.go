package domain

import (
	"github.com/allisson/panchayath-admin/internal/errors"
)

// Permission domain errors.
var (
	// ErrPermissionNotFound indicates the requested permission does not exist.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")

	// ErrGrantNotFound indicates the administrator does not hold the permission.
	ErrGrantNotFound = errors.Wrap(errors.ErrNotFound, "grant not found")
)
