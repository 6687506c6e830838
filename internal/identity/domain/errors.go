package domain

import (
	"github.com/allisson/panchayath-admin/internal/errors"
)

// Identity domain errors.
var (
	// ErrAdminNotFound indicates the requested administrator does not exist.
	ErrAdminNotFound = errors.Wrap(errors.ErrNotFound, "admin not found")

	// ErrUsernameTaken indicates an administrator with the same username already exists.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already taken")

	// ErrInvalidRole indicates the role is not one of the enumerated values.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrInvalidCredentials indicates authentication failed. It deliberately does
	// not distinguish between an unknown username, a wrong password, and an
	// inactive account.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTokenNotFound indicates the authentication token does not exist.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")
)
