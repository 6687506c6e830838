package domain

import (
	"github.com/allisson/panchayath-admin/internal/errors"
)

// Settings domain errors.
var (
	// ErrSettingNotFound indicates the requested setting key does not exist.
	ErrSettingNotFound = errors.Wrap(errors.ErrNotFound, "setting not found")

	// ErrInvalidSettingKey indicates the setting key is blank or malformed.
	ErrInvalidSettingKey = errors.Wrap(errors.ErrInvalidInput, "invalid setting key")
)
