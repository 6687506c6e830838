package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token represents an opaque API authentication token issued on login.
// Only the SHA-256 hash of the token is stored; the plain value is returned
// once to the caller and never persisted.
type Token struct {
	ID        uuid.UUID
	AdminID   uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token has passed its expiration time.
func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// LoginOutput contains the result of a successful authentication.
// SECURITY: the plain token is only returned once and must be stored securely
// by the caller.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	Admin     *Admin
}
