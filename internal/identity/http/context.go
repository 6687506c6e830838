// Package http provides HTTP middleware and handlers for authentication and
// administrator management.
package http

import (
	"context"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
)

// adminKey is a context key type for storing authenticated administrators.
type adminKey struct{}

// WithAdmin stores an authenticated administrator in the context. This is
// called by the authentication middleware after successful token validation.
func WithAdmin(ctx context.Context, admin *identityDomain.Admin) context.Context {
	return context.WithValue(ctx, adminKey{}, admin)
}

// GetAdmin retrieves the authenticated administrator from the context.
// Returns (admin, true) if present, or (nil, false) if no admin was set.
func GetAdmin(ctx context.Context) (*identityDomain.Admin, bool) {
	admin, ok := ctx.Value(adminKey{}).(*identityDomain.Admin)
	return admin, ok
}
