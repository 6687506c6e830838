package usecase

import (
	"context"
)

// Origin carries the network metadata of the request that triggered a mutation.
type Origin struct {
	IPAddress string
	UserAgent string
}

// originKey is a context key type for storing request origins.
type originKey struct{}

// WithOrigin stores the request origin in the context. This is typically called
// by HTTP middleware so that audit records capture where a mutation came from.
func WithOrigin(ctx context.Context, origin Origin) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFrom retrieves the request origin from the context. Returns a zero
// Origin for system-originated calls (CLI commands, migrations).
func OriginFrom(ctx context.Context) Origin {
	origin, _ := ctx.Value(originKey{}).(Origin)
	return origin
}
