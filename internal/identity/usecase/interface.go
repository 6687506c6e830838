// Package usecase defines business logic interfaces for administrator
// management and authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/identity/domain"
)

// AdminRepository defines persistence operations for administrator accounts.
// Implementations must support transaction-aware operations via context propagation.
type AdminRepository interface {
	// Create stores a new administrator. Returns ErrUsernameTaken on a
	// duplicate username.
	Create(ctx context.Context, admin *domain.Admin) error

	// Update modifies an existing administrator. Returns ErrAdminNotFound if
	// not found.
	Update(ctx context.Context, admin *domain.Admin) error

	// Get retrieves an administrator by ID. Returns ErrAdminNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*domain.Admin, error)

	// GetByUsername retrieves an administrator by username. Returns
	// ErrAdminNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)

	// List retrieves administrators ordered by username with pagination.
	List(ctx context.Context, offset, limit int) ([]*domain.Admin, error)

	// Delete removes an administrator. Grants cascade at the database level.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateLastLogin records a successful authentication timestamp.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, lastLoginAt time.Time) error

	// Count returns the total number of administrators.
	Count(ctx context.Context) (int64, error)
}

// TokenRepository defines persistence operations for authentication tokens.
type TokenRepository interface {
	// Create stores a new token.
	Create(ctx context.Context, token *domain.Token) error

	// GetByTokenHash retrieves a token by its SHA-256 hash. Returns
	// ErrTokenNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Token, error)

	// DeleteExpired removes tokens expired at or before the given time and
	// returns the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AdminUseCase defines business logic operations for managing administrator
// accounts. All mutations are policy-checked against the acting administrator
// and recorded in the audit trail within the same transaction.
type AdminUseCase interface {
	// Create provisions a new administrator. Restricted to super admins.
	// The plaintext password is hashed before storage and never persisted.
	Create(ctx context.Context, actor *domain.Admin, input *domain.CreateAdminInput) (*domain.Admin, error)

	// Update modifies an administrator's email, role and active flag.
	// Restricted to super admins.
	Update(ctx context.Context, actor *domain.Admin, id uuid.UUID, input *domain.UpdateAdminInput) (*domain.Admin, error)

	// SetActive toggles an administrator's active flag. Restricted to super
	// admins. Deactivation takes effect on the next policy check.
	SetActive(ctx context.Context, actor *domain.Admin, id uuid.UUID, active bool) error

	// ChangePassword replaces an administrator's credential. Restricted to
	// super admins.
	ChangePassword(ctx context.Context, actor *domain.Admin, id uuid.UUID, plainPassword string) error

	// Delete removes an administrator together with their grants. Restricted
	// to super admins. The cascade removal of grants is not individually
	// audited; one delete record covers the account.
	Delete(ctx context.Context, actor *domain.Admin, id uuid.UUID) error

	// Get retrieves an administrator by ID.
	Get(ctx context.Context, actor *domain.Admin, id uuid.UUID) (*domain.Admin, error)

	// List retrieves administrators ordered by username with pagination.
	List(ctx context.Context, actor *domain.Admin, offset, limit int) ([]*domain.Admin, error)

	// Count returns the total number of administrators.
	Count(ctx context.Context) (int64, error)
}

// AuthUseCase defines authentication operations.
type AuthUseCase interface {
	// Login verifies a username and password and issues an opaque API token.
	// An unknown username, a wrong password and an inactive account all yield
	// ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.LoginOutput, error)

	// Authenticate resolves a plain bearer token to its administrator.
	// Unknown, expired, and orphaned tokens all yield ErrInvalidCredentials;
	// an inactive account is rejected the same way.
	Authenticate(ctx context.Context, plainToken string) (*domain.Admin, error)

	// PurgeExpiredTokens removes expired tokens and returns the number removed.
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}
