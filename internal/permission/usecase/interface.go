// Package usecase defines business logic interfaces for the permission registry.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/permission/domain"
)

// PermissionRepository defines persistence operations for the permission catalog.
type PermissionRepository interface {
	// List retrieves the full catalog ordered by module then action.
	List(ctx context.Context) ([]*domain.Permission, error)

	// Get retrieves a permission by ID. Returns ErrPermissionNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*domain.Permission, error)

	// ListByAdmin retrieves the permissions granted to an administrator.
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]*domain.Permission, error)

	// SeedBuiltin idempotently inserts catalog entries, returning the number inserted.
	SeedBuiltin(ctx context.Context, builtins []domain.BuiltinPermission) (int64, error)
}

// AdminGetter looks up grant targets. The identity AdminRepository satisfies
// it; Get returns ErrAdminNotFound for unknown IDs.
type AdminGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*identityDomain.Admin, error)
}

// GrantRepository defines persistence operations for grants.
type GrantRepository interface {
	// Create idempotently inserts a grant; reports whether a row was inserted.
	Create(ctx context.Context, grant *domain.Grant) (bool, error)

	// Delete removes a grant. Returns ErrGrantNotFound if the pair does not exist.
	Delete(ctx context.Context, adminID, permissionID uuid.UUID) error

	// DeleteByAdmin removes every grant held by an administrator.
	DeleteByAdmin(ctx context.Context, adminID uuid.UUID) (int64, error)
}

// PermissionUseCase defines business logic operations for the permission
// registry. Grant mutations are restricted to super admins; grants are not a
// tracked audit resource.
type PermissionUseCase interface {
	// List retrieves the catalog ordered by module then action.
	List(ctx context.Context, actor *identityDomain.Admin) ([]*domain.Permission, error)

	// Grant attaches a permission to an administrator. Idempotent: granting an
	// already-held permission succeeds without effect. Returns ErrAdminNotFound
	// when the administrator does not exist.
	Grant(ctx context.Context, actor *identityDomain.Admin, adminID, permissionID uuid.UUID) error

	// Revoke removes a single grant. Returns ErrGrantNotFound if not held.
	Revoke(ctx context.Context, actor *identityDomain.Admin, adminID, permissionID uuid.UUID) error

	// RevokeAll removes every grant held by an administrator and returns the
	// number removed.
	RevokeAll(ctx context.Context, actor *identityDomain.Admin, adminID uuid.UUID) (int64, error)

	// Replace atomically swaps an administrator's grants for the given set.
	// Either the full new set becomes visible or nothing changes.
	Replace(ctx context.Context, actor *identityDomain.Admin, adminID uuid.UUID, permissionIDs []uuid.UUID) error

	// ListByAdmin retrieves the permissions granted to an administrator.
	ListByAdmin(ctx context.Context, actor *identityDomain.Admin, adminID uuid.UUID) ([]*domain.Permission, error)

	// SeedBuiltin idempotently installs the builtin catalog. System operation,
	// not policy-checked; exposed through the CLI only.
	SeedBuiltin(ctx context.Context) (int64, error)
}
