// Package usecase implements business logic orchestration for the permission
// registry.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/permission/domain"
	"github.com/allisson/panchayath-admin/internal/policy"
)

// permissionUseCase implements PermissionUseCase.
type permissionUseCase struct {
	permissionRepo PermissionRepository
	grantRepo      GrantRepository
	adminGetter    AdminGetter
	evaluator      *policy.Evaluator
	txManager      database.TxManager
}

// NewPermissionUseCase creates a new PermissionUseCase with the provided dependencies.
func NewPermissionUseCase(
	permissionRepo PermissionRepository,
	grantRepo GrantRepository,
	adminGetter AdminGetter,
	evaluator *policy.Evaluator,
	txManager database.TxManager,
) PermissionUseCase {
	return &permissionUseCase{
		permissionRepo: permissionRepo,
		grantRepo:      grantRepo,
		adminGetter:    adminGetter,
		evaluator:      evaluator,
		txManager:      txManager,
	}
}

// List retrieves the catalog ordered by module then action.
func (p *permissionUseCase) List(
	ctx context.Context,
	actor *identityDomain.Admin,
) ([]*domain.Permission, error) {
	if err := p.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return p.permissionRepo.List(ctx)
}

// Grant attaches a permission to an administrator. Repeating a grant is a
// no-op, not an error.
func (p *permissionUseCase) Grant(
	ctx context.Context,
	actor *identityDomain.Admin,
	adminID, permissionID uuid.UUID,
) error {
	if err := p.evaluator.Authorize(actor, policy.ResourceGrants); err != nil {
		return err
	}

	if _, err := p.adminGetter.Get(ctx, adminID); err != nil {
		return err
	}
	if _, err := p.permissionRepo.Get(ctx, permissionID); err != nil {
		return err
	}

	grantedBy := actor.ID
	grant := &domain.Grant{
		AdminID:      adminID,
		PermissionID: permissionID,
		GrantedBy:    &grantedBy,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := p.grantRepo.Create(ctx, grant)
	return err
}

// Revoke removes a single grant.
func (p *permissionUseCase) Revoke(
	ctx context.Context,
	actor *identityDomain.Admin,
	adminID, permissionID uuid.UUID,
) error {
	if err := p.evaluator.Authorize(actor, policy.ResourceGrants); err != nil {
		return err
	}
	return p.grantRepo.Delete(ctx, adminID, permissionID)
}

// RevokeAll removes every grant held by an administrator.
func (p *permissionUseCase) RevokeAll(
	ctx context.Context,
	actor *identityDomain.Admin,
	adminID uuid.UUID,
) (int64, error) {
	if err := p.evaluator.Authorize(actor, policy.ResourceGrants); err != nil {
		return 0, err
	}
	return p.grantRepo.DeleteByAdmin(ctx, adminID)
}

// Replace atomically swaps an administrator's grants for the given set.
// The delete and the inserts run in one transaction, so a failing permission
// lookup rolls the whole exchange back and the previous set stays visible.
func (p *permissionUseCase) Replace(
	ctx context.Context,
	actor *identityDomain.Admin,
	adminID uuid.UUID,
	permissionIDs []uuid.UUID,
) error {
	if err := p.evaluator.Authorize(actor, policy.ResourceGrants); err != nil {
		return err
	}

	if _, err := p.adminGetter.Get(ctx, adminID); err != nil {
		return err
	}

	grantedBy := actor.ID
	now := time.Now().UTC()

	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := p.grantRepo.DeleteByAdmin(ctx, adminID); err != nil {
			return err
		}

		for _, permissionID := range permissionIDs {
			if _, err := p.permissionRepo.Get(ctx, permissionID); err != nil {
				return err
			}

			grant := &domain.Grant{
				AdminID:      adminID,
				PermissionID: permissionID,
				GrantedBy:    &grantedBy,
				CreatedAt:    now,
			}
			if _, err := p.grantRepo.Create(ctx, grant); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByAdmin retrieves the permissions granted to an administrator.
func (p *permissionUseCase) ListByAdmin(
	ctx context.Context,
	actor *identityDomain.Admin,
	adminID uuid.UUID,
) ([]*domain.Permission, error) {
	if err := p.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return p.permissionRepo.ListByAdmin(ctx, adminID)
}

// SeedBuiltin idempotently installs the builtin catalog.
func (p *permissionUseCase) SeedBuiltin(ctx context.Context) (int64, error) {
	return p.permissionRepo.SeedBuiltin(ctx, domain.BuiltinPermissions)
}
