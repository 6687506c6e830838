// Package usecase implements business logic orchestration for administrator
// management and authentication.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	auditUsecase "github.com/allisson/panchayath-admin/internal/audit/usecase"
	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/identity/domain"
	identityService "github.com/allisson/panchayath-admin/internal/identity/service"
	"github.com/allisson/panchayath-admin/internal/policy"
)

// GrantRevoker removes all permission grants held by an administrator. It is
// satisfied by the permission module's grant repository and invoked inside the
// admin deletion transaction so the account and its grants disappear together.
type GrantRevoker interface {
	DeleteByAdmin(ctx context.Context, adminID uuid.UUID) (int64, error)
}

// adminUseCase implements AdminUseCase.
type adminUseCase struct {
	adminRepo       AdminRepository
	grantRevoker    GrantRevoker
	evaluator       *policy.Evaluator
	txManager       database.TxManager
	auditRecorder   auditUsecase.Recorder
	passwordService identityService.PasswordService
}

// NewAdminUseCase creates a new AdminUseCase with the provided dependencies.
func NewAdminUseCase(
	adminRepo AdminRepository,
	grantRevoker GrantRevoker,
	evaluator *policy.Evaluator,
	txManager database.TxManager,
	auditRecorder auditUsecase.Recorder,
	passwordService identityService.PasswordService,
) AdminUseCase {
	return &adminUseCase{
		adminRepo:       adminRepo,
		grantRevoker:    grantRevoker,
		evaluator:       evaluator,
		txManager:       txManager,
		auditRecorder:   auditRecorder,
		passwordService: passwordService,
	}
}

// Create provisions a new administrator account.
//
// The mutation and its audit record are committed in one transaction: either
// both become visible or neither does. The password is hashed with Argon2id
// before the transaction starts and the plaintext is never stored anywhere,
// including the audit snapshot.
func (a *adminUseCase) Create(
	ctx context.Context,
	actor *domain.Admin,
	input *domain.CreateAdminInput,
) (*domain.Admin, error) {
	if err := a.evaluator.Authorize(actor, policy.ResourceAdmins); err != nil {
		return nil, err
	}

	if !input.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	hashedPassword, err := a.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  strings.ToLower(input.Username),
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      input.Role,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.adminRepo.Create(ctx, admin); err != nil {
			return err
		}
		return a.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionCreate,
			policy.ResourceAdmins,
			admin.ID.String(),
			nil,
			admin.Snapshot(),
		)
	})
	if err != nil {
		return nil, err
	}

	return admin, nil
}

// Update modifies an administrator's email, role and active flag.
func (a *adminUseCase) Update(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
	input *domain.UpdateAdminInput,
) (*domain.Admin, error) {
	if err := a.evaluator.Authorize(actor, policy.ResourceAdmins); err != nil {
		return nil, err
	}

	if !input.Role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	var updated *domain.Admin
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		admin, err := a.adminRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		oldSnapshot := admin.Snapshot()

		admin.Email = input.Email
		admin.Role = input.Role
		admin.IsActive = input.IsActive
		admin.UpdatedAt = time.Now().UTC()

		if err := a.adminRepo.Update(ctx, admin); err != nil {
			return err
		}

		updated = admin
		return a.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionUpdate,
			policy.ResourceAdmins,
			admin.ID.String(),
			oldSnapshot,
			admin.Snapshot(),
		)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SetActive toggles an administrator's active flag. A deactivated account
// keeps its rows and grants but fails every subsequent policy check.
func (a *adminUseCase) SetActive(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
	active bool,
) error {
	if err := a.evaluator.Authorize(actor, policy.ResourceAdmins); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		admin, err := a.adminRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		oldSnapshot := admin.Snapshot()

		admin.IsActive = active
		admin.UpdatedAt = time.Now().UTC()

		if err := a.adminRepo.Update(ctx, admin); err != nil {
			return err
		}

		return a.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionUpdate,
			policy.ResourceAdmins,
			admin.ID.String(),
			oldSnapshot,
			admin.Snapshot(),
		)
	})
}

// ChangePassword replaces an administrator's credential. The audit record
// proves the change happened; snapshots never carry credential material.
func (a *adminUseCase) ChangePassword(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
	plainPassword string,
) error {
	if err := a.evaluator.Authorize(actor, policy.ResourceAdmins); err != nil {
		return err
	}

	hashedPassword, err := a.passwordService.HashPassword(plainPassword)
	if err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		admin, err := a.adminRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		oldSnapshot := admin.Snapshot()

		admin.Password = hashedPassword
		admin.UpdatedAt = time.Now().UTC()

		if err := a.adminRepo.Update(ctx, admin); err != nil {
			return err
		}

		return a.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionUpdate,
			policy.ResourceAdmins,
			admin.ID.String(),
			oldSnapshot,
			admin.Snapshot(),
		)
	})
}

// Delete removes an administrator and all their grants in one transaction.
// The cascaded grant removals are not individually audited; the single delete
// record covers the account.
func (a *adminUseCase) Delete(ctx context.Context, actor *domain.Admin, id uuid.UUID) error {
	if err := a.evaluator.Authorize(actor, policy.ResourceAdmins); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		admin, err := a.adminRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		oldSnapshot := admin.Snapshot()

		if _, err := a.grantRevoker.DeleteByAdmin(ctx, id); err != nil {
			return err
		}

		if err := a.adminRepo.Delete(ctx, id); err != nil {
			return err
		}

		return a.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionDelete,
			policy.ResourceAdmins,
			admin.ID.String(),
			oldSnapshot,
			nil,
		)
	})
}

// Get retrieves an administrator by ID.
func (a *adminUseCase) Get(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
) (*domain.Admin, error) {
	if err := a.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return a.adminRepo.Get(ctx, id)
}

// List retrieves administrators ordered by username with pagination.
func (a *adminUseCase) List(
	ctx context.Context,
	actor *domain.Admin,
	offset, limit int,
) ([]*domain.Admin, error) {
	if err := a.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return a.adminRepo.List(ctx, offset, limit)
}

// Count returns the total number of administrators.
func (a *adminUseCase) Count(ctx context.Context) (int64, error) {
	return a.adminRepo.Count(ctx)
}
