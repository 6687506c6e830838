// Package usecase implements business logic orchestration for the settings store.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	auditUsecase "github.com/allisson/panchayath-admin/internal/audit/usecase"
	"github.com/allisson/panchayath-admin/internal/database"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/policy"
	"github.com/allisson/panchayath-admin/internal/settings/domain"
)

// settingUseCase implements SettingUseCase.
type settingUseCase struct {
	settingRepo   SettingRepository
	evaluator     *policy.Evaluator
	txManager     database.TxManager
	auditRecorder auditUsecase.Recorder
}

// NewSettingUseCase creates a new SettingUseCase with the provided dependencies.
func NewSettingUseCase(
	settingRepo SettingRepository,
	evaluator *policy.Evaluator,
	txManager database.TxManager,
	auditRecorder auditUsecase.Recorder,
) SettingUseCase {
	return &settingUseCase{
		settingRepo:   settingRepo,
		evaluator:     evaluator,
		txManager:     txManager,
		auditRecorder: auditRecorder,
	}
}

// Get retrieves a setting by key.
func (s *settingUseCase) Get(
	ctx context.Context,
	actor *identityDomain.Admin,
	key string,
) (*domain.Setting, error) {
	if err := s.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return s.settingRepo.GetByKey(ctx, key)
}

// List retrieves all settings ordered by key.
func (s *settingUseCase) List(
	ctx context.Context,
	actor *identityDomain.Admin,
) ([]*domain.Setting, error) {
	if err := s.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return s.settingRepo.List(ctx)
}

// Set upserts one setting together with its audit record.
func (s *settingUseCase) Set(
	ctx context.Context,
	actor *identityDomain.Admin,
	input *domain.SetInput,
) (*domain.Setting, error) {
	if err := s.evaluator.Authorize(actor, policy.ResourceSettings); err != nil {
		return nil, err
	}

	if err := validateSetInput(input); err != nil {
		return nil, err
	}

	var setting *domain.Setting
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		setting, err = s.apply(ctx, actor, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return setting, nil
}

// SetAll applies several assignments in one transaction: either every
// assignment and every audit record commits, or none do.
func (s *settingUseCase) SetAll(
	ctx context.Context,
	actor *identityDomain.Admin,
	inputs []*domain.SetInput,
) error {
	if err := s.evaluator.Authorize(actor, policy.ResourceSettings); err != nil {
		return err
	}

	for _, input := range inputs {
		if err := validateSetInput(input); err != nil {
			return err
		}
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, input := range inputs {
			if _, err := s.apply(ctx, actor, input); err != nil {
				return err
			}
		}
		return nil
	})
}

// apply performs one upsert inside an open transaction. A new key becomes a
// create audit record, an existing key an update record with both snapshots.
func (s *settingUseCase) apply(
	ctx context.Context,
	actor *identityDomain.Admin,
	input *domain.SetInput,
) (*domain.Setting, error) {
	now := time.Now().UTC()
	updatedBy := actor.ID

	existing, err := s.settingRepo.GetByKey(ctx, input.Key)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			return nil, err
		}

		setting := &domain.Setting{
			ID:          uuid.Must(uuid.NewV7()),
			Key:         input.Key,
			Value:       input.Value,
			Description: input.Description,
			UpdatedBy:   &updatedBy,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.settingRepo.Create(ctx, setting); err != nil {
			return nil, err
		}
		if err := s.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionCreate,
			policy.ResourceSettings,
			setting.Key,
			nil,
			setting.Snapshot(),
		); err != nil {
			return nil, err
		}
		return setting, nil
	}

	oldSnapshot := existing.Snapshot()

	existing.Value = input.Value
	existing.Description = input.Description
	existing.UpdatedBy = &updatedBy
	existing.UpdatedAt = now

	if err := s.settingRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.auditRecorder.Record(
		ctx,
		actor,
		auditDomain.ActionUpdate,
		policy.ResourceSettings,
		existing.Key,
		oldSnapshot,
		existing.Snapshot(),
	); err != nil {
		return nil, err
	}
	return existing, nil
}

func validateSetInput(input *domain.SetInput) error {
	if strings.TrimSpace(input.Key) == "" {
		return domain.ErrInvalidSettingKey
	}
	return nil
}
