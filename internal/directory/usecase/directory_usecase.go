// Package usecase implements business logic orchestration for directory records.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	auditUsecase "github.com/allisson/panchayath-admin/internal/audit/usecase"
	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/directory/domain"
	"github.com/allisson/panchayath-admin/internal/policy"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
)

// directoryUseCase implements DirectoryUseCase.
type directoryUseCase struct {
	directoryRepo DirectoryRepository
	evaluator     *policy.Evaluator
	txManager     database.TxManager
	auditRecorder auditUsecase.Recorder
}

// NewDirectoryUseCase creates a new DirectoryUseCase with the provided dependencies.
func NewDirectoryUseCase(
	directoryRepo DirectoryRepository,
	evaluator *policy.Evaluator,
	txManager database.TxManager,
	auditRecorder auditUsecase.Recorder,
) DirectoryUseCase {
	return &directoryUseCase{
		directoryRepo: directoryRepo,
		evaluator:     evaluator,
		txManager:     txManager,
		auditRecorder: auditRecorder,
	}
}

// Create inserts a new record of the given kind with its audit record.
func (d *directoryUseCase) Create(
	ctx context.Context,
	actor *identityDomain.Admin,
	kind domain.Kind,
	input *domain.RecordInput,
) (*domain.Record, error) {
	if err := validateKindAndInput(kind, input); err != nil {
		return nil, err
	}
	if err := d.evaluator.Authorize(actor, string(kind)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.Record{
		ID:         uuid.Must(uuid.NewV7()),
		Kind:       kind,
		Name:       input.Name,
		Attributes: input.Attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := d.directoryRepo.Create(ctx, record); err != nil {
			return err
		}
		return d.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionCreate,
			string(kind),
			record.ID.String(),
			nil,
			record.Snapshot(),
		)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Update modifies a record's name and attributes with its audit record.
func (d *directoryUseCase) Update(
	ctx context.Context,
	actor *identityDomain.Admin,
	kind domain.Kind,
	id uuid.UUID,
	input *domain.RecordInput,
) (*domain.Record, error) {
	if err := validateKindAndInput(kind, input); err != nil {
		return nil, err
	}
	if err := d.evaluator.Authorize(actor, string(kind)); err != nil {
		return nil, err
	}

	var updated *domain.Record
	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := d.directoryRepo.Get(ctx, kind, id)
		if err != nil {
			return err
		}

		oldSnapshot := record.Snapshot()

		record.Name = input.Name
		record.Attributes = input.Attributes
		record.UpdatedAt = time.Now().UTC()

		if err := d.directoryRepo.Update(ctx, record); err != nil {
			return err
		}

		updated = record
		return d.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionUpdate,
			string(kind),
			record.ID.String(),
			oldSnapshot,
			record.Snapshot(),
		)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a record with its audit record.
func (d *directoryUseCase) Delete(
	ctx context.Context,
	actor *identityDomain.Admin,
	kind domain.Kind,
	id uuid.UUID,
) error {
	if !kind.IsValid() {
		return domain.ErrInvalidKind
	}
	if err := d.evaluator.Authorize(actor, string(kind)); err != nil {
		return err
	}

	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := d.directoryRepo.Get(ctx, kind, id)
		if err != nil {
			return err
		}

		oldSnapshot := record.Snapshot()

		if err := d.directoryRepo.Delete(ctx, kind, id); err != nil {
			return err
		}

		return d.auditRecorder.Record(
			ctx,
			actor,
			auditDomain.ActionDelete,
			string(kind),
			record.ID.String(),
			oldSnapshot,
			nil,
		)
	})
}

// Get retrieves a record.
func (d *directoryUseCase) Get(
	ctx context.Context,
	actor *identityDomain.Admin,
	kind domain.Kind,
	id uuid.UUID,
) (*domain.Record, error) {
	if !kind.IsValid() {
		return nil, domain.ErrInvalidKind
	}
	if err := d.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return d.directoryRepo.Get(ctx, kind, id)
}

// List retrieves records of a kind ordered by name with pagination.
func (d *directoryUseCase) List(
	ctx context.Context,
	actor *identityDomain.Admin,
	kind domain.Kind,
	offset, limit int,
) ([]*domain.Record, error) {
	if !kind.IsValid() {
		return nil, domain.ErrInvalidKind
	}
	if err := d.evaluator.AuthorizeRead(actor); err != nil {
		return nil, err
	}
	return d.directoryRepo.List(ctx, kind, offset, limit)
}

// Counts returns the record count per kind.
func (d *directoryUseCase) Counts(ctx context.Context) (map[domain.Kind]int64, error) {
	counts := make(map[domain.Kind]int64, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		count, err := d.directoryRepo.Count(ctx, kind)
		if err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, nil
}

func validateKindAndInput(kind domain.Kind, input *domain.RecordInput) error {
	if !kind.IsValid() {
		return domain.ErrInvalidKind
	}
	if strings.TrimSpace(input.Name) == "" {
		return domain.ErrInvalidName
	}
	return nil
}
