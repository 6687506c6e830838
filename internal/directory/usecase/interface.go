// Package usecase defines business logic interfaces for directory records.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/directory/domain"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
)

// DirectoryRepository defines persistence operations for directory records of
// every kind.
type DirectoryRepository interface {
	// Create inserts a new record.
	Create(ctx context.Context, record *domain.Record) error

	// Update modifies an existing record. Returns ErrRecordNotFound if not found.
	Update(ctx context.Context, record *domain.Record) error

	// Get retrieves a record by kind and ID. Returns ErrRecordNotFound if not found.
	Get(ctx context.Context, kind domain.Kind, id uuid.UUID) (*domain.Record, error)

	// Delete removes a record. Returns ErrRecordNotFound if not found.
	Delete(ctx context.Context, kind domain.Kind, id uuid.UUID) error

	// List retrieves records of a kind ordered by name with pagination.
	List(ctx context.Context, kind domain.Kind, offset, limit int) ([]*domain.Record, error)

	// Count returns the number of records of a kind.
	Count(ctx context.Context, kind domain.Kind) (int64, error)
}

// DirectoryUseCase defines business logic operations for directory records.
// Every mutation is policy-checked against the record's kind and audited
// atomically with the mutation itself.
type DirectoryUseCase interface {
	// Create inserts a new record of the given kind.
	Create(ctx context.Context, actor *identityDomain.Admin, kind domain.Kind, input *domain.RecordInput) (*domain.Record, error)

	// Update modifies a record's name and attributes.
	Update(ctx context.Context, actor *identityDomain.Admin, kind domain.Kind, id uuid.UUID, input *domain.RecordInput) (*domain.Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, actor *identityDomain.Admin, kind domain.Kind, id uuid.UUID) error

	// Get retrieves a record.
	Get(ctx context.Context, actor *identityDomain.Admin, kind domain.Kind, id uuid.UUID) (*domain.Record, error)

	// List retrieves records of a kind ordered by name with pagination.
	List(ctx context.Context, actor *identityDomain.Admin, kind domain.Kind, offset, limit int) ([]*domain.Record, error)

	// Counts returns the record count per kind, for the dashboard.
	Counts(ctx context.Context) (map[domain.Kind]int64, error)
}
