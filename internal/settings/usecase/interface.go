// Package usecase defines business logic interfaces for the settings store.
package usecase

import (
	"context"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/settings/domain"
)

// SettingRepository defines persistence operations for settings.
type SettingRepository interface {
	// Create inserts a new setting.
	Create(ctx context.Context, setting *domain.Setting) error

	// Update modifies an existing setting. Returns ErrSettingNotFound if the
	// key does not exist.
	Update(ctx context.Context, setting *domain.Setting) error

	// GetByKey retrieves a setting by key. Returns ErrSettingNotFound if not found.
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)

	// List retrieves all settings ordered by key.
	List(ctx context.Context) ([]*domain.Setting, error)
}

// SettingUseCase defines business logic operations for application settings.
// Writes are open to any active administrator and are audited; values are
// opaque JSON the application never interprets.
type SettingUseCase interface {
	// Get retrieves a setting by key.
	Get(ctx context.Context, actor *identityDomain.Admin, key string) (*domain.Setting, error)

	// List retrieves all settings ordered by key.
	List(ctx context.Context, actor *identityDomain.Admin) ([]*domain.Setting, error)

	// Set upserts one setting. A new key is audited as create, an existing key
	// as update; the write and its audit record commit together.
	Set(ctx context.Context, actor *identityDomain.Admin, input *domain.SetInput) (*domain.Setting, error)

	// SetAll applies several assignments in one transaction. If any entry
	// fails, nothing is committed and no audit record survives.
	SetAll(ctx context.Context, actor *identityDomain.Admin, inputs []*domain.SetInput) error
}
