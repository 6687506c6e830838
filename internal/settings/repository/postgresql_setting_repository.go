// Package repository implements data persistence for application settings.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Values are stored as JSON documents (JSONB on PostgreSQL,
// JSON on MySQL) and round-trip through encoding/json.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/settings/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// PostgreSQLSettingRepository implements Setting persistence for PostgreSQL.
type PostgreSQLSettingRepository struct {
	db *sql.DB
}

// NewPostgreSQLSettingRepository creates a new PostgreSQLSettingRepository.
func NewPostgreSQLSettingRepository(db *sql.DB) *PostgreSQLSettingRepository {
	return &PostgreSQLSettingRepository{db: db}
}

// Create inserts a new setting.
func (r *PostgreSQLSettingRepository) Create(ctx context.Context, setting *domain.Setting) error {
	querier := database.GetTx(ctx, r.db)

	valueJSON, err := marshalValue(setting.Value)
	if err != nil {
		return err
	}

	query := `INSERT INTO settings (id, key, value, description, updated_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		setting.ID,
		setting.Key,
		valueJSON,
		setting.Description,
		setting.UpdatedBy,
		setting.CreatedAt,
		setting.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create setting")
	}
	return nil
}

// Update modifies an existing setting's value, description and updated_by.
func (r *PostgreSQLSettingRepository) Update(ctx context.Context, setting *domain.Setting) error {
	querier := database.GetTx(ctx, r.db)

	valueJSON, err := marshalValue(setting.Value)
	if err != nil {
		return err
	}

	query := `UPDATE settings
			  SET value = $1,
				  description = $2,
				  updated_by = $3,
				  updated_at = $4
			  WHERE key = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		valueJSON,
		setting.Description,
		setting.UpdatedBy,
		setting.UpdatedAt,
		setting.Key,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update setting")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrSettingNotFound
	}
	return nil
}

// GetByKey retrieves a setting by its unique key.
func (r *PostgreSQLSettingRepository) GetByKey(
	ctx context.Context,
	key string,
) (*domain.Setting, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, key, value, description, updated_by, created_at, updated_at
			  FROM settings WHERE key = $1`

	var setting domain.Setting
	var valueJSON []byte
	err := querier.QueryRowContext(ctx, query, key).Scan(
		&setting.ID,
		&setting.Key,
		&valueJSON,
		&setting.Description,
		&setting.UpdatedBy,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get setting")
	}

	if err := unmarshalValue(valueJSON, &setting.Value); err != nil {
		return nil, err
	}
	return &setting, nil
}

// List retrieves all settings ordered by key.
func (r *PostgreSQLSettingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, key, value, description, updated_by, created_at, updated_at
			  FROM settings ORDER BY key`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	defer func() {
		_ = rows.Close()
	}()

	settings := make([]*domain.Setting, 0)
	for rows.Next() {
		var setting domain.Setting
		var valueJSON []byte
		err := rows.Scan(
			&setting.ID,
			&setting.Key,
			&valueJSON,
			&setting.Description,
			&setting.UpdatedBy,
			&setting.CreatedAt,
			&setting.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan setting")
		}
		if err := unmarshalValue(valueJSON, &setting.Value); err != nil {
			return nil, err
		}
		settings = append(settings, &setting)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate settings")
	}

	return settings, nil
}

// marshalValue serializes a setting value to its JSON storage form.
func marshalValue(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal setting value")
	}
	return data, nil
}

// unmarshalValue deserializes a setting value from its JSON storage form.
func unmarshalValue(data []byte, value *any) error {
	if len(data) == 0 {
		*value = nil
		return nil
	}
	if err := json.Unmarshal(data, value); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal setting value")
	}
	return nil
}
