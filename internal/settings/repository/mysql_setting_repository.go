package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/settings/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// MySQLSettingRepository implements Setting persistence for MySQL.
// UUIDs are stored as BINARY(16). The key column is named setting_key because
// KEY is a reserved word in MySQL.
type MySQLSettingRepository struct {
	db *sql.DB
}

// NewMySQLSettingRepository creates a new MySQLSettingRepository.
func NewMySQLSettingRepository(db *sql.DB) *MySQLSettingRepository {
	return &MySQLSettingRepository{db: db}
}

// Create inserts a new setting.
func (r *MySQLSettingRepository) Create(ctx context.Context, setting *domain.Setting) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := setting.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal setting ID")
	}

	updatedBy, err := marshalOptionalUUID(setting.UpdatedBy)
	if err != nil {
		return err
	}

	valueJSON, err := marshalValue(setting.Value)
	if err != nil {
		return err
	}

	query := `INSERT INTO settings (id, setting_key, value, description, updated_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		setting.Key,
		valueJSON,
		setting.Description,
		updatedBy,
		setting.CreatedAt,
		setting.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create setting")
	}
	return nil
}

// Update modifies an existing setting's value, description and updated_by.
func (r *MySQLSettingRepository) Update(ctx context.Context, setting *domain.Setting) error {
	querier := database.GetTx(ctx, r.db)

	updatedBy, err := marshalOptionalUUID(setting.UpdatedBy)
	if err != nil {
		return err
	}

	valueJSON, err := marshalValue(setting.Value)
	if err != nil {
		return err
	}

	query := `UPDATE settings
			  SET value = ?,
				  description = ?,
				  updated_by = ?,
				  updated_at = ?
			  WHERE setting_key = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		valueJSON,
		setting.Description,
		updatedBy,
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
func (r *MySQLSettingRepository) GetByKey(
	ctx context.Context,
	key string,
) (*domain.Setting, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, setting_key, value, description, updated_by, created_at, updated_at
			  FROM settings WHERE setting_key = ?`

	setting, err := scanMySQLSetting(querier.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, err
	}
	return setting, nil
}

// List retrieves all settings ordered by key.
func (r *MySQLSettingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, setting_key, value, description, updated_by, created_at, updated_at
			  FROM settings ORDER BY setting_key`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list settings")
	}
	defer func() {
		_ = rows.Close()
	}()

	settings := make([]*domain.Setting, 0)
	for rows.Next() {
		setting, err := scanMySQLSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate settings")
	}

	return settings, nil
}

type settingScanner interface {
	Scan(dest ...any) error
}

func scanMySQLSetting(scanner settingScanner) (*domain.Setting, error) {
	var setting domain.Setting
	var idBytes, updatedByBytes, valueJSON []byte

	err := scanner.Scan(
		&idBytes,
		&setting.Key,
		&valueJSON,
		&setting.Description,
		&updatedByBytes,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan setting")
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal setting ID")
	}
	setting.ID = id

	if updatedByBytes != nil {
		updatedBy, err := uuid.FromBytes(updatedByBytes)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal updated_by ID")
		}
		setting.UpdatedBy = &updatedBy
	}

	if err := unmarshalValue(valueJSON, &setting.Value); err != nil {
		return nil, err
	}
	return &setting, nil
}

func marshalOptionalUUID(id *uuid.UUID) (any, error) {
	if id == nil {
		return nil, nil
	}
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return idBytes, nil
}
