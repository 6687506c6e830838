// Package repository implements data persistence for directory records.
//
// All three directory kinds share one column layout, so a single repository
// serves them with the table chosen per kind from a fixed whitelist. Provides
// PostgreSQL and MySQL implementations with transaction support via
// database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/directory/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// tableForKind maps a kind to its table. Kinds are validated against this
// whitelist before any SQL is built; the kind never reaches the query as data.
func tableForKind(kind domain.Kind) (string, error) {
	switch kind {
	case domain.KindPanchayath:
		return "panchayaths", nil
	case domain.KindAgent:
		return "agents", nil
	case domain.KindManagementTeam:
		return "management_teams", nil
	}
	return "", domain.ErrInvalidKind
}

// PostgreSQLDirectoryRepository implements directory Record persistence for PostgreSQL.
type PostgreSQLDirectoryRepository struct {
	db *sql.DB
}

// NewPostgreSQLDirectoryRepository creates a new PostgreSQLDirectoryRepository.
func NewPostgreSQLDirectoryRepository(db *sql.DB) *PostgreSQLDirectoryRepository {
	return &PostgreSQLDirectoryRepository{db: db}
}

// Create inserts a new directory record.
func (r *PostgreSQLDirectoryRepository) Create(ctx context.Context, record *domain.Record) error {
	table, err := tableForKind(record.Kind)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, r.db)

	attributesJSON, err := marshalAttributes(record.Attributes)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, name, attributes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		table,
	)

	_, err = querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.Name,
		attributesJSON,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create directory record")
	}
	return nil
}

// Update modifies an existing directory record's name and attributes.
func (r *PostgreSQLDirectoryRepository) Update(ctx context.Context, record *domain.Record) error {
	table, err := tableForKind(record.Kind)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, r.db)

	attributesJSON, err := marshalAttributes(record.Attributes)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE %s SET name = $1, attributes = $2, updated_at = $3 WHERE id = $4`,
		table,
	)

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Name,
		attributesJSON,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update directory record")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// Get retrieves a directory record by kind and ID.
func (r *PostgreSQLDirectoryRepository) Get(
	ctx context.Context,
	kind domain.Kind,
	id uuid.UUID,
) (*domain.Record, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}
	querier := database.GetTx(ctx, r.db)

	query := fmt.Sprintf(
		`SELECT id, name, attributes, created_at, updated_at FROM %s WHERE id = $1`,
		table,
	)

	var record domain.Record
	var attributesJSON []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Name,
		&attributesJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get directory record")
	}

	record.Kind = kind
	if err := unmarshalAttributes(attributesJSON, &record.Attributes); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a directory record.
func (r *PostgreSQLDirectoryRepository) Delete(
	ctx context.Context,
	kind domain.Kind,
	id uuid.UUID,
) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table),
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete directory record")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// List retrieves directory records of a kind ordered by name with pagination.
func (r *PostgreSQLDirectoryRepository) List(
	ctx context.Context,
	kind domain.Kind,
	offset, limit int,
) ([]*domain.Record, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}
	querier := database.GetTx(ctx, r.db)

	query := fmt.Sprintf(
		`SELECT id, name, attributes, created_at, updated_at FROM %s ORDER BY name LIMIT $1 OFFSET $2`,
		table,
	)

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list directory records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*domain.Record, 0)
	for rows.Next() {
		var record domain.Record
		var attributesJSON []byte
		err := rows.Scan(
			&record.ID,
			&record.Name,
			&attributesJSON,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan directory record")
		}
		record.Kind = kind
		if err := unmarshalAttributes(attributesJSON, &record.Attributes); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate directory records")
	}

	return records, nil
}

// Count returns the number of records of a kind.
func (r *PostgreSQLDirectoryRepository) Count(ctx context.Context, kind domain.Kind) (int64, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return 0, err
	}
	querier := database.GetTx(ctx, r.db)

	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
	if err := querier.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count directory records")
	}
	return count, nil
}

// marshalAttributes serializes a record's attribute document for storage.
func marshalAttributes(attributes map[string]any) ([]byte, error) {
	if attributes == nil {
		attributes = map[string]any{}
	}
	data, err := json.Marshal(attributes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal directory attributes")
	}
	return data, nil
}

// unmarshalAttributes deserializes a record's attribute document.
func unmarshalAttributes(data []byte, attributes *map[string]any) error {
	if len(data) == 0 {
		*attributes = map[string]any{}
		return nil
	}
	if err := json.Unmarshal(data, attributes); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal directory attributes")
	}
	return nil
}
