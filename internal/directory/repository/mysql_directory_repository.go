package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/directory/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// MySQLDirectoryRepository implements directory Record persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLDirectoryRepository struct {
	db *sql.DB
}

// NewMySQLDirectoryRepository creates a new MySQLDirectoryRepository.
func NewMySQLDirectoryRepository(db *sql.DB) *MySQLDirectoryRepository {
	return &MySQLDirectoryRepository{db: db}
}

// Create inserts a new directory record.
func (r *MySQLDirectoryRepository) Create(ctx context.Context, record *domain.Record) error {
	table, err := tableForKind(record.Kind)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, r.db)

	idBytes, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record ID")
	}

	attributesJSON, err := marshalAttributes(record.Attributes)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, name, attributes, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		table,
	)

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
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
func (r *MySQLDirectoryRepository) Update(ctx context.Context, record *domain.Record) error {
	table, err := tableForKind(record.Kind)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, r.db)

	idBytes, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record ID")
	}

	attributesJSON, err := marshalAttributes(record.Attributes)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE %s SET name = ?, attributes = ?, updated_at = ? WHERE id = ?`,
		table,
	)

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Name,
		attributesJSON,
		record.UpdatedAt,
		idBytes,
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
func (r *MySQLDirectoryRepository) Get(
	ctx context.Context,
	kind domain.Kind,
	id uuid.UUID,
) (*domain.Record, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal record ID")
	}

	query := fmt.Sprintf(
		`SELECT id, name, attributes, created_at, updated_at FROM %s WHERE id = ?`,
		table,
	)

	var record domain.Record
	var rowID, attributesJSON []byte
	err = querier.QueryRowContext(ctx, query, idBytes).Scan(
		&rowID,
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

	recordID, err := uuid.FromBytes(rowID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record ID")
	}
	record.ID = recordID
	record.Kind = kind
	if err := unmarshalAttributes(attributesJSON, &record.Attributes); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a directory record.
func (r *MySQLDirectoryRepository) Delete(
	ctx context.Context,
	kind domain.Kind,
	id uuid.UUID,
) error {
	table, err := tableForKind(kind)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record ID")
	}

	result, err := querier.ExecContext(
		ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table),
		idBytes,
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
func (r *MySQLDirectoryRepository) List(
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
		`SELECT id, name, attributes, created_at, updated_at FROM %s ORDER BY name LIMIT ? OFFSET ?`,
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
		var rowID, attributesJSON []byte
		err := rows.Scan(
			&rowID,
			&record.Name,
			&attributesJSON,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan directory record")
		}

		recordID, err := uuid.FromBytes(rowID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal record ID")
		}
		record.ID = recordID
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
func (r *MySQLDirectoryRepository) Count(ctx context.Context, kind domain.Kind) (int64, error) {
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
