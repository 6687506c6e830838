// Package repository implements data persistence for the permission registry.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/permission/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// PostgreSQLPermissionRepository implements Permission persistence for PostgreSQL.
type PostgreSQLPermissionRepository struct {
	db *sql.DB
}

// NewPostgreSQLPermissionRepository creates a new PostgreSQLPermissionRepository.
func NewPostgreSQLPermissionRepository(db *sql.DB) *PostgreSQLPermissionRepository {
	return &PostgreSQLPermissionRepository{db: db}
}

// List retrieves the full catalog ordered by module then action.
func (r *PostgreSQLPermissionRepository) List(ctx context.Context) ([]*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, module, action, description, created_at
			  FROM permissions ORDER BY module, action`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectPostgreSQLPermissions(rows)
}

// Get retrieves a permission by ID.
func (r *PostgreSQLPermissionRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, module, action, description, created_at
			  FROM permissions WHERE id = $1`

	var permission domain.Permission
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&permission.ID,
		&permission.Module,
		&permission.Action,
		&permission.Description,
		&permission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission")
	}
	return &permission, nil
}

// ListByAdmin retrieves the permissions granted to an administrator,
// ordered by module then action.
func (r *PostgreSQLPermissionRepository) ListByAdmin(
	ctx context.Context,
	adminID uuid.UUID,
) ([]*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.module, p.action, p.description, p.created_at
			  FROM permissions p
			  INNER JOIN grants g ON g.permission_id = p.id
			  WHERE g.admin_id = $1
			  ORDER BY p.module, p.action`

	rows, err := querier.QueryContext(ctx, query, adminID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions by admin")
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectPostgreSQLPermissions(rows)
}

// SeedBuiltin inserts catalog entries that do not yet exist. Existing
// (module, action) rows are left untouched. Returns the number inserted.
func (r *PostgreSQLPermissionRepository) SeedBuiltin(
	ctx context.Context,
	builtins []domain.BuiltinPermission,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (id, module, action, description, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (module, action) DO NOTHING`

	var inserted int64
	now := time.Now().UTC()
	for _, builtin := range builtins {
		result, err := querier.ExecContext(
			ctx,
			query,
			uuid.Must(uuid.NewV7()),
			builtin.Module,
			builtin.Action,
			builtin.Description,
			now,
		)
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to seed permission")
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to get rows affected")
		}
		inserted += rowsAffected
	}
	return inserted, nil
}

func collectPostgreSQLPermissions(rows *sql.Rows) ([]*domain.Permission, error) {
	permissions := make([]*domain.Permission, 0)
	for rows.Next() {
		var permission domain.Permission
		err := rows.Scan(
			&permission.ID,
			&permission.Module,
			&permission.Action,
			&permission.Description,
			&permission.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}
		permissions = append(permissions, &permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate permissions")
	}

	return permissions, nil
}
