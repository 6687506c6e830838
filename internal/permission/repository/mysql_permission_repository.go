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

// MySQLPermissionRepository implements Permission persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLPermissionRepository struct {
	db *sql.DB
}

// NewMySQLPermissionRepository creates a new MySQLPermissionRepository.
func NewMySQLPermissionRepository(db *sql.DB) *MySQLPermissionRepository {
	return &MySQLPermissionRepository{db: db}
}

// List retrieves the full catalog ordered by module then action.
func (r *MySQLPermissionRepository) List(ctx context.Context) ([]*domain.Permission, error) {
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

	return collectMySQLPermissions(rows)
}

// Get retrieves a permission by ID.
func (r *MySQLPermissionRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal permission ID")
	}

	query := `SELECT id, module, action, description, created_at
			  FROM permissions WHERE id = ?`

	var permission domain.Permission
	var rowID []byte
	err = querier.QueryRowContext(ctx, query, idBytes).Scan(
		&rowID,
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

	permissionID, err := uuid.FromBytes(rowID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal permission ID")
	}
	permission.ID = permissionID
	return &permission, nil
}

// ListByAdmin retrieves the permissions granted to an administrator,
// ordered by module then action.
func (r *MySQLPermissionRepository) ListByAdmin(
	ctx context.Context,
	adminID uuid.UUID,
) ([]*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	adminIDBytes, err := adminID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal admin ID")
	}

	query := `SELECT p.id, p.module, p.action, p.description, p.created_at
			  FROM permissions p
			  INNER JOIN grants g ON g.permission_id = p.id
			  WHERE g.admin_id = ?
			  ORDER BY p.module, p.action`

	rows, err := querier.QueryContext(ctx, query, adminIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions by admin")
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectMySQLPermissions(rows)
}

// SeedBuiltin inserts catalog entries that do not yet exist. Existing
// (module, action) rows are left untouched. Returns the number inserted.
func (r *MySQLPermissionRepository) SeedBuiltin(
	ctx context.Context,
	builtins []domain.BuiltinPermission,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO permissions (id, module, action, description, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	var inserted int64
	now := time.Now().UTC()
	for _, builtin := range builtins {
		idBytes, err := uuid.Must(uuid.NewV7()).MarshalBinary()
		if err != nil {
			return inserted, apperrors.Wrap(err, "failed to marshal permission ID")
		}

		result, err := querier.ExecContext(
			ctx,
			query,
			idBytes,
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

func collectMySQLPermissions(rows *sql.Rows) ([]*domain.Permission, error) {
	permissions := make([]*domain.Permission, 0)
	for rows.Next() {
		var permission domain.Permission
		var idBytes []byte
		err := rows.Scan(
			&idBytes,
			&permission.Module,
			&permission.Action,
			&permission.Description,
			&permission.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission")
		}

		id, err := uuid.FromBytes(idBytes)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal permission ID")
		}
		permission.ID = id
		permissions = append(permissions, &permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate permissions")
	}

	return permissions, nil
}
