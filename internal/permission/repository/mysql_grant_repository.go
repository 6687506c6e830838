package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/permission/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// MySQLGrantRepository implements Grant persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLGrantRepository struct {
	db *sql.DB
}

// NewMySQLGrantRepository creates a new MySQLGrantRepository.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}

// Create inserts a grant. Inserting an existing (admin, permission) pair is a
// no-op; the return value reports whether a row was actually inserted.
func (r *MySQLGrantRepository) Create(ctx context.Context, grant *domain.Grant) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	adminIDBytes, err := grant.AdminID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal admin ID")
	}
	permissionIDBytes, err := grant.PermissionID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal permission ID")
	}

	var grantedBy any
	if grant.GrantedBy != nil {
		grantedByBytes, err := grant.GrantedBy.MarshalBinary()
		if err != nil {
			return false, apperrors.Wrap(err, "failed to marshal granted_by ID")
		}
		grantedBy = grantedByBytes
	}

	query := `INSERT IGNORE INTO grants (admin_id, permission_id, granted_by, created_at)
			  VALUES (?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		adminIDBytes,
		permissionIDBytes,
		grantedBy,
		grant.CreatedAt,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to create grant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected > 0, nil
}

// Delete removes a single grant. Returns ErrGrantNotFound if the pair does
// not exist.
func (r *MySQLGrantRepository) Delete(ctx context.Context, adminID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	adminIDBytes, err := adminID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal admin ID")
	}
	permissionIDBytes, err := permissionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission ID")
	}

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM grants WHERE admin_id = ? AND permission_id = ?`,
		adminIDBytes,
		permissionIDBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete grant")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrGrantNotFound
	}
	return nil
}

// DeleteByAdmin removes every grant held by an administrator and returns the
// number removed. Zero is not an error.
func (r *MySQLGrantRepository) DeleteByAdmin(ctx context.Context, adminID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	adminIDBytes, err := adminID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal admin ID")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM grants WHERE admin_id = ?`, adminIDBytes)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete grants by admin")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected, nil
}
