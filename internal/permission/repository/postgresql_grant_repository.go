package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/permission/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// PostgreSQLGrantRepository implements Grant persistence for PostgreSQL.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// NewPostgreSQLGrantRepository creates a new PostgreSQLGrantRepository.
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{db: db}
}

// Create inserts a grant. Inserting an existing (admin, permission) pair is a
// no-op; the return value reports whether a row was actually inserted.
func (r *PostgreSQLGrantRepository) Create(ctx context.Context, grant *domain.Grant) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO grants (admin_id, permission_id, granted_by, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (admin_id, permission_id) DO NOTHING`

	result, err := querier.ExecContext(
		ctx,
		query,
		grant.AdminID,
		grant.PermissionID,
		grant.GrantedBy,
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
func (r *PostgreSQLGrantRepository) Delete(
	ctx context.Context,
	adminID, permissionID uuid.UUID,
) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM grants WHERE admin_id = $1 AND permission_id = $2`,
		adminID,
		permissionID,
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
func (r *PostgreSQLGrantRepository) DeleteByAdmin(
	ctx context.Context,
	adminID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM grants WHERE admin_id = $1`, adminID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete grants by admin")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected, nil
}
