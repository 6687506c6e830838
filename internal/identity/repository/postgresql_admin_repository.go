// Package repository implements data persistence for administrator identities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/identity/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// PostgreSQLAdminRepository implements Admin persistence for PostgreSQL.
type PostgreSQLAdminRepository struct {
	db *sql.DB
}

// NewPostgreSQLAdminRepository creates a new PostgreSQLAdminRepository.
func NewPostgreSQLAdminRepository(db *sql.DB) *PostgreSQLAdminRepository {
	return &PostgreSQLAdminRepository{db: db}
}

// Create inserts a new administrator.
func (r *PostgreSQLAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO admins (id, username, email, password, role, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		admin.ID,
		admin.Username,
		admin.Email,
		admin.Password,
		string(admin.Role),
		admin.IsActive,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create admin")
	}
	return nil
}

// Update modifies an existing administrator's mutable fields.
func (r *PostgreSQLAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE admins
			  SET email = $1,
				  password = $2,
				  role = $3,
				  is_active = $4,
				  updated_at = $5
			  WHERE id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		admin.Email,
		admin.Password,
		string(admin.Role),
		admin.IsActive,
		admin.UpdatedAt,
		admin.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update admin")
	}

	return requireRowAffected(result, domain.ErrAdminNotFound)
}

// Get retrieves an administrator by ID.
func (r *PostgreSQLAdminRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM admins WHERE id = $1`

	return scanPostgreSQLAdmin(querier.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves an administrator by unique username.
func (r *PostgreSQLAdminRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.Admin, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM admins WHERE username = $1`

	return scanPostgreSQLAdmin(querier.QueryRowContext(ctx, query, username))
}

// List retrieves administrators ordered by username with pagination.
func (r *PostgreSQLAdminRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Admin, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM admins ORDER BY username LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list admins")
	}
	defer func() {
		_ = rows.Close()
	}()

	admins := make([]*domain.Admin, 0)
	for rows.Next() {
		var admin domain.Admin
		var role string
		err := rows.Scan(
			&admin.ID,
			&admin.Username,
			&admin.Email,
			&admin.Password,
			&role,
			&admin.IsActive,
			&admin.LastLoginAt,
			&admin.CreatedAt,
			&admin.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan admin")
		}
		admin.Role = domain.Role(role)
		admins = append(admins, &admin)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate admins")
	}

	return admins, nil
}

// Delete removes an administrator. Grants cascade at the database level.
func (r *PostgreSQLAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete admin")
	}

	return requireRowAffected(result, domain.ErrAdminNotFound)
}

// UpdateLastLogin records a successful authentication timestamp.
func (r *PostgreSQLAdminRepository) UpdateLastLogin(
	ctx context.Context,
	id uuid.UUID,
	lastLoginAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE admins SET last_login_at = $1 WHERE id = $2`,
		lastLoginAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}

	return requireRowAffected(result, domain.ErrAdminNotFound)
}

// Count returns the total number of administrators.
func (r *PostgreSQLAdminRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count admins")
	}
	return count, nil
}

// scanPostgreSQLAdmin scans a single admin row.
func scanPostgreSQLAdmin(row *sql.Row) (*domain.Admin, error) {
	var admin domain.Admin
	var role string

	err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.Email,
		&admin.Password,
		&role,
		&admin.IsActive,
		&admin.LastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get admin")
	}

	admin.Role = domain.Role(role)
	return &admin, nil
}

// requireRowAffected maps zero affected rows to the given not-found error.
func requireRowAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
