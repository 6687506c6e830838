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

// MySQLAdminRepository implements Admin persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLAdminRepository struct {
	db *sql.DB
}

// NewMySQLAdminRepository creates a new MySQLAdminRepository.
func NewMySQLAdminRepository(db *sql.DB) *MySQLAdminRepository {
	return &MySQLAdminRepository{db: db}
}

// Create inserts a new administrator.
func (r *MySQLAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := admin.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal admin ID")
	}

	query := `INSERT INTO admins (id, username, email, password, role, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		admin.Username,
		admin.Email,
		admin.Password,
		string(admin.Role),
		admin.IsActive,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create admin")
	}
	return nil
}

// Update modifies an existing administrator's mutable fields.
func (r *MySQLAdminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := admin.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal admin ID")
	}

	query := `UPDATE admins
			  SET email = ?,
				  password = ?,
				  role = ?,
				  is_active = ?,
				  updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		admin.Email,
		admin.Password,
		string(admin.Role),
		admin.IsActive,
		admin.UpdatedAt,
		idBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update admin")
	}

	return requireRowAffected(result, domain.ErrAdminNotFound)
}

// Get retrieves an administrator by ID.
func (r *MySQLAdminRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal admin ID")
	}

	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM admins WHERE id = ?`

	return scanMySQLAdmin(querier.QueryRowContext(ctx, query, idBytes))
}

// GetByUsername retrieves an administrator by unique username.
func (r *MySQLAdminRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.Admin, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM admins WHERE username = ?`

	return scanMySQLAdmin(querier.QueryRowContext(ctx, query, username))
}

// List retrieves administrators ordered by username with pagination.
func (r *MySQLAdminRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Admin, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at
			  FROM admins ORDER BY username LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list admins")
	}
	defer func() {
		_ = rows.Close()
	}()

	admins := make([]*domain.Admin, 0)
	for rows.Next() {
		admin, err := scanMySQLAdminRow(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate admins")
	}

	return admins, nil
}

// Delete removes an administrator. Grants cascade at the database level.
func (r *MySQLAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal admin ID")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete admin")
	}

	return requireRowAffected(result, domain.ErrAdminNotFound)
}

// UpdateLastLogin records a successful authentication timestamp.
func (r *MySQLAdminRepository) UpdateLastLogin(
	ctx context.Context,
	id uuid.UUID,
	lastLoginAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal admin ID")
	}

	result, err := querier.ExecContext(
		ctx,
		`UPDATE admins SET last_login_at = ? WHERE id = ?`,
		lastLoginAt,
		idBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}

	return requireRowAffected(result, domain.ErrAdminNotFound)
}

// Count returns the total number of administrators.
func (r *MySQLAdminRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count admins")
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLAdminFields(scanner rowScanner) (*domain.Admin, error) {
	var admin domain.Admin
	var idBytes []byte
	var role string

	err := scanner.Scan(
		&idBytes,
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
		return nil, err
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal admin ID")
	}

	admin.ID = id
	admin.Role = domain.Role(role)
	return &admin, nil
}

func scanMySQLAdmin(row *sql.Row) (*domain.Admin, error) {
	admin, err := scanMySQLAdminFields(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get admin")
	}
	return admin, nil
}

func scanMySQLAdminRow(rows *sql.Rows) (*domain.Admin, error) {
	admin, err := scanMySQLAdminFields(rows)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan admin")
	}
	return admin, nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry violation.
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
