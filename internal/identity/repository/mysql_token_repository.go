package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/identity/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// MySQLTokenRepository implements Token persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository creates a new MySQLTokenRepository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts a new authentication token.
func (r *MySQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token ID")
	}

	adminIDBytes, err := token.AdminID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal admin ID")
	}

	query := `INSERT INTO tokens (id, admin_id, token_hash, expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		adminIDBytes,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByTokenHash retrieves a token by its SHA-256 hash.
func (r *MySQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*domain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, admin_id, token_hash, expires_at, created_at
			  FROM tokens WHERE token_hash = ?`

	var token domain.Token
	var idBytes, adminIDBytes []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&idBytes,
		&adminIDBytes,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token")
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token ID")
	}
	adminID, err := uuid.FromBytes(adminIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal admin ID")
	}

	token.ID = id
	token.AdminID = adminID
	return &token, nil
}

// DeleteExpired removes tokens whose expiration is at or before the given time.
func (r *MySQLTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected, nil
}
