package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	"github.com/allisson/panchayath-admin/internal/identity/domain"
)

func newAdminFixture() *domain.Admin {
	now := time.Now().UTC()
	return &domain.Admin{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  "collector.tvm",
		Email:     "collector@example.com",
		Password:  "argon2id-hash",
		Role:      domain.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func adminColumns() []string {
	return []string{
		"id", "username", "email", "password", "role",
		"is_active", "last_login_at", "created_at", "updated_at",
	}
}

func TestPostgreSQLAdminRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	admin := newAdminFixture()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admins")).
		WithArgs(
			admin.ID, admin.Username, admin.Email, admin.Password,
			string(admin.Role), admin.IsActive, admin.CreatedAt, admin.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), admin)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAdminRepository_Create_UsernameTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	admin := newAdminFixture()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admins")).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "admins_username_key"`))

	err = repo.Create(context.Background(), admin)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, domain.ErrUsernameTaken))
}

func TestPostgreSQLAdminRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	expected := newAdminFixture()

	rows := sqlmock.NewRows(adminColumns()).AddRow(
		expected.ID, expected.Username, expected.Email, expected.Password,
		string(expected.Role), expected.IsActive, nil, expected.CreatedAt, expected.UpdatedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, password, role, is_active, last_login_at, created_at, updated_at")).
		WithArgs(expected.ID).
		WillReturnRows(rows)

	admin, err := repo.Get(context.Background(), expected.ID)
	assert.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, expected.ID, admin.ID)
	assert.Equal(t, expected.Username, admin.Username)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Nil(t, admin.LastLoginAt)
}

func TestPostgreSQLAdminRepository_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	admin, err := repo.Get(context.Background(), id)
	assert.Nil(t, admin)
	assert.True(t, apperrors.Is(err, domain.ErrAdminNotFound))
}

func TestPostgreSQLAdminRepository_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	expected := newAdminFixture()
	lastLogin := time.Now().UTC().Add(-time.Hour)

	rows := sqlmock.NewRows(adminColumns()).AddRow(
		expected.ID, expected.Username, expected.Email, expected.Password,
		string(expected.Role), expected.IsActive, lastLogin, expected.CreatedAt, expected.UpdatedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs(expected.Username).
		WillReturnRows(rows)

	admin, err := repo.GetByUsername(context.Background(), expected.Username)
	assert.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, expected.ID, admin.ID)
	require.NotNil(t, admin.LastLoginAt)
	assert.WithinDuration(t, lastLogin, *admin.LastLoginAt, time.Second)
}

func TestPostgreSQLAdminRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	admin := newAdminFixture()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), admin)
	assert.True(t, apperrors.Is(err, domain.ErrAdminNotFound))
}

func TestPostgreSQLAdminRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	first := newAdminFixture()
	second := newAdminFixture()
	second.Username = "deputy.klm"
	second.Role = domain.RoleLocalAdmin

	rows := sqlmock.NewRows(adminColumns()).
		AddRow(
			first.ID, first.Username, first.Email, first.Password,
			string(first.Role), first.IsActive, nil, first.CreatedAt, first.UpdatedAt,
		).
		AddRow(
			second.ID, second.Username, second.Email, second.Password,
			string(second.Role), second.IsActive, nil, second.CreatedAt, second.UpdatedAt,
		)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY username LIMIT $1 OFFSET $2")).
		WithArgs(50, 0).
		WillReturnRows(rows)

	admins, err := repo.List(context.Background(), 0, 50)
	assert.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "collector.tvm", admins[0].Username)
	assert.Equal(t, domain.RoleLocalAdmin, admins[1].Role)
}

func TestPostgreSQLAdminRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM admins WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(context.Background(), id)
	assert.NoError(t, err)
}

func TestPostgreSQLAdminRepository_UpdateLastLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE admins SET last_login_at = $1 WHERE id = $2")).
		WithArgs(now, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateLastLogin(context.Background(), id, now)
	assert.NoError(t, err)
}

func TestPostgreSQLAdminRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLAdminRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM admins")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
