package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	"github.com/allisson/panchayath-admin/internal/settings/domain"
)

func newSettingFixture() *domain.Setting {
	updatedBy := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()
	return &domain.Setting{
		ID:          uuid.Must(uuid.NewV7()),
		Key:         "office_hours",
		Value:       map[string]any{"open": "09:00"},
		Description: "Front office hours",
		UpdatedBy:   &updatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func settingColumns() []string {
	return []string{"id", "key", "value", "description", "updated_by", "created_at", "updated_at"}
}

func TestPostgreSQLSettingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLSettingRepository(db)
	setting := newSettingFixture()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings")).
		WithArgs(
			setting.ID, setting.Key, []byte(`{"open":"09:00"}`), setting.Description,
			setting.UpdatedBy, setting.CreatedAt, setting.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), setting)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSettingRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLSettingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE settings")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), newSettingFixture())
	assert.True(t, apperrors.Is(err, domain.ErrSettingNotFound))
}

func TestPostgreSQLSettingRepository_GetByKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLSettingRepository(db)
	expected := newSettingFixture()

	rows := sqlmock.NewRows(settingColumns()).AddRow(
		expected.ID.String(), expected.Key, []byte(`{"open":"09:00"}`),
		expected.Description, expected.UpdatedBy.String(), expected.CreatedAt, expected.UpdatedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM settings WHERE key = $1")).
		WithArgs(expected.Key).
		WillReturnRows(rows)

	setting, err := repo.GetByKey(context.Background(), expected.Key)
	require.NoError(t, err)
	assert.Equal(t, expected.Key, setting.Key)
	assert.Equal(t, map[string]any{"open": "09:00"}, setting.Value)
	require.NotNil(t, setting.UpdatedBy)
	assert.Equal(t, *expected.UpdatedBy, *setting.UpdatedBy)
}

func TestPostgreSQLSettingRepository_GetByKey_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLSettingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM settings WHERE key = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	setting, err := repo.GetByKey(context.Background(), "missing")
	assert.Nil(t, setting)
	assert.True(t, apperrors.Is(err, domain.ErrSettingNotFound))
}

func TestPostgreSQLSettingRepository_List_OrderedByKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLSettingRepository(db)
	first := newSettingFixture()
	first.Key = "fiscal_year"
	second := newSettingFixture()

	rows := sqlmock.NewRows(settingColumns()).
		AddRow(
			first.ID.String(), first.Key, []byte(`"2026-2027"`),
			first.Description, nil, first.CreatedAt, first.UpdatedAt,
		).
		AddRow(
			second.ID.String(), second.Key, []byte(`{"open":"09:00"}`),
			second.Description, second.UpdatedBy.String(), second.CreatedAt, second.UpdatedAt,
		)

	mock.ExpectQuery(regexp.QuoteMeta("FROM settings ORDER BY key")).
		WillReturnRows(rows)

	settings, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "fiscal_year", settings[0].Key)
	assert.Equal(t, "2026-2027", settings[0].Value)
	assert.Nil(t, settings[0].UpdatedBy)
	assert.Equal(t, "office_hours", settings[1].Key)
}
