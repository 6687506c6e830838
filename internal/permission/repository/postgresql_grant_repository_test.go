package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	"github.com/allisson/panchayath-admin/internal/permission/domain"
)

func newGrantFixture() *domain.Grant {
	grantedBy := uuid.Must(uuid.NewV7())
	return &domain.Grant{
		AdminID:      uuid.Must(uuid.NewV7()),
		PermissionID: uuid.Must(uuid.NewV7()),
		GrantedBy:    &grantedBy,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestPostgreSQLGrantRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLGrantRepository(db)
	grant := newGrantFixture()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (admin_id, permission_id) DO NOTHING")).
		WithArgs(grant.AdminID, grant.PermissionID, grant.GrantedBy, grant.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.Create(context.Background(), grant)
	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLGrantRepository_Create_RepeatIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLGrantRepository(db)
	grant := newGrantFixture()

	// The conflict clause swallows the duplicate; zero rows means already held.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO grants")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.Create(context.Background(), grant)
	assert.NoError(t, err)
	assert.False(t, inserted)
}

func TestPostgreSQLGrantRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLGrantRepository(db)
	adminID := uuid.Must(uuid.NewV7())
	permissionID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM grants WHERE admin_id = $1 AND permission_id = $2")).
		WithArgs(adminID, permissionID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), adminID, permissionID)
	assert.True(t, apperrors.Is(err, domain.ErrGrantNotFound))
}

func TestPostgreSQLGrantRepository_DeleteByAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLGrantRepository(db)
	adminID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM grants WHERE admin_id = $1")).
		WithArgs(adminID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteByAdmin(context.Background(), adminID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
