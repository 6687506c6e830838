package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/policy"
)

// mockAuthUseCase is a mock implementation of AuthUseCase for testing.
type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Login(
	ctx context.Context,
	username, password string,
) (*identityDomain.LoginOutput, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.LoginOutput), args.Error(1)
}

func (m *mockAuthUseCase) Authenticate(
	ctx context.Context,
	plainToken string,
) (*identityDomain.Admin, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Admin), args.Error(1)
}

func (m *mockAuthUseCase) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestLogger creates a test logger that discards output.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeAdminFixture(role identityDomain.Role) *identityDomain.Admin {
	now := time.Now().UTC()
	return &identityDomain.Admin{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  "secretary",
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_StoresAdminInContext", func(t *testing.T) {
		authUseCase := &mockAuthUseCase{}
		admin := activeAdminFixture(identityDomain.RoleAdmin)
		authUseCase.On("Authenticate", mock.Anything, "plain-token").Return(admin, nil).Once()

		router := gin.New()
		router.GET("/protected",
			AuthenticationMiddleware(authUseCase, createTestLogger()),
			func(c *gin.Context) {
				got, ok := GetAdmin(c.Request.Context())
				assert.True(t, ok)
				assert.Equal(t, admin.ID, got.ID)
				c.Status(http.StatusOK)
			})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer plain-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		authUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingHeader", func(t *testing.T) {
		authUseCase := &mockAuthUseCase{}

		router := gin.New()
		router.GET("/protected",
			AuthenticationMiddleware(authUseCase, createTestLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		authUseCase.AssertNotCalled(t, "Authenticate")
	})

	t.Run("Error_MalformedHeader", func(t *testing.T) {
		authUseCase := &mockAuthUseCase{}

		router := gin.New()
		router.GET("/protected",
			AuthenticationMiddleware(authUseCase, createTestLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		authUseCase := &mockAuthUseCase{}
		authUseCase.On("Authenticate", mock.Anything, "bad-token").
			Return(nil, identityDomain.ErrInvalidCredentials).Once()

		router := gin.New()
		router.GET("/protected",
			AuthenticationMiddleware(authUseCase, createTestLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success_CaseInsensitiveBearer", func(t *testing.T) {
		authUseCase := &mockAuthUseCase{}
		admin := activeAdminFixture(identityDomain.RoleLocalAdmin)
		authUseCase.On("Authenticate", mock.Anything, "plain-token").Return(admin, nil).Once()

		router := gin.New()
		router.GET("/protected",
			AuthenticationMiddleware(authUseCase, createTestLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer plain-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireActiveMiddleware(t *testing.T) {
	evaluator := policy.NewEvaluator(nil)

	t.Run("Success_ActiveAdmin", func(t *testing.T) {
		admin := activeAdminFixture(identityDomain.RoleLocalAdmin)

		router := gin.New()
		router.GET("/reports",
			func(c *gin.Context) {
				c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), admin))
			},
			RequireActiveMiddleware(evaluator, createTestLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_InactiveAdmin", func(t *testing.T) {
		admin := activeAdminFixture(identityDomain.RoleAdmin)
		admin.IsActive = false

		router := gin.New()
		router.GET("/reports",
			func(c *gin.Context) {
				c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), admin))
			},
			RequireActiveMiddleware(evaluator, createTestLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_NoAdminInContext", func(t *testing.T) {
		router := gin.New()
		router.GET("/reports",
			RequireActiveMiddleware(evaluator, createTestLogger()),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetAdmin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		admin := activeAdminFixture(identityDomain.RoleSuperAdmin)
		ctx := WithAdmin(context.Background(), admin)

		got, ok := GetAdmin(ctx)

		assert.True(t, ok)
		assert.Equal(t, admin, got)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		got, ok := GetAdmin(context.Background())

		assert.False(t, ok)
		assert.Nil(t, got)
	})
}
