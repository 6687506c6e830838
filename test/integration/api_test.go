// Package integration provides end-to-end integration tests for the
// administration API. Tests all endpoints against both PostgreSQL and MySQL.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/panchayath-admin/internal/app"
	auditDTO "github.com/allisson/panchayath-admin/internal/audit/http/dto"
	"github.com/allisson/panchayath-admin/internal/config"
	directoryDTO "github.com/allisson/panchayath-admin/internal/directory/http/dto"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	identityDTO "github.com/allisson/panchayath-admin/internal/identity/http/dto"
	permissionDTO "github.com/allisson/panchayath-admin/internal/permission/http/dto"
	reportHTTP "github.com/allisson/panchayath-admin/internal/report/http"
	settingsDTO "github.com/allisson/panchayath-admin/internal/settings/http/dto"
	"github.com/allisson/panchayath-admin/internal/testutil"
)

const (
	rootUsername = "root"
	rootPassword = "Integration-Test-Passw0rd!"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	rootAdmin *identityDomain.Admin
	rootToken string
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	useAuth bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if useAuth {
		req.Header.Set("Authorization", "Bearer "+ctx.rootToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest initializes all components for integration testing.
// A root super admin is seeded directly through the repository, then logged in
// through the API so the rest of the suite exercises real request auth.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		AuthTokenExpiration:  time.Hour,
		SettingsCacheSize:    128,
	}

	container := app.NewContainer(cfg)

	// Install the builtin permission catalog.
	permissionUseCase, err := container.PermissionUseCase()
	require.NoError(t, err, "failed to get permission use case")

	_, err = permissionUseCase.SeedBuiltin(context.Background())
	require.NoError(t, err, "failed to seed permissions")

	// Bootstrap the root super admin with a real password hash so the login
	// endpoint can verify it.
	adminRepo, err := container.AdminRepository()
	require.NoError(t, err, "failed to get admin repository")

	hashedPassword, err := container.PasswordService().HashPassword(rootPassword)
	require.NoError(t, err, "failed to hash root password")

	now := time.Now().UTC()
	rootAdmin := &identityDomain.Admin{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  rootUsername,
		Email:     "root@example.com",
		Password:  hashedPassword,
		Role:      identityDomain.RoleSuperAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, adminRepo.Create(context.Background(), rootAdmin), "failed to create root admin")

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	ctx := &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		rootAdmin: rootAdmin,
		dbDriver:  dbDriver,
	}

	// Log in through the API to obtain a bearer token.
	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login", identityDTO.LoginRequest{
		Username: rootUsername,
		Password: rootPassword,
	}, false)
	require.Equal(t, http.StatusOK, resp.StatusCode, "root login failed: %s", string(body))

	var loginResponse identityDTO.LoginResponse
	require.NoError(t, json.Unmarshal(body, &loginResponse))
	require.NotEmpty(t, loginResponse.Token)
	ctx.rootToken = loginResponse.Token

	t.Logf("Integration test setup complete for %s (admin_id=%s)", dbDriver, rootAdmin.ID)

	return ctx
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

func integrationDrivers() []struct {
	name     string
	dbDriver string
} {
	return []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}
}

// TestIntegration_Health_BasicChecks validates the health and readiness endpoints.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range integrationDrivers() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "healthy", response["status"])
			})

			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, false)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]any
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "ready", response["status"])
			})
		})
	}
}

// TestIntegration_Identity_CompleteFlow tests authentication and the full
// administrator account lifecycle, including grant management.
func TestIntegration_Identity_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range integrationDrivers() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var (
				newAdminID     uuid.UUID
				permissionID   string
				isActiveTrue   = true
				newAdminLogin  = "district.clerk"
				newAdminPasswd = "Clerk-Passw0rd-2024!"
			)

			// [1/10] Unauthenticated request is rejected.
			t.Run("01_RejectMissingToken", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/admins", nil, false)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			// [2/10] Create a new administrator.
			t.Run("02_CreateAdmin", func(t *testing.T) {
				requestBody := identityDTO.CreateAdminRequest{
					Username: newAdminLogin,
					Email:    "clerk@example.com",
					Password: newAdminPasswd,
					Role:     string(identityDomain.RoleAdmin),
					IsActive: &isActiveTrue,
				}

				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/admins", requestBody, true)
				assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var response identityDTO.AdminResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, newAdminLogin, response.Username)
				assert.Equal(t, string(identityDomain.RoleAdmin), response.Role)
				assert.True(t, response.IsActive)

				parsedID, err := uuid.Parse(response.ID)
				require.NoError(t, err)
				newAdminID = parsedID
			})

			// [3/10] Get the created administrator.
			t.Run("03_GetAdmin", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/admins/"+newAdminID.String(), nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response identityDTO.AdminResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, newAdminID.String(), response.ID)
				assert.Equal(t, "clerk@example.com", response.Email)
			})

			// [4/10] List administrators: root plus the new account.
			t.Run("04_ListAdmins", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/admins", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response identityDTO.ListAdminsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.GreaterOrEqual(t, len(response.Data), 2)
			})

			// [5/10] Update the administrator's email and role.
			t.Run("05_UpdateAdmin", func(t *testing.T) {
				requestBody := identityDTO.UpdateAdminRequest{
					Email:    "clerk.updated@example.com",
					Role:     string(identityDomain.RoleLocalAdmin),
					IsActive: true,
				}

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/admins/"+newAdminID.String(), requestBody, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response identityDTO.AdminResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "clerk.updated@example.com", response.Email)
				assert.Equal(t, string(identityDomain.RoleLocalAdmin), response.Role)
			})

			// [6/10] Grant a permission to the administrator.
			t.Run("06_GrantPermission", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/permissions", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var listResponse permissionDTO.ListPermissionsResponse
				require.NoError(t, json.Unmarshal(body, &listResponse))
				require.NotEmpty(t, listResponse.Data, "builtin catalog should be seeded")
				require.NotEmpty(t, listResponse.Data[0].Permissions)
				permissionID = listResponse.Data[0].Permissions[0].ID

				grantBody := map[string]string{"permission_id": permissionID}
				resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/admins/"+newAdminID.String()+"/grants", grantBody, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))
			})

			// [7/10] List the administrator's grants.
			t.Run("07_ListGrants", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/admins/"+newAdminID.String()+"/grants", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response permissionDTO.ListGrantsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response.Data, 1)
				assert.Equal(t, permissionID, response.Data[0].ID)
			})

			// [8/10] Revoke the grant.
			t.Run("08_RevokeGrant", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t,
					http.MethodDelete,
					"/v1/admins/"+newAdminID.String()+"/grants/"+permissionID,
					nil,
					true,
				)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))
			})

			// [9/10] Deactivate the administrator.
			t.Run("09_DeactivateAdmin", func(t *testing.T) {
				inactive := false
				requestBody := identityDTO.SetActiveRequest{Active: &inactive}

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/admins/"+newAdminID.String()+"/active", requestBody, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))

				// A deactivated account cannot log in.
				loginResp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login", identityDTO.LoginRequest{
					Username: newAdminLogin,
					Password: newAdminPasswd,
				}, false)
				assert.Equal(t, http.StatusUnauthorized, loginResp.StatusCode)
			})

			// [10/10] Delete the administrator.
			t.Run("10_DeleteAdmin", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodDelete, "/v1/admins/"+newAdminID.String(), nil, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Empty(t, body)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/admins/"+newAdminID.String(), nil, true)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}

// TestIntegration_Settings_CompleteFlow tests the settings store: single and
// batch upserts, reads, and the opaque JSON value round trip.
func TestIntegration_Settings_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range integrationDrivers() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// [1/5] Upsert a single setting with a structured value.
			t.Run("01_SetSetting", func(t *testing.T) {
				requestBody := settingsDTO.SetSettingRequest{
					Value:       map[string]any{"open": "09:00", "close": "17:00"},
					Description: "Front office hours",
				}

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/settings/office_hours", requestBody, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response settingsDTO.SettingResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "office_hours", response.Key)
				require.NotNil(t, response.UpdatedBy)
				assert.Equal(t, ctx.rootAdmin.ID.String(), *response.UpdatedBy)
			})

			// [2/5] Read the setting back and verify the value round trips.
			t.Run("02_GetSetting", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/settings/office_hours", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response settingsDTO.SettingResponse
				require.NoError(t, json.Unmarshal(body, &response))

				value, ok := response.Value.(map[string]any)
				require.True(t, ok, "value should round trip as an object")
				assert.Equal(t, "09:00", value["open"])
				assert.Equal(t, "17:00", value["close"])
			})

			// [3/5] Apply a batch of settings in one request.
			t.Run("03_BatchSetSettings", func(t *testing.T) {
				requestBody := settingsDTO.BatchSetSettingsRequest{
					Settings: []settingsDTO.BatchSettingEntry{
						{Key: "fiscal_year", Value: "2026-2027"},
						{Key: "max_agents", Value: float64(25), Description: "Agent cap per panchayath"},
					},
				}

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/settings", requestBody, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))
			})

			// [4/5] List settings ordered by key.
			t.Run("04_ListSettings", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/settings", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response settingsDTO.ListSettingsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response.Data, 3)
				assert.Equal(t, "fiscal_year", response.Data[0].Key)
				assert.Equal(t, "max_agents", response.Data[1].Key)
				assert.Equal(t, "office_hours", response.Data[2].Key)
			})

			// [5/5] A key at the 255-char validation limit commits together
			// with its audit record.
			t.Run("05_LongKeySetting", func(t *testing.T) {
				longKey := strings.Repeat("k", 255)
				requestBody := settingsDTO.SetSettingRequest{Value: "long-key-value"}

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/settings/"+longKey, requestBody, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/settings/"+longKey, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var setting settingsDTO.SettingResponse
				require.NoError(t, json.Unmarshal(body, &setting))
				assert.Equal(t, longKey, setting.Key)

				resp, body = ctx.makeRequest(
					t, http.MethodGet, "/v1/audit-logs?resource_name=settings&search="+longKey[:32], nil, true,
				)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var auditLogs auditDTO.ListAuditLogsResponse
				require.NoError(t, json.Unmarshal(body, &auditLogs))
				require.NotEmpty(t, auditLogs.Data)
				assert.Equal(t, longKey, auditLogs.Data[0].RecordID)
			})
		})
	}
}

// TestIntegration_Directory_CompleteFlow tests directory record lifecycle for
// each resource kind plus kind isolation.
func TestIntegration_Directory_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range integrationDrivers() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var panchayathID string

			// [1/6] Create a record under each kind.
			t.Run("01_CreateRecords", func(t *testing.T) {
				for _, kind := range []string{"panchayaths", "agents", "management_teams"} {
					requestBody := directoryDTO.RecordRequest{
						Name:       fmt.Sprintf("Test %s", kind),
						Attributes: map[string]any{"district": "Kollam"},
					}

					resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/directory/"+kind, requestBody, true)
					assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

					var response directoryDTO.RecordResponse
					require.NoError(t, json.Unmarshal(body, &response))
					assert.Equal(t, kind, response.Kind)

					if kind == "panchayaths" {
						panchayathID = response.ID
					}
				}
			})

			// [2/6] Each kind lists only its own records.
			t.Run("02_KindIsolation", func(t *testing.T) {
				for _, kind := range []string{"panchayaths", "agents", "management_teams"} {
					resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/directory/"+kind, nil, true)
					assert.Equal(t, http.StatusOK, resp.StatusCode)

					var response directoryDTO.ListRecordsResponse
					require.NoError(t, json.Unmarshal(body, &response))
					require.Len(t, response.Data, 1)
					assert.Equal(t, kind, response.Data[0].Kind)
				}
			})

			// [3/6] Get a record by ID with its attributes.
			t.Run("03_GetRecord", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/directory/panchayaths/"+panchayathID, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response directoryDTO.RecordResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Kollam", response.Attributes["district"])
			})

			// [4/6] Update a record's name and attributes.
			t.Run("04_UpdateRecord", func(t *testing.T) {
				requestBody := directoryDTO.RecordRequest{
					Name:       "Renamed Panchayath",
					Attributes: map[string]any{"district": "Thrissur", "wards": float64(14)},
				}

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/directory/panchayaths/"+panchayathID, requestBody, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var response directoryDTO.RecordResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "Renamed Panchayath", response.Name)
				assert.Equal(t, "Thrissur", response.Attributes["district"])
			})

			// [5/6] Unknown kinds are rejected.
			t.Run("05_UnknownKind", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/directory/villages", nil, true)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			// [6/6] Delete a record.
			t.Run("06_DeleteRecord", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodDelete, "/v1/directory/panchayaths/"+panchayathID, nil, true)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Empty(t, body)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/directory/panchayaths/"+panchayathID, nil, true)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}

// TestIntegration_Reports_Summary tests the dashboard summary aggregate after
// a handful of mutations.
func TestIntegration_Reports_Summary(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range integrationDrivers() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// Create two panchayaths and one agent to aggregate over.
			for _, name := range []string{"North Panchayath", "South Panchayath"} {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/directory/panchayaths",
					directoryDTO.RecordRequest{Name: name}, true)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
			}
			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/directory/agents",
				directoryDTO.RecordRequest{Name: "Field Agent"}, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/reports/summary", nil, true)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var response reportHTTP.SummaryResponse
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, int64(1), response.AdminCount)
			assert.Equal(t, int64(2), response.PanchayathCount)
			assert.Equal(t, int64(1), response.AgentCount)
			assert.Equal(t, int64(0), response.ManagementTeamCount)
			assert.NotEmpty(t, response.RecentActivity)
			assert.LessOrEqual(t, len(response.RecentActivity), 10)

			// Most recent activity first.
			first := response.RecentActivity[0]
			assert.Equal(t, "create", first.Action)
		})
	}
}
