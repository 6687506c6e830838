package integration

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDTO "github.com/allisson/panchayath-admin/internal/audit/http/dto"
	directoryDTO "github.com/allisson/panchayath-admin/internal/directory/http/dto"
	"github.com/allisson/panchayath-admin/internal/policy"
	settingsDTO "github.com/allisson/panchayath-admin/internal/settings/http/dto"
)

// TestIntegration_AuditTrail verifies that every mutation through the API
// leaves an audit record with the correct actor, action, and snapshots, and
// that the trail can be filtered and exported.
func TestIntegration_AuditTrail(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, tc := range integrationDrivers() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var recordID string

			// Generate a create, an update, and a delete on one record.
			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/directory/panchayaths",
				directoryDTO.RecordRequest{Name: "Audit Target", Attributes: map[string]any{"district": "Idukki"}}, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

			var created directoryDTO.RecordResponse
			require.NoError(t, json.Unmarshal(body, &created))
			recordID = created.ID

			resp, body = ctx.makeRequest(t, http.MethodPut, "/v1/directory/panchayaths/"+recordID,
				directoryDTO.RecordRequest{Name: "Audit Target Renamed"}, true)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			resp, body = ctx.makeRequest(t, http.MethodDelete, "/v1/directory/panchayaths/"+recordID, nil, true)
			require.Equal(t, http.StatusNoContent, resp.StatusCode, string(body))

			// Also mutate a setting to have a second resource in the trail.
			resp, body = ctx.makeRequest(t, http.MethodPut, "/v1/settings/review_cycle",
				settingsDTO.SetSettingRequest{Value: "quarterly"}, true)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			// [1/5] The trail holds the mutations newest first with snapshots
			// matching each action.
			t.Run("01_SnapshotsPerAction", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet,
					"/v1/audit-logs?resource_name="+policy.ResourcePanchayaths, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response auditDTO.ListAuditLogsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response.Data, 3)

				deleteLog, updateLog, createLog := response.Data[0], response.Data[1], response.Data[2]

				assert.Equal(t, "delete", deleteLog.Action)
				assert.NotNil(t, deleteLog.OldData)
				assert.Nil(t, deleteLog.NewData)

				assert.Equal(t, "update", updateLog.Action)
				assert.NotNil(t, updateLog.OldData)
				assert.NotNil(t, updateLog.NewData)
				assert.Equal(t, "Audit Target", updateLog.OldData["name"])
				assert.Equal(t, "Audit Target Renamed", updateLog.NewData["name"])

				assert.Equal(t, "create", createLog.Action)
				assert.Nil(t, createLog.OldData)
				assert.NotNil(t, createLog.NewData)
				assert.Equal(t, "Audit Target", createLog.NewData["name"])

				for _, entry := range response.Data {
					assert.Equal(t, recordID, entry.RecordID)
					assert.Equal(t, rootUsername, entry.Username)
					require.NotNil(t, entry.AdminID)
					assert.Equal(t, ctx.rootAdmin.ID.String(), *entry.AdminID)
				}
			})

			// [2/5] The request origin is captured on each entry.
			t.Run("02_OriginCaptured", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/audit-logs", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response auditDTO.ListAuditLogsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.NotEmpty(t, response.Data)
				assert.NotEmpty(t, response.Data[0].IPAddress)
				assert.NotEmpty(t, response.Data[0].UserAgent)
			})

			// [3/5] Filtering by action and by username narrows the trail.
			t.Run("03_Filters", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/audit-logs?action=delete", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response auditDTO.ListAuditLogsResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response.Data, 1)
				assert.Equal(t, "delete", response.Data[0].Action)

				resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/audit-logs?username=nobody", nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Empty(t, response.Data)

				// A window around the test run catches the whole trail; both
				// bounds are inclusive.
				from := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
				to := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
				resp, body = ctx.makeRequest(t, http.MethodGet,
					"/v1/audit-logs?created_at_from="+from+"&created_at_to="+to, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Len(t, response.Data, 4)

				// A window that closed before the run matches nothing.
				staleTo := time.Now().UTC().Add(-30 * time.Minute).Format(time.RFC3339)
				resp, body = ctx.makeRequest(t, http.MethodGet,
					"/v1/audit-logs?created_at_from="+from+"&created_at_to="+staleTo, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Empty(t, response.Data)
			})

			// [4/5] Unknown action values are rejected.
			t.Run("04_InvalidActionFilter", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/audit-logs?action=truncate", nil, true)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})

			// [5/5] CSV export streams the full filtered trail as an attachment.
			t.Run("05_ExportCSV", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet,
					"/v1/audit-logs/export?resource_name="+policy.ResourcePanchayaths, nil, true)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
				assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
				assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

				records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
				require.NoError(t, err)
				require.Len(t, records, 4, "header plus three mutations")
				assert.Equal(t,
					[]string{"timestamp", "username", "action", "resource_name", "record_id", "ip_address"},
					records[0],
				)
				assert.Equal(t, "delete", records[1][2])
				assert.Equal(t, "create", records[3][2])
			})
		})
	}
}
