// Package http provides the HTTP handler for the dashboard summary.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	auditDTO "github.com/allisson/panchayath-admin/internal/audit/http/dto"
	"github.com/allisson/panchayath-admin/internal/httputil"
	reportDomain "github.com/allisson/panchayath-admin/internal/report/domain"
	reportUseCase "github.com/allisson/panchayath-admin/internal/report/usecase"
)

// SummaryResponse represents the dashboard aggregate in API responses.
type SummaryResponse struct {
	AdminCount          int64                       `json:"admin_count"`
	PanchayathCount     int64                       `json:"panchayath_count"`
	AgentCount          int64                       `json:"agent_count"`
	ManagementTeamCount int64                       `json:"management_team_count"`
	RecentActivity      []auditDTO.AuditLogResponse `json:"recent_activity"`
}

// mapSummaryToResponse converts a domain summary to an API response.
func mapSummaryToResponse(summary *reportDomain.Summary) SummaryResponse {
	recent := make([]auditDTO.AuditLogResponse, 0, len(summary.RecentActivity))
	for _, auditLog := range summary.RecentActivity {
		recent = append(recent, auditDTO.MapAuditLogToResponse(auditLog))
	}
	return SummaryResponse{
		AdminCount:          summary.AdminCount,
		PanchayathCount:     summary.PanchayathCount,
		AgentCount:          summary.AgentCount,
		ManagementTeamCount: summary.ManagementTeamCount,
		RecentActivity:      recent,
	}
}

// ReportHandler handles HTTP requests for reporting operations.
// Active-admin access is enforced by route middleware.
type ReportHandler struct {
	reportUseCase reportUseCase.ReportUseCase
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler with required dependencies.
func NewReportHandler(reportUseCase reportUseCase.ReportUseCase, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportUseCase: reportUseCase,
		logger:        logger,
	}
}

// SummaryHandler returns the dashboard aggregate: entity counts plus the ten
// most recent audit records.
// GET /v1/reports/summary
func (h *ReportHandler) SummaryHandler(c *gin.Context) {
	summary, err := h.reportUseCase.Summary(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapSummaryToResponse(summary))
}
