package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	"github.com/allisson/panchayath-admin/internal/audit/http/dto"
	auditUseCase "github.com/allisson/panchayath-admin/internal/audit/usecase"
	"github.com/allisson/panchayath-admin/internal/httputil"
)

// AuditLogHandler handles HTTP requests for audit log queries and export.
// The audit surface is read only; records are written by the mutating use
// cases. Active-admin access is enforced by route middleware.
type AuditLogHandler struct {
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// parseFilter builds a ListFilter from the request query parameters.
func parseFilter(c *gin.Context) (auditDomain.ListFilter, error) {
	var filter auditDomain.ListFilter

	if actionStr := c.Query("action"); actionStr != "" {
		action := auditDomain.Action(actionStr)
		if !action.IsValid() {
			return filter, fmt.Errorf("invalid action parameter: must be create, update or delete")
		}
		filter.Action = action
	}

	filter.ResourceName = c.Query("resource_name")
	filter.Username = c.Query("username")
	filter.Search = c.Query("search")

	createdAtFrom, err := httputil.ParseTimeQuery(c, "created_at_from")
	if err != nil {
		return filter, err
	}
	filter.CreatedAtFrom = createdAtFrom

	createdAtTo, err := httputil.ParseTimeQuery(c, "created_at_to")
	if err != nil {
		return filter, err
	}
	filter.CreatedAtTo = createdAtTo

	if filter.CreatedAtFrom != nil && filter.CreatedAtTo != nil &&
		filter.CreatedAtFrom.After(*filter.CreatedAtTo) {
		return filter, fmt.Errorf("created_at_from must be before or equal to created_at_to")
	}

	return filter, nil
}

// ListHandler retrieves audit logs with pagination and optional filtering.
// GET /v1/audit-logs?offset=0&limit=50&action=create&resource_name=admins&
// username=clerk&search=nemom&created_at_from=...&created_at_to=...
// Returns 200 OK with records ordered newest first. Timestamp bounds are
// RFC3339 and inclusive on both ends.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	auditLogs, err := h.auditLogUseCase.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(auditLogs))
}

// ExportHandler streams audit logs matching the filter as a CSV attachment.
// GET /v1/audit-logs/export - Same filter parameters as ListHandler, no
// pagination; the full matching set is exported.
func (h *AuditLogHandler) ExportHandler(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filename := fmt.Sprintf("audit-logs-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.auditLogUseCase.ExportCSV(c.Request.Context(), filter, c.Writer); err != nil {
		// Headers may already be written; log instead of switching to a JSON error.
		h.logger.Error("audit log export failed", slog.String("error", err.Error()))
		c.Abort()
		return
	}

	c.Status(http.StatusOK)
}
