// Package http provides HTTP handlers for directory records. One handler
// serves every record kind; the kind rides in the URL path.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	directoryDomain "github.com/allisson/panchayath-admin/internal/directory/domain"
	"github.com/allisson/panchayath-admin/internal/directory/http/dto"
	directoryUseCase "github.com/allisson/panchayath-admin/internal/directory/usecase"
	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	"github.com/allisson/panchayath-admin/internal/httputil"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	identityHTTP "github.com/allisson/panchayath-admin/internal/identity/http"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// DirectoryHandler handles HTTP requests for panchayath, agent and management
// team records. Mutations are audited by the use case.
type DirectoryHandler struct {
	directoryUseCase directoryUseCase.DirectoryUseCase
	logger           *slog.Logger
}

// NewDirectoryHandler creates a new directory handler with required dependencies.
func NewDirectoryHandler(
	directoryUseCase directoryUseCase.DirectoryUseCase,
	logger *slog.Logger,
) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUseCase: directoryUseCase,
		logger:           logger,
	}
}

func (h *DirectoryHandler) actor(c *gin.Context) (*identityDomain.Admin, bool) {
	admin, ok := identityHTTP.GetAdmin(c.Request.Context())
	if !ok {
		h.logger.Error("directory handler: no authenticated admin in context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return admin, true
}

// parseKindParam parses the :kind path parameter. Unknown kinds are rejected
// here so the URL space stays closed.
func parseKindParam(c *gin.Context) (directoryDomain.Kind, error) {
	kind := directoryDomain.Kind(c.Param("kind"))
	if !kind.IsValid() {
		return "", fmt.Errorf(
			"invalid kind parameter: must be one of panchayaths, agents, management_teams",
		)
	}
	return kind, nil
}

func parseRecordIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id parameter: must be a UUID")
	}
	return id, nil
}

// CreateHandler creates a new directory record.
// POST /v1/directory/:kind - Open to any active administrator, audited.
func (h *DirectoryHandler) CreateHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	kind, err := parseKindParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.directoryUseCase.Create(c.Request.Context(), actor, kind, &directoryDomain.RecordInput{
		Name:       req.Name,
		Attributes: req.Attributes,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToResponse(record))
}

// GetHandler retrieves a directory record.
// GET /v1/directory/:kind/:id - Open to any active administrator.
func (h *DirectoryHandler) GetHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	kind, err := parseKindParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	id, err := parseRecordIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	record, err := h.directoryUseCase.Get(c.Request.Context(), actor, kind, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// ListHandler retrieves records of a kind ordered by name with pagination.
// GET /v1/directory/:kind?offset=0&limit=50 - Open to any active administrator.
func (h *DirectoryHandler) ListHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	kind, err := parseKindParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	records, err := h.directoryUseCase.List(c.Request.Context(), actor, kind, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

// UpdateHandler modifies a directory record's name and attributes.
// PUT /v1/directory/:kind/:id - Open to any active administrator, audited
// with before and after snapshots.
func (h *DirectoryHandler) UpdateHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	kind, err := parseKindParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	id, err := parseRecordIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.directoryUseCase.Update(c.Request.Context(), actor, kind, id, &directoryDomain.RecordInput{
		Name:       req.Name,
		Attributes: req.Attributes,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// DeleteHandler removes a directory record.
// DELETE /v1/directory/:kind/:id - Open to any active administrator, audited
// with the before snapshot.
func (h *DirectoryHandler) DeleteHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	kind, err := parseKindParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	id, err := parseRecordIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.directoryUseCase.Delete(c.Request.Context(), actor, kind, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
