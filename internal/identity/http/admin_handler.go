package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	"github.com/allisson/panchayath-admin/internal/httputil"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/identity/http/dto"
	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// AdminHandler handles HTTP requests for administrator management operations.
// Policy checks happen in the use case against the authenticated actor taken
// from the request context.
type AdminHandler struct {
	adminUseCase identityUseCase.AdminUseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler with required dependencies.
func NewAdminHandler(adminUseCase identityUseCase.AdminUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// actor extracts the authenticated administrator from the request context.
func (h *AdminHandler) actor(c *gin.Context) (*identityDomain.Admin, bool) {
	admin, ok := GetAdmin(c.Request.Context())
	if !ok {
		h.logger.Error("admin handler: no authenticated admin in context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return admin, true
}

// parseIDParam parses the :id path parameter as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id parameter: must be a UUID")
	}
	return id, nil
}

// CreateHandler provisions a new administrator account.
// POST /v1/admins - Restricted to super admins.
// Returns 201 Created with the account (password hash excluded).
func (h *AdminHandler) CreateHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	admin, err := h.adminUseCase.Create(c.Request.Context(), actor, &identityDomain.CreateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     identityDomain.Role(req.Role),
		IsActive: isActive,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAdminToResponse(admin))
}

// GetHandler retrieves an administrator by ID.
// GET /v1/admins/:id - Open to any active administrator.
func (h *AdminHandler) GetHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	admin, err := h.adminUseCase.Get(c.Request.Context(), actor, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAdminToResponse(admin))
}

// ListHandler retrieves administrators ordered by username with pagination.
// GET /v1/admins?offset=0&limit=50 - Open to any active administrator.
func (h *AdminHandler) ListHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	admins, err := h.adminUseCase.List(c.Request.Context(), actor, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAdminsToListResponse(admins))
}

// UpdateHandler modifies an administrator's email, role and active flag.
// PUT /v1/admins/:id - Restricted to super admins.
func (h *AdminHandler) UpdateHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	admin, err := h.adminUseCase.Update(c.Request.Context(), actor, id, &identityDomain.UpdateAdminInput{
		Email:    req.Email,
		Role:     identityDomain.Role(req.Role),
		IsActive: req.IsActive,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAdminToResponse(admin))
}

// SetActiveHandler toggles an administrator's active flag.
// PUT /v1/admins/:id/active - Restricted to super admins.
// Deactivation takes effect on the target's next policy check.
func (h *AdminHandler) SetActiveHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.adminUseCase.SetActive(c.Request.Context(), actor, id, *req.Active); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ChangePasswordHandler replaces an administrator's credential.
// PUT /v1/admins/:id/password - Restricted to super admins.
func (h *AdminHandler) ChangePasswordHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.adminUseCase.ChangePassword(c.Request.Context(), actor, id, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler removes an administrator together with their grants.
// DELETE /v1/admins/:id - Restricted to super admins.
// Returns 204 No Content. The grant removal rides in the same transaction and
// is covered by the single account delete audit record.
func (h *AdminHandler) DeleteHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.adminUseCase.Delete(c.Request.Context(), actor, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
