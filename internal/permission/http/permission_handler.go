// Package http provides HTTP handlers for the permission registry.
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
	identityHTTP "github.com/allisson/panchayath-admin/internal/identity/http"
	"github.com/allisson/panchayath-admin/internal/permission/http/dto"
	permissionUseCase "github.com/allisson/panchayath-admin/internal/permission/usecase"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// PermissionHandler handles HTTP requests for the permission catalog and for
// administrator grants. Grant mutations are restricted to super admins by the
// use case.
type PermissionHandler struct {
	permissionUseCase permissionUseCase.PermissionUseCase
	logger            *slog.Logger
}

// NewPermissionHandler creates a new permission handler with required dependencies.
func NewPermissionHandler(
	permissionUseCase permissionUseCase.PermissionUseCase,
	logger *slog.Logger,
) *PermissionHandler {
	return &PermissionHandler{
		permissionUseCase: permissionUseCase,
		logger:            logger,
	}
}

func (h *PermissionHandler) actor(c *gin.Context) (*identityDomain.Admin, bool) {
	admin, ok := identityHTTP.GetAdmin(c.Request.Context())
	if !ok {
		h.logger.Error("permission handler: no authenticated admin in context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return admin, true
}

func parseAdminIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id parameter: must be a UUID")
	}
	return id, nil
}

// ListHandler retrieves the permission catalog grouped by module.
// GET /v1/permissions - Open to any active administrator.
func (h *PermissionHandler) ListHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	permissions, err := h.permissionUseCase.List(c.Request.Context(), actor)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPermissionsToGroupedResponse(permissions))
}

// ListGrantsHandler retrieves the permissions granted to an administrator.
// GET /v1/admins/:id/grants - Restricted to super admins.
func (h *PermissionHandler) ListGrantsHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	adminID, err := parseAdminIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permissions, err := h.permissionUseCase.ListByAdmin(c.Request.Context(), actor, adminID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPermissionsToGrantsResponse(permissions))
}

// ReplaceGrantsHandler atomically swaps an administrator's grants for the
// submitted set.
// PUT /v1/admins/:id/grants - Restricted to super admins.
// Either the full new set becomes visible or nothing changes.
func (h *PermissionHandler) ReplaceGrantsHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	adminID, err := parseAdminIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ReplaceGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	permissionIDs := make([]uuid.UUID, 0, len(req.PermissionIDs))
	for _, raw := range req.PermissionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.HandleValidationErrorGin(
				c,
				fmt.Errorf("invalid permission id %q: must be a UUID", raw),
				h.logger,
			)
			return
		}
		permissionIDs = append(permissionIDs, id)
	}

	if err := h.permissionUseCase.Replace(c.Request.Context(), actor, adminID, permissionIDs); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GrantHandler attaches a single permission to an administrator.
// POST /v1/admins/:id/grants - Restricted to super admins.
// Idempotent: granting an already-held permission returns 204 without effect.
func (h *PermissionHandler) GrantHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	adminID, err := parseAdminIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	permissionID, err := uuid.Parse(req.PermissionID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid permission_id: must be a UUID"), h.logger)
		return
	}

	if err := h.permissionUseCase.Grant(c.Request.Context(), actor, adminID, permissionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RevokeHandler removes a single grant.
// DELETE /v1/admins/:id/grants/:permission_id - Restricted to super admins.
// Returns 404 if the administrator does not hold the permission.
func (h *PermissionHandler) RevokeHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	adminID, err := parseAdminIDParam(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	permissionID, err := uuid.Parse(c.Param("permission_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid permission_id parameter: must be a UUID"), h.logger)
		return
	}

	if err := h.permissionUseCase.Revoke(c.Request.Context(), actor, adminID, permissionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
