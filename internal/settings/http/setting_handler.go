// Package http provides HTTP handlers for the settings store.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	"github.com/allisson/panchayath-admin/internal/httputil"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	identityHTTP "github.com/allisson/panchayath-admin/internal/identity/http"
	settingsDomain "github.com/allisson/panchayath-admin/internal/settings/domain"
	"github.com/allisson/panchayath-admin/internal/settings/http/dto"
	settingsUseCase "github.com/allisson/panchayath-admin/internal/settings/usecase"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// SettingHandler handles HTTP requests for application settings. Writes are
// open to any active administrator and audited by the use case.
type SettingHandler struct {
	settingUseCase settingsUseCase.SettingUseCase
	logger         *slog.Logger
}

// NewSettingHandler creates a new setting handler with required dependencies.
func NewSettingHandler(
	settingUseCase settingsUseCase.SettingUseCase,
	logger *slog.Logger,
) *SettingHandler {
	return &SettingHandler{
		settingUseCase: settingUseCase,
		logger:         logger,
	}
}

func (h *SettingHandler) actor(c *gin.Context) (*identityDomain.Admin, bool) {
	admin, ok := identityHTTP.GetAdmin(c.Request.Context())
	if !ok {
		h.logger.Error("setting handler: no authenticated admin in context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return admin, true
}

// GetHandler retrieves a setting by key.
// GET /v1/settings/:key - Open to any active administrator.
func (h *SettingHandler) GetHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("key cannot be empty"), h.logger)
		return
	}

	setting, err := h.settingUseCase.Get(c.Request.Context(), actor, key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingToResponse(setting))
}

// ListHandler retrieves all settings ordered by key.
// GET /v1/settings - Open to any active administrator.
func (h *SettingHandler) ListHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	settings, err := h.settingUseCase.List(c.Request.Context(), actor)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingsToListResponse(settings))
}

// SetHandler upserts a single setting.
// PUT /v1/settings/:key - Open to any active administrator.
// A new key is audited as create, an existing key as update.
func (h *SettingHandler) SetHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("key cannot be empty"), h.logger)
		return
	}

	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	setting, err := h.settingUseCase.Set(c.Request.Context(), actor, &settingsDomain.SetInput{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSettingToResponse(setting))
}

// BatchSetHandler applies several assignments in one transaction.
// PUT /v1/settings - Open to any active administrator.
// If any entry fails, nothing is committed and no audit record survives.
func (h *SettingHandler) BatchSetHandler(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.BatchSetSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	inputs := make([]*settingsDomain.SetInput, 0, len(req.Settings))
	for _, entry := range req.Settings {
		inputs = append(inputs, &settingsDomain.SetInput{
			Key:         entry.Key,
			Value:       entry.Value,
			Description: entry.Description,
		})
	}

	if err := h.settingUseCase.SetAll(c.Request.Context(), actor, inputs); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
