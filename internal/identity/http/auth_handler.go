package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/panchayath-admin/internal/httputil"
	"github.com/allisson/panchayath-admin/internal/identity/http/dto"
	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	authUseCase identityUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(authUseCase identityUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler verifies a username and password and issues an opaque API token.
// POST /v1/auth/login - Unauthenticated, rate-limited per IP.
// Returns 200 OK with the token on success, 401 on any credential failure.
// The error response never reveals whether the username, password or the
// account state was at fault.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapLoginOutputToResponse(output)
	c.JSON(http.StatusOK, response)
}
