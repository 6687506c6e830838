package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	"github.com/allisson/panchayath-admin/internal/httputil"
	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
	"github.com/allisson/panchayath-admin/internal/policy"
)

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Resolves the token to its administrator via authUseCase.Authenticate()
// 3. Stores the authenticated administrator in the request context
// 4. Allows downstream handlers to access the actor via GetAdmin()
//
// Error handling:
//   - Missing/malformed Authorization header → 401 Unauthorized
//   - Unknown/expired token or inactive account → 401 Unauthorized
//     (ErrInvalidCredentials never reveals which check failed)
func AuthenticationMiddleware(
	authUseCase identityUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		admin, err := authUseCase.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithAdmin(c.Request.Context(), admin)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("admin_id", admin.ID.String()),
			slog.String("username", admin.Username))

		c.Next()
	}
}

// RequireActiveMiddleware rejects requests whose authenticated administrator
// is not active. It covers read surfaces whose use cases take no actor, such
// as the audit log and reporting endpoints. MUST be used after
// AuthenticationMiddleware.
func RequireActiveMiddleware(evaluator *policy.Evaluator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := GetAdmin(c.Request.Context())
		if !ok {
			logger.Error("policy middleware: no authenticated admin in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := evaluator.AuthorizeRead(admin); err != nil {
			logger.Debug("policy check failed",
				slog.String("admin_id", admin.ID.String()),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
