// Package http provides HTTP middleware and handlers for the audit trail.
package http

import (
	"github.com/gin-gonic/gin"

	auditUseCase "github.com/allisson/panchayath-admin/internal/audit/usecase"
)

// OriginMiddleware stores the request's network origin in the context so that
// audit records written further down the call chain capture where a mutation
// came from. Registered globally; CLI entry points leave the origin zero.
//
// Uses c.ClientIP() which handles X-Forwarded-For, X-Real-IP and the direct
// remote address.
func OriginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auditUseCase.WithOrigin(c.Request.Context(), auditUseCase.Origin{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
