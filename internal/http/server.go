// Package http provides the HTTP API server and its routing.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/allisson/panchayath-admin/internal/audit/http"
	directoryHTTP "github.com/allisson/panchayath-admin/internal/directory/http"
	identityHTTP "github.com/allisson/panchayath-admin/internal/identity/http"
	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
	permissionHTTP "github.com/allisson/panchayath-admin/internal/permission/http"
	"github.com/allisson/panchayath-admin/internal/policy"
	reportHTTP "github.com/allisson/panchayath-admin/internal/report/http"
	settingsHTTP "github.com/allisson/panchayath-admin/internal/settings/http"
)

// Server represents the HTTP API server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database handle is used only by
// the readiness probe; routes are registered separately via SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware options used to build the
// API routes.
type RouterConfig struct {
	AuthUseCase       identityUseCase.AuthUseCase
	Evaluator         *policy.Evaluator
	AuthHandler       *identityHTTP.AuthHandler
	AdminHandler      *identityHTTP.AdminHandler
	PermissionHandler *permissionHTTP.PermissionHandler
	SettingHandler    *settingsHTTP.SettingHandler
	AuditLogHandler   *auditHTTP.AuditLogHandler
	DirectoryHandler  *directoryHTTP.DirectoryHandler
	ReportHandler     *reportHTTP.ReportHandler

	CORSEnabled      bool
	CORSAllowOrigins string

	LoginRateLimitEnabled bool
	LoginRateLimitRPS     float64
	LoginRateLimitBurst   int

	// MetricsMiddleware records per-request HTTP metrics when non-nil.
	MetricsMiddleware gin.HandlerFunc
}

// SetupRouter builds the Gin router and registers all API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	// Capture request origin for audit trails before any handler runs.
	router.Use(auditHTTP.OriginMiddleware())

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	login := v1.Group("/auth")
	if cfg.LoginRateLimitEnabled {
		login.Use(identityHTTP.LoginRateLimitMiddleware(
			cfg.LoginRateLimitRPS,
			cfg.LoginRateLimitBurst,
			s.logger,
		))
	}
	login.POST("/login", cfg.AuthHandler.LoginHandler)

	authenticated := v1.Group("")
	authenticated.Use(identityHTTP.AuthenticationMiddleware(cfg.AuthUseCase, s.logger))

	admins := authenticated.Group("/admins")
	admins.POST("", cfg.AdminHandler.CreateHandler)
	admins.GET("", cfg.AdminHandler.ListHandler)
	admins.GET("/:id", cfg.AdminHandler.GetHandler)
	admins.PUT("/:id", cfg.AdminHandler.UpdateHandler)
	admins.DELETE("/:id", cfg.AdminHandler.DeleteHandler)
	admins.PUT("/:id/active", cfg.AdminHandler.SetActiveHandler)
	admins.PUT("/:id/password", cfg.AdminHandler.ChangePasswordHandler)
	admins.GET("/:id/grants", cfg.PermissionHandler.ListGrantsHandler)
	admins.PUT("/:id/grants", cfg.PermissionHandler.ReplaceGrantsHandler)
	admins.POST("/:id/grants", cfg.PermissionHandler.GrantHandler)
	admins.DELETE("/:id/grants/:permission_id", cfg.PermissionHandler.RevokeHandler)

	authenticated.GET("/permissions", cfg.PermissionHandler.ListHandler)

	settings := authenticated.Group("/settings")
	settings.GET("", cfg.SettingHandler.ListHandler)
	settings.PUT("", cfg.SettingHandler.BatchSetHandler)
	settings.GET("/:key", cfg.SettingHandler.GetHandler)
	settings.PUT("/:key", cfg.SettingHandler.SetHandler)

	directory := authenticated.Group("/directory/:kind")
	directory.POST("", cfg.DirectoryHandler.CreateHandler)
	directory.GET("", cfg.DirectoryHandler.ListHandler)
	directory.GET("/:id", cfg.DirectoryHandler.GetHandler)
	directory.PUT("/:id", cfg.DirectoryHandler.UpdateHandler)
	directory.DELETE("/:id", cfg.DirectoryHandler.DeleteHandler)

	// Audit log and report use cases take no actor, so active-account
	// enforcement happens at the route level.
	auditLogs := authenticated.Group("/audit-logs")
	auditLogs.Use(identityHTTP.RequireActiveMiddleware(cfg.Evaluator, s.logger))
	auditLogs.GET("", cfg.AuditLogHandler.ListHandler)
	auditLogs.GET("/export", cfg.AuditLogHandler.ExportHandler)

	reports := authenticated.Group("/reports")
	reports.Use(identityHTTP.RequireActiveMiddleware(cfg.Evaluator, s.logger))
	reports.GET("/summary", cfg.ReportHandler.SummaryHandler)

	s.router = router
}

// GetHandler returns the configured router. Nil before SetupRouter is called.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
