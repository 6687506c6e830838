// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/panchayath-admin/internal/config"
	"github.com/allisson/panchayath-admin/internal/database"
	"github.com/allisson/panchayath-admin/internal/http"
	"github.com/allisson/panchayath-admin/internal/metrics"
	"github.com/allisson/panchayath-admin/internal/policy"

	auditHTTP "github.com/allisson/panchayath-admin/internal/audit/http"
	auditUseCase "github.com/allisson/panchayath-admin/internal/audit/usecase"
	directoryHTTP "github.com/allisson/panchayath-admin/internal/directory/http"
	directoryUseCase "github.com/allisson/panchayath-admin/internal/directory/usecase"
	identityHTTP "github.com/allisson/panchayath-admin/internal/identity/http"
	identityService "github.com/allisson/panchayath-admin/internal/identity/service"
	identityUseCase "github.com/allisson/panchayath-admin/internal/identity/usecase"
	permissionHTTP "github.com/allisson/panchayath-admin/internal/permission/http"
	permissionUseCase "github.com/allisson/panchayath-admin/internal/permission/usecase"
	reportHTTP "github.com/allisson/panchayath-admin/internal/report/http"
	reportUseCase "github.com/allisson/panchayath-admin/internal/report/usecase"
	settingsHTTP "github.com/allisson/panchayath-admin/internal/settings/http"
	settingsUseCase "github.com/allisson/panchayath-admin/internal/settings/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. It follows the lazy initialization pattern: components are created on
// first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	evaluator       *policy.Evaluator
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	passwordService identityService.PasswordService
	tokenService    identityService.TokenService

	// Repositories
	adminRepo      identityUseCase.AdminRepository
	tokenRepo      identityUseCase.TokenRepository
	permissionRepo permissionUseCase.PermissionRepository
	grantRepo      permissionUseCase.GrantRepository
	settingRepo    settingsUseCase.SettingRepository
	auditLogRepo   auditUseCase.AuditLogRepository
	directoryRepo  directoryUseCase.DirectoryRepository

	// Use Cases
	adminUC      identityUseCase.AdminUseCase
	authUC       identityUseCase.AuthUseCase
	permissionUC permissionUseCase.PermissionUseCase
	settingUC    settingsUseCase.SettingUseCase
	auditLogUC   auditUseCase.AuditLogUseCase
	directoryUC  directoryUseCase.DirectoryUseCase
	reportUC     reportUseCase.ReportUseCase

	// Handlers
	authHandler       *identityHTTP.AuthHandler
	adminHandler      *identityHTTP.AdminHandler
	permissionHandler *permissionHTTP.PermissionHandler
	settingHandler    *settingsHTTP.SettingHandler
	auditLogHandler   *auditHTTP.AuditLogHandler
	directoryHandler  *directoryHTTP.DirectoryHandler
	reportHandler     *reportHTTP.ReportHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	evaluatorInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	passwordServiceInit sync.Once
	tokenServiceInit    sync.Once
	adminRepoInit       sync.Once
	tokenRepoInit       sync.Once
	permissionRepoInit  sync.Once
	grantRepoInit       sync.Once
	settingRepoInit     sync.Once
	auditLogRepoInit    sync.Once
	directoryRepoInit   sync.Once
	adminUCInit         sync.Once
	authUCInit          sync.Once
	permissionUCInit    sync.Once
	settingUCInit       sync.Once
	auditLogUCInit      sync.Once
	directoryUCInit     sync.Once
	reportUCInit        sync.Once
	authHandlerInit     sync.Once
	adminHandlerInit    sync.Once
	permHandlerInit     sync.Once
	settingHandlerInit  sync.Once
	auditHandlerInit    sync.Once
	dirHandlerInit      sync.Once
	reportHandlerInit   sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		var err error
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		var err error
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// Evaluator returns the policy evaluator.
func (c *Container) Evaluator() *policy.Evaluator {
	c.evaluatorInit.Do(func() {
		c.evaluator = policy.NewEvaluator(c.config.SuperAdminResources())
	})
	return c.evaluator
}

// MetricsProvider returns the OpenTelemetry metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
			return
		}

		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}

		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
			return
		}

		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	authUC, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for http server: %w", err)
	}

	authHandler, err := c.AuthHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth handler for http server: %w", err)
	}

	adminHandler, err := c.AdminHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin handler for http server: %w", err)
	}

	permissionHandler, err := c.PermissionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission handler for http server: %w", err)
	}

	settingHandler, err := c.SettingHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting handler for http server: %w", err)
	}

	auditLogHandler, err := c.AuditLogHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log handler for http server: %w", err)
	}

	directoryHandler, err := c.DirectoryHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get directory handler for http server: %w", err)
	}

	reportHandler, err := c.ReportHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get report handler for http server: %w", err)
	}

	routerConfig := http.RouterConfig{
		AuthUseCase:           authUC,
		Evaluator:             c.Evaluator(),
		AuthHandler:           authHandler,
		AdminHandler:          adminHandler,
		PermissionHandler:     permissionHandler,
		SettingHandler:        settingHandler,
		AuditLogHandler:       auditLogHandler,
		DirectoryHandler:      directoryHandler,
		ReportHandler:         reportHandler,
		CORSEnabled:           c.config.CORSEnabled,
		CORSAllowOrigins:      c.config.CORSAllowOrigins,
		LoginRateLimitEnabled: c.config.LoginRateLimitEnabled,
		LoginRateLimitRPS:     c.config.LoginRateLimitRequestsPerSec,
		LoginRateLimitBurst:   c.config.LoginRateLimitBurst,
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		routerConfig.MetricsMiddleware = metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(routerConfig)

	return server, nil
}
