package app

import (
	"fmt"

	auditHTTP "github.com/allisson/panchayath-admin/internal/audit/http"
	auditRepository "github.com/allisson/panchayath-admin/internal/audit/repository"
	auditUseCase "github.com/allisson/panchayath-admin/internal/audit/usecase"
)

// AuditLogRepository returns the audit log repository based on database driver.
func (c *Container) AuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	c.auditLogRepoInit.Do(func() {
		repo, err := c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepo"] = err
			return
		}
		c.auditLogRepo = repo
	})
	if storedErr, exists := c.initErrors["auditLogRepo"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepo, nil
}

// AuditLogUseCase returns the audit log use case.
func (c *Container) AuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	c.auditLogUCInit.Do(func() {
		useCase, err := c.initAuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogUseCase"] = err
			return
		}
		c.auditLogUC = useCase
	})
	if storedErr, exists := c.initErrors["auditLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditLogUC, nil
}

// AuditLogHandler returns the audit log HTTP handler.
func (c *Container) AuditLogHandler() (*auditHTTP.AuditLogHandler, error) {
	c.auditHandlerInit.Do(func() {
		auditLogUC, err := c.AuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogHandler"] = fmt.Errorf("failed to get audit log use case for audit log handler: %w", err)
			return
		}
		c.auditLogHandler = auditHTTP.NewAuditLogHandler(auditLogUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["auditLogHandler"]; exists {
		return nil, storedErr
	}
	return c.auditLogHandler, nil
}

// initAuditLogRepository creates the audit log repository instance.
func (c *Container) initAuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return auditRepository.NewMySQLAuditLogRepository(db), nil
	case "postgres":
		return auditRepository.NewPostgreSQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditLogUseCase creates the audit log use case.
func (c *Container) initAuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	auditLogRepo, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
	}

	return auditUseCase.NewAuditLogUseCase(auditLogRepo), nil
}
