package app

import (
	"fmt"

	reportHTTP "github.com/allisson/panchayath-admin/internal/report/http"
	reportUseCase "github.com/allisson/panchayath-admin/internal/report/usecase"
)

// ReportUseCase returns the report use case. The dashboard aggregate reads
// from the admin repository, the directory use case and the audit log use
// case through narrow read-only interfaces.
func (c *Container) ReportUseCase() (reportUseCase.ReportUseCase, error) {
	c.reportUCInit.Do(func() {
		useCase, err := c.initReportUseCase()
		if err != nil {
			c.initErrors["reportUseCase"] = err
			return
		}
		c.reportUC = useCase
	})
	if storedErr, exists := c.initErrors["reportUseCase"]; exists {
		return nil, storedErr
	}
	return c.reportUC, nil
}

// ReportHandler returns the report HTTP handler.
func (c *Container) ReportHandler() (*reportHTTP.ReportHandler, error) {
	c.reportHandlerInit.Do(func() {
		reportUC, err := c.ReportUseCase()
		if err != nil {
			c.initErrors["reportHandler"] = fmt.Errorf("failed to get report use case for report handler: %w", err)
			return
		}
		c.reportHandler = reportHTTP.NewReportHandler(reportUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["reportHandler"]; exists {
		return nil, storedErr
	}
	return c.reportHandler, nil
}

// initReportUseCase creates the report use case with all its dependencies.
func (c *Container) initReportUseCase() (reportUseCase.ReportUseCase, error) {
	adminRepo, err := c.AdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin repository for report use case: %w", err)
	}

	directoryUC, err := c.DirectoryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get directory use case for report use case: %w", err)
	}

	auditLogUC, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for report use case: %w", err)
	}

	return reportUseCase.NewReportUseCase(adminRepo, directoryUC, auditLogUC), nil
}
