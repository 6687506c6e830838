// Package usecase assembles the read-only dashboard summary.
package usecase

import (
	"context"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	directoryDomain "github.com/allisson/panchayath-admin/internal/directory/domain"
	"github.com/allisson/panchayath-admin/internal/report/domain"
)

// AdminCounter reports the total number of admin accounts.
type AdminCounter interface {
	Count(ctx context.Context) (int64, error)
}

// DirectoryCounter reports record counts per directory kind.
type DirectoryCounter interface {
	Counts(ctx context.Context) (map[directoryDomain.Kind]int64, error)
}

// ActivityReader retrieves the most recent audit log entries.
type ActivityReader interface {
	Recent(ctx context.Context, n int) ([]*auditDomain.AuditLog, error)
}

// ReportUseCase defines the reporting operations.
type ReportUseCase interface {
	// Summary builds the dashboard aggregate: counts plus recent activity.
	Summary(ctx context.Context) (*domain.Summary, error)
}
