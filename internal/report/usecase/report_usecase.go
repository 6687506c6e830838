package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	directoryDomain "github.com/allisson/panchayath-admin/internal/directory/domain"
	"github.com/allisson/panchayath-admin/internal/report/domain"
)

// recentActivityLimit is the number of audit entries shown on the dashboard.
const recentActivityLimit = 10

// reportUseCase implements ReportUseCase.
type reportUseCase struct {
	adminCounter     AdminCounter
	directoryCounter DirectoryCounter
	activityReader   ActivityReader
}

// NewReportUseCase creates a new ReportUseCase with the provided dependencies.
func NewReportUseCase(
	adminCounter AdminCounter,
	directoryCounter DirectoryCounter,
	activityReader ActivityReader,
) ReportUseCase {
	return &reportUseCase{
		adminCounter:     adminCounter,
		directoryCounter: directoryCounter,
		activityReader:   activityReader,
	}
}

// Summary builds the dashboard aggregate from the read-only sources. The
// three sources are independent, so they are queried concurrently.
func (r *reportUseCase) Summary(ctx context.Context) (*domain.Summary, error) {
	var (
		adminCount int64
		counts     map[directoryDomain.Kind]int64
		recent     []*auditDomain.AuditLog
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		adminCount, err = r.adminCounter.Count(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		counts, err = r.directoryCounter.Counts(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		recent, err = r.activityReader.Recent(ctx, recentActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Summary{
		AdminCount:          adminCount,
		PanchayathCount:     counts[directoryDomain.KindPanchayath],
		AgentCount:          counts[directoryDomain.KindAgent],
		ManagementTeamCount: counts[directoryDomain.KindManagementTeam],
		RecentActivity:      recent,
	}, nil
}
