package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/panchayath-admin/internal/identity/domain"
	"github.com/allisson/panchayath-admin/internal/metrics"
)

// adminUseCaseWithMetrics decorates AdminUseCase with metrics instrumentation.
type adminUseCaseWithMetrics struct {
	next    AdminUseCase
	metrics metrics.BusinessMetrics
}

// NewAdminUseCaseWithMetrics wraps an AdminUseCase with metrics recording.
func NewAdminUseCaseWithMetrics(useCase AdminUseCase, m metrics.BusinessMetrics) AdminUseCase {
	return &adminUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *adminUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordOperation(ctx, "identity", operation, status)
	a.metrics.RecordDuration(ctx, "identity", operation, time.Since(start), status)
}

func (a *adminUseCaseWithMetrics) Create(
	ctx context.Context,
	actor *domain.Admin,
	input *domain.CreateAdminInput,
) (*domain.Admin, error) {
	start := time.Now()
	admin, err := a.next.Create(ctx, actor, input)
	a.record(ctx, "admin_create", start, err)
	return admin, err
}

func (a *adminUseCaseWithMetrics) Update(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
	input *domain.UpdateAdminInput,
) (*domain.Admin, error) {
	start := time.Now()
	admin, err := a.next.Update(ctx, actor, id, input)
	a.record(ctx, "admin_update", start, err)
	return admin, err
}

func (a *adminUseCaseWithMetrics) SetActive(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
	active bool,
) error {
	start := time.Now()
	err := a.next.SetActive(ctx, actor, id, active)
	a.record(ctx, "admin_set_active", start, err)
	return err
}

func (a *adminUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
	plainPassword string,
) error {
	start := time.Now()
	err := a.next.ChangePassword(ctx, actor, id, plainPassword)
	a.record(ctx, "admin_change_password", start, err)
	return err
}

func (a *adminUseCaseWithMetrics) Delete(ctx context.Context, actor *domain.Admin, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, actor, id)
	a.record(ctx, "admin_delete", start, err)
	return err
}

func (a *adminUseCaseWithMetrics) Get(
	ctx context.Context,
	actor *domain.Admin,
	id uuid.UUID,
) (*domain.Admin, error) {
	start := time.Now()
	admin, err := a.next.Get(ctx, actor, id)
	a.record(ctx, "admin_get", start, err)
	return admin, err
}

func (a *adminUseCaseWithMetrics) List(
	ctx context.Context,
	actor *domain.Admin,
	offset, limit int,
) ([]*domain.Admin, error) {
	start := time.Now()
	admins, err := a.next.List(ctx, actor, offset, limit)
	a.record(ctx, "admin_list", start, err)
	return admins, err
}

func (a *adminUseCaseWithMetrics) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := a.next.Count(ctx)
	a.record(ctx, "admin_count", start, err)
	return count, err
}

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordOperation(ctx, "identity", operation, status)
	a.metrics.RecordDuration(ctx, "identity", operation, time.Since(start), status)
}

func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	username, password string,
) (*domain.LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, username, password)
	a.record(ctx, "login", start, err)
	return output, err
}

func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	plainToken string,
) (*domain.Admin, error) {
	start := time.Now()
	admin, err := a.next.Authenticate(ctx, plainToken)
	a.record(ctx, "token_authenticate", start, err)
	return admin, err
}

func (a *authUseCaseWithMetrics) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := a.next.PurgeExpiredTokens(ctx)
	a.record(ctx, "token_purge_expired", start, err)
	return count, err
}
