package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// exportBatchSize is the page size used when streaming CSV exports.
const exportBatchSize = 500

// auditLogUseCase implements AuditLogUseCase.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
	}
}

// Record appends an audit entry for a mutation. The caller is responsible for
// invoking Record inside the same transaction as the mutation; the repository
// write then commits or rolls back together with it.
func (a *auditLogUseCase) Record(
	ctx context.Context,
	actor *identityDomain.Admin,
	action auditDomain.Action,
	resourceName, recordID string,
	oldData, newData map[string]any,
) error {
	if err := validateEntry(action, resourceName, recordID, oldData, newData); err != nil {
		return err
	}

	origin := OriginFrom(ctx)

	auditLog := &auditDomain.AuditLog{
		ID:           uuid.Must(uuid.NewV7()),
		Action:       action,
		ResourceName: resourceName,
		RecordID:     recordID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    origin.IPAddress,
		UserAgent:    origin.UserAgent,
		CreatedAt:    time.Now().UTC(),
	}
	if actor != nil {
		adminID := actor.ID
		auditLog.AdminID = &adminID
		auditLog.Username = actor.Username
	}

	if err := a.auditLogRepo.Create(ctx, auditLog); err != nil {
		return apperrors.Wrap(err, "failed to record audit log")
	}

	return nil
}

// validateEntry enforces the snapshot shape contract per action.
func validateEntry(
	action auditDomain.Action,
	resourceName, recordID string,
	oldData, newData map[string]any,
) error {
	if !action.IsValid() {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "invalid audit action")
	}
	if resourceName == "" || recordID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "resource name and record id are required")
	}

	switch action {
	case auditDomain.ActionCreate:
		if newData == nil || oldData != nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "create records carry only a new state snapshot")
		}
	case auditDomain.ActionDelete:
		if oldData == nil || newData != nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "delete records carry only a prior state snapshot")
		}
	case auditDomain.ActionUpdate:
		if oldData == nil || newData == nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "update records carry both state snapshots")
		}
	}

	return nil
}

// List retrieves audit logs matching the filter, newest first.
func (a *auditLogUseCase) List(
	ctx context.Context,
	filter auditDomain.ListFilter,
	offset, limit int,
) ([]*auditDomain.AuditLog, error) {
	if filter.CreatedAtFrom != nil && filter.CreatedAtTo != nil &&
		filter.CreatedAtFrom.After(*filter.CreatedAtTo) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "created_at_from must not be after created_at_to")
	}

	auditLogs, err := a.auditLogRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}

	return auditLogs, nil
}

// Recent retrieves the n most recent audit logs.
func (a *auditLogUseCase) Recent(ctx context.Context, n int) ([]*auditDomain.AuditLog, error) {
	auditLogs, err := a.auditLogRepo.Recent(ctx, n)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get recent audit logs")
	}

	return auditLogs, nil
}

// ExportCSV streams all matching audit logs to w, paging through the
// repository so exports of any size run in constant memory.
func (a *auditLogUseCase) ExportCSV(
	ctx context.Context,
	filter auditDomain.ListFilter,
	w io.Writer,
) error {
	writer := csv.NewWriter(w)

	header := []string{"timestamp", "username", "action", "resource_name", "record_id", "ip_address"}
	if err := writer.Write(header); err != nil {
		return apperrors.Wrap(err, "failed to write csv header")
	}

	for offset := 0; ; offset += exportBatchSize {
		auditLogs, err := a.auditLogRepo.List(ctx, filter, offset, exportBatchSize)
		if err != nil {
			return apperrors.Wrap(err, "failed to export audit logs")
		}

		for _, auditLog := range auditLogs {
			record := []string{
				auditLog.CreatedAt.Format(time.RFC3339),
				auditLog.Username,
				string(auditLog.Action),
				auditLog.ResourceName,
				auditLog.RecordID,
				auditLog.IPAddress,
			}
			if err := writer.Write(record); err != nil {
				return apperrors.Wrap(err, "failed to write csv record")
			}
		}

		if len(auditLogs) < exportBatchSize {
			break
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(err, "failed to flush csv output")
	}

	return nil
}
