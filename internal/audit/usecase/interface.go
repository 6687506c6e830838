// Package usecase implements the audit trail business logic: recording
// mutations and querying the resulting append-only log.
package usecase

import (
	"context"
	"io"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
)

// AuditLogRepository defines persistence operations for audit logs.
// Implementations must support transaction-aware operations via context
// propagation, and must not expose update or delete operations.
type AuditLogRepository interface {
	// Create appends a new audit log entry.
	Create(ctx context.Context, auditLog *auditDomain.AuditLog) error

	// List retrieves audit logs matching the filter, newest first.
	List(
		ctx context.Context,
		filter auditDomain.ListFilter,
		offset, limit int,
	) ([]*auditDomain.AuditLog, error)

	// Recent retrieves the n most recent audit logs.
	Recent(ctx context.Context, n int) ([]*auditDomain.AuditLog, error)
}

// Recorder captures one mutation as an audit record. Mutating use cases call
// Record inside the same TxManager.WithTx closure as the mutation itself, which
// is what makes record and mutation atomically visible together.
type Recorder interface {
	// Record appends an audit entry for the given mutation. actor is nil for
	// system-originated changes. Snapshot presence must match the action:
	// create carries newData only, delete carries oldData only, update both.
	Record(
		ctx context.Context,
		actor *identityDomain.Admin,
		action auditDomain.Action,
		resourceName, recordID string,
		oldData, newData map[string]any,
	) error
}

// AuditLogUseCase is the full audit surface: recording plus the query/export
// operations consumed by the reporting UI.
type AuditLogUseCase interface {
	Recorder

	// List retrieves audit logs matching the filter with pagination, newest first.
	List(
		ctx context.Context,
		filter auditDomain.ListFilter,
		offset, limit int,
	) ([]*auditDomain.AuditLog, error)

	// Recent retrieves the n most recent audit logs for the dashboard.
	Recent(ctx context.Context, n int) ([]*auditDomain.AuditLog, error)

	// ExportCSV streams all audit logs matching the filter to w as CSV with
	// columns: timestamp, username, action, resource_name, record_id, ip_address.
	ExportCSV(ctx context.Context, filter auditDomain.ListFilter, w io.Writer) error
}
