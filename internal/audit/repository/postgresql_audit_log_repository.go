// Package repository implements audit trail persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). The audit_logs table is append-only: neither implementation
// exposes an update or delete operation.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	"github.com/allisson/panchayath-admin/internal/database"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// PostgreSQLAuditLogRepository implements AuditLog persistence for PostgreSQL.
// Uses native UUID and JSONB types with transaction support via database.GetTx().
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL AuditLog repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}

// Create inserts a new AuditLog. Nil snapshots are stored as NULL so the
// distinction between "absent" (create/delete) and "empty" survives storage.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, auditLog *auditDomain.AuditLog) error {
	querier := database.GetTx(ctx, p.db)

	oldData, err := marshalSnapshot(auditLog.OldData)
	if err != nil {
		return err
	}
	newData, err := marshalSnapshot(auditLog.NewData)
	if err != nil {
		return err
	}

	query := `INSERT INTO audit_logs
			  (id, admin_id, username, action, resource_name, record_id, old_data, new_data, ip_address, user_agent, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = querier.ExecContext(
		ctx,
		query,
		auditLog.ID,
		auditLog.AdminID,
		auditLog.Username,
		string(auditLog.Action),
		auditLog.ResourceName,
		auditLog.RecordID,
		oldData,
		newData,
		auditLog.IPAddress,
		auditLog.UserAgent,
		auditLog.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// List retrieves audit logs matching the filter, newest first, with pagination.
// Date bounds are inclusive. Returns an empty slice if nothing matches.
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	filter auditDomain.ListFilter,
	offset, limit int,
) ([]*auditDomain.AuditLog, error) {
	querier := database.GetTx(ctx, p.db)

	var conditions []string
	var args []any

	addCondition := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Action != "" {
		addCondition("action = $%d", string(filter.Action))
	}
	if filter.ResourceName != "" {
		addCondition("resource_name = $%d", filter.ResourceName)
	}
	if filter.Username != "" {
		addCondition("username = $%d", filter.Username)
	}
	if filter.CreatedAtFrom != nil {
		addCondition("created_at >= $%d", *filter.CreatedAtFrom)
	}
	if filter.CreatedAtTo != nil {
		addCondition("created_at <= $%d", *filter.CreatedAtTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(action ILIKE $%d OR resource_name ILIKE $%d OR record_id ILIKE $%d OR username ILIKE $%d)",
			n, n, n, n,
		))
	}

	query := `SELECT id, admin_id, username, action, resource_name, record_id,
			  old_data, new_data, ip_address, user_agent, created_at
			  FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	auditLogs := make([]*auditDomain.AuditLog, 0)
	for rows.Next() {
		auditLog, err := scanPostgreSQLAuditLog(rows)
		if err != nil {
			return nil, err
		}
		auditLogs = append(auditLogs, auditLog)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return auditLogs, nil
}

// Recent retrieves the n most recent audit logs for the dashboard.
func (p *PostgreSQLAuditLogRepository) Recent(ctx context.Context, n int) ([]*auditDomain.AuditLog, error) {
	return p.List(ctx, auditDomain.ListFilter{}, 0, n)
}

// scanPostgreSQLAuditLog scans one audit log row.
func scanPostgreSQLAuditLog(rows *sql.Rows) (*auditDomain.AuditLog, error) {
	var auditLog auditDomain.AuditLog
	var action string
	var oldData, newData []byte

	err := rows.Scan(
		&auditLog.ID,
		&auditLog.AdminID,
		&auditLog.Username,
		&action,
		&auditLog.ResourceName,
		&auditLog.RecordID,
		&oldData,
		&newData,
		&auditLog.IPAddress,
		&auditLog.UserAgent,
		&auditLog.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan audit log")
	}

	auditLog.Action = auditDomain.Action(action)

	if auditLog.OldData, err = unmarshalSnapshot(oldData); err != nil {
		return nil, err
	}
	if auditLog.NewData, err = unmarshalSnapshot(newData); err != nil {
		return nil, err
	}

	return &auditLog, nil
}

// marshalSnapshot serializes a snapshot map, keeping nil as database NULL.
func marshalSnapshot(snapshot map[string]any) ([]byte, error) {
	if snapshot == nil {
		return nil, nil
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal audit snapshot")
	}
	return data, nil
}

// unmarshalSnapshot deserializes a snapshot column, keeping NULL as nil.
func unmarshalSnapshot(data []byte) (map[string]any, error) {
	if data == nil {
		return nil, nil
	}

	var snapshot map[string]any
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal audit snapshot")
	}
	return snapshot, nil
}
