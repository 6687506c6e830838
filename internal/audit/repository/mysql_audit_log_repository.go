package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
	"github.com/allisson/panchayath-admin/internal/database"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// MySQLAuditLogRepository implements AuditLog persistence for MySQL.
// Uses BINARY(16) UUID columns and JSON snapshot columns with transaction
// support via database.GetTx().
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// NewMySQLAuditLogRepository creates a new MySQL AuditLog repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}

// Create inserts a new AuditLog. Nil snapshots are stored as NULL.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, auditLog *auditDomain.AuditLog) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := auditLog.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	var adminIDBytes []byte
	if auditLog.AdminID != nil {
		adminIDBytes, err = auditLog.AdminID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal admin UUID")
		}
	}

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
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		adminIDBytes,
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
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	filter auditDomain.ListFilter,
	offset, limit int,
) ([]*auditDomain.AuditLog, error) {
	querier := database.GetTx(ctx, m.db)

	var conditions []string
	var args []any

	if filter.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.ResourceName != "" {
		conditions = append(conditions, "resource_name = ?")
		args = append(args, filter.ResourceName)
	}
	if filter.Username != "" {
		conditions = append(conditions, "username = ?")
		args = append(args, filter.Username)
	}
	if filter.CreatedAtFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.CreatedAtFrom)
	}
	if filter.CreatedAtTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *filter.CreatedAtTo)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions,
			"(LOWER(action) LIKE ? OR LOWER(resource_name) LIKE ? OR LOWER(record_id) LIKE ? OR LOWER(username) LIKE ?)")
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query := `SELECT id, admin_id, username, action, resource_name, record_id,
			  old_data, new_data, ip_address, user_agent, created_at
			  FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
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
		auditLog, err := scanMySQLAuditLog(rows)
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
func (m *MySQLAuditLogRepository) Recent(ctx context.Context, n int) ([]*auditDomain.AuditLog, error) {
	return m.List(ctx, auditDomain.ListFilter{}, 0, n)
}

// scanMySQLAuditLog scans one audit log row, converting BINARY(16) UUIDs.
func scanMySQLAuditLog(rows *sql.Rows) (*auditDomain.AuditLog, error) {
	var auditLog auditDomain.AuditLog
	var action string
	var idBytes, adminIDBytes, oldData, newData []byte

	err := rows.Scan(
		&idBytes,
		&adminIDBytes,
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

	if err := auditLog.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if adminIDBytes != nil {
		var adminID uuid.UUID
		if err := adminID.UnmarshalBinary(adminIDBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal admin UUID")
		}
		auditLog.AdminID = &adminID
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
