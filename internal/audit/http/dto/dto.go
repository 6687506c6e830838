// Package dto provides data transfer objects for the audit HTTP layer.
package dto

import (
	"time"

	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
)

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	AdminID      *string        `json:"admin_id,omitempty"`
	Username     string         `json:"username"`
	Action       string         `json:"action"`
	ResourceName string         `json:"resource_name"`
	RecordID     string         `json:"record_id"`
	OldData      map[string]any `json:"old_data,omitempty"`
	NewData      map[string]any `json:"new_data,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// MapAuditLogToResponse converts a domain audit log to an API response.
func MapAuditLogToResponse(auditLog *auditDomain.AuditLog) AuditLogResponse {
	var adminID *string
	if auditLog.AdminID != nil {
		s := auditLog.AdminID.String()
		adminID = &s
	}
	return AuditLogResponse{
		ID:           auditLog.ID.String(),
		AdminID:      adminID,
		Username:     auditLog.Username,
		Action:       string(auditLog.Action),
		ResourceName: auditLog.ResourceName,
		RecordID:     auditLog.RecordID,
		OldData:      auditLog.OldData,
		NewData:      auditLog.NewData,
		IPAddress:    auditLog.IPAddress,
		UserAgent:    auditLog.UserAgent,
		CreatedAt:    auditLog.CreatedAt,
	}
}

// ListAuditLogsResponse represents a paginated list of audit logs, newest first.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogsToListResponse converts a slice of domain audit logs to a list
// API response.
func MapAuditLogsToListResponse(auditLogs []*auditDomain.AuditLog) ListAuditLogsResponse {
	auditLogResponses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		auditLogResponses = append(auditLogResponses, MapAuditLogToResponse(auditLog))
	}
	return ListAuditLogsResponse{Data: auditLogResponses}
}
