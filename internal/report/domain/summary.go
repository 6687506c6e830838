// Package domain defines the reporting aggregates served to the dashboard.
package domain

import (
	auditDomain "github.com/allisson/panchayath-admin/internal/audit/domain"
)

// Summary is the dashboard snapshot: entity counts plus the latest activity.
type Summary struct {
	AdminCount          int64                   `json:"admin_count"`
	PanchayathCount     int64                   `json:"panchayath_count"`
	AgentCount          int64                   `json:"agent_count"`
	ManagementTeamCount int64                   `json:"management_team_count"`
	RecentActivity      []*auditDomain.AuditLog `json:"recent_activity"`
}
