// Package domain defines the permission registry domain models.
//
// Permissions form a fixed catalog of (module, action) pairs describing what
// the back-office can do. Grants attach individual permissions to individual
// administrators; they refine, but never override, the role-based policy
// evaluated per resource.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Permission is one entry of the capability catalog, unique per (module, action).
type Permission struct {
	ID          uuid.UUID
	Module      string
	Action      string
	Description string
	CreatedAt   time.Time
}

// Grant attaches a permission to an administrator, unique per (admin, permission).
type Grant struct {
	AdminID      uuid.UUID
	PermissionID uuid.UUID
	GrantedBy    *uuid.UUID // nil when seeded by the system
	CreatedAt    time.Time
}

// BuiltinPermission is a seed catalog entry.
type BuiltinPermission struct {
	Module      string
	Action      string
	Description string
}

// BuiltinPermissions is the catalog seeded at install time. Seeding is
// idempotent; existing (module, action) rows are left untouched.
var BuiltinPermissions = []BuiltinPermission{
	{Module: "admins", Action: "create", Description: "Create administrator accounts"},
	{Module: "admins", Action: "update", Description: "Update administrator accounts"},
	{Module: "admins", Action: "delete", Description: "Delete administrator accounts"},
	{Module: "grants", Action: "manage", Description: "Grant and revoke permissions"},
	{Module: "settings", Action: "read", Description: "View application settings"},
	{Module: "settings", Action: "write", Description: "Change application settings"},
	{Module: "panchayaths", Action: "create", Description: "Register panchayaths"},
	{Module: "panchayaths", Action: "update", Description: "Update panchayath records"},
	{Module: "panchayaths", Action: "delete", Description: "Remove panchayath records"},
	{Module: "agents", Action: "create", Description: "Register collection agents"},
	{Module: "agents", Action: "update", Description: "Update collection agents"},
	{Module: "agents", Action: "delete", Description: "Remove collection agents"},
	{Module: "management_teams", Action: "create", Description: "Register management teams"},
	{Module: "management_teams", Action: "update", Description: "Update management teams"},
	{Module: "management_teams", Action: "delete", Description: "Remove management teams"},
	{Module: "audit_logs", Action: "read", Description: "View the audit trail"},
	{Module: "audit_logs", Action: "export", Description: "Export the audit trail as CSV"},
	{Module: "reports", Action: "read", Description: "View dashboard reports"},
}
