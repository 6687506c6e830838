// Package domain defines the administrator identity domain models.
//
// Administrators authenticate with a username and password and carry one of
// three roles. Role-independent fine-grained access is layered on top via the
// permission module's grants.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies an administrator's authority level.
type Role string

const (
	// RoleSuperAdmin can manage administrator accounts and grants.
	RoleSuperAdmin Role = "super_admin"

	// RoleAdmin is a regular back-office administrator.
	RoleAdmin Role = "admin"

	// RoleLocalAdmin is scoped to a single panchayath's operations.
	RoleLocalAdmin Role = "local_admin"
)

// IsValid reports whether the role is one of the enumerated values.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleLocalAdmin:
		return true
	}
	return false
}

// Admin represents an administrator account.
type Admin struct {
	ID          uuid.UUID
	Username    string // globally unique handle, stored lowercased
	Email       string // optional
	Password    string // argon2id hash, never plaintext
	Role        Role
	IsActive    bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot returns the admin's state as structured data for audit records.
// The credential hash is deliberately excluded: audit logs are widely readable
// and must never carry credential material.
func (a *Admin) Snapshot() map[string]any {
	snapshot := map[string]any{
		"id":         a.ID.String(),
		"username":   a.Username,
		"email":      a.Email,
		"role":       string(a.Role),
		"is_active":  a.IsActive,
		"created_at": a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": a.UpdatedAt.Format(time.RFC3339Nano),
	}
	if a.LastLoginAt != nil {
		snapshot["last_login_at"] = a.LastLoginAt.Format(time.RFC3339Nano)
	}
	return snapshot
}

// CreateAdminInput contains the parameters for creating a new administrator.
type CreateAdminInput struct {
	Username string
	Email    string
	Password string // plaintext, hashed before storage
	Role     Role
	IsActive bool
}

// UpdateAdminInput contains the mutable fields for updating an administrator.
// The username and password are managed through dedicated operations.
type UpdateAdminInput struct {
	Email    string
	Role     Role
	IsActive bool
}
