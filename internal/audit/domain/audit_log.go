// Package domain defines the audit trail domain models.
//
// The source system captured every mutation to tracked tables with database
// triggers. Here the capture is an explicit Recorder call made inside the same
// transaction as the mutation, so an audit record is committed if and only if
// its mutation is.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of mutation an audit record captures.
type Action string

const (
	// ActionCreate records an insert; NewData holds the created state.
	ActionCreate Action = "create"

	// ActionUpdate records a modification; OldData and NewData hold both states.
	ActionUpdate Action = "update"

	// ActionDelete records a removal; OldData holds the prior state.
	ActionDelete Action = "delete"
)

// IsValid reports whether the action is one of the enumerated values.
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// AuditLog is one immutable entry in the mutation trail. Once written it is
// never modified or deleted by application logic.
//
// AdminID is nil for system-originated changes (e.g. CLI bootstrap before any
// admin exists). Username is denormalized at write time so the acting handle
// survives later deletion of the account.
type AuditLog struct {
	ID           uuid.UUID
	AdminID      *uuid.UUID
	Username     string
	Action       Action
	ResourceName string
	RecordID     string
	OldData      map[string]any
	NewData      map[string]any
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

// ListFilter narrows audit log queries. Zero values mean "no filter".
// CreatedAtFrom and CreatedAtTo are inclusive bounds. Search matches action,
// resource name, record ID, and actor username as a case-insensitive substring.
type ListFilter struct {
	Action        Action
	ResourceName  string
	Username      string
	CreatedAtFrom *time.Time
	CreatedAtTo   *time.Time
	Search        string
}
