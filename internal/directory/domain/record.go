// Package domain defines the directory domain models.
//
// The directory holds the administrative units the back-office manages:
// panchayaths, collection agents, and management teams. They are managed
// purely as audited resources, so they share one record shape with a named
// kind and an opaque attribute document rather than three parallel entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind names a directory table. The values double as policy resource names
// and audit resource names.
type Kind string

const (
	KindPanchayath     Kind = "panchayaths"
	KindAgent          Kind = "agents"
	KindManagementTeam Kind = "management_teams"
)

// IsValid reports whether the kind is one of the enumerated values.
func (k Kind) IsValid() bool {
	switch k {
	case KindPanchayath, KindAgent, KindManagementTeam:
		return true
	}
	return false
}

// Kinds lists every directory kind in stable order.
func Kinds() []Kind {
	return []Kind{KindPanchayath, KindAgent, KindManagementTeam}
}

// Record is one directory entry of any kind.
type Record struct {
	ID         uuid.UUID
	Kind       Kind
	Name       string
	Attributes map[string]any // opaque JSON document, shape caller-defined
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Snapshot returns the record's state as structured data for audit records.
func (r *Record) Snapshot() map[string]any {
	return map[string]any{
		"id":         r.ID.String(),
		"name":       r.Name,
		"attributes": r.Attributes,
		"created_at": r.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": r.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// RecordInput carries the caller-controlled fields of a record.
type RecordInput struct {
	Name       string
	Attributes map[string]any
}
