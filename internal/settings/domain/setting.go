// Package domain defines the settings store domain models.
//
// Settings are key/value rows whose values are opaque JSON documents; the
// application stores and serves them without interpreting their shape.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Setting is one configuration entry, unique by key.
type Setting struct {
	ID          uuid.UUID
	Key         string
	Value       any // opaque JSON document
	Description string
	UpdatedBy   *uuid.UUID // nil when seeded by the system
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Snapshot returns the setting's state as structured data for audit records.
func (s *Setting) Snapshot() map[string]any {
	snapshot := map[string]any{
		"id":          s.ID.String(),
		"key":         s.Key,
		"value":       s.Value,
		"description": s.Description,
		"created_at":  s.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  s.UpdatedAt.Format(time.RFC3339Nano),
	}
	if s.UpdatedBy != nil {
		snapshot["updated_by"] = s.UpdatedBy.String()
	}
	return snapshot
}

// SetInput is one key/value assignment.
type SetInput struct {
	Key         string
	Value       any
	Description string
}
