// Package dto provides data transfer objects for the directory HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	directoryDomain "github.com/allisson/panchayath-admin/internal/directory/domain"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// RecordResponse represents a directory record in API responses.
type RecordResponse struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// MapRecordToResponse converts a domain record to an API response.
func MapRecordToResponse(record *directoryDomain.Record) RecordResponse {
	attributes := record.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}
	return RecordResponse{
		ID:         record.ID.String(),
		Kind:       string(record.Kind),
		Name:       record.Name,
		Attributes: attributes,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

// ListRecordsResponse represents a paginated list of directory records.
type ListRecordsResponse struct {
	Data []RecordResponse `json:"data"`
}

// MapRecordsToListResponse converts a slice of domain records to a list API response.
func MapRecordsToListResponse(records []*directoryDomain.Record) ListRecordsResponse {
	recordResponses := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		recordResponses = append(recordResponses, MapRecordToResponse(record))
	}
	return ListRecordsResponse{Data: recordResponses}
}

// RecordRequest contains the parameters for creating or updating a directory
// record. Attributes are opaque JSON stored as submitted.
type RecordRequest struct {
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes"`
}

// Validate checks if the record request is valid.
func (r *RecordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
