// Package dto provides data transfer objects for the settings HTTP layer.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	settingsDomain "github.com/allisson/panchayath-admin/internal/settings/domain"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// SettingResponse represents a setting in API responses.
type SettingResponse struct {
	Key         string    `json:"key"`
	Value       any       `json:"value"`
	Description string    `json:"description,omitempty"`
	UpdatedBy   *string   `json:"updated_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapSettingToResponse converts a domain setting to an API response.
func MapSettingToResponse(setting *settingsDomain.Setting) SettingResponse {
	var updatedBy *string
	if setting.UpdatedBy != nil {
		s := setting.UpdatedBy.String()
		updatedBy = &s
	}
	return SettingResponse{
		Key:         setting.Key,
		Value:       setting.Value,
		Description: setting.Description,
		UpdatedBy:   updatedBy,
		CreatedAt:   setting.CreatedAt,
		UpdatedAt:   setting.UpdatedAt,
	}
}

// ListSettingsResponse represents all settings ordered by key.
type ListSettingsResponse struct {
	Data []SettingResponse `json:"data"`
}

// MapSettingsToListResponse converts a slice of domain settings to a list API response.
func MapSettingsToListResponse(settings []*settingsDomain.Setting) ListSettingsResponse {
	settingResponses := make([]SettingResponse, 0, len(settings))
	for _, setting := range settings {
		settingResponses = append(settingResponses, MapSettingToResponse(setting))
	}
	return ListSettingsResponse{Data: settingResponses}
}

// SetSettingRequest contains the parameters for upserting a single setting.
// The key comes from the URL path; Value is opaque JSON the application never
// interprets.
type SetSettingRequest struct {
	Value       any    `json:"value"`
	Description string `json:"description"`
}

// Validate checks if the set setting request is valid.
func (r *SetSettingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.NotNil,
		),
		validation.Field(&r.Description,
			validation.Length(0, 500),
		),
	)
}

// BatchSettingEntry is one assignment inside a batch settings request.
type BatchSettingEntry struct {
	Key         string `json:"key"`
	Value       any    `json:"value"`
	Description string `json:"description"`
}

// Validate checks if the batch entry is valid.
func (e *BatchSettingEntry) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Key,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&e.Value,
			validation.NotNil,
		),
		validation.Field(&e.Description,
			validation.Length(0, 500),
		),
	)
}

// BatchSetSettingsRequest contains several assignments applied in one
// transaction.
type BatchSetSettingsRequest struct {
	Settings []BatchSettingEntry `json:"settings"`
}

// Validate checks if the batch request is valid.
func (r *BatchSetSettingsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Settings,
			validation.Required,
			validation.Each(validation.By(validateBatchEntry)),
		),
	)
}

// validateBatchEntry validates a single batch assignment.
func validateBatchEntry(value interface{}) error {
	entry, ok := value.(BatchSettingEntry)
	if !ok {
		return validation.NewError("validation_setting_type", "must be a setting entry")
	}
	return entry.Validate()
}
