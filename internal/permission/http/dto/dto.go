// Package dto provides data transfer objects for the permission HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	permissionDomain "github.com/allisson/panchayath-admin/internal/permission/domain"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// PermissionResponse represents a catalog entry in API responses.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Module      string    `json:"module"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapPermissionToResponse converts a domain permission to an API response.
func MapPermissionToResponse(permission *permissionDomain.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          permission.ID.String(),
		Module:      permission.Module,
		Action:      permission.Action,
		Description: permission.Description,
		CreatedAt:   permission.CreatedAt,
	}
}

// ModulePermissionsResponse groups a module's permissions for catalog listings.
type ModulePermissionsResponse struct {
	Module      string               `json:"module"`
	Permissions []PermissionResponse `json:"permissions"`
}

// ListPermissionsResponse represents the catalog grouped by module. Groups
// preserve the catalog order (module, then action).
type ListPermissionsResponse struct {
	Data []ModulePermissionsResponse `json:"data"`
}

// MapPermissionsToGroupedResponse converts a module-ordered permission list to
// a grouped API response.
func MapPermissionsToGroupedResponse(permissions []*permissionDomain.Permission) ListPermissionsResponse {
	groups := make([]ModulePermissionsResponse, 0)
	for _, permission := range permissions {
		if len(groups) == 0 || groups[len(groups)-1].Module != permission.Module {
			groups = append(groups, ModulePermissionsResponse{
				Module:      permission.Module,
				Permissions: make([]PermissionResponse, 0, 4),
			})
		}
		last := &groups[len(groups)-1]
		last.Permissions = append(last.Permissions, MapPermissionToResponse(permission))
	}
	return ListPermissionsResponse{Data: groups}
}

// ListGrantsResponse represents the permissions granted to one administrator.
type ListGrantsResponse struct {
	Data []PermissionResponse `json:"data"`
}

// MapPermissionsToGrantsResponse converts a granted permission list to an API response.
func MapPermissionsToGrantsResponse(permissions []*permissionDomain.Permission) ListGrantsResponse {
	permissionResponses := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		permissionResponses = append(permissionResponses, MapPermissionToResponse(permission))
	}
	return ListGrantsResponse{Data: permissionResponses}
}

// GrantRequest contains the parameters for attaching a single permission.
type GrantRequest struct {
	PermissionID string `json:"permission_id"`
}

// Validate checks if the grant request is valid.
func (r *GrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PermissionID,
			validation.Required,
			customValidation.NotBlank,
			validation.By(validateUUIDString),
		),
	)
}

// ReplaceGrantsRequest contains the full replacement set for an administrator's
// grants. An empty list is valid and clears every grant.
type ReplaceGrantsRequest struct {
	PermissionIDs []string `json:"permission_ids"`
}

// Validate checks if the replace grants request is valid.
func (r *ReplaceGrantsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PermissionIDs,
			validation.NotNil,
			validation.Each(validation.By(validateUUIDString)),
		),
	)
}

// validateUUIDString validates that a string parses as a UUID.
func validateUUIDString(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_uuid_type", "must be a string")
	}
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}
