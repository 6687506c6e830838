// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
	customValidation "github.com/allisson/panchayath-admin/internal/validation"
)

// LoginRequest contains the credentials for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid. Credential correctness is
// checked by the use case; this only rejects structurally empty requests.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// validRoles enumerates the accepted role values for request validation.
var validRoles = []interface{}{
	string(identityDomain.RoleSuperAdmin),
	string(identityDomain.RoleAdmin),
	string(identityDomain.RoleLocalAdmin),
}

// CreateAdminRequest contains the parameters for creating an administrator.
type CreateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"` // defaults to true when omitted
}

// Validate checks if the create admin request is valid.
func (r *CreateAdminRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(3, 64),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != "",
				customValidation.Email,
				validation.Length(5, 255),
			),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
			customValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&r.Role,
			validation.Required,
			validation.In(validRoles...).Error("must be one of: super_admin, admin, local_admin"),
		),
	)
}

// UpdateAdminRequest contains the parameters for updating an administrator.
type UpdateAdminRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Validate checks if the update admin request is valid.
func (r *UpdateAdminRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.When(r.Email != "",
				customValidation.Email,
				validation.Length(5, 255),
			),
		),
		validation.Field(&r.Role,
			validation.Required,
			validation.In(validRoles...).Error("must be one of: super_admin, admin, local_admin"),
		),
	)
}

// SetActiveRequest contains the parameters for toggling an account's active flag.
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate checks if the set active request is valid.
func (r *SetActiveRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Active,
			validation.NotNil,
		),
	)
}

// ChangePasswordRequest contains the new credential for an administrator.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
			customValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
}
