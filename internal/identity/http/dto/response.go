// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
)

// AdminResponse represents an administrator in API responses (excludes the
// password hash).
type AdminResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MapAdminToResponse converts a domain administrator to an API response.
func MapAdminToResponse(admin *identityDomain.Admin) AdminResponse {
	return AdminResponse{
		ID:          admin.ID.String(),
		Username:    admin.Username,
		Email:       admin.Email,
		Role:        string(admin.Role),
		IsActive:    admin.IsActive,
		LastLoginAt: admin.LastLoginAt,
		CreatedAt:   admin.CreatedAt,
		UpdatedAt:   admin.UpdatedAt,
	}
}

// ListAdminsResponse represents a paginated list of administrators.
type ListAdminsResponse struct {
	Data []AdminResponse `json:"data"`
}

// MapAdminsToListResponse converts a slice of domain administrators to a list
// API response.
func MapAdminsToListResponse(admins []*identityDomain.Admin) ListAdminsResponse {
	adminResponses := make([]AdminResponse, 0, len(admins))
	for _, admin := range admins {
		adminResponses = append(adminResponses, MapAdminToResponse(admin))
	}
	return ListAdminsResponse{
		Data: adminResponses,
	}
}

// LoginResponse contains the result of a successful login.
// SECURITY: The token is only returned once and must be saved securely.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

// MapLoginOutputToResponse converts a login result to an API response.
func MapLoginOutputToResponse(output *identityDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		Admin:     MapAdminToResponse(output.Admin),
	}
}
