package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"
)

func newActor(role identityDomain.Role, active bool) *identityDomain.Admin {
	return &identityDomain.Admin{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "actor",
		Role:     role,
		IsActive: active,
	}
}

func TestAuthorize_NilActorIsUnauthorized(t *testing.T) {
	evaluator := NewEvaluator(nil)

	err := evaluator.Authorize(nil, ResourceSettings)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthorize_InactiveActorDeniedEverywhere(t *testing.T) {
	evaluator := NewEvaluator(nil)
	inactive := newActor(identityDomain.RoleSuperAdmin, false)

	for _, resource := range []string{
		ResourceAdmins, ResourceGrants, ResourceSettings,
		ResourcePanchayaths, ResourceAgents, ResourceManagementTeams,
	} {
		err := evaluator.Authorize(inactive, resource)
		assert.ErrorIs(t, err, apperrors.ErrForbidden, resource)
	}
}

func TestAuthorize_SuperAdminOnlyResources(t *testing.T) {
	evaluator := NewEvaluator(nil)

	for _, resource := range []string{ResourceAdmins, ResourceGrants} {
		assert.NoError(t, evaluator.Authorize(newActor(identityDomain.RoleSuperAdmin, true), resource))
		assert.ErrorIs(t,
			evaluator.Authorize(newActor(identityDomain.RoleAdmin, true), resource),
			apperrors.ErrForbidden, resource)
		assert.ErrorIs(t,
			evaluator.Authorize(newActor(identityDomain.RoleLocalAdmin, true), resource),
			apperrors.ErrForbidden, resource)
	}
}

func TestAuthorize_ActiveOnlyResources(t *testing.T) {
	evaluator := NewEvaluator(nil)

	// Observed source behavior: settings mutation is open to any active admin.
	for _, role := range []identityDomain.Role{
		identityDomain.RoleSuperAdmin, identityDomain.RoleAdmin, identityDomain.RoleLocalAdmin,
	} {
		assert.NoError(t, evaluator.Authorize(newActor(role, true), ResourceSettings), string(role))
	}
}

func TestAuthorize_UnknownResourceDeniesByDefault(t *testing.T) {
	evaluator := NewEvaluator(nil)

	err := evaluator.Authorize(newActor(identityDomain.RoleAdmin, true), "backups")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	assert.NoError(t, evaluator.Authorize(newActor(identityDomain.RoleSuperAdmin, true), "backups"))
}

func TestNewEvaluator_SuperAdminOverrides(t *testing.T) {
	evaluator := NewEvaluator([]string{ResourceSettings})

	assert.Equal(t, SuperAdminOnly, evaluator.Requirement(ResourceSettings))
	assert.ErrorIs(t,
		evaluator.Authorize(newActor(identityDomain.RoleAdmin, true), ResourceSettings),
		apperrors.ErrForbidden)
	assert.NoError(t,
		evaluator.Authorize(newActor(identityDomain.RoleSuperAdmin, true), ResourceSettings))

	// Untouched resources keep their defaults.
	assert.Equal(t, ActiveOnly, evaluator.Requirement(ResourceAgents))
}
