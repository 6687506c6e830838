// Package policy decides, per operation, whether an authenticated administrator
// may act on a resource.
//
// The source system enforced these rules as database row-level-security
// policies. Here they are an explicit evaluation step that every mutating use
// case runs before touching the store, so the rules cannot be bypassed by a
// direct data-layer call.
package policy

import (
	identityDomain "github.com/allisson/panchayath-admin/internal/identity/domain"

	apperrors "github.com/allisson/panchayath-admin/internal/errors"
)

// Requirement is the access rule attached to a resource.
type Requirement string

const (
	// ActiveOnly permits any active administrator regardless of role.
	ActiveOnly Requirement = "active_only"

	// SuperAdminOnly permits only active administrators with the super_admin role.
	SuperAdminOnly Requirement = "super_admin_only"
)

// Resource names understood by the evaluator. These match the resource names
// recorded in the audit log.
const (
	ResourceAdmins          = "admins"
	ResourceGrants          = "grants"
	ResourceSettings        = "settings"
	ResourcePanchayaths     = "panchayaths"
	ResourceAgents          = "agents"
	ResourceManagementTeams = "management_teams"
	ResourceAuditLogs       = "audit_logs"
	ResourceReports         = "reports"
)

// defaultRequirements preserves the access rules observed in the source system.
// Settings and the directory resources are writable by any active admin; this
// is looser than least privilege but is deliberate observed behavior, and can
// be tightened per deployment via Evaluator overrides.
var defaultRequirements = map[string]Requirement{
	ResourceAdmins:          SuperAdminOnly,
	ResourceGrants:          SuperAdminOnly,
	ResourceSettings:        ActiveOnly,
	ResourcePanchayaths:     ActiveOnly,
	ResourceAgents:          ActiveOnly,
	ResourceManagementTeams: ActiveOnly,
	ResourceAuditLogs:       ActiveOnly,
	ResourceReports:         ActiveOnly,
}

// Evaluator authorizes operations against per-resource requirements.
// The zero value is not usable; construct with NewEvaluator.
type Evaluator struct {
	requirements map[string]Requirement
}

// NewEvaluator creates an Evaluator with the built-in requirement table.
// Resources listed in superAdminOverrides are raised to SuperAdminOnly,
// allowing deployments to tighten the observed any-active-admin rules.
func NewEvaluator(superAdminOverrides []string) *Evaluator {
	requirements := make(map[string]Requirement, len(defaultRequirements))
	for resource, requirement := range defaultRequirements {
		requirements[resource] = requirement
	}
	for _, resource := range superAdminOverrides {
		requirements[resource] = SuperAdminOnly
	}

	return &Evaluator{requirements: requirements}
}

// Requirement returns the effective requirement for a resource.
// Unknown resources default to SuperAdminOnly: deny-by-default.
func (e *Evaluator) Requirement(resource string) Requirement {
	if requirement, ok := e.requirements[resource]; ok {
		return requirement
	}
	return SuperAdminOnly
}

// Authorize reports whether the actor may operate on the resource.
//
// A nil actor means the request was never authenticated and yields
// ErrUnauthorized. An inactive actor is denied every operation. An active
// actor lacking the required role yields ErrForbidden without revealing
// which check failed.
func (e *Evaluator) Authorize(actor *identityDomain.Admin, resource string) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	if !actor.IsActive {
		return apperrors.ErrForbidden
	}

	if e.Requirement(resource) == SuperAdminOnly && actor.Role != identityDomain.RoleSuperAdmin {
		return apperrors.ErrForbidden
	}

	return nil
}

// AuthorizeRead reports whether the actor may read resources. Reads are open
// to every authenticated active administrator; the per-resource role
// requirements apply to mutations only.
func (e *Evaluator) AuthorizeRead(actor *identityDomain.Admin) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	if !actor.IsActive {
		return apperrors.ErrForbidden
	}

	return nil
}
