package domain

import (
	"strconv"
	"strings"
)

// PolicyKind tags the variant of an AuthorizationPolicy.
type PolicyKind int

const (
	PolicyPublic PolicyKind = iota
	PolicyRequireRole
	PolicyRequireAnyRole
	PolicySelfOrAdmin
)

// Policy is the access rule bound to a single (verb, path template) route.
type Policy struct {
	Kind  PolicyKind
	Roles []Role
}

// Public allows everyone, authenticated or not.
func Public() Policy { return Policy{Kind: PolicyPublic} }

// RequireRole allows principals holding r.
func RequireRole(r Role) Policy {
	return Policy{Kind: PolicyRequireRole, Roles: []Role{r}}
}

// RequireAnyRole allows principals holding at least one of roles.
func RequireAnyRole(roles ...Role) Policy {
	return Policy{Kind: PolicyRequireAnyRole, Roles: append([]Role(nil), roles...)}
}

// SelfOrAdmin allows the principal whose id equals the "id" path variable,
// and any admin.
func SelfOrAdmin() Policy { return Policy{Kind: PolicySelfOrAdmin} }

// String is used as a metrics label and in logs.
func (p Policy) String() string {
	switch p.Kind {
	case PolicyPublic:
		return "public"
	case PolicyRequireRole, PolicyRequireAnyRole:
		names := make([]string, len(p.Roles))
		for i, r := range p.Roles {
			names[i] = string(r)
		}
		return "roles:" + strings.Join(names, "|")
	case PolicySelfOrAdmin:
		return "self_or_admin"
	default:
		return "unknown"
	}
}

// Decide returns whether principal may proceed under policy. principal is
// nil for anonymous requests. pathVars holds the route's path parameters.
func Decide(principal *Principal, policy Policy, pathVars map[string]string) bool {
	switch policy.Kind {
	case PolicyPublic:
		return true
	case PolicyRequireRole, PolicyRequireAnyRole:
		return principal != nil && principal.HasAnyAuthority(policy.Roles...)
	case PolicySelfOrAdmin:
		if principal == nil {
			return false
		}
		owns := false
		if pathID, err := strconv.ParseInt(pathVars["id"], 10, 64); err == nil {
			owns = pathID == principal.UserID
		}
		return owns || principal.IsAdmin()
	default:
		return false
	}
}

// CanAccessOwned applies SelfOrAdmin to a record owned by ownerID.
func CanAccessOwned(principal *Principal, ownerID int64) bool {
	return Decide(principal, SelfOrAdmin(), map[string]string{"id": strconv.FormatInt(ownerID, 10)})
}
