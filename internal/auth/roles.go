package auth

import (
	"github.com/spec-kit/users-service/internal/domain"
)

// RoutePolicy is the static role requirement attached to a route at registration.
// A policy with no roles admits any authenticated caller.
type RoutePolicy struct {
	Roles []domain.Role
}

// AllowRoles declares the roles permitted to call a route.
func AllowRoles(roles ...domain.Role) RoutePolicy {
	return RoutePolicy{Roles: roles}
}

// AnyAuthenticated admits every authenticated principal.
func AnyAuthenticated() RoutePolicy {
	return RoutePolicy{}
}

// Authorize returns ErrForbiddenRole unless the principal's role is in the policy.
func (p RoutePolicy) Authorize(principal *domain.Principal) error {
	if len(p.Roles) == 0 {
		return nil
	}
	if !principal.HasRole(p.Roles...) {
		return ErrForbiddenRole
	}
	return nil
}

// RequireOwnership restricts principals holding one of the scoped roles to their own
// resource. With no scoped roles every principal is restricted.
func RequireOwnership(principal *domain.Principal, ownerID int64, scoped ...domain.Role) error {
	if principal == nil {
		return ErrForbiddenOwnership
	}
	if len(scoped) > 0 && !principal.HasRole(scoped...) {
		return nil
	}
	if principal.SubjectID != ownerID {
		return ErrForbiddenOwnership
	}
	return nil
}

// ForbidSelfAction is the inverse of RequireOwnership: principals holding a scoped
// role may not target themselves (for example, delete their own account).
func ForbidSelfAction(principal *domain.Principal, targetID int64, scoped ...domain.Role) error {
	if principal == nil {
		return ErrForbiddenOwnership
	}
	if len(scoped) > 0 && !principal.HasRole(scoped...) {
		return nil
	}
	if principal.SubjectID == targetID {
		return ErrForbiddenSelfAction
	}
	return nil
}

// ScopeCities narrows a list query's city filter to what the principal may see.
// Unrestricted principals get requested back unchanged (nil means no filter).
// Restricted principals get the intersection; an empty non-nil result means nothing
// is visible. Out-of-scope cities are dropped silently rather than rejected.
func ScopeCities(principal *domain.Principal, requested []string) []string {
	if !principal.CityRestricted() {
		return requested
	}
	if len(requested) == 0 {
		return append([]string(nil), principal.Cities...)
	}

	allowed := make(map[string]struct{}, len(principal.Cities))
	for _, city := range principal.Cities {
		allowed[city] = struct{}{}
	}
	narrowed := make([]string, 0, len(requested))
	for _, city := range requested {
		if _, ok := allowed[city]; ok {
			narrowed = append(narrowed, city)
		}
	}
	return narrowed
}
