package domain

import "time"

// Principal is the authenticated identity derived from a verified token.
// It is built per request and never persisted.
type Principal struct {
	SubjectID int64
	Login     string
	Role      Role
	Cities    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the principal carries any of the given roles.
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// CityRestricted reports whether list queries must be narrowed to the principal's cities.
func (p *Principal) CityRestricted() bool {
	return p != nil && len(p.Cities) > 0
}
