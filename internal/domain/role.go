package domain

// Role enumerates the personnel categories a token may carry.
type Role string

const (
	RoleMaster             Role = "master"
	RoleDirector           Role = "director"
	RoleAdmin              Role = "admin"
	RoleCallcentreAdmin    Role = "callcentre_admin"
	RoleCallcentreOperator Role = "callcentre_operator"
)

var knownRoles = map[Role]struct{}{
	RoleMaster:             {},
	RoleDirector:           {},
	RoleAdmin:              {},
	RoleCallcentreAdmin:    {},
	RoleCallcentreOperator: {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
