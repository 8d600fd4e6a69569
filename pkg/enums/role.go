package enums

import "fmt"

// Role is the closed set of directory roles, stored as the integer
// role_id referencing the roles lookup table.
type Role int

const (
	RoleAdministrator Role = 1
	RoleMember        Role = 2
)

var validRoles = []Role{
	RoleAdministrator,
	RoleMember,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "administrator"
	case RoleMember:
		return "member"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts a raw role_id into a Role.
func ParseRole(value int) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return 0, fmt.Errorf("invalid role id %d", value)
	}
	return role, nil
}
