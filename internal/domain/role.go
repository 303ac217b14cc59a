package domain

// Role enumerates the fixed set of account roles.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleSupport Role = "SUPPORT"
	RoleUser    Role = "USER"
)

// Known reports whether the role is one of the fixed enumeration values.
func (r Role) Known() bool {
	switch r {
	case RoleManager, RoleSupport, RoleUser:
		return true
	}
	return false
}
