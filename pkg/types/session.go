package types

// Role is a user's access level. Only administrators may change the
// category schema; every role may create, edit, and delete items.
// This is a UX gate, not a security boundary.
type Role string

// Roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Capability names an action gated by role.
type Capability string

// Capabilities.
const (
	ManageCategories Capability = "manage_categories"
	ManageItems      Capability = "manage_items"
)

// Session identifies who is acting. It is passed explicitly to every
// operation that needs it rather than read from ambient state.
type Session struct {
	User string `json:"user"`
	Role Role   `json:"role"`
}

// ParseRole validates a role name. The empty string maps to RoleAdmin, the
// role of a single local user.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", ErrInvalidRole
	}
}

// Can reports whether the session may perform the capability.
func (s Session) Can(c Capability) bool {
	switch c {
	case ManageItems:
		return s.Role == RoleAdmin || s.Role == RoleUser
	case ManageCategories:
		return s.Role == RoleAdmin
	default:
		return false
	}
}

// Require returns ErrForbidden when the session lacks the capability.
func (s Session) Require(c Capability) error {
	if !s.Can(c) {
		return ErrForbidden
	}
	return nil
}
