package domain

import "time"

// Role is one of the fixed access levels a user can hold.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

var allowedRoles = map[Role]struct{}{
	RoleEmployee: {},
	RoleManager:  {},
	RoleAdmin:    {},
}

// IsValid reports whether r belongs to the role enumeration. Matching is
// case-sensitive.
func (r Role) IsValid() bool {
	_, ok := allowedRoles[r]
	return ok
}

// FilterRoles keeps the recognised roles in input order and drops the rest.
// Duplicates are collapsed.
func FilterRoles(raw []string) []Role {
	out := make([]Role, 0, len(raw))
	seen := make(map[Role]struct{}, len(raw))
	for _, s := range raw {
		r := Role(s)
		if !r.IsValid() {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// User models an account that can own notes.
type User struct {
	ID           string
	Username     string
	PasswordHash string `json:"-"`
	Roles        []Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u *User) HasAnyRole(roles ...Role) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
