package domain

import "time"

// Role is the permission level granted by an access code.
// There is no per-user identity; a code is the whole credential.
type Role string

// Access roles, from most to least privileged.
const (
	RoleAdmin Role = "admin"
	RoleMod   Role = "mod"
	RoleUser  Role = "user"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMod || r == RoleUser
}

// CanEdit reports whether the role may create and update texts and vocabulary.
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleMod
}

// AccessCode is an opaque bearer credential mapped to a role.
// Codes are revoked by deactivation, never physically deleted, so the audit
// trail of who issued what survives.
type AccessCode struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Role      Role      `json:"role"`
	Label     string    `json:"label"`
	Active    bool      `json:"active"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
