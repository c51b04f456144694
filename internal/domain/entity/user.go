package entity

import "time"

// Role is the authorization role of a user within its tenant.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User is the aggregate root for the user domain.
// (Email, TenantID) is unique; the same email may exist under different tenants.
//
// RefreshFingerprint holds a bcrypt hash of the sha256 digest of the user's
// current refresh token. It is empty exactly when the user holds no valid
// session (logged out or never logged in).
type User struct {
	ID                 string
	TenantID           string
	Email              string
	Name               string
	PasswordHash       string
	Role               Role
	XP                 int
	Level              int
	AvatarURL          string
	RefreshFingerprint string // empty means revoked / no session
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LevelForXP computes the level for a given XP total.
func LevelForXP(xp int) int {
	return xp/100 + 1
}
