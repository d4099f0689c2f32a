package models

// Role identifies which kind of profile is currently driving the app
type Role string

const (
	RoleNone    Role = ""
	RoleKid     Role = "kid"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// CanSendChat reports whether this role is allowed to send chat messages.
// Kids and admins can read conversations but never write to them.
func (r Role) CanSendChat() bool {
	return r == RoleParent || r == RoleTeacher
}

// Valid reports whether the role is one of the known values
func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleKid, RoleParent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}
