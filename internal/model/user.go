package model

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid checks whether the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Capability names an action a role may perform. Authorization decisions go
// through Can instead of comparing role strings at call sites.
type Capability string

const (
	CapParticipate        Capability = "participate"
	CapManageParticipants Capability = "manage_participants"
)

func (r Role) Can(c Capability) bool {
	switch c {
	case CapParticipate:
		return r == RoleUser
	case CapManageParticipants:
		return r == RoleAdmin
	}
	return false
}

type User struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
