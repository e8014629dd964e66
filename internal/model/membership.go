package model

import "time"

// MembershipStatus is the state of one event membership.
type MembershipStatus string

const (
	MembershipStatusRegistered MembershipStatus = "registered"
	MembershipStatusAttended   MembershipStatus = "attended"
	MembershipStatusCancelled  MembershipStatus = "cancelled"
	// Waitlisted exists as a value but no promotion path is implemented.
	MembershipStatusWaitlisted MembershipStatus = "waitlisted"
)

// IsValid checks whether the status is a known value.
func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusRegistered, MembershipStatusAttended,
		MembershipStatusCancelled, MembershipStatusWaitlisted:
		return true
	}
	return false
}

// Membership links one user to one event. A row's existence denotes
// liveness: withdrawal deletes the row rather than flipping the status.
type Membership struct {
	ID               int              `json:"id" db:"id"`
	EventID          int              `json:"event_id" db:"event_id"`
	UserID           int              `json:"user_id" db:"user_id"`
	Status           MembershipStatus `json:"status" db:"status"`
	RegistrationDate time.Time        `json:"registration_date" db:"registration_date"`
	Notes            *string          `json:"notes,omitempty" db:"notes"`
}

// Participant is a membership joined with the user's identity fields, the
// shape returned by Register and by the participant listing.
type Participant struct {
	ID               int              `json:"id" db:"id"`
	EventID          int              `json:"event_id" db:"event_id"`
	UserID           int              `json:"user_id" db:"user_id"`
	UserName         string           `json:"user_name" db:"user_name"`
	UserEmail        string           `json:"user_email" db:"user_email"`
	Status           MembershipStatus `json:"status" db:"status"`
	RegistrationDate time.Time        `json:"registration_date" db:"registration_date"`
	Notes            *string          `json:"notes,omitempty" db:"notes"`
}

type RegisterRequest struct {
	Notes *string `json:"notes,omitempty"`
}
