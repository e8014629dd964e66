package model

import "time"

// RegistrationAction is the transition recorded in the append-only log.
type RegistrationAction string

const (
	ActionRegistered RegistrationAction = "registered"
	ActionWithdrawn  RegistrationAction = "withdrawn"
	ActionRemoved    RegistrationAction = "removed"
)

// RegistrationLogEntry preserves membership history across hard deletes.
// Written in the same transaction as the membership change it records.
type RegistrationLogEntry struct {
	ID      int                `json:"id" db:"id"`
	EventID int                `json:"event_id" db:"event_id"`
	UserID  int                `json:"user_id" db:"user_id"`
	Action  RegistrationAction `json:"action" db:"action"`
	// ActorID is set when an administrator performed the change on behalf
	// of the user.
	ActorID   *int      `json:"actor_id,omitempty" db:"actor_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
