package model

import (
	"time"

	"github.com/google/uuid"
)

// Event carries a denormalized participants_count kept in lockstep with the
// memberships table by the registration service.
type Event struct {
	ID                int       `json:"id" db:"id"`
	EventID           uuid.UUID `json:"event_id" db:"event_id"`
	Title             string    `json:"title" db:"title"`
	Description       *string   `json:"description,omitempty" db:"description"`
	Location          *string   `json:"location,omitempty" db:"location"`
	Capacity          *int      `json:"capacity,omitempty" db:"capacity"`
	ParticipantsCount int       `json:"participants_count" db:"participants_count"`
	StartDate         time.Time `json:"start_date" db:"start_date"`
	EndDate           time.Time `json:"end_date" db:"end_date"`
	CreatedBy         int       `json:"created_by" db:"created_by"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// HasEnded reports whether the event finished before the given time.
func (e *Event) HasEnded(now time.Time) bool {
	return e.EndDate.Before(now)
}

// IsFull reports whether capacity is set and reached. Nil capacity means
// unlimited.
func (e *Event) IsFull() bool {
	return e.Capacity != nil && e.ParticipantsCount >= *e.Capacity
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Capacity    *int      `json:"capacity,omitempty" binding:"omitempty,min=1"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type UpdateEventParams struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Capacity    *int       `json:"capacity,omitempty" binding:"omitempty,min=1"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}
