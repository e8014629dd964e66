package apperrors

import "errors"

// Sentinel errors for the business taxonomy. Handlers map these to HTTP
// statuses with errors.Is; callers never need to parse messages.
var (
	// Not found
	ErrEventNotFound       = errors.New("event not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrMembershipNotFound  = errors.New("user is not registered for this event")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTagNotFound         = errors.New("tag not found")

	// Forbidden
	ErrAdminCannotRegister = errors.New("administrators cannot participate in events")

	// Conflict
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrDuplicateName     = errors.New("a resource with this name already exists")

	// Invalid state
	ErrEventEnded       = errors.New("event has already ended")
	ErrInvalidDateRange = errors.New("event end date must be after start date")
	ErrCapacityBelowEnrollment = errors.New("capacity cannot be lower than current participant count")

	// Capacity
	ErrEventFull = errors.New("event has reached its capacity")

	// Input / infrastructure
	ErrInvalidInput    = errors.New("invalid input")
	ErrCounterOutOfSync = errors.New("participant counter out of sync with memberships")
	ErrRateLimited      = errors.New("too many requests")
)
