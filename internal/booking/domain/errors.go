package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBooking is returned when a booking fails construction-time validation.
	ErrInvalidBooking = errors.New("invalid booking")

	// ErrSlotUnavailable is returned when the requested slot conflicts with
	// an active booking, whether detected by the conflict check or by the
	// storage layer at commit time.
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrBookingNotFound is returned when no booking exists for an ID.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotStarted is returned when a provider tries to complete a
	// booking before its start time.
	ErrBookingNotStarted = errors.New("booking has not started yet")

	// ErrActorNotRelated is returned when the acting user is neither the
	// booking's customer nor the booked provider's owner.
	ErrActorNotRelated = errors.New("actor is not a party to this booking")
)

// ForbiddenError is returned when an actor's role does not permit the
// attempted operation, regardless of the booking's current status.
type ForbiddenError struct {
	Actor  Actor
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s is not allowed to %s", e.Actor, e.Action)
}

// InvalidTransitionError is returned when the status state machine rejects a
// transition that the actor would otherwise be permitted to make. It carries
// the actor so callers can report who attempted the transition.
type InvalidTransitionError struct {
	From  Status
	To    Status
	Actor Actor
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition booking from %s to %s", e.Actor, e.From, e.To)
}
