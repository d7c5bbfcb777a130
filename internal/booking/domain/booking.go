package domain

import (
	"fmt"
	"time"

	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of a booking.
type Status string

const (
	// StatusPending means the booking awaits the provider's confirmation.
	StatusPending Status = "pending"
	// StatusConfirmed means the provider accepted the booking.
	StatusConfirmed Status = "confirmed"
	// StatusCompleted means the service was delivered.
	StatusCompleted Status = "completed"
	// StatusCancelled means the booking was called off.
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the booking still holds its slot. Active bookings
// are the ones that count for conflict checks.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsValid reports whether the status is one of the known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is the aggregate root for a customer's appointment with a
// provider. The state machine is Pending -> Confirmed -> Completed, with
// Cancelled reachable from both non-terminal states.
type Booking struct {
	shared.BaseAggregateRoot
	customerID   uuid.UUID
	providerID   uuid.UUID
	offeringID   uuid.UUID
	slot         shared.TimeSlot
	status       Status
	price        shared.Money
	notes        string
	cancelReason string
}

// NewBooking creates a pending booking after validating it against the
// provider. The slot conflict check is deliberately not part of construction;
// it must run inside the same transaction that persists the booking.
func NewBooking(
	customerID uuid.UUID,
	provider *providerDomain.Provider,
	offering *providerDomain.Offering,
	slot shared.TimeSlot,
	notes string,
	now time.Time,
) (*Booking, error) {
	if slot.IsOnPastDate(now) {
		return nil, fmt.Errorf("%w: date cannot be in the past", ErrInvalidBooking)
	}
	if !provider.AcceptingBookings() {
		return nil, fmt.Errorf("%w: provider is not accepting bookings", ErrInvalidBooking)
	}
	if provider.OwnerID() == customerID {
		return nil, fmt.Errorf("%w: providers cannot book their own services", ErrInvalidBooking)
	}
	if offering.ProviderID() != provider.ID() {
		return nil, fmt.Errorf("%w: service does not belong to this provider", ErrInvalidBooking)
	}
	if !offering.IsActive() {
		return nil, fmt.Errorf("%w: service is not active", ErrInvalidBooking)
	}
	// Rehydrated offerings bypass construction-time validation, so the price
	// is checked again here before it is copied onto the booking.
	if !offering.Price().IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidBooking)
	}
	if !provider.Schedule().IsWithin(slot) {
		return nil, fmt.Errorf("%w: slot is outside the provider's working hours", ErrInvalidBooking)
	}

	return &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		customerID:        customerID,
		providerID:        provider.ID(),
		offeringID:        offering.ID(),
		slot:              slot,
		status:            StatusPending,
		price:             offering.Price(),
		notes:             notes,
	}, nil
}

// RehydrateBooking recreates a booking from persisted state.
func RehydrateBooking(
	id uuid.UUID,
	customerID uuid.UUID,
	providerID uuid.UUID,
	offeringID uuid.UUID,
	slot shared.TimeSlot,
	status Status,
	price shared.Money,
	notes string,
	cancelReason string,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(shared.RehydrateBaseEntity(id, createdAt, updatedAt)),
		customerID:        customerID,
		providerID:        providerID,
		offeringID:        offeringID,
		slot:              slot,
		status:            status,
		price:             price,
		notes:             notes,
		cancelReason:      cancelReason,
	}
}

func (b *Booking) CustomerID() uuid.UUID { return b.customerID }
func (b *Booking) ProviderID() uuid.UUID { return b.providerID }
func (b *Booking) OfferingID() uuid.UUID { return b.offeringID }
func (b *Booking) Slot() shared.TimeSlot { return b.slot }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) Price() shared.Money   { return b.price }
func (b *Booking) Notes() string         { return b.notes }
func (b *Booking) CancelReason() string  { return b.cancelReason }

// UpdateStatus applies a status transition on behalf of an actor. Customers
// may only cancel; any other target is forbidden for them before the state
// machine is even consulted.
func (b *Booking) UpdateStatus(target Status, actor Actor, now time.Time) error {
	if actor.IsCustomer() && target != StatusCancelled {
		return &ForbiddenError{Actor: actor, Action: fmt.Sprintf("set booking status to %s", target)}
	}

	switch target {
	case StatusConfirmed:
		return b.Confirm(actor)
	case StatusCompleted:
		return b.Complete(actor, now)
	case StatusCancelled:
		return b.Cancel(actor, "")
	default:
		return &InvalidTransitionError{From: b.status, To: target, Actor: actor}
	}
}

// Confirm moves a pending booking to confirmed. Only the provider may confirm.
func (b *Booking) Confirm(actor Actor) error {
	if actor.IsCustomer() {
		return &ForbiddenError{Actor: actor, Action: "confirm a booking"}
	}
	if !actor.IsProvider() {
		return &InvalidTransitionError{From: b.status, To: StatusConfirmed, Actor: actor}
	}
	if b.status != StatusPending {
		return &InvalidTransitionError{From: b.status, To: StatusConfirmed, Actor: actor}
	}

	b.status = StatusConfirmed
	b.Touch()
	b.AddDomainEvent(NewBookingScheduledEvent(b))
	return nil
}

// Complete moves a confirmed booking to completed once its start time has
// passed. Only the provider may mark the service as delivered.
func (b *Booking) Complete(actor Actor, now time.Time) error {
	if actor.IsCustomer() {
		return &ForbiddenError{Actor: actor, Action: "complete a booking"}
	}
	if !actor.IsProvider() {
		return &InvalidTransitionError{From: b.status, To: StatusCompleted, Actor: actor}
	}
	if b.status != StatusConfirmed {
		return &InvalidTransitionError{From: b.status, To: StatusCompleted, Actor: actor}
	}
	if now.Before(b.slot.StartTime()) {
		return ErrBookingNotStarted
	}

	b.status = StatusCompleted
	b.Touch()
	b.AddDomainEvent(NewBookingCompletedEvent(b))
	return nil
}

// Cancel calls off a booking. Customer and provider may both cancel any
// non-terminal booking; cancelling frees the slot for other customers.
func (b *Booking) Cancel(actor Actor, reason string) error {
	if !actor.IsCustomer() && !actor.IsProvider() {
		return &ForbiddenError{Actor: actor, Action: "cancel a booking"}
	}
	if b.status.IsTerminal() {
		return &InvalidTransitionError{From: b.status, To: StatusCancelled, Actor: actor}
	}

	b.status = StatusCancelled
	b.cancelReason = reason
	b.Touch()
	b.AddDomainEvent(NewBookingCancelledEvent(b, actor))
	return nil
}
