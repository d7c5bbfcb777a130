package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for bookings.
//
// Save must translate storage-level slot conflicts into ErrSlotUnavailable
// so two concurrent commits for overlapping slots cannot both succeed.
type Repository interface {
	// Save persists a booking.
	Save(ctx context.Context, booking *Booking) error

	// FindByID retrieves a booking by its ID. Returns nil if not found.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindActiveByProviderAndDate retrieves the pending and confirmed
	// bookings of a provider on a calendar day. Cancelled and completed
	// bookings do not hold slots and are excluded.
	FindActiveByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*Booking, error)

	// FindByCustomerID retrieves a page of the bookings placed by a customer,
	// newest first.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*Booking, error)

	// FindByProviderID retrieves a page of a provider's bookings, newest first.
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*Booking, error)
}
