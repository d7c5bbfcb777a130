package services

import (
	"context"
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
)

// ConflictChecker answers whether a slot collides with an active booking.
// Only pending and confirmed bookings hold slots; cancelled and completed
// ones never conflict. Because the interval algebra is half-open, a booking
// ending exactly when another starts is not a conflict.
type ConflictChecker struct {
	bookings domain.Repository
}

// NewConflictChecker creates a ConflictChecker.
func NewConflictChecker(bookings domain.Repository) *ConflictChecker {
	return &ConflictChecker{bookings: bookings}
}

// DayConflicts holds a provider's active bookings for one calendar day so
// many candidate slots can be tested without further repository round trips.
type DayConflicts struct {
	active []*domain.Booking
}

// Blocks reports whether the slot overlaps any booking in the set.
func (d DayConflicts) Blocks(slot shared.TimeSlot) bool {
	for _, booking := range d.active {
		if booking.Slot().Overlaps(slot) {
			return true
		}
	}
	return false
}

// ForDay loads the provider's active bookings on the given day.
func (c *ConflictChecker) ForDay(ctx context.Context, providerID uuid.UUID, date time.Time) (DayConflicts, error) {
	active, err := c.bookings.FindActiveByProviderAndDate(ctx, providerID, shared.DateOf(date))
	if err != nil {
		return DayConflicts{}, fmt.Errorf("failed to load active bookings: %w", err)
	}
	return DayConflicts{active: active}, nil
}

// HasConflict reports whether the slot overlaps any active booking of the
// provider on the slot's day.
func (c *ConflictChecker) HasConflict(ctx context.Context, providerID uuid.UUID, slot shared.TimeSlot) (bool, error) {
	taken, err := c.ForDay(ctx, providerID, slot.Date())
	if err != nil {
		return false, err
	}
	return taken.Blocks(slot), nil
}
