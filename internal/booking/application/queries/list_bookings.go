package queries

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	"github.com/google/uuid"
)

// defaultListLimit caps list queries that do not ask for a page size.
const defaultListLimit = 50

// ListBookingsQuery lists the bookings of a customer or a provider. Exactly
// one of the two IDs should be set; when both are, the customer wins.
type ListBookingsQuery struct {
	CustomerID uuid.UUID
	ProviderID uuid.UUID
	// Status narrows the result to one lifecycle state when set.
	Status domain.Status
	// Limit caps the page size; non-positive values fall back to the default.
	Limit int
	// Offset skips that many bookings from the newest.
	Offset int
}

// ListBookingsHandler handles ListBookingsQuery.
type ListBookingsHandler struct {
	bookings domain.Repository
}

// NewListBookingsHandler creates a new ListBookingsHandler.
func NewListBookingsHandler(bookings domain.Repository) *ListBookingsHandler {
	return &ListBookingsHandler{bookings: bookings}
}

// Handle executes the query.
func (h *ListBookingsHandler) Handle(ctx context.Context, query ListBookingsQuery) ([]*domain.Booking, error) {
	var (
		bookings []*domain.Booking
		err      error
	)

	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	switch {
	case query.CustomerID != uuid.Nil:
		bookings, err = h.bookings.FindByCustomerID(ctx, query.CustomerID, limit, offset)
	case query.ProviderID != uuid.Nil:
		bookings, err = h.bookings.FindByProviderID(ctx, query.ProviderID, limit, offset)
	default:
		return nil, fmt.Errorf("either a customer or a provider must be given")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	if query.Status == "" {
		return bookings, nil
	}

	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Status() == query.Status {
			filtered = append(filtered, booking)
		}
	}
	return filtered, nil
}
