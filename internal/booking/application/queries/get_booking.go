package queries

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	"github.com/google/uuid"
)

// GetBookingQuery fetches one booking by ID.
type GetBookingQuery struct {
	BookingID uuid.UUID
}

// GetBookingHandler handles GetBookingQuery.
type GetBookingHandler struct {
	bookings domain.Repository
}

// NewGetBookingHandler creates a new GetBookingHandler.
func NewGetBookingHandler(bookings domain.Repository) *GetBookingHandler {
	return &GetBookingHandler{bookings: bookings}
}

// Handle executes the query.
func (h *GetBookingHandler) Handle(ctx context.Context, query GetBookingQuery) (*domain.Booking, error) {
	booking, err := h.bookings.FindByID(ctx, query.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}
