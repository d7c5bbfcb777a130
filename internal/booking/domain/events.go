package domain

import (
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "booking"

// Routing keys for booking lifecycle events.
const (
	BookingScheduledRoutingKey = "booking.scheduled"
	BookingCancelledRoutingKey = "booking.cancelled"
	BookingCompletedRoutingKey = "booking.completed"
)

// BookingScheduledEvent is emitted when the provider confirms a booking.
type BookingScheduledEvent struct {
	shared.BaseEvent
	BookingID    uuid.UUID `json:"booking_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	ProviderID   uuid.UUID `json:"provider_id"`
	OfferingID   uuid.UUID `json:"offering_id"`
	Date         string    `json:"date"`
	StartMinutes int       `json:"start_minutes"`
	EndMinutes   int       `json:"end_minutes"`
	PriceAmount  int64     `json:"price_amount"`
	Currency     string    `json:"currency"`
}

// NewBookingScheduledEvent creates a BookingScheduledEvent.
func NewBookingScheduledEvent(b *Booking) *BookingScheduledEvent {
	return &BookingScheduledEvent{
		BaseEvent:    shared.NewBaseEvent(b.ID(), aggregateType, BookingScheduledRoutingKey),
		BookingID:    b.ID(),
		CustomerID:   b.CustomerID(),
		ProviderID:   b.ProviderID(),
		OfferingID:   b.OfferingID(),
		Date:         b.Slot().Date().Format("2006-01-02"),
		StartMinutes: int(b.Slot().Start().Minutes()),
		EndMinutes:   int(b.Slot().End().Minutes()),
		PriceAmount:  b.Price().Amount(),
		Currency:     b.Price().Currency(),
	}
}

// BookingCancelledEvent is emitted when a booking is called off.
type BookingCancelledEvent struct {
	shared.BaseEvent
	BookingID    uuid.UUID `json:"booking_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	ProviderID   uuid.UUID `json:"provider_id"`
	Date         string    `json:"date"`
	StartMinutes int       `json:"start_minutes"`
	EndMinutes   int       `json:"end_minutes"`
	CancelledBy  string    `json:"cancelled_by"`
	Reason       string    `json:"reason,omitempty"`
}

// NewBookingCancelledEvent creates a BookingCancelledEvent.
func NewBookingCancelledEvent(b *Booking, actor Actor) *BookingCancelledEvent {
	return &BookingCancelledEvent{
		BaseEvent:    shared.NewBaseEvent(b.ID(), aggregateType, BookingCancelledRoutingKey),
		BookingID:    b.ID(),
		CustomerID:   b.CustomerID(),
		ProviderID:   b.ProviderID(),
		Date:         b.Slot().Date().Format("2006-01-02"),
		StartMinutes: int(b.Slot().Start().Minutes()),
		EndMinutes:   int(b.Slot().End().Minutes()),
		CancelledBy:  string(actor.Role()),
		Reason:       b.CancelReason(),
	}
}

// BookingCompletedEvent is emitted when the service is delivered.
type BookingCompletedEvent struct {
	shared.BaseEvent
	BookingID   uuid.UUID `json:"booking_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	OfferingID  uuid.UUID `json:"offering_id"`
	PriceAmount int64     `json:"price_amount"`
	Currency    string    `json:"currency"`
}

// NewBookingCompletedEvent creates a BookingCompletedEvent.
func NewBookingCompletedEvent(b *Booking) *BookingCompletedEvent {
	return &BookingCompletedEvent{
		BaseEvent:   shared.NewBaseEvent(b.ID(), aggregateType, BookingCompletedRoutingKey),
		BookingID:   b.ID(),
		CustomerID:  b.CustomerID(),
		ProviderID:  b.ProviderID(),
		OfferingID:  b.OfferingID(),
		PriceAmount: b.Price().Amount(),
		Currency:    b.Price().Currency(),
	}
}
