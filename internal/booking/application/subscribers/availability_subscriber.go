package subscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/application/commands"
	"github.com/emreakdogan/randevu/internal/booking/domain"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// AvailabilitySubscriber invalidates cached day plans when a booking event
// changes what is free on a provider's calendar. A cancellation reopens the
// slot, so stale cached plans would hide it from customers.
type AvailabilitySubscriber struct {
	cache  commands.AvailabilityInvalidator
	logger *slog.Logger
}

// NewAvailabilitySubscriber creates an AvailabilitySubscriber.
func NewAvailabilitySubscriber(cache commands.AvailabilityInvalidator, logger *slog.Logger) *AvailabilitySubscriber {
	return &AvailabilitySubscriber{cache: cache, logger: logger}
}

// EventTypes returns the routing keys this subscriber handles.
func (s *AvailabilitySubscriber) EventTypes() []string {
	return []string{
		domain.BookingScheduledRoutingKey,
		domain.BookingCancelledRoutingKey,
	}
}

type slotEventPayload struct {
	ProviderID uuid.UUID `json:"provider_id"`
	Date       string    `json:"date"`
}

// Handle drops the provider's cached plans for the event's date.
func (s *AvailabilitySubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload slotEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", event.RoutingKey, err)
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return fmt.Errorf("failed to parse date in %s payload: %w", event.RoutingKey, err)
	}

	s.cache.Invalidate(ctx, payload.ProviderID, date)
	s.logger.Debug("invalidated availability cache",
		"provider_id", payload.ProviderID,
		"date", payload.Date,
		"routing_key", event.RoutingKey,
	)
	return nil
}
