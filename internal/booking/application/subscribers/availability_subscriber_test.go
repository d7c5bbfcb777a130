package subscribers

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	providerIDs []uuid.UUID
	dates       []time.Time
}

func (i *recordingInvalidator) Invalidate(ctx context.Context, providerID uuid.UUID, date time.Time) {
	i.providerIDs = append(i.providerIDs, providerID)
	i.dates = append(i.dates, date)
}

func TestAvailabilitySubscriber_EventTypes(t *testing.T) {
	s := NewAvailabilitySubscriber(&recordingInvalidator{}, slog.Default())

	assert.ElementsMatch(t, []string{
		domain.BookingScheduledRoutingKey,
		domain.BookingCancelledRoutingKey,
	}, s.EventTypes())
}

func TestAvailabilitySubscriber_Handle(t *testing.T) {
	invalidator := &recordingInvalidator{}
	s := NewAvailabilitySubscriber(invalidator, slog.Default())

	providerID := uuid.New()
	payload, err := json.Marshal(map[string]string{
		"provider_id": providerID.String(),
		"date":        "2026-09-07",
	})
	require.NoError(t, err)

	err = s.Handle(context.Background(), &eventbus.ConsumedEvent{
		RoutingKey: domain.BookingCancelledRoutingKey,
		Payload:    payload,
	})

	require.NoError(t, err)
	require.Len(t, invalidator.providerIDs, 1)
	assert.Equal(t, providerID, invalidator.providerIDs[0])
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), invalidator.dates[0])
}

func TestAvailabilitySubscriber_Handle_BadPayload(t *testing.T) {
	invalidator := &recordingInvalidator{}
	s := NewAvailabilitySubscriber(invalidator, slog.Default())

	t.Run("invalid json", func(t *testing.T) {
		err := s.Handle(context.Background(), &eventbus.ConsumedEvent{
			RoutingKey: domain.BookingScheduledRoutingKey,
			Payload:    json.RawMessage(`not json`),
		})
		assert.Error(t, err)
	})

	t.Run("unparseable date", func(t *testing.T) {
		err := s.Handle(context.Background(), &eventbus.ConsumedEvent{
			RoutingKey: domain.BookingScheduledRoutingKey,
			Payload:    json.RawMessage(`{"provider_id":"` + uuid.NewString() + `","date":"soon"}`),
		})
		assert.Error(t, err)
	})

	assert.Empty(t, invalidator.providerIDs)
}

func TestAvailabilitySubscriber_HandlesOutboxPayload(t *testing.T) {
	// End to end through the in-process bus: a cancelled event published from
	// the outbox reaches the subscriber and drops the day's cache.
	invalidator := &recordingInvalidator{}
	bus := eventbus.NewInProcessEventBus(slog.Default())
	bus.RegisterConsumer(NewAvailabilitySubscriber(invalidator, slog.Default()))

	providerID := uuid.New()
	payload, err := json.Marshal(map[string]any{
		"provider_id":   providerID.String(),
		"date":          "2026-09-07",
		"start_minutes": 600,
		"end_minutes":   630,
		"cancelled_by":  "customer",
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), domain.BookingCancelledRoutingKey, payload))

	require.Len(t, invalidator.providerIDs, 1)
	assert.Equal(t, providerID, invalidator.providerIDs[0])
}
