package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConsumer handles a fixed set of event types.
type stubConsumer struct {
	types   []string
	handled []*ConsumedEvent
	err     error
}

func (c *stubConsumer) EventTypes() []string { return c.types }

func (c *stubConsumer) Handle(ctx context.Context, event *ConsumedEvent) error {
	c.handled = append(c.handled, event)
	return c.err
}

func TestConsumerRegistry_Register(t *testing.T) {
	registry := NewConsumerRegistry(nil)
	consumer := &stubConsumer{types: []string{"booking.scheduled", "booking.cancelled"}}

	registry.Register(consumer)

	assert.Len(t, registry.GetConsumers("booking.scheduled"), 1)
	assert.Len(t, registry.GetConsumers("booking.cancelled"), 1)
	assert.Empty(t, registry.GetConsumers("booking.completed"))
	assert.Equal(t, 2, registry.ConsumerCount())
	assert.ElementsMatch(t, []string{"booking.scheduled", "booking.cancelled"}, registry.GetAllEventTypes())
}

func TestConsumerRegistry_Dispatch(t *testing.T) {
	registry := NewConsumerRegistry(nil)
	first := &stubConsumer{types: []string{"booking.scheduled"}}
	second := &stubConsumer{types: []string{"booking.scheduled"}}
	registry.Register(first)
	registry.Register(second)

	event := &ConsumedEvent{EventID: uuid.New(), RoutingKey: "booking.scheduled"}
	err := registry.Dispatch(context.Background(), event)

	require.NoError(t, err)
	assert.Len(t, first.handled, 1)
	assert.Len(t, second.handled, 1)
}

func TestConsumerRegistry_Dispatch_NoConsumers(t *testing.T) {
	registry := NewConsumerRegistry(nil)

	err := registry.Dispatch(context.Background(), &ConsumedEvent{RoutingKey: "booking.completed"})
	assert.NoError(t, err)
}

func TestConsumerRegistry_Dispatch_FailingConsumerDoesNotStopOthers(t *testing.T) {
	registry := NewConsumerRegistry(nil)
	failing := &stubConsumer{types: []string{"booking.scheduled"}, err: errors.New("boom")}
	healthy := &stubConsumer{types: []string{"booking.scheduled"}}
	registry.Register(failing)
	registry.Register(healthy)

	err := registry.Dispatch(context.Background(), &ConsumedEvent{RoutingKey: "booking.scheduled"})

	assert.Error(t, err)
	assert.Len(t, healthy.handled, 1)
}
