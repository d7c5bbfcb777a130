package eventbus

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerPublisher wraps a Publisher with a circuit breaker so a broker
// outage stops producing connection attempts instead of slowing every
// outbox poll. Failed publishes stay in the outbox and are retried once
// the breaker closes again.
type BreakerPublisher struct {
	inner   Publisher
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// BreakerPublisherConfig configures the circuit breaker.
type BreakerPublisherConfig struct {
	// MaxFailures is the number of consecutive failures before the breaker opens.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultBreakerPublisherConfig returns sensible defaults.
func DefaultBreakerPublisherConfig() BreakerPublisherConfig {
	return BreakerPublisherConfig{
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}
}

// NewBreakerPublisher wraps the given publisher with a circuit breaker.
func NewBreakerPublisher(inner Publisher, cfg BreakerPublisherConfig, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "event-publisher",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("publisher circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerPublisher{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// Publish sends the message through the breaker. When the breaker is open
// the publish fails fast with gobreaker.ErrOpenState.
func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.inner.Publish(ctx, routingKey, payload)
	})
	return err
}

// Close closes the underlying publisher.
func (p *BreakerPublisher) Close() error {
	return p.inner.Close()
}

// State returns the current breaker state.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}
