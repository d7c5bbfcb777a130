package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/application/services"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisAvailabilityCache caches computed day plans in Redis. Entries are
// keyed by provider, offering, and date, so a booking on a day invalidates
// every offering's plan for that provider and day.
//
// The cache is best-effort: Redis errors are logged and treated as misses.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisAvailabilityCache creates a Redis-backed availability cache.
func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func planKey(providerID, offeringID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("availability:%s:%s:%s", providerID, offeringID, date.Format("2006-01-02"))
}

// Get retrieves a cached day plan, reporting whether one was found.
func (c *RedisAvailabilityCache) Get(ctx context.Context, providerID, offeringID uuid.UUID, date time.Time) ([]services.AvailabilitySlot, bool) {
	data, err := c.client.Get(ctx, planKey(providerID, offeringID, date)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("availability cache read failed", "error", err)
		return nil, false
	}

	var plan []services.AvailabilitySlot
	if err := json.Unmarshal(data, &plan); err != nil {
		c.logger.Warn("availability cache entry corrupt", "error", err)
		return nil, false
	}
	return plan, true
}

// Set stores a day plan with the configured TTL.
func (c *RedisAvailabilityCache) Set(ctx context.Context, providerID, offeringID uuid.UUID, date time.Time, plan []services.AvailabilitySlot) {
	data, err := json.Marshal(plan)
	if err != nil {
		c.logger.Warn("availability cache encode failed", "error", err)
		return
	}

	if err := c.client.Set(ctx, planKey(providerID, offeringID, date), data, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache write failed", "error", err)
	}
}

// Invalidate drops every cached plan for the provider on the given date,
// across all offerings.
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, providerID uuid.UUID, date time.Time) {
	pattern := fmt.Sprintf("availability:%s:*:%s", providerID, date.Format("2006-01-02"))

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("availability cache scan failed", "error", err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("availability cache invalidation failed", "error", err)
	}
}
