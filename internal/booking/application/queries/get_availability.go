package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/application/services"
	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/google/uuid"
)

// AvailabilityCache caches computed day plans. The cache is read-through:
// a miss falls back to the planner and the result is stored best-effort.
type AvailabilityCache interface {
	Get(ctx context.Context, providerID, offeringID uuid.UUID, date time.Time) ([]services.AvailabilitySlot, bool)
	Set(ctx context.Context, providerID, offeringID uuid.UUID, date time.Time, plan []services.AvailabilitySlot)
}

// GetAvailabilityQuery asks for a provider's bookable slots for one offering
// on one day.
type GetAvailabilityQuery struct {
	ProviderID uuid.UUID
	OfferingID uuid.UUID
	Date       time.Time
}

// GetAvailabilityHandler handles GetAvailabilityQuery.
type GetAvailabilityHandler struct {
	providers providerDomain.Repository
	planner   *services.AvailabilityPlanner
	cache     AvailabilityCache
}

// NewGetAvailabilityHandler creates a new GetAvailabilityHandler. The cache
// may be nil, in which case every query hits the planner.
func NewGetAvailabilityHandler(
	providers providerDomain.Repository,
	planner *services.AvailabilityPlanner,
	cache AvailabilityCache,
) *GetAvailabilityHandler {
	return &GetAvailabilityHandler{
		providers: providers,
		planner:   planner,
		cache:     cache,
	}
}

// Handle executes the query.
func (h *GetAvailabilityHandler) Handle(ctx context.Context, query GetAvailabilityQuery) ([]services.AvailabilitySlot, error) {
	if h.cache != nil {
		if plan, ok := h.cache.Get(ctx, query.ProviderID, query.OfferingID, query.Date); ok {
			return plan, nil
		}
	}

	provider, err := h.providers.FindByID(ctx, query.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	if provider == nil {
		return nil, providerDomain.ErrProviderNotFound
	}

	offering, ok := provider.FindOffering(query.OfferingID)
	if !ok {
		return nil, providerDomain.ErrOfferingNotFound
	}

	plan, err := h.planner.Plan(ctx, provider, query.Date, offering.Duration())
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Set(ctx, query.ProviderID, query.OfferingID, query.Date, plan)
	}

	return plan, nil
}
