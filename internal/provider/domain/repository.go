package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for providers. The aggregate
// is loaded and saved whole, offerings and working hours included.
type Repository interface {
	// Save persists a provider and its owned offerings and schedule.
	Save(ctx context.Context, provider *Provider) error

	// FindByID retrieves a provider by its ID. Returns nil if not found.
	FindByID(ctx context.Context, id uuid.UUID) (*Provider, error)

	// FindByOwnerID retrieves the provider owned by the given user. Returns nil if not found.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Provider, error)

	// FindByCity retrieves approved providers in a city, optionally narrowed by district.
	FindByCity(ctx context.Context, city, district string) ([]*Provider, error)
}
