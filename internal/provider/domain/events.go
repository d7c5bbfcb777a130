package domain

import (
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "provider"

// Routing keys for provider lifecycle events.
const (
	ProviderRegisteredRoutingKey = "provider.registered"
	ProviderApprovedRoutingKey   = "provider.approved"
	ProviderRejectedRoutingKey   = "provider.rejected"
)

// ProviderRegisteredEvent is emitted when a new provider application is created.
type ProviderRegisteredEvent struct {
	shared.BaseEvent
	ProviderID uuid.UUID `json:"provider_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	ShopName   string    `json:"shop_name"`
	City       string    `json:"city"`
	District   string    `json:"district"`
}

// NewProviderRegisteredEvent creates a ProviderRegisteredEvent.
func NewProviderRegisteredEvent(p *Provider) *ProviderRegisteredEvent {
	return &ProviderRegisteredEvent{
		BaseEvent:  shared.NewBaseEvent(p.ID(), aggregateType, ProviderRegisteredRoutingKey),
		ProviderID: p.ID(),
		OwnerID:    p.OwnerID(),
		ShopName:   p.ShopName(),
		City:       p.City(),
		District:   p.District(),
	}
}

// ProviderApprovedEvent is emitted when an application is approved.
type ProviderApprovedEvent struct {
	shared.BaseEvent
	ProviderID uuid.UUID `json:"provider_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
}

// NewProviderApprovedEvent creates a ProviderApprovedEvent.
func NewProviderApprovedEvent(p *Provider) *ProviderApprovedEvent {
	return &ProviderApprovedEvent{
		BaseEvent:  shared.NewBaseEvent(p.ID(), aggregateType, ProviderApprovedRoutingKey),
		ProviderID: p.ID(),
		OwnerID:    p.OwnerID(),
	}
}

// ProviderRejectedEvent is emitted when an application is declined.
type ProviderRejectedEvent struct {
	shared.BaseEvent
	ProviderID uuid.UUID `json:"provider_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Reason     string    `json:"reason"`
}

// NewProviderRejectedEvent creates a ProviderRejectedEvent.
func NewProviderRejectedEvent(p *Provider, reason string) *ProviderRejectedEvent {
	return &ProviderRejectedEvent{
		BaseEvent:  shared.NewBaseEvent(p.ID(), aggregateType, ProviderRejectedRoutingKey),
		ProviderID: p.ID(),
		OwnerID:    p.OwnerID(),
		Reason:     reason,
	}
}
