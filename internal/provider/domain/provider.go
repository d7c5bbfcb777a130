package domain

import (
	"fmt"
	"time"

	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
)

// ProviderStatus represents the state of a provider application.
type ProviderStatus string

const (
	// StatusPending means the application awaits an admin decision.
	StatusPending ProviderStatus = "pending"
	// StatusApproved means the provider can accept bookings.
	StatusApproved ProviderStatus = "approved"
	// StatusRejected means the application was declined.
	StatusRejected ProviderStatus = "rejected"
)

// Provider is the aggregate root for a service provider: the shop profile,
// its weekly working hours, and the offerings it sells. Only approved
// providers accept bookings.
type Provider struct {
	shared.BaseAggregateRoot
	ownerID   uuid.UUID
	shopName  string
	city      string
	district  string
	status    ProviderStatus
	schedule  WeeklySchedule
	offerings []*Offering
}

// NewProvider registers a new provider application in pending status.
func NewProvider(ownerID uuid.UUID, shopName, city, district string) (*Provider, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidProvider)
	}
	if shopName == "" {
		return nil, fmt.Errorf("%w: shop name is required", ErrInvalidProvider)
	}

	p := &Provider{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ownerID:           ownerID,
		shopName:          shopName,
		city:              city,
		district:          district,
		status:            StatusPending,
	}

	p.AddDomainEvent(NewProviderRegisteredEvent(p))

	return p, nil
}

// RehydrateProvider recreates a provider from persisted state.
func RehydrateProvider(
	id uuid.UUID,
	ownerID uuid.UUID,
	shopName string,
	city string,
	district string,
	status ProviderStatus,
	schedule WeeklySchedule,
	offerings []*Offering,
	createdAt time.Time,
	updatedAt time.Time,
) *Provider {
	return &Provider{
		BaseAggregateRoot: shared.RehydrateBaseAggregateRoot(shared.RehydrateBaseEntity(id, createdAt, updatedAt)),
		ownerID:           ownerID,
		shopName:          shopName,
		city:              city,
		district:          district,
		status:            status,
		schedule:          schedule,
		offerings:         offerings,
	}
}

func (p *Provider) OwnerID() uuid.UUID       { return p.ownerID }
func (p *Provider) ShopName() string         { return p.shopName }
func (p *Provider) City() string             { return p.city }
func (p *Provider) District() string         { return p.district }
func (p *Provider) Status() ProviderStatus   { return p.status }
func (p *Provider) Schedule() WeeklySchedule { return p.schedule }

// Offerings returns all offerings, active or not.
func (p *Provider) Offerings() []*Offering { return p.offerings }

// AcceptingBookings reports whether the provider can take new bookings.
func (p *Provider) AcceptingBookings() bool {
	return p.status == StatusApproved
}

// Approve moves a pending application to approved. The provider must have
// at least one active offering and one open working day.
func (p *Provider) Approve() error {
	if p.status != StatusPending {
		return ErrProviderNotPending
	}
	if len(p.ActiveOfferings()) == 0 || !p.schedule.HasOpenDay() {
		return ErrProviderNotReady
	}

	p.status = StatusApproved
	p.Touch()
	p.AddDomainEvent(NewProviderApprovedEvent(p))
	return nil
}

// Reject declines a pending application.
func (p *Provider) Reject(reason string) error {
	if p.status != StatusPending {
		return ErrProviderNotPending
	}

	p.status = StatusRejected
	p.Touch()
	p.AddDomainEvent(NewProviderRejectedEvent(p, reason))
	return nil
}

// SetWorkingHours replaces the full weekly schedule.
func (p *Provider) SetWorkingHours(entries []DayHours) error {
	schedule, err := NewWeeklySchedule(entries)
	if err != nil {
		return err
	}
	p.schedule = schedule
	p.Touch()
	return nil
}

// SetDayHours adds or replaces the working hours for a single weekday.
func (p *Provider) SetDayHours(entry DayHours) {
	p.schedule.SetDay(entry)
	p.Touch()
}

// AddOffering creates a new offering owned by this provider.
func (p *Provider) AddOffering(name, description string, durationMinutes int, price shared.Money) (*Offering, error) {
	offering, err := newOffering(p.ID(), name, description, durationMinutes, price)
	if err != nil {
		return nil, err
	}

	p.offerings = append(p.offerings, offering)
	p.Touch()
	return offering, nil
}

// UpdateOffering changes an existing offering's details.
func (p *Provider) UpdateOffering(offeringID uuid.UUID, name, description string, durationMinutes int, price shared.Money) error {
	offering, ok := p.FindOffering(offeringID)
	if !ok {
		return ErrOfferingNotFound
	}

	if err := offering.update(name, description, durationMinutes, price); err != nil {
		return err
	}
	p.Touch()
	return nil
}

// DeactivateOffering takes an offering off the menu. Existing bookings
// for it are untouched.
func (p *Provider) DeactivateOffering(offeringID uuid.UUID) error {
	offering, ok := p.FindOffering(offeringID)
	if !ok {
		return ErrOfferingNotFound
	}

	offering.deactivate()
	p.Touch()
	return nil
}

// ActivateOffering puts a deactivated offering back on the menu.
func (p *Provider) ActivateOffering(offeringID uuid.UUID) error {
	offering, ok := p.FindOffering(offeringID)
	if !ok {
		return ErrOfferingNotFound
	}

	offering.activate()
	p.Touch()
	return nil
}

// FindOffering returns the offering with the given ID, if it belongs to this provider.
func (p *Provider) FindOffering(offeringID uuid.UUID) (*Offering, bool) {
	for _, offering := range p.offerings {
		if offering.ID() == offeringID {
			return offering, true
		}
	}
	return nil, false
}

// ActiveOfferings returns all offerings currently bookable.
func (p *Provider) ActiveOfferings() []*Offering {
	active := make([]*Offering, 0, len(p.offerings))
	for _, offering := range p.offerings {
		if offering.IsActive() {
			active = append(active, offering)
		}
	}
	return active
}
