package domain

import (
	"fmt"
	"time"

	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
)

// Offering is a bookable service a provider sells, owned by the Provider
// aggregate. Its duration drives slot generation for the provider's calendar.
type Offering struct {
	shared.BaseEntity
	providerID  uuid.UUID
	name        string
	description string
	duration    time.Duration
	price       shared.Money
	active      bool
}

func newOffering(providerID uuid.UUID, name, description string, durationMinutes int, price shared.Money) (*Offering, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidOffering)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidOffering)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidOffering)
	}

	return &Offering{
		BaseEntity:  shared.NewBaseEntity(),
		providerID:  providerID,
		name:        name,
		description: description,
		duration:    time.Duration(durationMinutes) * time.Minute,
		price:       price,
		active:      true,
	}, nil
}

// RehydrateOffering recreates an offering from persisted state.
func RehydrateOffering(
	id uuid.UUID,
	providerID uuid.UUID,
	name string,
	description string,
	duration time.Duration,
	price shared.Money,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Offering {
	return &Offering{
		BaseEntity:  shared.RehydrateBaseEntity(id, createdAt, updatedAt),
		providerID:  providerID,
		name:        name,
		description: description,
		duration:    duration,
		price:       price,
		active:      active,
	}
}

func (o *Offering) ProviderID() uuid.UUID   { return o.providerID }
func (o *Offering) Name() string            { return o.name }
func (o *Offering) Description() string     { return o.description }
func (o *Offering) Duration() time.Duration { return o.duration }
func (o *Offering) Price() shared.Money     { return o.price }

// DurationMinutes returns the duration in whole minutes.
func (o *Offering) DurationMinutes() int {
	return int(o.duration.Minutes())
}

// IsActive reports whether the offering can currently be booked.
func (o *Offering) IsActive() bool { return o.active }

func (o *Offering) update(name, description string, durationMinutes int, price shared.Money) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidOffering)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidOffering)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidOffering)
	}

	o.name = name
	o.description = description
	o.duration = time.Duration(durationMinutes) * time.Minute
	o.price = price
	o.Touch()
	return nil
}

func (o *Offering) deactivate() {
	if !o.active {
		return
	}
	o.active = false
	o.Touch()
}

func (o *Offering) activate() {
	if o.active {
		return
	}
	o.active = true
	o.Touch()
}
