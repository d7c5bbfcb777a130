package services

import (
	"context"
	"time"

	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
)

// AvailabilitySlot is one candidate slot of a provider's day together with
// whether it can currently be booked.
type AvailabilitySlot struct {
	Slot      shared.TimeSlot `json:"slot"`
	Available bool            `json:"available"`
}

// AvailabilityPlanner composes slot generation with conflict checking to
// produce a provider's bookable calendar for a day.
type AvailabilityPlanner struct {
	generator SlotGenerator
	conflicts *ConflictChecker
}

// NewAvailabilityPlanner creates an AvailabilityPlanner.
func NewAvailabilityPlanner(generator SlotGenerator, conflicts *ConflictChecker) *AvailabilityPlanner {
	return &AvailabilityPlanner{generator: generator, conflicts: conflicts}
}

// dayConflicts resolves the provider's hours and booked slots for a day in
// one repository round trip. ok is false when the provider is closed.
func (p *AvailabilityPlanner) dayConflicts(
	ctx context.Context,
	provider *providerDomain.Provider,
	date time.Time,
) (providerDomain.DayHours, DayConflicts, bool, error) {
	day, ok := provider.Schedule().DayFor(date.Weekday())
	if !ok || day.IsClosed() {
		return providerDomain.DayHours{}, DayConflicts{}, false, nil
	}

	taken, err := p.conflicts.ForDay(ctx, provider.ID(), date)
	if err != nil {
		return providerDomain.DayHours{}, DayConflicts{}, false, err
	}
	return day, taken, true, nil
}

// Plan returns every candidate slot of the given duration for the provider's
// day, marking each as available or taken. A day the provider is closed
// yields an empty plan. Every slot marked available passes the same conflict
// check a commit would run.
func (p *AvailabilityPlanner) Plan(
	ctx context.Context,
	provider *providerDomain.Provider,
	date time.Time,
	duration time.Duration,
) ([]AvailabilitySlot, error) {
	day, taken, open, err := p.dayConflicts(ctx, provider, date)
	if err != nil {
		return nil, err
	}

	plan := []AvailabilitySlot{}
	if !open {
		return plan, nil
	}

	for slot := range p.generator.Slots(day, date, duration) {
		available := day.ContainsSlot(slot) && !taken.Blocks(slot)
		plan = append(plan, AvailabilitySlot{Slot: slot, Available: available})
	}
	return plan, nil
}

// HasAnyAvailability reports whether at least one slot of the given duration
// is free on the provider's day. It stops at the first free candidate.
func (p *AvailabilityPlanner) HasAnyAvailability(
	ctx context.Context,
	provider *providerDomain.Provider,
	date time.Time,
	duration time.Duration,
) (bool, error) {
	_, ok, err := p.FirstAvailable(ctx, provider, date, duration)
	return ok, err
}

// FirstAvailable returns the earliest free slot of the given duration on the
// provider's day, if any. Candidates are generated lazily, so the scan ends
// as soon as a free slot turns up.
func (p *AvailabilityPlanner) FirstAvailable(
	ctx context.Context,
	provider *providerDomain.Provider,
	date time.Time,
	duration time.Duration,
) (shared.TimeSlot, bool, error) {
	day, taken, open, err := p.dayConflicts(ctx, provider, date)
	if err != nil || !open {
		return shared.TimeSlot{}, false, err
	}

	for slot := range p.generator.Slots(day, date, duration) {
		if day.ContainsSlot(slot) && !taken.Blocks(slot) {
			return slot, true, nil
		}
	}
	return shared.TimeSlot{}, false, nil
}
