package services

import (
	"iter"
	"time"

	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
)

// SlotGenerator produces the candidate slots of a working day. Slots are
// placed back to back from the opening time; a slot is yielded only when the
// full duration fits before closing. The sequence is lazy and can be ranged
// over more than once.
type SlotGenerator struct{}

// NewSlotGenerator creates a SlotGenerator.
func NewSlotGenerator() SlotGenerator {
	return SlotGenerator{}
}

// Slots returns the candidate slots of the given duration for a day's
// working hours. A closed day or a non-positive duration yields nothing.
func (SlotGenerator) Slots(day providerDomain.DayHours, date time.Time, duration time.Duration) iter.Seq[shared.TimeSlot] {
	return func(yield func(shared.TimeSlot) bool) {
		if day.IsClosed() || duration <= 0 {
			return
		}

		slot, err := shared.NewTimeSlotWithDuration(date, day.Open(), duration)
		if err != nil {
			return
		}
		for slot.End() <= day.Close() {
			if !yield(slot) {
				return
			}
			slot, err = slot.ShiftBy(duration)
			if err != nil {
				return
			}
		}
	}
}

// CollectSlots materializes the slot sequence into a slice.
func (g SlotGenerator) CollectSlots(day providerDomain.DayHours, date time.Time, duration time.Duration) []shared.TimeSlot {
	var slots []shared.TimeSlot
	for slot := range g.Slots(day, date, duration) {
		slots = append(slots, slot)
	}
	return slots
}
