package domain

import (
	"fmt"
	"time"

	shared "github.com/emreakdogan/randevu/internal/shared/domain"
)

// MinDailySpan is the shortest working span a provider may open for a day.
const MinDailySpan = time.Hour

const dayLength = 24 * time.Hour

// DayHours describes a provider's working hours for one weekday. Open and
// close are offsets from midnight. A closed day carries no offsets.
type DayHours struct {
	weekday time.Weekday
	closed  bool
	open    time.Duration
	close   time.Duration
}

// NewOpenDay creates working hours for a weekday. The close must come after
// the open and the span must be at least MinDailySpan.
func NewOpenDay(weekday time.Weekday, open, close time.Duration) (DayHours, error) {
	if open < 0 || close > dayLength || close <= open {
		return DayHours{}, fmt.Errorf("%w: close must come after open", ErrInvalidSchedule)
	}
	if close-open < MinDailySpan {
		return DayHours{}, fmt.Errorf("%w: working span must be at least %s", ErrInvalidSchedule, MinDailySpan)
	}
	return DayHours{weekday: weekday, open: open, close: close}, nil
}

// NewClosedDay marks a weekday as closed.
func NewClosedDay(weekday time.Weekday) DayHours {
	return DayHours{weekday: weekday, closed: true}
}

// Weekday returns the day of week these hours apply to.
func (d DayHours) Weekday() time.Weekday { return d.weekday }

// IsClosed reports whether the provider is closed on this day.
func (d DayHours) IsClosed() bool { return d.closed }

// Open returns the opening offset from midnight.
func (d DayHours) Open() time.Duration { return d.open }

// Close returns the closing offset from midnight.
func (d DayHours) Close() time.Duration { return d.close }

// ContainsSlot reports whether the slot lies entirely within the working span.
func (d DayHours) ContainsSlot(slot shared.TimeSlot) bool {
	if d.closed {
		return false
	}
	return slot.Start() >= d.open && slot.End() <= d.close
}

// WeeklySchedule holds a provider's working hours keyed by weekday. At most
// one entry exists per weekday; unset days are treated as closed.
type WeeklySchedule struct {
	days [7]*DayHours
}

// NewWeeklySchedule builds a schedule from day entries. A weekday appearing
// more than once fails validation.
func NewWeeklySchedule(entries []DayHours) (WeeklySchedule, error) {
	var s WeeklySchedule
	for _, entry := range entries {
		if s.days[entry.weekday] != nil {
			return WeeklySchedule{}, fmt.Errorf("%w: duplicate entry for %s", ErrInvalidSchedule, entry.weekday)
		}
		e := entry
		s.days[entry.weekday] = &e
	}
	return s, nil
}

// SetDay adds or replaces the entry for the entry's weekday.
func (s *WeeklySchedule) SetDay(entry DayHours) {
	e := entry
	s.days[entry.weekday] = &e
}

// DayFor returns the entry for the given weekday, if one is set.
func (s WeeklySchedule) DayFor(weekday time.Weekday) (DayHours, bool) {
	if s.days[weekday] == nil {
		return DayHours{}, false
	}
	return *s.days[weekday], true
}

// IsWithin reports whether the slot falls within the working hours of its day.
func (s WeeklySchedule) IsWithin(slot shared.TimeSlot) bool {
	day, ok := s.DayFor(slot.Weekday())
	if !ok {
		return false
	}
	return day.ContainsSlot(slot)
}

// HasOpenDay reports whether any weekday has open working hours.
func (s WeeklySchedule) HasOpenDay() bool {
	for _, day := range s.days {
		if day != nil && !day.closed {
			return true
		}
	}
	return false
}

// Entries returns all set entries ordered Sunday through Saturday.
func (s WeeklySchedule) Entries() []DayHours {
	entries := make([]DayHours, 0, 7)
	for _, day := range s.days {
		if day != nil {
			entries = append(entries, *day)
		}
	}
	return entries
}
