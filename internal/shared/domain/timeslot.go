package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeRange is returned when a slot's end does not come after its start
// or the slot does not fit within a single day.
var ErrInvalidTimeRange = errors.New("invalid time range")

const dayLength = 24 * time.Hour

// TimeSlot is a half-open [start, end) interval on a single calendar day.
// Start and end are offsets from midnight of the slot's date. Because the
// interval is half-open, slots that merely touch do not overlap and
// back-to-back bookings are allowed.
type TimeSlot struct {
	date  time.Time
	start time.Duration
	end   time.Duration
}

// NewTimeSlot creates a slot on the given date with start and end offsets
// from midnight. The end must be strictly after the start and within the day.
func NewTimeSlot(date time.Time, start, end time.Duration) (TimeSlot, error) {
	if start < 0 || end > dayLength || end <= start {
		return TimeSlot{}, ErrInvalidTimeRange
	}
	return TimeSlot{date: DateOf(date), start: start, end: end}, nil
}

// NewTimeSlotWithDuration creates a slot starting at the given offset and
// lasting for the given duration.
func NewTimeSlotWithDuration(date time.Time, start, duration time.Duration) (TimeSlot, error) {
	return NewTimeSlot(date, start, start+duration)
}

// DateOf truncates a time to midnight of its calendar day.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Date returns midnight of the slot's calendar day.
func (s TimeSlot) Date() time.Time { return s.date }

// Start returns the offset from midnight at which the slot begins.
func (s TimeSlot) Start() time.Duration { return s.start }

// End returns the offset from midnight at which the slot ends.
func (s TimeSlot) End() time.Duration { return s.end }

// StartTime returns the absolute start instant.
func (s TimeSlot) StartTime() time.Time { return s.date.Add(s.start) }

// EndTime returns the absolute end instant.
func (s TimeSlot) EndTime() time.Time { return s.date.Add(s.end) }

// Duration returns the length of the slot.
func (s TimeSlot) Duration() time.Duration { return s.end - s.start }

// ShiftBy returns the slot moved by the given offset within the same day.
// Shifting past either end of the day fails with ErrInvalidTimeRange.
func (s TimeSlot) ShiftBy(offset time.Duration) (TimeSlot, error) {
	return NewTimeSlot(s.date, s.start+offset, s.end+offset)
}

// Weekday returns the day of week of the slot's date.
func (s TimeSlot) Weekday() time.Weekday { return s.date.Weekday() }

// Overlaps reports whether two slots share any instant. Slots on different
// days never overlap, and neither do slots that only touch at an endpoint.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if !s.date.Equal(other.date) {
		return false
	}
	return s.start < other.end && other.start < s.end
}

// Contains reports whether other lies entirely within this slot.
func (s TimeSlot) Contains(other TimeSlot) bool {
	if !s.date.Equal(other.date) {
		return false
	}
	return s.start <= other.start && other.end <= s.end
}

// IsOnPastDate reports whether the slot's date is before the calendar day of now.
func (s TimeSlot) IsOnPastDate(now time.Time) bool {
	return s.date.Before(DateOf(now))
}

// Equals checks if two slots cover the same interval on the same day.
func (s TimeSlot) Equals(other ValueObject) bool {
	if otherSlot, ok := other.(TimeSlot); ok {
		return s.date.Equal(otherSlot.date) && s.start == otherSlot.start && s.end == otherSlot.end
	}
	return false
}

type timeSlotJSON struct {
	Date         string `json:"date"`
	StartMinutes int    `json:"start_minutes"`
	EndMinutes   int    `json:"end_minutes"`
}

// MarshalJSON encodes the slot as a date string plus minute offsets.
func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeSlotJSON{
		Date:         s.date.Format("2006-01-02"),
		StartMinutes: int(s.start.Minutes()),
		EndMinutes:   int(s.end.Minutes()),
	})
}

// UnmarshalJSON decodes a slot produced by MarshalJSON.
func (s *TimeSlot) UnmarshalJSON(data []byte) error {
	var raw timeSlotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", raw.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	slot, err := NewTimeSlot(date,
		time.Duration(raw.StartMinutes)*time.Minute,
		time.Duration(raw.EndMinutes)*time.Minute,
	)
	if err != nil {
		return err
	}

	*s = slot
	return nil
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s",
		s.date.Format("2006-01-02"),
		formatOffset(s.start),
		formatOffset(s.end),
	)
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
