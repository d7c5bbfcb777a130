package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // a Monday

func mustSlot(t *testing.T, start, end time.Duration) TimeSlot {
	t.Helper()
	slot, err := NewTimeSlot(testDay, start, end)
	require.NoError(t, err)
	return slot
}

func TestNewTimeSlot_Success(t *testing.T) {
	slot, err := NewTimeSlot(testDay, 9*time.Hour, 10*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, testDay, slot.Date())
	assert.Equal(t, 9*time.Hour, slot.Start())
	assert.Equal(t, 10*time.Hour, slot.End())
	assert.Equal(t, time.Hour, slot.Duration())
	assert.Equal(t, time.Monday, slot.Weekday())
}

func TestNewTimeSlot_NormalizesDateToMidnight(t *testing.T) {
	noon := time.Date(2026, 9, 7, 12, 34, 56, 0, time.UTC)
	slot, err := NewTimeSlot(noon, 9*time.Hour, 10*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, testDay, slot.Date())
	assert.Equal(t, testDay.Add(9*time.Hour), slot.StartTime())
	assert.Equal(t, testDay.Add(10*time.Hour), slot.EndTime())
}

func TestNewTimeSlot_InvalidRanges(t *testing.T) {
	tests := []struct {
		name  string
		start time.Duration
		end   time.Duration
	}{
		{"end equals start", 9 * time.Hour, 9 * time.Hour},
		{"end before start", 10 * time.Hour, 9 * time.Hour},
		{"negative start", -time.Hour, time.Hour},
		{"end past midnight", 23 * time.Hour, 25 * time.Hour},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTimeSlot(testDay, tc.start, tc.end)
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestNewTimeSlotWithDuration(t *testing.T) {
	slot, err := NewTimeSlotWithDuration(testDay, 9*time.Hour, 30*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, slot.End())
}

func TestTimeSlot_ShiftBy(t *testing.T) {
	slot := mustSlot(t, 9*time.Hour, 9*time.Hour+30*time.Minute)

	next, err := slot.ShiftBy(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, next.Start())
	assert.Equal(t, 10*time.Hour, next.End())
	assert.True(t, next.Date().Equal(slot.Date()))

	back, err := next.ShiftBy(-30 * time.Minute)
	require.NoError(t, err)
	assert.True(t, back.Equals(slot))

	_, err = slot.ShiftBy(-10 * time.Hour)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	late := mustSlot(t, 23*time.Hour, 24*time.Hour)
	_, err = late.ShiftBy(time.Hour)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeSlot_Overlaps(t *testing.T) {
	base := mustSlot(t, 10*time.Hour, 11*time.Hour)

	tests := []struct {
		name     string
		other    TimeSlot
		overlaps bool
	}{
		{"identical", mustSlot(t, 10*time.Hour, 11*time.Hour), true},
		{"contained", mustSlot(t, 10*time.Hour+15*time.Minute, 10*time.Hour+45*time.Minute), true},
		{"overlaps start", mustSlot(t, 9*time.Hour+30*time.Minute, 10*time.Hour+30*time.Minute), true},
		{"overlaps end", mustSlot(t, 10*time.Hour+30*time.Minute, 11*time.Hour+30*time.Minute), true},
		{"touches before", mustSlot(t, 9*time.Hour, 10*time.Hour), false},
		{"touches after", mustSlot(t, 11*time.Hour, 12*time.Hour), false},
		{"disjoint", mustSlot(t, 14*time.Hour, 15*time.Hour), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, base.Overlaps(tc.other))
			assert.Equal(t, tc.overlaps, tc.other.Overlaps(base))
		})
	}
}

func TestTimeSlot_Overlaps_DifferentDays(t *testing.T) {
	monday := mustSlot(t, 10*time.Hour, 11*time.Hour)
	tuesday, err := NewTimeSlot(testDay.AddDate(0, 0, 1), 10*time.Hour, 11*time.Hour)
	require.NoError(t, err)

	assert.False(t, monday.Overlaps(tuesday))
}

func TestTimeSlot_Contains(t *testing.T) {
	outer := mustSlot(t, 9*time.Hour, 12*time.Hour)

	assert.True(t, outer.Contains(mustSlot(t, 9*time.Hour, 12*time.Hour)))
	assert.True(t, outer.Contains(mustSlot(t, 10*time.Hour, 11*time.Hour)))
	assert.False(t, outer.Contains(mustSlot(t, 8*time.Hour, 10*time.Hour)))
	assert.False(t, outer.Contains(mustSlot(t, 11*time.Hour, 13*time.Hour)))
}

func TestTimeSlot_IsOnPastDate(t *testing.T) {
	slot := mustSlot(t, 9*time.Hour, 10*time.Hour)

	assert.True(t, slot.IsOnPastDate(testDay.AddDate(0, 0, 1)))
	// Later the same day is not "past": the date matters, not the hour.
	assert.False(t, slot.IsOnPastDate(testDay.Add(23*time.Hour)))
	assert.False(t, slot.IsOnPastDate(testDay.AddDate(0, 0, -1)))
}

func TestDateOf(t *testing.T) {
	assert.Equal(t, testDay, DateOf(time.Date(2026, 9, 7, 18, 45, 12, 999, time.UTC)))
	assert.Equal(t, testDay, DateOf(testDay))
}

func TestTimeSlot_Equals(t *testing.T) {
	a := mustSlot(t, 9*time.Hour, 10*time.Hour)
	b := mustSlot(t, 9*time.Hour, 10*time.Hour)
	c := mustSlot(t, 9*time.Hour, 11*time.Hour)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(NewMoney(100, "TRY")))
}

func TestTimeSlot_String(t *testing.T) {
	slot := mustSlot(t, 9*time.Hour+30*time.Minute, 10*time.Hour)
	assert.Equal(t, "2026-09-07 09:30-10:00", slot.String())
}

func TestTimeSlot_JSONRoundTrip(t *testing.T) {
	slot := mustSlot(t, 9*time.Hour+30*time.Minute, 10*time.Hour)

	data, err := json.Marshal(slot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-09-07","start_minutes":570,"end_minutes":600}`, string(data))

	var decoded TimeSlot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, slot.Equals(decoded))
}

func TestTimeSlot_UnmarshalJSON_Invalid(t *testing.T) {
	var slot TimeSlot
	assert.Error(t, json.Unmarshal([]byte(`{"date":"not-a-date","start_minutes":0,"end_minutes":60}`), &slot))
	assert.Error(t, json.Unmarshal([]byte(`{"date":"2026-09-07","start_minutes":60,"end_minutes":60}`), &slot))
}
