package services

import (
	"testing"
	"time"

	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // a Monday

func TestSlotGenerator_FullDay(t *testing.T) {
	day, err := providerDomain.NewOpenDay(time.Monday, 9*time.Hour, 18*time.Hour)
	require.NoError(t, err)

	slots := NewSlotGenerator().CollectSlots(day, planDay, 30*time.Minute)

	require.Len(t, slots, 18)
	assert.Equal(t, 9*time.Hour, slots[0].Start())
	assert.Equal(t, 17*time.Hour+30*time.Minute, slots[len(slots)-1].Start())
	assert.Equal(t, 18*time.Hour, slots[len(slots)-1].End())

	// Slots are back to back with no gaps.
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End(), slots[i].Start())
	}
}

func TestSlotGenerator_PartialTailExcluded(t *testing.T) {
	// 9:00-10:15 fits one 45 minute slot; the remaining 30 minutes do not.
	day, err := providerDomain.NewOpenDay(time.Monday, 9*time.Hour, 10*time.Hour+15*time.Minute)
	require.NoError(t, err)

	slots := NewSlotGenerator().CollectSlots(day, planDay, 45*time.Minute)

	require.Len(t, slots, 1)
	assert.Equal(t, 9*time.Hour, slots[0].Start())
	assert.Equal(t, 9*time.Hour+45*time.Minute, slots[0].End())
}

func TestSlotGenerator_DurationLongerThanDay(t *testing.T) {
	day, err := providerDomain.NewOpenDay(time.Monday, 9*time.Hour, 11*time.Hour)
	require.NoError(t, err)

	slots := NewSlotGenerator().CollectSlots(day, planDay, 3*time.Hour)
	assert.Empty(t, slots)
}

func TestSlotGenerator_ClosedDay(t *testing.T) {
	slots := NewSlotGenerator().CollectSlots(providerDomain.NewClosedDay(time.Monday), planDay, 30*time.Minute)
	assert.Empty(t, slots)
}

func TestSlotGenerator_NonPositiveDuration(t *testing.T) {
	day, err := providerDomain.NewOpenDay(time.Monday, 9*time.Hour, 18*time.Hour)
	require.NoError(t, err)

	assert.Empty(t, NewSlotGenerator().CollectSlots(day, planDay, 0))
	assert.Empty(t, NewSlotGenerator().CollectSlots(day, planDay, -time.Hour))
}

func TestSlotGenerator_SequenceIsReusable(t *testing.T) {
	day, err := providerDomain.NewOpenDay(time.Monday, 9*time.Hour, 12*time.Hour)
	require.NoError(t, err)

	seq := NewSlotGenerator().Slots(day, planDay, time.Hour)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}

	assert.Equal(t, 3, first)
	assert.Equal(t, first, second)
}

func TestSlotGenerator_EarlyBreak(t *testing.T) {
	day, err := providerDomain.NewOpenDay(time.Monday, 9*time.Hour, 18*time.Hour)
	require.NoError(t, err)

	count := 0
	for range NewSlotGenerator().Slots(day, planDay, 30*time.Minute) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
