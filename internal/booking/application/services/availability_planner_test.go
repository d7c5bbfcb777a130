package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanner(repo *fakeBookingRepo) *AvailabilityPlanner {
	return NewAvailabilityPlanner(NewSlotGenerator(), NewConflictChecker(repo))
}

func TestAvailabilityPlanner_Plan(t *testing.T) {
	provider, offering := approvedProvider(t)
	repo := &fakeBookingRepo{}
	bookSlot(t, repo, provider, offering, 10*time.Hour)

	plan, err := newPlanner(repo).Plan(context.Background(), provider, planDay, offering.Duration())

	require.NoError(t, err)
	require.Len(t, plan, 18)

	taken := 0
	for _, candidate := range plan {
		if candidate.Slot.Start() == 10*time.Hour {
			assert.False(t, candidate.Available)
			taken++
			continue
		}
		assert.True(t, candidate.Available, "slot %s should be free", candidate.Slot)
	}
	assert.Equal(t, 1, taken)
}

func TestAvailabilityPlanner_Plan_ClosedDay(t *testing.T) {
	provider, offering := approvedProvider(t)
	sunday := planDay.AddDate(0, 0, 6)

	plan, err := newPlanner(&fakeBookingRepo{}).Plan(context.Background(), provider, sunday, offering.Duration())

	require.NoError(t, err)
	assert.Empty(t, plan)
	assert.NotNil(t, plan)
}

func TestAvailabilityPlanner_Plan_MismatchedDuration(t *testing.T) {
	// A 45 minute offering against a 30 minute booking: the booking straddles
	// two candidate slots and both must be marked taken.
	provider, offering := approvedProvider(t)
	repo := &fakeBookingRepo{}
	bookSlot(t, repo, provider, offering, 9*time.Hour+30*time.Minute)

	plan, err := newPlanner(repo).Plan(context.Background(), provider, planDay, 45*time.Minute)
	require.NoError(t, err)

	require.NotEmpty(t, plan)
	assert.Equal(t, 9*time.Hour, plan[0].Slot.Start())
	assert.False(t, plan[0].Available)
	assert.Equal(t, 9*time.Hour+45*time.Minute, plan[1].Slot.Start())
	assert.False(t, plan[1].Available)
	assert.True(t, plan[2].Available)
}

func TestAvailabilityPlanner_AvailableSlotsPassConflictCheck(t *testing.T) {
	provider, offering := approvedProvider(t)
	repo := &fakeBookingRepo{}
	bookSlot(t, repo, provider, offering, 9*time.Hour)
	bookSlot(t, repo, provider, offering, 12*time.Hour)
	bookSlot(t, repo, provider, offering, 17*time.Hour+30*time.Minute)

	checker := NewConflictChecker(repo)
	plan, err := newPlanner(repo).Plan(context.Background(), provider, planDay, offering.Duration())
	require.NoError(t, err)

	for _, candidate := range plan {
		conflict, err := checker.HasConflict(context.Background(), provider.ID(), candidate.Slot)
		require.NoError(t, err)
		assert.Equal(t, !candidate.Available, conflict, "slot %s", candidate.Slot)
	}
}

func TestAvailabilityPlanner_Plan_RepositoryError(t *testing.T) {
	provider, offering := approvedProvider(t)
	repoErr := errors.New("connection lost")

	_, err := newPlanner(&fakeBookingRepo{err: repoErr}).Plan(context.Background(), provider, planDay, offering.Duration())
	assert.ErrorIs(t, err, repoErr)
}

func TestAvailabilityPlanner_HasAnyAvailability(t *testing.T) {
	provider, offering := approvedProvider(t)
	repo := &fakeBookingRepo{}

	free, err := newPlanner(repo).HasAnyAvailability(context.Background(), provider, planDay, offering.Duration())
	require.NoError(t, err)
	assert.True(t, free)
	assert.Equal(t, 1, repo.findActiveCalls)

	// Fill every slot of the day.
	for start := 9 * time.Hour; start+offering.Duration() <= 18*time.Hour; start += offering.Duration() {
		bookSlot(t, repo, provider, offering, start)
	}

	free, err = newPlanner(repo).HasAnyAvailability(context.Background(), provider, planDay, offering.Duration())
	require.NoError(t, err)
	assert.False(t, free)
}

func TestAvailabilityPlanner_FirstAvailable(t *testing.T) {
	provider, offering := approvedProvider(t)
	repo := &fakeBookingRepo{}
	bookSlot(t, repo, provider, offering, 9*time.Hour)
	bookSlot(t, repo, provider, offering, 9*time.Hour+30*time.Minute)

	slot, ok, err := newPlanner(repo).FirstAvailable(context.Background(), provider, planDay, offering.Duration())

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10*time.Hour, slot.Start())
	// The whole scan costs a single repository round trip.
	assert.Equal(t, 1, repo.findActiveCalls)
}

func TestAvailabilityPlanner_FirstAvailable_ClosedDay(t *testing.T) {
	provider, offering := approvedProvider(t)
	sunday := planDay.AddDate(0, 0, 6)

	_, ok, err := newPlanner(&fakeBookingRepo{}).FirstAvailable(context.Background(), provider, sunday, offering.Duration())

	require.NoError(t, err)
	assert.False(t, ok)
}
