package domain

import (
	"testing"
	"time"

	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bookingDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // a Monday
	testNow    = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	afterStart = bookingDay.Add(10*time.Hour + 30*time.Minute)
)

type bookingFixture struct {
	customerID uuid.UUID
	provider   *providerDomain.Provider
	offering   *providerDomain.Offering
	slot       shared.TimeSlot
}

func newFixture(t *testing.T) bookingFixture {
	t.Helper()

	provider, err := providerDomain.NewProvider(uuid.New(), "Kadıköy Barber", "Istanbul", "Kadıköy")
	require.NoError(t, err)

	offering, err := provider.AddOffering("Haircut", "", 30, shared.NewMoney(50000, "TRY"))
	require.NoError(t, err)

	day, err := providerDomain.NewOpenDay(time.Monday, 9*time.Hour, 18*time.Hour)
	require.NoError(t, err)
	require.NoError(t, provider.SetWorkingHours([]providerDomain.DayHours{day}))
	require.NoError(t, provider.Approve())
	provider.PullDomainEvents()

	slot, err := shared.NewTimeSlot(bookingDay, 10*time.Hour, 10*time.Hour+30*time.Minute)
	require.NoError(t, err)

	return bookingFixture{
		customerID: uuid.New(),
		provider:   provider,
		offering:   offering,
		slot:       slot,
	}
}

func (f bookingFixture) newBooking(t *testing.T) *Booking {
	t.Helper()
	b, err := NewBooking(f.customerID, f.provider, f.offering, f.slot, "", testNow)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	f := newFixture(t)

	b, err := NewBooking(f.customerID, f.provider, f.offering, f.slot, "please be quick", testNow)

	require.NoError(t, err)
	assert.Equal(t, f.customerID, b.CustomerID())
	assert.Equal(t, f.provider.ID(), b.ProviderID())
	assert.Equal(t, f.offering.ID(), b.OfferingID())
	assert.Equal(t, StatusPending, b.Status())
	assert.True(t, b.Price().Equals(f.offering.Price()))
	assert.Equal(t, "please be quick", b.Notes())
	// Pending bookings hold the slot but are not announced until confirmed.
	assert.Empty(t, b.PullDomainEvents())
}

func TestNewBooking_Validation(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewBooking(f.customerID, f.provider, f.offering, f.slot, "", bookingDay.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrInvalidBooking)
	})

	t.Run("same day is allowed", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewBooking(f.customerID, f.provider, f.offering, f.slot, "", bookingDay.Add(15*time.Hour))
		assert.NoError(t, err)
	})

	t.Run("provider not approved", func(t *testing.T) {
		f := newFixture(t)
		pending, err := providerDomain.NewProvider(uuid.New(), "New Shop", "Istanbul", "Beşiktaş")
		require.NoError(t, err)
		offering, err := pending.AddOffering("Haircut", "", 30, shared.NewMoney(50000, "TRY"))
		require.NoError(t, err)

		_, err = NewBooking(f.customerID, pending, offering, f.slot, "", testNow)
		assert.ErrorIs(t, err, ErrInvalidBooking)
	})

	t.Run("self booking", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewBooking(f.provider.OwnerID(), f.provider, f.offering, f.slot, "", testNow)
		assert.ErrorIs(t, err, ErrInvalidBooking)
	})

	t.Run("offering of another provider", func(t *testing.T) {
		f := newFixture(t)
		other := newFixture(t)
		_, err := NewBooking(f.customerID, f.provider, other.offering, f.slot, "", testNow)
		assert.ErrorIs(t, err, ErrInvalidBooking)
	})

	t.Run("inactive offering", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.provider.DeactivateOffering(f.offering.ID()))
		_, err := NewBooking(f.customerID, f.provider, f.offering, f.slot, "", testNow)
		assert.ErrorIs(t, err, ErrInvalidBooking)
	})

	t.Run("non-positive price", func(t *testing.T) {
		f := newFixture(t)
		// Rehydration skips offering validation, the way a bad row would.
		free := providerDomain.RehydrateOffering(uuid.New(), f.provider.ID(), "Haircut", "",
			30*time.Minute, shared.NewMoney(0, "TRY"), true, testNow, testNow)
		_, err := NewBooking(f.customerID, f.provider, free, f.slot, "", testNow)
		assert.ErrorIs(t, err, ErrInvalidBooking)
		assert.ErrorContains(t, err, "price")
	})

	t.Run("outside working hours", func(t *testing.T) {
		f := newFixture(t)
		early, err := shared.NewTimeSlot(bookingDay, 8*time.Hour, 8*time.Hour+30*time.Minute)
		require.NoError(t, err)
		_, err = NewBooking(f.customerID, f.provider, f.offering, early, "", testNow)
		assert.ErrorIs(t, err, ErrInvalidBooking)
	})

	t.Run("closed day", func(t *testing.T) {
		f := newFixture(t)
		sunday := bookingDay.AddDate(0, 0, 6)
		slot, err := shared.NewTimeSlot(sunday, 10*time.Hour, 10*time.Hour+30*time.Minute)
		require.NoError(t, err)
		_, err = NewBooking(f.customerID, f.provider, f.offering, slot, "", testNow)
		assert.ErrorIs(t, err, ErrInvalidBooking)
	})
}

func TestBooking_Confirm(t *testing.T) {
	f := newFixture(t)
	b := f.newBooking(t)

	require.NoError(t, b.Confirm(ProviderActor(f.provider.OwnerID())))

	assert.Equal(t, StatusConfirmed, b.Status())

	events := b.PullDomainEvents()
	require.Len(t, events, 1)
	scheduled, ok := events[0].(*BookingScheduledEvent)
	require.True(t, ok)
	assert.Equal(t, b.ID(), scheduled.BookingID)
	assert.Equal(t, "2026-09-07", scheduled.Date)
	assert.Equal(t, 600, scheduled.StartMinutes)
	assert.Equal(t, 630, scheduled.EndMinutes)
}

func TestBooking_Confirm_Guards(t *testing.T) {
	f := newFixture(t)

	t.Run("customer is forbidden", func(t *testing.T) {
		b := f.newBooking(t)
		var forbidden *ForbiddenError
		assert.ErrorAs(t, b.Confirm(CustomerActor(f.customerID)), &forbidden)
		assert.Equal(t, StatusPending, b.Status())
	})

	t.Run("admin cannot confirm", func(t *testing.T) {
		b := f.newBooking(t)
		admin := AdminActor(uuid.New())
		var invalid *InvalidTransitionError
		require.ErrorAs(t, b.Confirm(admin), &invalid)
		assert.Equal(t, StatusPending, invalid.From)
		assert.Equal(t, StatusConfirmed, invalid.To)
		assert.Equal(t, admin, invalid.Actor)
	})

	t.Run("already confirmed", func(t *testing.T) {
		b := f.newBooking(t)
		provider := ProviderActor(f.provider.OwnerID())
		require.NoError(t, b.Confirm(provider))
		var invalid *InvalidTransitionError
		require.ErrorAs(t, b.Confirm(provider), &invalid)
		assert.Equal(t, StatusConfirmed, invalid.From)
		assert.Equal(t, provider, invalid.Actor)
	})
}

func TestBooking_Complete(t *testing.T) {
	f := newFixture(t)
	b := f.newBooking(t)
	provider := ProviderActor(f.provider.OwnerID())
	require.NoError(t, b.Confirm(provider))
	b.PullDomainEvents()

	require.NoError(t, b.Complete(provider, afterStart))

	assert.Equal(t, StatusCompleted, b.Status())
	assert.True(t, b.Status().IsTerminal())

	events := b.PullDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, BookingCompletedRoutingKey, events[0].RoutingKey())
}

func TestBooking_Complete_Guards(t *testing.T) {
	f := newFixture(t)

	t.Run("pending cannot complete", func(t *testing.T) {
		b := f.newBooking(t)
		var invalid *InvalidTransitionError
		assert.ErrorAs(t, b.Complete(ProviderActor(f.provider.OwnerID()), afterStart), &invalid)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		b := f.newBooking(t)
		require.NoError(t, b.Confirm(ProviderActor(f.provider.OwnerID())))
		var forbidden *ForbiddenError
		assert.ErrorAs(t, b.Complete(CustomerActor(f.customerID), afterStart), &forbidden)
	})

	t.Run("not started yet", func(t *testing.T) {
		b := f.newBooking(t)
		require.NoError(t, b.Confirm(ProviderActor(f.provider.OwnerID())))
		err := b.Complete(ProviderActor(f.provider.OwnerID()), testNow)
		assert.ErrorIs(t, err, ErrBookingNotStarted)
		assert.Equal(t, StatusConfirmed, b.Status())
	})
}

func TestBooking_Cancel(t *testing.T) {
	f := newFixture(t)

	t.Run("customer cancels pending", func(t *testing.T) {
		b := f.newBooking(t)
		require.NoError(t, b.Cancel(CustomerActor(f.customerID), "changed my mind"))

		assert.Equal(t, StatusCancelled, b.Status())
		assert.Equal(t, "changed my mind", b.CancelReason())

		events := b.PullDomainEvents()
		require.Len(t, events, 1)
		cancelled, ok := events[0].(*BookingCancelledEvent)
		require.True(t, ok)
		assert.Equal(t, "customer", cancelled.CancelledBy)
		assert.Equal(t, "changed my mind", cancelled.Reason)
	})

	t.Run("provider cancels confirmed", func(t *testing.T) {
		b := f.newBooking(t)
		provider := ProviderActor(f.provider.OwnerID())
		require.NoError(t, b.Confirm(provider))

		require.NoError(t, b.Cancel(provider, "shop closed"))
		assert.Equal(t, StatusCancelled, b.Status())
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		b := f.newBooking(t)
		provider := ProviderActor(f.provider.OwnerID())
		require.NoError(t, b.Confirm(provider))
		require.NoError(t, b.Complete(provider, afterStart))

		var invalid *InvalidTransitionError
		require.ErrorAs(t, b.Cancel(CustomerActor(f.customerID), ""), &invalid)
		assert.Equal(t, StatusCompleted, invalid.From)
		assert.Equal(t, CustomerActor(f.customerID), invalid.Actor)
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		b := f.newBooking(t)
		var forbidden *ForbiddenError
		assert.ErrorAs(t, b.Cancel(AdminActor(uuid.New()), ""), &forbidden)
	})
}

func TestBooking_UpdateStatus(t *testing.T) {
	f := newFixture(t)

	t.Run("provider confirms then completes", func(t *testing.T) {
		b := f.newBooking(t)
		provider := ProviderActor(f.provider.OwnerID())

		require.NoError(t, b.UpdateStatus(StatusConfirmed, provider, afterStart))
		require.NoError(t, b.UpdateStatus(StatusCompleted, provider, afterStart))
		assert.Equal(t, StatusCompleted, b.Status())
	})

	t.Run("customer may only cancel", func(t *testing.T) {
		b := f.newBooking(t)
		customer := CustomerActor(f.customerID)

		var forbidden *ForbiddenError
		assert.ErrorAs(t, b.UpdateStatus(StatusConfirmed, customer, afterStart), &forbidden)
		assert.ErrorAs(t, b.UpdateStatus(StatusCompleted, customer, afterStart), &forbidden)
		require.NoError(t, b.UpdateStatus(StatusCancelled, customer, afterStart))
	})

	t.Run("unknown target", func(t *testing.T) {
		b := f.newBooking(t)
		provider := ProviderActor(f.provider.OwnerID())
		var invalid *InvalidTransitionError
		require.ErrorAs(t, b.UpdateStatus(Status("archived"), provider, afterStart), &invalid)
		assert.Equal(t, Status("archived"), invalid.To)
		assert.Equal(t, provider, invalid.Actor)
	})
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	assert.True(t, StatusPending.IsValid())
	assert.False(t, Status("archived").IsValid())
}

func TestRehydrateBooking(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	createdAt := testNow.Add(-time.Hour)

	b := RehydrateBooking(id, f.customerID, f.provider.ID(), f.offering.ID(), f.slot,
		StatusConfirmed, shared.NewMoney(50000, "TRY"), "notes", "", createdAt, createdAt)

	assert.Equal(t, id, b.ID())
	assert.Equal(t, StatusConfirmed, b.Status())
	assert.True(t, b.Slot().Equals(f.slot))
	assert.Empty(t, b.PullDomainEvents())
}
