package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/application/services"
	"github.com/emreakdogan/randevu/internal/booking/domain"
	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/application"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// AvailabilityInvalidator drops cached availability for a provider's day.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, providerID uuid.UUID, date time.Time)
}

// CommitBookingCommand requests a new booking for a customer.
type CommitBookingCommand struct {
	CustomerID uuid.UUID
	ProviderID uuid.UUID
	OfferingID uuid.UUID
	Date       time.Time
	Start      time.Duration
	Notes      string
}

// CommitBookingHandler places a booking. Validation, the conflict check, and
// the insert all run inside one transaction; a slot that looked free in an
// earlier availability query is re-checked here before anything is written,
// and the storage layer rejects overlaps the check raced with.
type CommitBookingHandler struct {
	bookings   domain.Repository
	providers  providerDomain.Repository
	conflicts  *services.ConflictChecker
	outboxRepo outbox.Repository
	uow        application.UnitOfWork
	clock      shared.Clock
	cache      AvailabilityInvalidator
}

// NewCommitBookingHandler creates a new CommitBookingHandler. The cache may
// be nil when availability caching is disabled.
func NewCommitBookingHandler(
	bookings domain.Repository,
	providers providerDomain.Repository,
	conflicts *services.ConflictChecker,
	outboxRepo outbox.Repository,
	uow application.UnitOfWork,
	clock shared.Clock,
	cache AvailabilityInvalidator,
) *CommitBookingHandler {
	return &CommitBookingHandler{
		bookings:   bookings,
		providers:  providers,
		conflicts:  conflicts,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
		cache:      cache,
	}
}

// Handle executes the command and returns the created booking.
func (h *CommitBookingHandler) Handle(ctx context.Context, cmd CommitBookingCommand) (*domain.Booking, error) {
	var booking *domain.Booking

	err := application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		provider, err := h.providers.FindByID(txCtx, cmd.ProviderID)
		if err != nil {
			return fmt.Errorf("failed to load provider: %w", err)
		}
		if provider == nil {
			return providerDomain.ErrProviderNotFound
		}

		offering, ok := provider.FindOffering(cmd.OfferingID)
		if !ok {
			return providerDomain.ErrOfferingNotFound
		}

		slot, err := shared.NewTimeSlotWithDuration(cmd.Date, cmd.Start, offering.Duration())
		if err != nil {
			return err
		}

		newBooking, err := domain.NewBooking(cmd.CustomerID, provider, offering, slot, cmd.Notes, h.clock.Now())
		if err != nil {
			return err
		}

		// Re-validate against active bookings inside this transaction.
		conflict, err := h.conflicts.HasConflict(txCtx, provider.ID(), slot)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrSlotUnavailable
		}

		if err := h.bookings.Save(txCtx, newBooking); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		events := newBooking.PullDomainEvents()
		application.ApplyEventMetadata(events, application.NewEventMetadata(cmd.CustomerID))
		msgs, err := outbox.NewMessages(events)
		if err != nil {
			return fmt.Errorf("failed to build outbox messages: %w", err)
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return fmt.Errorf("failed to save outbox messages: %w", err)
		}

		booking = newBooking
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The committed booking now occupies its slot; cached day plans for the
	// provider are stale.
	if h.cache != nil {
		h.cache.Invalidate(ctx, booking.ProviderID(), booking.Slot().Date())
	}

	return booking, nil
}
