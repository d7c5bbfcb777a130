package commands

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/application"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CancelBookingCommand calls off a booking with an optional reason.
type CancelBookingCommand struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	Reason    string
}

// CancelBookingHandler cancels a booking on behalf of its customer or the
// booked provider's owner.
type CancelBookingHandler struct {
	bookings   domain.Repository
	providers  providerDomain.Repository
	outboxRepo outbox.Repository
	uow        application.UnitOfWork
}

// NewCancelBookingHandler creates a new CancelBookingHandler.
func NewCancelBookingHandler(
	bookings domain.Repository,
	providers providerDomain.Repository,
	outboxRepo outbox.Repository,
	uow application.UnitOfWork,
) *CancelBookingHandler {
	return &CancelBookingHandler{
		bookings:   bookings,
		providers:  providers,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the command and returns the cancelled booking.
func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*domain.Booking, error) {
	var booking *domain.Booking

	err := application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		b, err := h.bookings.FindByID(txCtx, cmd.BookingID)
		if err != nil {
			return fmt.Errorf("failed to load booking: %w", err)
		}
		if b == nil {
			return domain.ErrBookingNotFound
		}

		actor, err := resolveActor(txCtx, h.providers, b, cmd.ActorID, false)
		if err != nil {
			return err
		}

		if err := b.Cancel(actor, cmd.Reason); err != nil {
			return err
		}

		if err := h.bookings.Save(txCtx, b); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}

		events := b.PullDomainEvents()
		application.ApplyEventMetadata(events, application.NewEventMetadata(cmd.ActorID))
		msgs, err := outbox.NewMessages(events)
		if err != nil {
			return fmt.Errorf("failed to build outbox messages: %w", err)
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return fmt.Errorf("failed to save outbox messages: %w", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}
