package commands

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/application"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// UpdateBookingStatusCommand requests a status transition on a booking.
type UpdateBookingStatusCommand struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	// AsAdmin marks the caller as a platform administrator instead of a
	// party to the booking.
	AsAdmin bool
	Target  domain.Status
	// Reason is recorded when the target status is cancelled.
	Reason string
}

// UpdateBookingStatusHandler applies status transitions. The actor's role is
// resolved from the booking itself: the customer who placed it, the owner of
// the booked provider, or an admin. Anyone else is rejected before the state
// machine runs.
type UpdateBookingStatusHandler struct {
	bookings   domain.Repository
	providers  providerDomain.Repository
	outboxRepo outbox.Repository
	uow        application.UnitOfWork
	clock      shared.Clock
}

// NewUpdateBookingStatusHandler creates a new UpdateBookingStatusHandler.
func NewUpdateBookingStatusHandler(
	bookings domain.Repository,
	providers providerDomain.Repository,
	outboxRepo outbox.Repository,
	uow application.UnitOfWork,
	clock shared.Clock,
) *UpdateBookingStatusHandler {
	return &UpdateBookingStatusHandler{
		bookings:   bookings,
		providers:  providers,
		outboxRepo: outboxRepo,
		uow:        uow,
		clock:      clock,
	}
}

// Handle executes the command and returns the updated booking.
func (h *UpdateBookingStatusHandler) Handle(ctx context.Context, cmd UpdateBookingStatusCommand) (*domain.Booking, error) {
	var booking *domain.Booking

	err := application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		b, err := h.bookings.FindByID(txCtx, cmd.BookingID)
		if err != nil {
			return fmt.Errorf("failed to load booking: %w", err)
		}
		if b == nil {
			return domain.ErrBookingNotFound
		}

		actor, err := resolveActor(txCtx, h.providers, b, cmd.ActorID, cmd.AsAdmin)
		if err != nil {
			return err
		}

		if cmd.Target == domain.StatusCancelled {
			err = b.Cancel(actor, cmd.Reason)
		} else {
			err = b.UpdateStatus(cmd.Target, actor, h.clock.Now())
		}
		if err != nil {
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

// resolveActor determines the role the acting user holds on this booking.
func resolveActor(
	ctx context.Context,
	providers providerDomain.Repository,
	booking *domain.Booking,
	actorID uuid.UUID,
	asAdmin bool,
) (domain.Actor, error) {
	if asAdmin {
		return domain.AdminActor(actorID), nil
	}
	if booking.CustomerID() == actorID {
		return domain.CustomerActor(actorID), nil
	}

	provider, err := providers.FindByID(ctx, booking.ProviderID())
	if err != nil {
		return domain.Actor{}, fmt.Errorf("failed to load provider: %w", err)
	}
	if provider != nil && provider.OwnerID() == actorID {
		return domain.ProviderActor(actorID), nil
	}

	return domain.Actor{}, domain.ErrActorNotRelated
}
