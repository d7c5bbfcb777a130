package commands

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/application"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// RegisterProviderCommand opens a new provider application.
type RegisterProviderCommand struct {
	OwnerID  uuid.UUID
	ShopName string
	City     string
	District string
}

// RegisterProviderHandler creates a pending provider application.
type RegisterProviderHandler struct {
	providers  domain.Repository
	outboxRepo outbox.Repository
	uow        application.UnitOfWork
}

// NewRegisterProviderHandler creates a new RegisterProviderHandler.
func NewRegisterProviderHandler(
	providers domain.Repository,
	outboxRepo outbox.Repository,
	uow application.UnitOfWork,
) *RegisterProviderHandler {
	return &RegisterProviderHandler{
		providers:  providers,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the command and returns the new provider.
func (h *RegisterProviderHandler) Handle(ctx context.Context, cmd RegisterProviderCommand) (*domain.Provider, error) {
	var provider *domain.Provider

	err := application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		existing, err := h.providers.FindByOwnerID(txCtx, cmd.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to check existing provider: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: owner already has a provider", domain.ErrInvalidProvider)
		}

		p, err := domain.NewProvider(cmd.OwnerID, cmd.ShopName, cmd.City, cmd.District)
		if err != nil {
			return err
		}

		if err := h.providers.Save(txCtx, p); err != nil {
			return fmt.Errorf("failed to save provider: %w", err)
		}

		events := p.PullDomainEvents()
		application.ApplyEventMetadata(events, application.NewEventMetadata(cmd.OwnerID))
		msgs, err := outbox.NewMessages(events)
		if err != nil {
			return fmt.Errorf("failed to build outbox messages: %w", err)
		}
		if err := h.outboxRepo.SaveBatch(txCtx, msgs); err != nil {
			return fmt.Errorf("failed to save outbox messages: %w", err)
		}

		provider = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return provider, nil
}
