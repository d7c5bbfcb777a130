package commands

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/application"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ApproveProviderCommand decides a pending provider application.
type ApproveProviderCommand struct {
	ProviderID uuid.UUID
	AdminID    uuid.UUID
	// Approve accepts the application when true, otherwise it is rejected.
	Approve bool
	Reason  string
}

// ApproveProviderHandler approves or rejects a pending application.
type ApproveProviderHandler struct {
	providers  domain.Repository
	outboxRepo outbox.Repository
	uow        application.UnitOfWork
}

// NewApproveProviderHandler creates a new ApproveProviderHandler.
func NewApproveProviderHandler(
	providers domain.Repository,
	outboxRepo outbox.Repository,
	uow application.UnitOfWork,
) *ApproveProviderHandler {
	return &ApproveProviderHandler{
		providers:  providers,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the command and returns the decided provider.
func (h *ApproveProviderHandler) Handle(ctx context.Context, cmd ApproveProviderCommand) (*domain.Provider, error) {
	var provider *domain.Provider

	err := application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		p, err := h.providers.FindByID(txCtx, cmd.ProviderID)
		if err != nil {
			return fmt.Errorf("failed to load provider: %w", err)
		}
		if p == nil {
			return domain.ErrProviderNotFound
		}

		if cmd.Approve {
			err = p.Approve()
		} else {
			err = p.Reject(cmd.Reason)
		}
		if err != nil {
			return err
		}

		if err := h.providers.Save(txCtx, p); err != nil {
			return fmt.Errorf("failed to save provider: %w", err)
		}

		events := p.PullDomainEvents()
		application.ApplyEventMetadata(events, application.NewEventMetadata(cmd.AdminID))
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
