package commands

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/application"
	"github.com/google/uuid"
)

// SetWorkingHoursCommand replaces a provider's weekly schedule.
type SetWorkingHoursCommand struct {
	ProviderID uuid.UUID
	Entries    []domain.DayHours
}

// SetWorkingHoursHandler replaces the full weekly schedule of a provider.
type SetWorkingHoursHandler struct {
	providers domain.Repository
	uow       application.UnitOfWork
}

// NewSetWorkingHoursHandler creates a new SetWorkingHoursHandler.
func NewSetWorkingHoursHandler(providers domain.Repository, uow application.UnitOfWork) *SetWorkingHoursHandler {
	return &SetWorkingHoursHandler{providers: providers, uow: uow}
}

// Handle executes the command and returns the updated provider.
func (h *SetWorkingHoursHandler) Handle(ctx context.Context, cmd SetWorkingHoursCommand) (*domain.Provider, error) {
	var provider *domain.Provider

	err := application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		p, err := h.providers.FindByID(txCtx, cmd.ProviderID)
		if err != nil {
			return fmt.Errorf("failed to load provider: %w", err)
		}
		if p == nil {
			return domain.ErrProviderNotFound
		}

		if err := p.SetWorkingHours(cmd.Entries); err != nil {
			return err
		}

		if err := h.providers.Save(txCtx, p); err != nil {
			return fmt.Errorf("failed to save provider: %w", err)
		}

		provider = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return provider, nil
}
