package commands

import (
	"context"
	"fmt"

	"github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/application"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
)

// AddOfferingCommand adds a bookable service to a provider's menu.
type AddOfferingCommand struct {
	ProviderID      uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	PriceAmount     int64
	Currency        string
}

// AddOfferingHandler adds an offering to a provider.
type AddOfferingHandler struct {
	providers domain.Repository
	uow       application.UnitOfWork
}

// NewAddOfferingHandler creates a new AddOfferingHandler.
func NewAddOfferingHandler(providers domain.Repository, uow application.UnitOfWork) *AddOfferingHandler {
	return &AddOfferingHandler{providers: providers, uow: uow}
}

// Handle executes the command and returns the new offering.
func (h *AddOfferingHandler) Handle(ctx context.Context, cmd AddOfferingCommand) (*domain.Offering, error) {
	var offering *domain.Offering

	err := application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		p, err := h.providers.FindByID(txCtx, cmd.ProviderID)
		if err != nil {
			return fmt.Errorf("failed to load provider: %w", err)
		}
		if p == nil {
			return domain.ErrProviderNotFound
		}

		price := shared.NewMoney(cmd.PriceAmount, cmd.Currency)
		o, err := p.AddOffering(cmd.Name, cmd.Description, cmd.DurationMinutes, price)
		if err != nil {
			return err
		}

		if err := h.providers.Save(txCtx, p); err != nil {
			return fmt.Errorf("failed to save provider: %w", err)
		}

		offering = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return offering, nil
}
