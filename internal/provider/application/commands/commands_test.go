package commands

import (
	"context"
	"testing"
	"time"

	"github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProviderRepo struct {
	providers map[uuid.UUID]*domain.Provider
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{providers: make(map[uuid.UUID]*domain.Provider)}
}

func (r *memProviderRepo) Save(ctx context.Context, provider *domain.Provider) error {
	r.providers[provider.ID()] = provider
	return nil
}

func (r *memProviderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	return r.providers[id], nil
}

func (r *memProviderRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Provider, error) {
	for _, p := range r.providers {
		if p.OwnerID() == ownerID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProviderRepo) FindByCity(ctx context.Context, city, district string) ([]*domain.Provider, error) {
	var out []*domain.Provider
	for _, p := range r.providers {
		if p.Status() != domain.StatusApproved {
			continue
		}
		if p.City() == city && (district == "" || p.District() == district) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memOutboxRepo struct {
	messages []*outbox.Message
}

func (r *memOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	r.messages = append(r.messages, msg)
	return nil
}

func (r *memOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	r.messages = append(r.messages, msgs...)
	return nil
}

func (r *memOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	return nil, nil
}
func (r *memOutboxRepo) MarkPublished(ctx context.Context, id int64) error { return nil }
func (r *memOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	return nil
}
func (r *memOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error { return nil }
func (r *memOutboxRepo) GetFailed(ctx context.Context, maxRetries, limit int) ([]*outbox.Message, error) {
	return nil, nil
}
func (r *memOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

type noopUnitOfWork struct{}

func (noopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (noopUnitOfWork) Commit(ctx context.Context) error                   { return nil }
func (noopUnitOfWork) Rollback(ctx context.Context) error                 { return nil }

func registerProvider(t *testing.T, providers *memProviderRepo, outboxRepo *memOutboxRepo) *domain.Provider {
	t.Helper()

	handler := NewRegisterProviderHandler(providers, outboxRepo, noopUnitOfWork{})
	provider, err := handler.Handle(context.Background(), RegisterProviderCommand{
		OwnerID:  uuid.New(),
		ShopName: "Kadıköy Barber",
		City:     "Istanbul",
		District: "Kadıköy",
	})
	require.NoError(t, err)
	return provider
}

func TestRegisterProviderHandler(t *testing.T) {
	providers := newMemProviderRepo()
	outboxRepo := &memOutboxRepo{}

	provider := registerProvider(t, providers, outboxRepo)

	assert.Equal(t, domain.StatusPending, provider.Status())

	saved, err := providers.FindByID(context.Background(), provider.ID())
	require.NoError(t, err)
	require.NotNil(t, saved)

	require.Len(t, outboxRepo.messages, 1)
	assert.Equal(t, domain.ProviderRegisteredRoutingKey, outboxRepo.messages[0].RoutingKey)
}

func TestRegisterProviderHandler_OwnerAlreadyHasProvider(t *testing.T) {
	providers := newMemProviderRepo()
	outboxRepo := &memOutboxRepo{}
	provider := registerProvider(t, providers, outboxRepo)

	handler := NewRegisterProviderHandler(providers, outboxRepo, noopUnitOfWork{})
	_, err := handler.Handle(context.Background(), RegisterProviderCommand{
		OwnerID:  provider.OwnerID(),
		ShopName: "Second Shop",
		City:     "Istanbul",
		District: "Beşiktaş",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidProvider)
}

func TestSetWorkingHoursHandler(t *testing.T) {
	providers := newMemProviderRepo()
	provider := registerProvider(t, providers, &memOutboxRepo{})
	handler := NewSetWorkingHoursHandler(providers, noopUnitOfWork{})

	day, err := domain.NewOpenDay(time.Monday, 9*time.Hour, 18*time.Hour)
	require.NoError(t, err)

	updated, err := handler.Handle(context.Background(), SetWorkingHoursCommand{
		ProviderID: provider.ID(),
		Entries:    []domain.DayHours{day, domain.NewClosedDay(time.Sunday)},
	})

	require.NoError(t, err)
	assert.True(t, updated.Schedule().HasOpenDay())

	got, ok := updated.Schedule().DayFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, 9*time.Hour, got.Open())
}

func TestSetWorkingHoursHandler_Invalid(t *testing.T) {
	providers := newMemProviderRepo()
	provider := registerProvider(t, providers, &memOutboxRepo{})
	handler := NewSetWorkingHoursHandler(providers, noopUnitOfWork{})

	morning, err := domain.NewOpenDay(time.Monday, 9*time.Hour, 12*time.Hour)
	require.NoError(t, err)
	afternoon, err := domain.NewOpenDay(time.Monday, 13*time.Hour, 18*time.Hour)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), SetWorkingHoursCommand{
		ProviderID: provider.ID(),
		Entries:    []domain.DayHours{morning, afternoon},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	_, err = handler.Handle(context.Background(), SetWorkingHoursCommand{ProviderID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestAddOfferingHandler(t *testing.T) {
	providers := newMemProviderRepo()
	provider := registerProvider(t, providers, &memOutboxRepo{})
	handler := NewAddOfferingHandler(providers, noopUnitOfWork{})

	offering, err := handler.Handle(context.Background(), AddOfferingCommand{
		ProviderID:      provider.ID(),
		Name:            "Haircut",
		Description:     "Classic cut",
		DurationMinutes: 30,
		PriceAmount:     50000,
		Currency:        "TRY",
	})

	require.NoError(t, err)
	assert.Equal(t, "Haircut", offering.Name())
	assert.Equal(t, 30, offering.DurationMinutes())
	assert.True(t, offering.IsActive())
	assert.Len(t, provider.Offerings(), 1)
}

func TestAddOfferingHandler_Invalid(t *testing.T) {
	providers := newMemProviderRepo()
	provider := registerProvider(t, providers, &memOutboxRepo{})
	handler := NewAddOfferingHandler(providers, noopUnitOfWork{})

	_, err := handler.Handle(context.Background(), AddOfferingCommand{
		ProviderID:      provider.ID(),
		Name:            "Haircut",
		DurationMinutes: 0,
		PriceAmount:     50000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOffering)

	_, err = handler.Handle(context.Background(), AddOfferingCommand{
		ProviderID:      uuid.New(),
		Name:            "Haircut",
		DurationMinutes: 30,
		PriceAmount:     50000,
	})
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func makeApprovable(t *testing.T, providers *memProviderRepo, provider *domain.Provider) {
	t.Helper()

	offeringHandler := NewAddOfferingHandler(providers, noopUnitOfWork{})
	_, err := offeringHandler.Handle(context.Background(), AddOfferingCommand{
		ProviderID:      provider.ID(),
		Name:            "Haircut",
		DurationMinutes: 30,
		PriceAmount:     50000,
	})
	require.NoError(t, err)

	day, err := domain.NewOpenDay(time.Monday, 9*time.Hour, 18*time.Hour)
	require.NoError(t, err)
	hoursHandler := NewSetWorkingHoursHandler(providers, noopUnitOfWork{})
	_, err = hoursHandler.Handle(context.Background(), SetWorkingHoursCommand{
		ProviderID: provider.ID(),
		Entries:    []domain.DayHours{day},
	})
	require.NoError(t, err)
}

func TestApproveProviderHandler_Approve(t *testing.T) {
	providers := newMemProviderRepo()
	outboxRepo := &memOutboxRepo{}
	provider := registerProvider(t, providers, outboxRepo)
	makeApprovable(t, providers, provider)

	handler := NewApproveProviderHandler(providers, outboxRepo, noopUnitOfWork{})
	decided, err := handler.Handle(context.Background(), ApproveProviderCommand{
		ProviderID: provider.ID(),
		AdminID:    uuid.New(),
		Approve:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status())

	require.Len(t, outboxRepo.messages, 2) // registered + approved
	assert.Equal(t, domain.ProviderApprovedRoutingKey, outboxRepo.messages[1].RoutingKey)
}

func TestApproveProviderHandler_Reject(t *testing.T) {
	providers := newMemProviderRepo()
	outboxRepo := &memOutboxRepo{}
	provider := registerProvider(t, providers, outboxRepo)

	handler := NewApproveProviderHandler(providers, outboxRepo, noopUnitOfWork{})
	decided, err := handler.Handle(context.Background(), ApproveProviderCommand{
		ProviderID: provider.ID(),
		AdminID:    uuid.New(),
		Approve:    false,
		Reason:     "incomplete application",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, decided.Status())
	assert.Equal(t, domain.ProviderRejectedRoutingKey, outboxRepo.messages[len(outboxRepo.messages)-1].RoutingKey)
}

func TestApproveProviderHandler_NotReady(t *testing.T) {
	providers := newMemProviderRepo()
	outboxRepo := &memOutboxRepo{}
	provider := registerProvider(t, providers, outboxRepo)

	handler := NewApproveProviderHandler(providers, outboxRepo, noopUnitOfWork{})
	_, err := handler.Handle(context.Background(), ApproveProviderCommand{
		ProviderID: provider.ID(),
		AdminID:    uuid.New(),
		Approve:    true,
	})

	assert.ErrorIs(t, err, domain.ErrProviderNotReady)
}

func TestApproveProviderHandler_NotFound(t *testing.T) {
	handler := NewApproveProviderHandler(newMemProviderRepo(), &memOutboxRepo{}, noopUnitOfWork{})

	_, err := handler.Handle(context.Background(), ApproveProviderCommand{
		ProviderID: uuid.New(),
		AdminID:    uuid.New(),
		Approve:    true,
	})

	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}
