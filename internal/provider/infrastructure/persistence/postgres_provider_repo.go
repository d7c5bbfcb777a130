package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/internal/provider/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	sharedPersistence "github.com/emreakdogan/randevu/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProviderRepository implements domain.Repository using PostgreSQL.
// The aggregate's children ride along: offerings are upserted and working
// hours are replaced wholesale on every save.
type PostgresProviderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProviderRepository creates a new PostgreSQL provider repository.
func NewPostgresProviderRepository(pool *pgxpool.Pool) *PostgresProviderRepository {
	return &PostgresProviderRepository{pool: pool}
}

// Save persists a provider together with its offerings and working hours.
func (r *PostgresProviderRepository) Save(ctx context.Context, provider *domain.Provider) error {
	execer := sharedPersistence.PgxExecutor(ctx, r.pool)

	_, err := execer.Exec(ctx, `
		INSERT INTO providers (id, owner_id, shop_name, city, district, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			shop_name = EXCLUDED.shop_name,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`,
		provider.ID(),
		provider.OwnerID(),
		provider.ShopName(),
		provider.City(),
		provider.District(),
		string(provider.Status()),
		provider.CreatedAt(),
		provider.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save provider: %w", err)
	}

	for _, offering := range provider.Offerings() {
		_, err := execer.Exec(ctx, `
			INSERT INTO offerings (id, provider_id, name, description, duration_minutes,
				price_amount, price_currency, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				duration_minutes = EXCLUDED.duration_minutes,
				price_amount = EXCLUDED.price_amount,
				price_currency = EXCLUDED.price_currency,
				active = EXCLUDED.active,
				updated_at = EXCLUDED.updated_at
		`,
			offering.ID(),
			offering.ProviderID(),
			offering.Name(),
			offering.Description(),
			offering.DurationMinutes(),
			offering.Price().Amount(),
			offering.Price().Currency(),
			offering.IsActive(),
			offering.CreatedAt(),
			offering.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save offering %s: %w", offering.ID(), err)
		}
	}

	if _, err := execer.Exec(ctx, `DELETE FROM working_hours WHERE provider_id = $1`, provider.ID()); err != nil {
		return fmt.Errorf("failed to clear working hours: %w", err)
	}
	for _, day := range provider.Schedule().Entries() {
		_, err := execer.Exec(ctx, `
			INSERT INTO working_hours (provider_id, weekday, closed, open_minutes, close_minutes)
			VALUES ($1, $2, $3, $4, $5)
		`,
			provider.ID(),
			int(day.Weekday()),
			day.IsClosed(),
			int(day.Open().Minutes()),
			int(day.Close().Minutes()),
		)
		if err != nil {
			return fmt.Errorf("failed to save working hours: %w", err)
		}
	}

	return nil
}

// FindByID retrieves a provider by its ID.
func (r *PostgresProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByOwnerID retrieves the provider owned by the given user.
func (r *PostgresProviderRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Provider, error) {
	return r.findOne(ctx, `WHERE owner_id = $1`, ownerID)
}

func (r *PostgresProviderRepository) findOne(ctx context.Context, where string, arg any) (*domain.Provider, error) {
	execer := sharedPersistence.PgxExecutor(ctx, r.pool)

	row := execer.QueryRow(ctx, `
		SELECT id, owner_id, shop_name, city, district, status, created_at, updated_at
		FROM providers `+where, arg)

	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		shopName  string
		city      string
		district  string
		status    string
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&id, &ownerID, &shopName, &city, &district, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	offerings, err := r.loadOfferings(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule, err := r.loadSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateProvider(
		id, ownerID, shopName, city, district,
		domain.ProviderStatus(status), schedule, offerings,
		createdAt, updatedAt,
	), nil
}

// FindByCity retrieves approved providers in a city, optionally narrowed by district.
func (r *PostgresProviderRepository) FindByCity(ctx context.Context, city, district string) ([]*domain.Provider, error) {
	execer := sharedPersistence.PgxExecutor(ctx, r.pool)

	query := `
		SELECT id FROM providers
		WHERE status = 'approved' AND city = $1
	`
	args := []any{city}
	if district != "" {
		query += ` AND district = $2`
		args = append(args, district)
	}
	query += ` ORDER BY shop_name`

	rows, err := execer.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	providers := make([]*domain.Provider, 0, len(ids))
	for _, id := range ids {
		provider, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if provider != nil {
			providers = append(providers, provider)
		}
	}
	return providers, nil
}

func (r *PostgresProviderRepository) loadOfferings(ctx context.Context, providerID uuid.UUID) ([]*domain.Offering, error) {
	execer := sharedPersistence.PgxExecutor(ctx, r.pool)

	rows, err := execer.Query(ctx, `
		SELECT id, provider_id, name, description, duration_minutes,
		       price_amount, price_currency, active, created_at, updated_at
		FROM offerings
		WHERE provider_id = $1
		ORDER BY created_at
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []*domain.Offering
	for rows.Next() {
		var (
			id              uuid.UUID
			ownerProviderID uuid.UUID
			name            string
			description     string
			durationMinutes int
			priceAmount     int64
			priceCurrency   string
			active          bool
			createdAt       time.Time
			updatedAt       time.Time
		)
		err := rows.Scan(&id, &ownerProviderID, &name, &description, &durationMinutes,
			&priceAmount, &priceCurrency, &active, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		offerings = append(offerings, domain.RehydrateOffering(
			id, ownerProviderID, name, description,
			time.Duration(durationMinutes)*time.Minute,
			shared.NewMoney(priceAmount, priceCurrency),
			active, createdAt, updatedAt,
		))
	}
	return offerings, rows.Err()
}

func (r *PostgresProviderRepository) loadSchedule(ctx context.Context, providerID uuid.UUID) (domain.WeeklySchedule, error) {
	execer := sharedPersistence.PgxExecutor(ctx, r.pool)

	rows, err := execer.Query(ctx, `
		SELECT weekday, closed, open_minutes, close_minutes
		FROM working_hours
		WHERE provider_id = $1
		ORDER BY weekday
	`, providerID)
	if err != nil {
		return domain.WeeklySchedule{}, err
	}
	defer rows.Close()

	var schedule domain.WeeklySchedule
	for rows.Next() {
		var (
			weekday      int
			closed       bool
			openMinutes  int
			closeMinutes int
		)
		if err := rows.Scan(&weekday, &closed, &openMinutes, &closeMinutes); err != nil {
			return domain.WeeklySchedule{}, err
		}

		day, err := rehydrateDayHours(time.Weekday(weekday), closed, openMinutes, closeMinutes)
		if err != nil {
			return domain.WeeklySchedule{}, err
		}
		schedule.SetDay(day)
	}
	return schedule, rows.Err()
}

func rehydrateDayHours(weekday time.Weekday, closed bool, openMinutes, closeMinutes int) (domain.DayHours, error) {
	if closed {
		return domain.NewClosedDay(weekday), nil
	}
	day, err := domain.NewOpenDay(weekday,
		time.Duration(openMinutes)*time.Minute,
		time.Duration(closeMinutes)*time.Minute,
	)
	if err != nil {
		return domain.DayHours{}, fmt.Errorf("corrupt working hours for %s: %w", weekday, err)
	}
	return day, nil
}
