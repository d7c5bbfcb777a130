package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emreakdogan/randevu/internal/provider/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	sharedPersistence "github.com/emreakdogan/randevu/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// SQLiteProviderRepository implements domain.Repository using SQLite.
type SQLiteProviderRepository struct {
	dbConn *sql.DB
}

// NewSQLiteProviderRepository creates a new SQLite provider repository.
func NewSQLiteProviderRepository(dbConn *sql.DB) *SQLiteProviderRepository {
	return &SQLiteProviderRepository{dbConn: dbConn}
}

func (r *SQLiteProviderRepository) querier(ctx context.Context) sharedPersistence.SQLiteQuerier {
	return sharedPersistence.SQLiteExecutor(ctx, r.dbConn)
}

// Save persists a provider together with its offerings and working hours.
func (r *SQLiteProviderRepository) Save(ctx context.Context, provider *domain.Provider) error {
	q := r.querier(ctx)

	_, err := q.ExecContext(ctx, `
		INSERT INTO providers (id, owner_id, shop_name, city, district, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			shop_name = excluded.shop_name,
			city = excluded.city,
			district = excluded.district,
			status = excluded.status,
			updated_at = excluded.updated_at
	`,
		provider.ID().String(),
		provider.OwnerID().String(),
		provider.ShopName(),
		provider.City(),
		provider.District(),
		string(provider.Status()),
		provider.CreatedAt().Format(time.RFC3339),
		provider.UpdatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	for _, offering := range provider.Offerings() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO offerings (id, provider_id, name, description, duration_minutes,
				price_amount, price_currency, active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				duration_minutes = excluded.duration_minutes,
				price_amount = excluded.price_amount,
				price_currency = excluded.price_currency,
				active = excluded.active,
				updated_at = excluded.updated_at
		`,
			offering.ID().String(),
			offering.ProviderID().String(),
			offering.Name(),
			offering.Description(),
			offering.DurationMinutes(),
			offering.Price().Amount(),
			offering.Price().Currency(),
			offering.IsActive(),
			offering.CreatedAt().Format(time.RFC3339),
			offering.UpdatedAt().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM working_hours WHERE provider_id = ?`, provider.ID().String()); err != nil {
		return err
	}
	for _, day := range provider.Schedule().Entries() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO working_hours (provider_id, weekday, closed, open_minutes, close_minutes)
			VALUES (?, ?, ?, ?, ?)
		`,
			provider.ID().String(),
			int(day.Weekday()),
			day.IsClosed(),
			int(day.Open().Minutes()),
			int(day.Close().Minutes()),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a provider by its ID.
func (r *SQLiteProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	return r.findOne(ctx, `WHERE id = ?`, id.String())
}

// FindByOwnerID retrieves the provider owned by the given user.
func (r *SQLiteProviderRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Provider, error) {
	return r.findOne(ctx, `WHERE owner_id = ?`, ownerID.String())
}

func (r *SQLiteProviderRepository) findOne(ctx context.Context, where string, arg any) (*domain.Provider, error) {
	row := r.querier(ctx).QueryRowContext(ctx, `
		SELECT id, owner_id, shop_name, city, district, status, created_at, updated_at
		FROM providers `+where, arg)

	var (
		idStr        string
		ownerStr     string
		shopName     string
		city         string
		district     string
		status       string
		createdAtStr string
		updatedAtStr string
	)
	err := row.Scan(&idStr, &ownerStr, &shopName, &city, &district, &status, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	id, _ := uuid.Parse(idStr)
	ownerID, _ := uuid.Parse(ownerStr)
	createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
	updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

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
func (r *SQLiteProviderRepository) FindByCity(ctx context.Context, city, district string) ([]*domain.Provider, error) {
	query := `SELECT id FROM providers WHERE status = 'approved' AND city = ?`
	args := []any{city}
	if district != "" {
		query += ` AND district = ?`
		args = append(args, district)
	}
	query += ` ORDER BY shop_name`

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return nil, err
		}
		id, _ := uuid.Parse(idStr)
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

func (r *SQLiteProviderRepository) loadOfferings(ctx context.Context, providerID uuid.UUID) ([]*domain.Offering, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `
		SELECT id, provider_id, name, description, duration_minutes,
		       price_amount, price_currency, active, created_at, updated_at
		FROM offerings
		WHERE provider_id = ?
		ORDER BY created_at
	`, providerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []*domain.Offering
	for rows.Next() {
		var (
			idStr           string
			ownerStr        string
			name            string
			description     string
			durationMinutes int
			priceAmount     int64
			priceCurrency   string
			active          bool
			createdAtStr    string
			updatedAtStr    string
		)
		err := rows.Scan(&idStr, &ownerStr, &name, &description, &durationMinutes,
			&priceAmount, &priceCurrency, &active, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, err
		}

		id, _ := uuid.Parse(idStr)
		ownerProviderID, _ := uuid.Parse(ownerStr)
		createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
		updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

		offerings = append(offerings, domain.RehydrateOffering(
			id, ownerProviderID, name, description,
			time.Duration(durationMinutes)*time.Minute,
			shared.NewMoney(priceAmount, priceCurrency),
			active, createdAt, updatedAt,
		))
	}
	return offerings, rows.Err()
}

func (r *SQLiteProviderRepository) loadSchedule(ctx context.Context, providerID uuid.UUID) (domain.WeeklySchedule, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `
		SELECT weekday, closed, open_minutes, close_minutes
		FROM working_hours
		WHERE provider_id = ?
		ORDER BY weekday
	`, providerID.String())
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
