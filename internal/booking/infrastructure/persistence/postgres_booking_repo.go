package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	sharedPersistence "github.com/emreakdogan/randevu/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes raised by the bookings_no_overlap constraint.
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// PostgresBookingRepository implements domain.Repository using PostgreSQL.
// The bookings table carries an exclusion constraint over active bookings,
// so an overlapping insert that slipped past the application-level conflict
// check fails here and surfaces as ErrSlotUnavailable.
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgreSQL booking repository.
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

// Save persists a booking, inserting or updating as needed.
func (r *PostgresBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, customer_id, provider_id, offering_id, date, start_minutes, end_minutes,
			status, price_amount, price_currency, notes, cancel_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			cancel_reason = EXCLUDED.cancel_reason,
			updated_at = EXCLUDED.updated_at
	`

	var cancelReason *string
	if booking.CancelReason() != "" {
		reason := booking.CancelReason()
		cancelReason = &reason
	}

	execer := sharedPersistence.PgxExecutor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		booking.ID(),
		booking.CustomerID(),
		booking.ProviderID(),
		booking.OfferingID(),
		booking.Slot().Date(),
		int(booking.Slot().Start().Minutes()),
		int(booking.Slot().End().Minutes()),
		string(booking.Status()),
		booking.Price().Amount(),
		booking.Price().Currency(),
		booking.Notes(),
		cancelReason,
		booking.CreatedAt(),
		booking.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation) {
			return domain.ErrSlotUnavailable
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}

	return nil
}

const bookingColumns = `
	id, customer_id, provider_id, offering_id, date, start_minutes, end_minutes,
	status, price_amount, price_currency, notes, cancel_reason, created_at, updated_at
`

// FindByID retrieves a booking by its ID.
func (r *PostgresBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	execer := sharedPersistence.PgxExecutor(ctx, r.pool)
	row := execer.QueryRow(ctx, query, id)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}

// FindActiveByProviderAndDate retrieves the pending and confirmed bookings
// of a provider on a calendar day.
func (r *PostgresBookingRepository) FindActiveByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		  AND date = $2
		  AND status IN ('pending', 'confirmed')
		ORDER BY start_minutes
	`

	execer := sharedPersistence.PgxExecutor(ctx, r.pool)
	rows, err := execer.Query(ctx, query, providerID, shared.DateOf(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindByCustomerID retrieves a page of a customer's bookings, newest first.
func (r *PostgresBookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY date DESC, start_minutes DESC
		LIMIT $2 OFFSET $3
	`

	execer := sharedPersistence.PgxExecutor(ctx, r.pool)
	rows, err := execer.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindByProviderID retrieves a page of a provider's bookings, newest first.
func (r *PostgresBookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		ORDER BY date DESC, start_minutes DESC
		LIMIT $2 OFFSET $3
	`

	execer := sharedPersistence.PgxExecutor(ctx, r.pool)
	rows, err := execer.Query(ctx, query, providerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		id            uuid.UUID
		customerID    uuid.UUID
		providerID    uuid.UUID
		offeringID    uuid.UUID
		date          time.Time
		startMinutes  int
		endMinutes    int
		status        string
		priceAmount   int64
		priceCurrency string
		notes         string
		cancelReason  *string
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(
		&id,
		&customerID,
		&providerID,
		&offeringID,
		&date,
		&startMinutes,
		&endMinutes,
		&status,
		&priceAmount,
		&priceCurrency,
		&notes,
		&cancelReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot, err := shared.NewTimeSlot(date,
		time.Duration(startMinutes)*time.Minute,
		time.Duration(endMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking row %s: %w", id, err)
	}

	reason := ""
	if cancelReason != nil {
		reason = *cancelReason
	}

	return domain.RehydrateBooking(
		id,
		customerID,
		providerID,
		offeringID,
		slot,
		domain.Status(status),
		shared.NewMoney(priceAmount, priceCurrency),
		notes,
		reason,
		createdAt,
		updatedAt,
	), nil
}
