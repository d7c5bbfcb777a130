package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/internal/booking/domain"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	sharedPersistence "github.com/emreakdogan/randevu/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

const sqliteDateLayout = "2006-01-02"

// SQLiteBookingRepository implements domain.Repository using SQLite.
//
// SQLite has no exclusion constraints, so Save re-checks for an overlapping
// active booking right before inserting. SQLite allows one writer at a time,
// which makes the check-then-insert pair atomic inside a transaction.
type SQLiteBookingRepository struct {
	dbConn *sql.DB
}

// NewSQLiteBookingRepository creates a new SQLite booking repository.
func NewSQLiteBookingRepository(dbConn *sql.DB) *SQLiteBookingRepository {
	return &SQLiteBookingRepository{dbConn: dbConn}
}

func (r *SQLiteBookingRepository) querier(ctx context.Context) sharedPersistence.SQLiteQuerier {
	return sharedPersistence.SQLiteExecutor(ctx, r.dbConn)
}

// Save persists a booking.
func (r *SQLiteBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	q := r.querier(ctx)

	var exists int
	err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM bookings WHERE id = ?`, booking.ID().String()).Scan(&exists)
	if err != nil {
		return err
	}

	if exists == 0 {
		return r.create(ctx, q, booking)
	}
	return r.update(ctx, q, booking)
}

func (r *SQLiteBookingRepository) create(ctx context.Context, q sharedPersistence.SQLiteQuerier, booking *domain.Booking) error {
	if booking.Status().IsActive() {
		var conflicts int
		err := q.QueryRowContext(ctx, `
			SELECT COUNT(1) FROM bookings
			WHERE provider_id = ?
			  AND date = ?
			  AND status IN ('pending', 'confirmed')
			  AND start_minutes < ?
			  AND end_minutes > ?
		`,
			booking.ProviderID().String(),
			booking.Slot().Date().Format(sqliteDateLayout),
			int(booking.Slot().End().Minutes()),
			int(booking.Slot().Start().Minutes()),
		).Scan(&conflicts)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.ErrSlotUnavailable
		}
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO bookings (
			id, customer_id, provider_id, offering_id, date, start_minutes, end_minutes,
			status, price_amount, price_currency, notes, cancel_reason, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		booking.ID().String(),
		booking.CustomerID().String(),
		booking.ProviderID().String(),
		booking.OfferingID().String(),
		booking.Slot().Date().Format(sqliteDateLayout),
		int(booking.Slot().Start().Minutes()),
		int(booking.Slot().End().Minutes()),
		string(booking.Status()),
		booking.Price().Amount(),
		booking.Price().Currency(),
		booking.Notes(),
		nullString(booking.CancelReason()),
		booking.CreatedAt().Format(time.RFC3339),
		booking.UpdatedAt().Format(time.RFC3339),
	)
	return err
}

func (r *SQLiteBookingRepository) update(ctx context.Context, q sharedPersistence.SQLiteQuerier, booking *domain.Booking) error {
	_, err := q.ExecContext(ctx, `
		UPDATE bookings
		SET status = ?, cancel_reason = ?, updated_at = ?
		WHERE id = ?
	`,
		string(booking.Status()),
		nullString(booking.CancelReason()),
		booking.UpdatedAt().Format(time.RFC3339),
		booking.ID().String(),
	)
	return err
}

const sqliteBookingColumns = `
	id, customer_id, provider_id, offering_id, date, start_minutes, end_minutes,
	status, price_amount, price_currency, notes, cancel_reason, created_at, updated_at
`

// FindByID retrieves a booking by its ID.
func (r *SQLiteBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	row := r.querier(ctx).QueryRowContext(ctx,
		`SELECT `+sqliteBookingColumns+` FROM bookings WHERE id = ?`, id.String())

	booking, err := scanSQLiteBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}

// FindActiveByProviderAndDate retrieves the pending and confirmed bookings
// of a provider on a calendar day.
func (r *SQLiteBookingRepository) FindActiveByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*domain.Booking, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `
		SELECT `+sqliteBookingColumns+`
		FROM bookings
		WHERE provider_id = ?
		  AND date = ?
		  AND status IN ('pending', 'confirmed')
		ORDER BY start_minutes
	`, providerID.String(), shared.DateOf(date).Format(sqliteDateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSQLiteBookings(rows)
}

// FindByCustomerID retrieves a page of a customer's bookings, newest first.
func (r *SQLiteBookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*domain.Booking, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `
		SELECT `+sqliteBookingColumns+`
		FROM bookings
		WHERE customer_id = ?
		ORDER BY date DESC, start_minutes DESC
		LIMIT ? OFFSET ?
	`, customerID.String(), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSQLiteBookings(rows)
}

// FindByProviderID retrieves a page of a provider's bookings, newest first.
func (r *SQLiteBookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*domain.Booking, error) {
	rows, err := r.querier(ctx).QueryContext(ctx, `
		SELECT `+sqliteBookingColumns+`
		FROM bookings
		WHERE provider_id = ?
		ORDER BY date DESC, start_minutes DESC
		LIMIT ? OFFSET ?
	`, providerID.String(), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSQLiteBookings(rows)
}

type sqliteRowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanSQLiteBooking(rows)
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

func scanSQLiteBooking(row sqliteRowScanner) (*domain.Booking, error) {
	var (
		idStr         string
		customerStr   string
		providerStr   string
		offeringStr   string
		dateStr       string
		startMinutes  int
		endMinutes    int
		status        string
		priceAmount   int64
		priceCurrency string
		notes         string
		cancelReason  sql.NullString
		createdAtStr  string
		updatedAtStr  string
	)

	err := row.Scan(
		&idStr,
		&customerStr,
		&providerStr,
		&offeringStr,
		&dateStr,
		&startMinutes,
		&endMinutes,
		&status,
		&priceAmount,
		&priceCurrency,
		&notes,
		&cancelReason,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	id, _ := uuid.Parse(idStr)
	customerID, _ := uuid.Parse(customerStr)
	providerID, _ := uuid.Parse(providerStr)
	offeringID, _ := uuid.Parse(offeringStr)
	date, _ := time.Parse(sqliteDateLayout, dateStr)
	createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
	updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

	slot, err := shared.NewTimeSlot(date,
		time.Duration(startMinutes)*time.Minute,
		time.Duration(endMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("corrupt booking row %s: %w", idStr, err)
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
		cancelReason.String,
		createdAt,
		updatedAt,
	), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
