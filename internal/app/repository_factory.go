package app

import (
	"database/sql"

	bookingDomain "github.com/emreakdogan/randevu/internal/booking/domain"
	bookingPersistence "github.com/emreakdogan/randevu/internal/booking/infrastructure/persistence"
	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	providerPersistence "github.com/emreakdogan/randevu/internal/provider/infrastructure/persistence"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryFactory builds repositories for whichever engine is configured.
// Exactly one of pool and dbConn is non-nil.
type RepositoryFactory struct {
	pool   *pgxpool.Pool
	dbConn *sql.DB
}

// NewRepositoryFactory creates a factory backed by PostgreSQL when pool is
// set, otherwise by SQLite.
func NewRepositoryFactory(pool *pgxpool.Pool, dbConn *sql.DB) *RepositoryFactory {
	return &RepositoryFactory{pool: pool, dbConn: dbConn}
}

// ProviderRepository returns the provider repository.
func (f *RepositoryFactory) ProviderRepository() providerDomain.Repository {
	if f.pool != nil {
		return providerPersistence.NewPostgresProviderRepository(f.pool)
	}
	return providerPersistence.NewSQLiteProviderRepository(f.dbConn)
}

// BookingRepository returns the booking repository.
func (f *RepositoryFactory) BookingRepository() bookingDomain.Repository {
	if f.pool != nil {
		return bookingPersistence.NewPostgresBookingRepository(f.pool)
	}
	return bookingPersistence.NewSQLiteBookingRepository(f.dbConn)
}

// OutboxRepository returns the outbox repository.
func (f *RepositoryFactory) OutboxRepository() outbox.Repository {
	if f.pool != nil {
		return outbox.NewPostgresRepository(f.pool)
	}
	return outbox.NewSQLiteRepository(f.dbConn)
}
