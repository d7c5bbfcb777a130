// Package app wires configuration, storage, messaging, and handlers into a
// single dependency container shared by the CLI and the worker.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	bookingCommands "github.com/emreakdogan/randevu/internal/booking/application/commands"
	bookingQueries "github.com/emreakdogan/randevu/internal/booking/application/queries"
	"github.com/emreakdogan/randevu/internal/booking/application/services"
	"github.com/emreakdogan/randevu/internal/booking/application/subscribers"
	bookingDomain "github.com/emreakdogan/randevu/internal/booking/domain"
	bookingCache "github.com/emreakdogan/randevu/internal/booking/infrastructure/cache"
	providerCommands "github.com/emreakdogan/randevu/internal/provider/application/commands"
	providerDomain "github.com/emreakdogan/randevu/internal/provider/domain"
	sharedApplication "github.com/emreakdogan/randevu/internal/shared/application"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/eventbus"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/migrations"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/emreakdogan/randevu/internal/shared/infrastructure/persistence"
	"github.com/emreakdogan/randevu/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite" // register the sqlite driver
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database. Exactly one of DB and SQLiteDB is set, depending on
	// whether DATABASE_URL is configured.
	DB       *pgxpool.Pool
	SQLiteDB *sql.DB

	// Redis
	RedisClient *redis.Client

	// Repositories
	ProviderRepo providerDomain.Repository
	BookingRepo  bookingDomain.Repository
	OutboxRepo   outbox.Repository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Messaging
	EventPublisher    eventbus.Publisher
	InProcessEventBus *eventbus.InProcessEventBus
	OutboxProcessor   *outbox.Processor

	// Domain services
	Clock               shared.Clock
	SlotGenerator       services.SlotGenerator
	ConflictChecker     *services.ConflictChecker
	AvailabilityPlanner *services.AvailabilityPlanner
	AvailabilityCache   *bookingCache.RedisAvailabilityCache

	// Provider command handlers
	RegisterProviderHandler *providerCommands.RegisterProviderHandler
	SetWorkingHoursHandler  *providerCommands.SetWorkingHoursHandler
	AddOfferingHandler      *providerCommands.AddOfferingHandler
	ApproveProviderHandler  *providerCommands.ApproveProviderHandler

	// Booking command handlers
	CommitBookingHandler       *bookingCommands.CommitBookingHandler
	UpdateBookingStatusHandler *bookingCommands.UpdateBookingStatusHandler
	CancelBookingHandler       *bookingCommands.CancelBookingHandler

	// Booking query handlers
	GetBookingHandler      *bookingQueries.GetBookingHandler
	ListBookingsHandler    *bookingQueries.ListBookingsHandler
	GetAvailabilityHandler *bookingQueries.GetAvailabilityHandler

	// Event subscribers
	AvailabilitySubscriber *subscribers.AvailabilitySubscriber
}

// NewContainer creates and wires all dependencies. DATABASE_URL selects
// PostgreSQL; without it the application runs on a local SQLite file with
// no external services required.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Clock:  shared.SystemClock{},
	}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}

	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}

	if err := c.initMessaging(); err != nil {
		c.Close()
		return nil, err
	}

	c.initHandlers()

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	if c.Config.UsePostgres() {
		pool, err := pgxpool.New(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		c.DB = pool
		c.Logger.Info("connected to database", "driver", "postgres")

		factory := NewRepositoryFactory(pool, nil)
		c.ProviderRepo = factory.ProviderRepository()
		c.BookingRepo = factory.BookingRepository()
		c.OutboxRepo = factory.OutboxRepository()
		c.UnitOfWork = sharedPersistence.NewPostgresUnitOfWork(pool)
		return nil
	}

	dbConn, err := sql.Open("sqlite", c.Config.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite permits one writer; a single connection avoids SQLITE_BUSY.
	dbConn.SetMaxOpenConns(1)

	if err := migrations.RunSQLiteMigrations(ctx, dbConn); err != nil {
		_ = dbConn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.SQLiteDB = dbConn
	c.Logger.Info("connected to database", "driver", "sqlite", "path", c.Config.SQLitePath)

	factory := NewRepositoryFactory(nil, dbConn)
	c.ProviderRepo = factory.ProviderRepository()
	c.BookingRepo = factory.BookingRepository()
	c.OutboxRepo = factory.OutboxRepository()
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(dbConn)
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	if !c.Config.CacheEnabled {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, availability caching disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, availability caching disabled", "error", err)
		return nil
	}

	c.RedisClient = client
	c.AvailabilityCache = bookingCache.NewRedisAvailabilityCache(client, c.Config.AvailabilityTTL, c.Logger)
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) initMessaging() error {
	if c.Config.UseBroker() {
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
		if err != nil {
			if !c.Config.IsDevelopment() {
				return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
			}
			c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		} else {
			breakerCfg := eventbus.BreakerPublisherConfig{
				MaxFailures: c.Config.BreakerMaxFailures,
				OpenTimeout: c.Config.BreakerOpenTimeout,
			}
			c.EventPublisher = eventbus.NewBreakerPublisher(publisher, breakerCfg, c.Logger)
		}
	} else {
		// Without a broker, events are dispatched in process so subscribers
		// still run.
		c.InProcessEventBus = eventbus.NewInProcessEventBus(c.Logger)
		c.EventPublisher = c.InProcessEventBus
	}

	processorConfig := outbox.ProcessorConfig{
		PollInterval:     c.Config.OutboxPollInterval,
		BatchSize:        c.Config.OutboxBatchSize,
		MaxRetries:       c.Config.OutboxMaxRetries,
		RetryBackoffBase: outbox.DefaultProcessorConfig().RetryBackoffBase,
		RetryBackoffMax:  outbox.DefaultProcessorConfig().RetryBackoffMax,
	}
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorConfig, c.Logger)

	return nil
}

func (c *Container) initHandlers() {
	c.SlotGenerator = services.NewSlotGenerator()
	c.ConflictChecker = services.NewConflictChecker(c.BookingRepo)
	c.AvailabilityPlanner = services.NewAvailabilityPlanner(c.SlotGenerator, c.ConflictChecker)

	c.RegisterProviderHandler = providerCommands.NewRegisterProviderHandler(c.ProviderRepo, c.OutboxRepo, c.UnitOfWork)
	c.SetWorkingHoursHandler = providerCommands.NewSetWorkingHoursHandler(c.ProviderRepo, c.UnitOfWork)
	c.AddOfferingHandler = providerCommands.NewAddOfferingHandler(c.ProviderRepo, c.UnitOfWork)
	c.ApproveProviderHandler = providerCommands.NewApproveProviderHandler(c.ProviderRepo, c.OutboxRepo, c.UnitOfWork)

	var invalidator bookingCommands.AvailabilityInvalidator
	var availabilityCache bookingQueries.AvailabilityCache
	if c.AvailabilityCache != nil {
		invalidator = c.AvailabilityCache
		availabilityCache = c.AvailabilityCache
	}

	c.CommitBookingHandler = bookingCommands.NewCommitBookingHandler(
		c.BookingRepo,
		c.ProviderRepo,
		c.ConflictChecker,
		c.OutboxRepo,
		c.UnitOfWork,
		c.Clock,
		invalidator,
	)
	c.UpdateBookingStatusHandler = bookingCommands.NewUpdateBookingStatusHandler(c.BookingRepo, c.ProviderRepo, c.OutboxRepo, c.UnitOfWork, c.Clock)
	c.CancelBookingHandler = bookingCommands.NewCancelBookingHandler(c.BookingRepo, c.ProviderRepo, c.OutboxRepo, c.UnitOfWork)

	c.GetBookingHandler = bookingQueries.NewGetBookingHandler(c.BookingRepo)
	c.ListBookingsHandler = bookingQueries.NewListBookingsHandler(c.BookingRepo)
	c.GetAvailabilityHandler = bookingQueries.NewGetAvailabilityHandler(c.ProviderRepo, c.AvailabilityPlanner, availabilityCache)

	if c.AvailabilityCache != nil {
		c.AvailabilitySubscriber = subscribers.NewAvailabilitySubscriber(c.AvailabilityCache, c.Logger)
		if c.InProcessEventBus != nil {
			c.InProcessEventBus.RegisterConsumer(c.AvailabilitySubscriber)
		}
	}
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing SQLite connection", "error", err)
		}
	}
}
