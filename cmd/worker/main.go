package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emreakdogan/randevu/internal/app"
	"github.com/emreakdogan/randevu/internal/shared/infrastructure/eventbus"
	"github.com/emreakdogan/randevu/pkg/config"
	"github.com/emreakdogan/randevu/pkg/observability"
)

// The worker drains the outbox to the broker, consumes domain events for
// the subscribers, and prunes published messages past their retention.
func main() {
	logger := observability.LoggerFromEnv()

	logger.Info("starting randevu worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	processor := container.OutboxProcessor
	if err := processor.Start(ctx); err != nil {
		logger.Error("failed to start outbox processor", "error", err)
		os.Exit(1)
	}

	// Broker deployments get their subscribers via a RabbitMQ queue; in
	// local mode the in-process bus already dispatches them.
	var consumer *eventbus.RabbitMQConsumer
	if cfg.UseBroker() && container.AvailabilitySubscriber != nil {
		registry := eventbus.NewConsumerRegistry(logger)
		registry.Register(container.AvailabilitySubscriber)

		consumer, err = eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:       cfg.RabbitMQURL,
			QueueName: cfg.WorkerQueueName,
			Logger:    logger,
		}, registry)
		if err != nil {
			logger.Error("failed to create RabbitMQ consumer", "error", err)
			os.Exit(1)
		}

		go func() {
			if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("consumer stopped", "error", err)
				cancel()
			}
		}()
	}

	cleanupTicker := time.NewTicker(cfg.OutboxCleanupInterval)
	defer cleanupTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-cleanupTicker.C:
				deleted, err := container.OutboxRepo.DeleteOld(ctx, cfg.OutboxRetentionDays)
				if err != nil {
					logger.Error("outbox cleanup failed", "error", err)
					continue
				}
				if deleted > 0 {
					logger.Info("outbox cleanup completed",
						"deleted", deleted,
						"retention_days", cfg.OutboxRetentionDays,
					)
				}
			}
		}
	}()

	statsTicker := time.NewTicker(cfg.OutboxStatsInterval)
	defer statsTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-statsTicker.C:
				stats := processor.GetStats()
				logger.Info("outbox stats",
					"running", stats.IsRunning,
					"published", stats.PublishedCount,
					"failed", stats.FailedCount,
					"dead", stats.DeadCount,
					"lag_seconds", stats.LagSeconds,
					"last_processed_at", stats.LastProcessedAt,
					"last_error", stats.LastError,
				)
			}
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down worker")

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Warn("error closing consumer", "error", err)
		}
	}
	processor.Stop()
	logger.Info("worker stopped")
}
