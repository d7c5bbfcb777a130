package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/emreakdogan/randevu/adapter/cli"
	cliBooking "github.com/emreakdogan/randevu/adapter/cli/booking"
	cliProvider "github.com/emreakdogan/randevu/adapter/cli/provider"
	"github.com/emreakdogan/randevu/internal/app"
	"github.com/emreakdogan/randevu/pkg/config"
	"github.com/emreakdogan/randevu/pkg/observability"
	"github.com/google/uuid"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// The outbox is drained in process so events flow without a separate
	// worker. Deployments running cmd/worker can disable this.
	if cfg.OutboxProcessorEnabled {
		if err := container.OutboxProcessor.Start(ctx); err != nil {
			logger.Error("failed to start outbox processor", "error", err)
			os.Exit(1)
		}
	}

	cliApp := cli.NewApp(
		container.RegisterProviderHandler,
		container.SetWorkingHoursHandler,
		container.AddOfferingHandler,
		container.ApproveProviderHandler,
		container.CommitBookingHandler,
		container.UpdateBookingStatusHandler,
		container.CancelBookingHandler,
		container.GetBookingHandler,
		container.ListBookingsHandler,
		container.GetAvailabilityHandler,
	)

	actorID, err := uuid.Parse(cfg.ActorID)
	if err != nil {
		logger.Error("invalid RANDEVU_ACTOR_ID", "error", err)
		os.Exit(1)
	}
	cliApp.SetCurrentActorID(actorID)

	cli.SetApp(cliApp)

	cli.AddCommand(cliProvider.Cmd)
	cli.AddCommand(cliBooking.Cmd)

	cli.Execute()
}
