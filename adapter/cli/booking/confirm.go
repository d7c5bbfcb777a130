package booking

import (
	"fmt"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/booking/application/commands"
	"github.com/emreakdogan/randevu/internal/booking/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm [booking-id]",
	Short: "Confirm a pending booking",
	Long: `Confirm a pending booking as the provider who owns it.

Examples:
  randevu booking confirm <booking-id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatusTransition(cmd, args[0], domain.StatusConfirmed, "")
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [booking-id]",
	Short: "Mark a confirmed booking as completed",
	Long: `Mark a confirmed booking as completed after the service is delivered.

Examples:
  randevu booking complete <booking-id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatusTransition(cmd, args[0], domain.StatusCompleted, "")
	},
}

func runStatusTransition(cmd *cobra.Command, id string, target domain.Status, reason string) error {
	app := cli.GetApp()
	if app == nil || app.UpdateBookingStatusHandler == nil {
		return fmt.Errorf("application not initialized - database connection required")
	}

	bookingID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := app.UpdateBookingStatusHandler.Handle(cmd.Context(), commands.UpdateBookingStatusCommand{
		BookingID: bookingID,
		ActorID:   app.CurrentActorID,
		Target:    target,
		Reason:    reason,
	})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	fmt.Printf("Booking %s: %s\n", booking.Status(), booking.ID())
	return nil
}
