package booking

import (
	"fmt"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/booking/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cancelReason string

var cancelCmd = &cobra.Command{
	Use:   "cancel [booking-id]",
	Short: "Cancel a booking",
	Long: `Cancel a booking as the customer who placed it or the provider who owns
it. Completed and already-cancelled bookings cannot be cancelled.

Examples:
  randevu booking cancel <booking-id> --reason "can't make it"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CancelBookingHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		bookingID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid booking id: %w", err)
		}

		booking, err := app.CancelBookingHandler.Handle(cmd.Context(), commands.CancelBookingCommand{
			BookingID: bookingID,
			ActorID:   app.CurrentActorID,
			Reason:    cancelReason,
		})
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		fmt.Printf("Booking cancelled: %s\n", booking.ID())
		if booking.CancelReason() != "" {
			fmt.Printf("  reason: %s\n", booking.CancelReason())
		}

		return nil
	},
}

func init() {
	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "cancellation reason")
}
