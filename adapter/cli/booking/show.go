package booking

import (
	"fmt"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/booking/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [booking-id]",
	Short: "Show a booking's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetBookingHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		bookingID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid booking id: %w", err)
		}

		b, err := app.GetBookingHandler.Handle(cmd.Context(), queries.GetBookingQuery{BookingID: bookingID})
		if err != nil {
			return fmt.Errorf("failed to load booking: %w", err)
		}

		fmt.Printf("Booking %s\n", b.ID())
		fmt.Printf("  customer: %s\n", b.CustomerID())
		fmt.Printf("  provider: %s\n", b.ProviderID())
		fmt.Printf("  offering: %s\n", b.OfferingID())
		fmt.Printf("  slot: %s\n", b.Slot())
		fmt.Printf("  status: %s\n", b.Status())
		fmt.Printf("  price: %s\n", b.Price())
		if b.Notes() != "" {
			fmt.Printf("  notes: %s\n", b.Notes())
		}
		if b.CancelReason() != "" {
			fmt.Printf("  cancel reason: %s\n", b.CancelReason())
		}

		return nil
	},
}
