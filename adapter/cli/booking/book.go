package booking

import (
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/booking/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	bookDate  string
	bookStart string
	bookNotes string
)

var bookCmd = &cobra.Command{
	Use:   "book [provider-id] [offering-id]",
	Short: "Place a booking",
	Long: `Book an offering as the current actor. The slot's length comes from the
offering's duration. The booking starts pending until the provider confirms.

Examples:
  randevu booking book <provider-id> <offering-id> --date 2026-09-07 --start 10:30
  randevu booking book <provider-id> <offering-id> --date 2026-09-07 --start 14:00 --notes "first visit"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CommitBookingHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		providerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid provider id: %w", err)
		}
		offeringID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid offering id: %w", err)
		}

		date, err := time.Parse("2006-01-02", bookDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		startOfDay, err := time.Parse("15:04", bookStart)
		if err != nil {
			return fmt.Errorf("invalid start time (use HH:MM): %w", err)
		}
		start := time.Duration(startOfDay.Hour())*time.Hour + time.Duration(startOfDay.Minute())*time.Minute

		booking, err := app.CommitBookingHandler.Handle(cmd.Context(), commands.CommitBookingCommand{
			CustomerID: app.CurrentActorID,
			ProviderID: providerID,
			OfferingID: offeringID,
			Date:       date,
			Start:      start,
			Notes:      bookNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to place booking: %w", err)
		}

		fmt.Printf("Booking placed: %s\n", booking.ID())
		fmt.Printf("  slot: %s\n", booking.Slot())
		fmt.Printf("  status: %s\n", booking.Status())
		fmt.Printf("  price: %s\n", booking.Price())

		return nil
	},
}

func init() {
	bookCmd.Flags().StringVar(&bookDate, "date", "", "booking date (YYYY-MM-DD)")
	bookCmd.Flags().StringVar(&bookStart, "start", "", "slot start time (HH:MM)")
	bookCmd.Flags().StringVar(&bookNotes, "notes", "", "notes for the provider")
	_ = bookCmd.MarkFlagRequired("date")
	_ = bookCmd.MarkFlagRequired("start")
}
