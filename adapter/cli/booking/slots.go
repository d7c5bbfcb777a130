package booking

import (
	"fmt"
	"time"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/booking/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var slotsDate string

var slotsCmd = &cobra.Command{
	Use:   "slots [provider-id] [offering-id]",
	Short: "Show a provider's availability for one day",
	Long: `List every candidate slot of the offering's duration on the given day,
marked free or taken.

Examples:
  randevu booking slots <provider-id> <offering-id> --date 2026-09-07`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetAvailabilityHandler == nil {
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

		date, err := time.Parse("2006-01-02", slotsDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		plan, err := app.GetAvailabilityHandler.Handle(cmd.Context(), queries.GetAvailabilityQuery{
			ProviderID: providerID,
			OfferingID: offeringID,
			Date:       date,
		})
		if err != nil {
			return fmt.Errorf("failed to load availability: %w", err)
		}

		if len(plan) == 0 {
			fmt.Printf("No slots on %s (provider closed)\n", slotsDate)
			return nil
		}

		fmt.Printf("Availability for %s:\n", slotsDate)
		for _, candidate := range plan {
			marker := "free"
			if !candidate.Available {
				marker = "taken"
			}
			fmt.Printf("  %s  %s\n", candidate.Slot, marker)
		}

		return nil
	},
}

func init() {
	slotsCmd.Flags().StringVar(&slotsDate, "date", "", "day to plan (YYYY-MM-DD)")
	_ = slotsCmd.MarkFlagRequired("date")
}
