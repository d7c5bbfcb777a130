package booking

import (
	"fmt"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/booking/application/queries"
	"github.com/emreakdogan/randevu/internal/booking/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	listProvider string
	listStatus   string
	listLimit    int
	listOffset   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookings",
	Long: `List the current actor's bookings as a customer, or a provider's
bookings with --provider.

Examples:
  randevu booking list
  randevu booking list --status pending
  randevu booking list --provider <provider-id>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListBookingsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListBookingsQuery{
			Status: domain.Status(listStatus),
			Limit:  listLimit,
			Offset: listOffset,
		}
		if listProvider != "" {
			providerID, err := uuid.Parse(listProvider)
			if err != nil {
				return fmt.Errorf("invalid provider id: %w", err)
			}
			query.ProviderID = providerID
		} else {
			query.CustomerID = app.CurrentActorID
		}

		bookings, err := app.ListBookingsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}

		if len(bookings) == 0 {
			fmt.Println("No bookings found")
			return nil
		}

		for _, b := range bookings {
			fmt.Printf("%s  %s  %-9s  %s\n", b.ID(), b.Slot(), b.Status(), b.Price())
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listProvider, "provider", "", "list a provider's bookings instead")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, confirmed, completed, cancelled)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "page size (default 50)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "skip that many bookings from the newest")
}
