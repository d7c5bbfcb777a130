package provider

import (
	"fmt"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/provider/application/commands"
	"github.com/spf13/cobra"
)

var (
	city     string
	district string
)

var registerCmd = &cobra.Command{
	Use:   "register [shop name]",
	Short: "Register a new provider application",
	Long: `Register a provider application owned by the current actor.

The application starts in pending status and must be approved by an admin
before the provider can accept bookings.

Examples:
  randevu provider register "Kadikoy Cuts" --city Istanbul --district Kadikoy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RegisterProviderHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		registerCmd := commands.RegisterProviderCommand{
			OwnerID:  app.CurrentActorID,
			ShopName: args[0],
			City:     city,
			District: district,
		}

		provider, err := app.RegisterProviderHandler.Handle(cmd.Context(), registerCmd)
		if err != nil {
			return fmt.Errorf("failed to register provider: %w", err)
		}

		fmt.Printf("Provider registered: %s\n", provider.ID())
		fmt.Printf("  shop: %s\n", provider.ShopName())
		fmt.Printf("  status: %s\n", provider.Status())

		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&city, "city", "", "city the shop operates in")
	registerCmd.Flags().StringVar(&district, "district", "", "district within the city")
}
