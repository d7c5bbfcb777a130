package provider

import (
	"fmt"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/provider/application/commands"
	shared "github.com/emreakdogan/randevu/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	offeringDescription string
	offeringDuration    int
	offeringPrice       int64
	offeringCurrency    string
)

var offeringCmd = &cobra.Command{
	Use:   "offering [provider-id] [name]",
	Short: "Add an offering to a provider",
	Long: `Add a bookable service to a provider's menu. The price is given in the
currency's minor unit (kurus for TRY).

Examples:
  randevu provider offering <id> "Haircut" --duration 30 --price 50000
  randevu provider offering <id> "Beard trim" -d 15 -p 25000 --description "Razor finish"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddOfferingHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		providerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid provider id: %w", err)
		}

		offeringCmd := commands.AddOfferingCommand{
			ProviderID:      providerID,
			Name:            args[1],
			Description:     offeringDescription,
			DurationMinutes: offeringDuration,
			PriceAmount:     offeringPrice,
			Currency:        offeringCurrency,
		}

		offering, err := app.AddOfferingHandler.Handle(cmd.Context(), offeringCmd)
		if err != nil {
			return fmt.Errorf("failed to add offering: %w", err)
		}

		fmt.Printf("Offering added: %s\n", offering.ID())
		fmt.Printf("  name: %s\n", offering.Name())
		fmt.Printf("  duration: %d minutes\n", offering.DurationMinutes())
		fmt.Printf("  price: %s\n", offering.Price())

		return nil
	},
}

func init() {
	offeringCmd.Flags().IntVarP(&offeringDuration, "duration", "d", 0, "service duration in minutes")
	offeringCmd.Flags().Int64VarP(&offeringPrice, "price", "p", 0, "price in the currency's minor unit")
	offeringCmd.Flags().StringVar(&offeringCurrency, "currency", shared.DefaultCurrency, "price currency")
	offeringCmd.Flags().StringVar(&offeringDescription, "description", "", "offering description")
	_ = offeringCmd.MarkFlagRequired("duration")
	_ = offeringCmd.MarkFlagRequired("price")
}
