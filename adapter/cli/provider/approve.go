package provider

import (
	"fmt"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/provider/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	rejectApplication bool
	rejectReason      string
)

var approveCmd = &cobra.Command{
	Use:   "approve [provider-id]",
	Short: "Approve or reject a pending provider application",
	Long: `Decide a pending provider application as the platform admin. Approval
requires at least one active offering and one open working day.

Examples:
  randevu provider approve <id>
  randevu provider approve <id> --reject --reason "incomplete profile"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ApproveProviderHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		providerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid provider id: %w", err)
		}

		approveCmd := commands.ApproveProviderCommand{
			ProviderID: providerID,
			AdminID:    app.CurrentActorID,
			Approve:    !rejectApplication,
			Reason:     rejectReason,
		}

		provider, err := app.ApproveProviderHandler.Handle(cmd.Context(), approveCmd)
		if err != nil {
			return fmt.Errorf("failed to decide application: %w", err)
		}

		fmt.Printf("Provider %s: %s\n", provider.Status(), provider.ID())

		return nil
	},
}

func init() {
	approveCmd.Flags().BoolVar(&rejectApplication, "reject", false, "reject the application instead of approving")
	approveCmd.Flags().StringVar(&rejectReason, "reason", "", "rejection reason")
}
