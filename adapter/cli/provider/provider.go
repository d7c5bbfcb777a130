package provider

import (
	"github.com/spf13/cobra"
)

// Cmd is the provider command group
var Cmd = &cobra.Command{
	Use:   "provider",
	Short: "Manage providers",
	Long:  `Register providers, set working hours, manage offerings, and decide applications.`,
}

func init() {
	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(hoursCmd)
	Cmd.AddCommand(offeringCmd)
	Cmd.AddCommand(approveCmd)
}
