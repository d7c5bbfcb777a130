package booking

import (
	"github.com/spf13/cobra"
)

// Cmd is the booking command group
var Cmd = &cobra.Command{
	Use:   "booking",
	Short: "Manage bookings",
	Long:  `Check availability, place bookings, and move them through their lifecycle.`,
}

func init() {
	Cmd.AddCommand(slotsCmd)
	Cmd.AddCommand(bookCmd)
	Cmd.AddCommand(confirmCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
}
