package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/emreakdogan/randevu/adapter/cli"
	"github.com/emreakdogan/randevu/internal/provider/application/commands"
	"github.com/emreakdogan/randevu/internal/provider/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var dayFlags []string

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

var hoursCmd = &cobra.Command{
	Use:   "hours [provider-id]",
	Short: "Set a provider's weekly working hours",
	Long: `Replace a provider's weekly schedule. Each --day flag sets one weekday
as either an open span or closed. Unlisted days are closed.

Examples:
  randevu provider hours <id> --day mon=09:00-18:00 --day tue=09:00-18:00
  randevu provider hours <id> --day sat=10:00-14:00 --day sun=closed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SetWorkingHoursHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		providerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid provider id: %w", err)
		}

		entries := make([]domain.DayHours, 0, len(dayFlags))
		for _, flag := range dayFlags {
			entry, err := parseDayFlag(flag)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		hoursCmd := commands.SetWorkingHoursCommand{
			ProviderID: providerID,
			Entries:    entries,
		}

		provider, err := app.SetWorkingHoursHandler.Handle(cmd.Context(), hoursCmd)
		if err != nil {
			return fmt.Errorf("failed to set working hours: %w", err)
		}

		fmt.Printf("Working hours updated: %s\n", provider.ID())
		for _, day := range provider.Schedule().Entries() {
			if day.IsClosed() {
				fmt.Printf("  %s: closed\n", day.Weekday())
				continue
			}
			fmt.Printf("  %s: %s-%s\n", day.Weekday(), formatOffset(day.Open()), formatOffset(day.Close()))
		}

		return nil
	},
}

func parseDayFlag(flag string) (domain.DayHours, error) {
	name, spec, ok := strings.Cut(flag, "=")
	if !ok {
		return domain.DayHours{}, fmt.Errorf("invalid day spec %q (use day=HH:MM-HH:MM or day=closed)", flag)
	}

	weekday, ok := weekdayNames[strings.ToLower(name)]
	if !ok {
		return domain.DayHours{}, fmt.Errorf("unknown weekday %q (use mon, tue, ...)", name)
	}

	if strings.EqualFold(spec, "closed") {
		return domain.NewClosedDay(weekday), nil
	}

	openStr, closeStr, ok := strings.Cut(spec, "-")
	if !ok {
		return domain.DayHours{}, fmt.Errorf("invalid hours %q (use HH:MM-HH:MM)", spec)
	}

	open, err := parseOffset(openStr)
	if err != nil {
		return domain.DayHours{}, err
	}
	close, err := parseOffset(closeStr)
	if err != nil {
		return domain.DayHours{}, err
	}

	return domain.NewOpenDay(weekday, open, close)
}

func parseOffset(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (use HH:MM): %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func init() {
	hoursCmd.Flags().StringArrayVar(&dayFlags, "day", nil, "weekday hours, e.g. mon=09:00-18:00 or sun=closed (repeatable)")
	_ = hoursCmd.MarkFlagRequired("day")
}
