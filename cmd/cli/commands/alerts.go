package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AlertsCmd creates the alerts command group
func AlertsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Review and acknowledge scheduling alerts",
	}

	list := &cobra.Command{
		Use:   "list <roster_id>",
		Short: "List a roster's unresolved alerts, most severe first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterID, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}

			alerts, err := app.Service.RosterAlerts(app.Ctx, rosterID)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("min-severity") {
				value, _ := cmd.Flags().GetString("min-severity")
				threshold, err := parseSeverity(value)
				if err != nil {
					return err
				}
				alerts = filterBySeverity(alerts, threshold)
			}

			fmt.Printf("\nUnresolved alerts for roster %d:\n\n", rosterID)
			printAlerts(alerts)
			fmt.Println()
			return nil
		},
	}

	list.Flags().String("min-severity", "", "Only show alerts at least this severe (CRITICAL, HIGH, MEDIUM, LOW, INFO)")

	dayOff := &cobra.Command{
		Use:   "dayoff <request_id>",
		Short: "List every alert raised for a day-off request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("request_id", args[0])
			if err != nil {
				return err
			}

			alerts, err := app.Service.DayOffAlerts(app.Ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("\nAlerts for day off %d:\n\n", id)
			printAlerts(alerts)
			fmt.Println()
			return nil
		},
	}

	read := &cobra.Command{
		Use:   "read <alert_id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("alert_id", args[0])
			if err != nil {
				return err
			}
			if err := app.Service.MarkAlertRead(app.Ctx, id); err != nil {
				return err
			}
			fmt.Printf("\n✓ Alert %d marked as read\n\n", id)
			return nil
		},
	}

	resolve := &cobra.Command{
		Use:   "resolve <alert_id>",
		Short: "Mark an alert as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("alert_id", args[0])
			if err != nil {
				return err
			}
			if err := app.Service.MarkAlertResolved(app.Ctx, id); err != nil {
				return err
			}
			fmt.Printf("\n✓ Alert %d resolved\n\n", id)
			return nil
		},
	}

	count := &cobra.Command{
		Use:   "critical <roster_id>",
		Short: "Count a roster's unresolved critical alerts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterID, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}

			n, err := app.Service.CountCriticalAlerts(app.Ctx, rosterID)
			if err != nil {
				return err
			}

			if n > 0 {
				fmt.Printf("\n%s%d critical alert(s)%s for roster %d\n\n", colorRed, n, colorReset, rosterID)
			} else {
				fmt.Printf("\nNo critical alerts for roster %d\n\n", rosterID)
			}
			return nil
		},
	}

	cmd.AddCommand(list, dayOff, read, resolve, count)
	return cmd
}
