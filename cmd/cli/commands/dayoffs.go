package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/services"
)

// DayOffCmd creates the dayoff command group
func DayOffCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dayoff",
		Short: "Request, change and cancel days off",
	}

	cmd.AddCommand(dayOffCreateCmd(app), dayOffUpdateCmd(app), dayOffDeleteCmd(app), nextDatesCmd(app))
	return cmd
}

func printDayOffResult(result *services.DayOffResult) {
	req := result.Request
	fmt.Printf("Request ID:  %d\n", req.ID)
	fmt.Printf("Employee ID: %d\n", req.EmployeeID)
	fmt.Printf("Date:        %s (%s)\n", req.Date.Format(calendarrules.DateLayout), req.Date.Weekday())
	fmt.Printf("Status:      %s\n\n", req.Status)

	if len(result.Alerts) > 0 {
		fmt.Printf("⚠️  %d alert(s) raised:\n", len(result.Alerts))
		printAlerts(result.Alerts)
		fmt.Println()
	}
}

func dayOffCreateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <roster_id> <employee_id> <date>",
		Short: "Request a day off",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterID, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}
			employeeID, err := parseID("employee_id", args[1])
			if err != nil {
				return err
			}
			date, err := parseDate(args[2])
			if err != nil {
				return err
			}
			justification, _ := cmd.Flags().GetString("justification")

			result, err := app.Service.CreateDayOff(app.Ctx, &model.DayOffRequest{
				EmployeeID:    employeeID,
				RosterID:      &rosterID,
				Date:          date,
				Justification: justification,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Day off requested successfully!\n\n")
			printDayOffResult(result)
			return nil
		},
	}
	cmd.Flags().String("justification", "", "Reason for the request")
	return cmd
}

func dayOffUpdateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <request_id>",
		Short: "Change the date or justification of a pending day off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("request_id", args[0])
			if err != nil {
				return err
			}

			var newDate *time.Time
			var newJustification *string
			if cmd.Flags().Changed("date") {
				value, _ := cmd.Flags().GetString("date")
				date, err := parseDate(value)
				if err != nil {
					return err
				}
				newDate = &date
			}
			if cmd.Flags().Changed("justification") {
				value, _ := cmd.Flags().GetString("justification")
				newJustification = &value
			}
			if newDate == nil && newJustification == nil {
				return fmt.Errorf("nothing to update: pass --date and/or --justification")
			}

			result, err := app.Service.UpdateDayOff(app.Ctx, id, newDate, newJustification)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Day off updated successfully!\n\n")
			printDayOffResult(result)
			return nil
		},
	}
	cmd.Flags().String("date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().String("justification", "", "New justification")
	return cmd
}

func dayOffDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <request_id>",
		Short: "Cancel a pending day off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("request_id", args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("dayoff delete command", zap.Int64("request_id", id))

			if err := app.Service.DeleteDayOff(app.Ctx, id); err != nil {
				return err
			}

			fmt.Printf("\n✓ Day off %d deleted successfully!\n\n", id)
			return nil
		},
	}
}

func nextDatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next-dates <last_day_off>",
		Short: "Show the dates on which the next day off is due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			next := app.Service.NextAvailableDates(date)

			fmt.Printf("\nNext day off due by: %s (in %d day(s))\n\n", next.NextEligible.Format(calendarrules.DateLayout), next.DaysUntil)
			fmt.Printf("Suggested dates:\n")
			for i, d := range next.Candidates {
				fmt.Printf("  %d. %s\n", i+1, d.Format("2006-01-02 (Monday)"))
			}
			fmt.Println()
			return nil
		},
	}
}
