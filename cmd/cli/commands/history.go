package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
)

// HistoryCmd creates the history command group for manually entered last days off
func HistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Record and check employees' last day off before a roster",
	}

	record := &cobra.Command{
		Use:   "record <employee_id> <date>",
		Short: "Record an employee's last day off",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, err := parseID("employee_id", args[0])
			if err != nil {
				return err
			}
			date, err := parseDate(args[1])
			if err != nil {
				return err
			}

			var rosterID *int64
			if cmd.Flags().Changed("roster") {
				value, _ := cmd.Flags().GetString("roster")
				id, err := parseID("roster", value)
				if err != nil {
					return err
				}
				rosterID = &id
			}

			record, err := app.Service.RecordHistory(app.Ctx, employeeID, date, rosterID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Last day off recorded successfully!\n\n")
			fmt.Printf("Record ID:   %d\n", record.ID)
			fmt.Printf("Employee ID: %d\n", record.EmployeeID)
			fmt.Printf("Date:        %s\n\n", record.Date.Format(calendarrules.DateLayout))
			return nil
		},
	}
	record.Flags().String("roster", "", "Roster ID to check the date against")

	validate := &cobra.Command{
		Use:   "validate <roster_id> <date>",
		Short: "Check whether a last day off is recent enough for a roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterID, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}
			date, err := parseDate(args[1])
			if err != nil {
				return err
			}

			check, err := app.Service.ValidateLastDayOffDate(app.Ctx, rosterID, date)
			if err != nil {
				return err
			}

			if check.Valid {
				fmt.Printf("\n%s✓ %s%s\n", colorGreen, check.Message, colorReset)
			} else {
				fmt.Printf("\n%s✗ %s%s\n", colorRed, check.Message, colorReset)
			}
			fmt.Printf("Earliest accepted date: %s\n\n", check.MinimumDate.Format(calendarrules.DateLayout))
			return nil
		},
	}

	cmd.AddCommand(record, validate)
	return cmd
}
