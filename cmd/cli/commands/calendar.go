package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/calendar"
)

// CalendarCmd creates the calendar command
func CalendarCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar <roster_id>",
		Short: "Show a roster's day-by-day availability and employee histories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterID, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("calendar command", zap.Int64("roster_id", rosterID))

			view, err := app.Service.GenerateCalendar(app.Ctx, rosterID)
			if err != nil {
				return err
			}

			printCalendar(view)
			return nil
		},
	}

	return cmd
}

func printCalendar(view *calendar.View) {
	fmt.Printf("\nRoster %d - %s (%s)\n\n", view.Roster.ID, view.Roster.Period(), view.Roster.Shift)

	fmt.Printf("%-12s %-5s %-10s %-10s %s\n", "Date", "Week", "Weekday", "Status", "Off / Max")
	fmt.Println(strings.Repeat("-", 54))
	for _, day := range view.Days {
		status := string(day.Status)
		if day.NonWorkingDay {
			status += "*"
		}
		fmt.Printf("%-12s %-5d %-10s %s%-10s%s %d / %d\n",
			day.Date.Format("2006-01-02"),
			day.Week,
			day.Weekday,
			dayStatusColor(day.Status), status, colorReset,
			day.ActiveCount, day.MaxSimultaneous)
	}
	fmt.Println()

	nameColWidth := 20
	for _, e := range view.Employees {
		if len(e.Name) > nameColWidth {
			nameColWidth = len(e.Name)
		}
	}
	nameColWidth += 2

	fmt.Printf("%-*s %-12s %-6s %-10s %-7s %s\n", nameColWidth, "Employee", "Last off", "Since", "Remaining", "Sunday", "Next due")
	fmt.Println(strings.Repeat("-", nameColWidth+56))
	for _, e := range view.Employees {
		sunday := "no"
		if e.HasSunday {
			sunday = "yes"
		}
		color := ""
		if e.AtRisk {
			color = colorYellow
		}
		fmt.Printf("%s%-*s %-12s %-6d %-10d %-7s %s%s\n",
			color, nameColWidth, e.Name,
			formatDate(e.LastDayOff),
			e.DaysSinceLastDayOff,
			e.Remaining,
			sunday,
			e.NextEligibleDate.Format("2006-01-02"),
			colorReset)
		for _, alert := range e.Alerts {
			fmt.Printf("%s    ! %s%s\n", colorDim, alert, colorReset)
		}
	}
	fmt.Println()

	s := view.Summary
	fmt.Println("Summary:")
	fmt.Printf("  Employees:       %d\n", s.TotalEmployees)
	fmt.Printf("  Days off:        %d allocated, %d available (%.1f%%)\n", s.Allocated, s.Available, s.OccupancyPct)
	fmt.Printf("  Days:            %d open, %d warning, %d occupied\n", s.OpenDays, s.WarningDays, s.OccupiedDays)
	fmt.Printf("  Expected off:    %d per Sunday (%d Sundays), %d per other day (%d Saturdays)\n\n",
		s.Capacity.PerSunday, s.Capacity.Sundays, s.Capacity.PerOtherDay, s.Capacity.Saturdays)

	fmt.Println("Legend:")
	fmt.Printf("  %sOPEN%s     = slots available\n", dayStatusColor(calendar.DayOpen), colorReset)
	fmt.Printf("  %sWARNING%s  = close to the simultaneous limit\n", dayStatusColor(calendar.DayWarning), colorReset)
	fmt.Printf("  %sOCCUPIED%s = simultaneous limit reached\n", dayStatusColor(calendar.DayOccupied), colorReset)
	fmt.Printf("  %sSUNDAY%s   = Sunday with slots available\n", dayStatusColor(calendar.DaySunday), colorReset)
	fmt.Printf("  %sPAST%s     = no longer bookable\n", dayStatusColor(calendar.DayPast), colorReset)
	fmt.Println("  *        = non-working day")
}

// MissingHistoryCmd creates the missing-history command
func MissingHistoryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "missing-history <roster_id>",
		Short: "List employees without a recent reference day off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterID, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}

			result, err := app.Service.CheckMissingHistory(app.Ctx, rosterID)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s\n\n", result.Message)
			for _, e := range result.Employees {
				fmt.Printf("  - %s (%d) last day off: %s\n", e.Name, e.ID, formatDate(e.LastDayOff))
			}
			if result.Missing {
				fmt.Println()
			}
			return nil
		},
	}
}
