package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// RosterCmd creates the roster command group
func RosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Create, edit and delete monthly rosters",
	}

	cmd.AddCommand(rosterCreateCmd(app), rosterEditCmd(app), rosterDeleteCmd(app))
	return cmd
}

// parseRosterArgs reads <department_id> <shift> <month> <year> <allowed_days_off>
func parseRosterArgs(args []string) (*model.Roster, error) {
	departmentID, err := parseID("department_id", args[0])
	if err != nil {
		return nil, err
	}
	shift, err := parseShift(args[1])
	if err != nil {
		return nil, err
	}

	nums := make([]int, 3)
	for i, name := range []string{"month", "year", "allowed_days_off"} {
		n, err := strconv.Atoi(args[2+i])
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %w", name, err)
		}
		nums[i] = n
	}

	return &model.Roster{
		DepartmentID:   departmentID,
		Shift:          shift,
		Month:          nums[0],
		Year:           nums[1],
		AllowedDaysOff: nums[2],
	}, nil
}

func printRoster(r *model.Roster) {
	fmt.Printf("Roster ID:        %d\n", r.ID)
	fmt.Printf("Period:           %s\n", r.Period())
	fmt.Printf("Shift:            %s\n", r.Shift)
	fmt.Printf("Department ID:    %d\n", r.DepartmentID)
	fmt.Printf("Allowed days off: %d\n", r.AllowedDaysOff)
	fmt.Printf("Status:           %s\n\n", r.Status)
}

func rosterCreateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <department_id> <shift> <month> <year> <allowed_days_off>",
		Short: "Create a roster for a department shift and month",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseRosterArgs(args)
			if err != nil {
				return err
			}

			r, err = app.Service.CreateRoster(app.Ctx, r)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster created successfully!\n\n")
			printRoster(r)
			return nil
		},
	}
}

func rosterEditCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <roster_id> <department_id> <shift> <month> <year> <allowed_days_off>",
		Short: "Edit a roster that has not been published",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}
			r, err := parseRosterArgs(args[1:])
			if err != nil {
				return err
			}
			r.ID = id

			r, err = app.Service.EditRoster(app.Ctx, r)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster updated successfully!\n\n")
			printRoster(r)
			return nil
		},
	}
}

func rosterDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <roster_id>",
		Short: "Delete a roster that has not been published",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("roster_id", args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("roster delete command", zap.Int64("roster_id", id))

			if err := app.Service.DeleteRoster(app.Ctx, id); err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster %d deleted successfully!\n\n", id)
			return nil
		},
	}
}
