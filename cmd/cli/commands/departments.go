package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// DepartmentCmd creates the department command group
func DepartmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "department",
		Short: "Manage departments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := app.Service.CreateDepartment(app.Ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Department created successfully!\n\n")
			fmt.Printf("Department ID: %d\n", dep.ID)
			fmt.Printf("Name:          %s\n\n", dep.Name)
			return nil
		},
	})

	return cmd
}

// EmployeeCmd creates the employee command group
func EmployeeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}

	create := &cobra.Command{
		Use:   "create <department_id> <shift> <name>",
		Short: "Add an employee to a department shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			departmentID, err := parseID("department_id", args[0])
			if err != nil {
				return err
			}
			shift, err := parseShift(args[1])
			if err != nil {
				return err
			}
			role, _ := cmd.Flags().GetString("role")

			employee := &model.Employee{
				Name:         args[2],
				Role:         role,
				Shift:        shift,
				DepartmentID: departmentID,
				Active:       true,
			}

			if last, _ := cmd.Flags().GetString("last-day-off"); last != "" {
				date, err := parseDate(last)
				if err != nil {
					return err
				}
				employee.LastDayOff = &date
			}

			employee, err = app.Service.CreateEmployee(app.Ctx, employee)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Employee created successfully!\n\n")
			fmt.Printf("Employee ID:  %d\n", employee.ID)
			fmt.Printf("Name:         %s\n", employee.Name)
			fmt.Printf("Shift:        %s\n", employee.Shift)
			fmt.Printf("Last day off: %s\n\n", formatDate(employee.LastDayOff))
			return nil
		},
	}
	create.Flags().String("role", "", "Job role")
	create.Flags().String("last-day-off", "", "Last day off before joining the roster (YYYY-MM-DD)")

	cmd.AddCommand(create)
	return cmd
}
