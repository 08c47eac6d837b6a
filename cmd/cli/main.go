package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/cmd/cli/commands"
	"github.com/jakechorley/leave-roster/internal/config"
	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/services"
	"github.com/jakechorley/leave-roster/pkg/postgres"
	"github.com/jakechorley/leave-roster/pkg/utils/logging"
)

var (
	env     string
	logsDir string
	verbose bool
	app     = &commands.AppContext{Ctx: context.Background()}
	pgDB    *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosterctl",
		Short: "Roster CLI - Manage monthly day-off rosters",
		Long: `A CLI tool for managing monthly day-off rosters: departments, employees, day-off
requests validated against the rest and coverage rules, calendars and alerts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if pgDB != nil {
				pgDB.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVar(&logsDir, "logs-dir", logging.DefaultLogsDir, "Directory for log files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.DepartmentCmd(app))
	rootCmd.AddCommand(commands.EmployeeCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.DayOffCmd(app))
	rootCmd.AddCommand(commands.HistoryCmd(app))
	rootCmd.AddCommand(commands.CalendarCmd(app))
	rootCmd.AddCommand(commands.MissingHistoryCmd(app))
	rootCmd.AddCommand(commands.AlertsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database and service
func initApp() error {
	var err error
	var logFile string
	app.Logger, logFile, err = logging.InitLogger(logsDir, env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Logging to file", zap.String("path", logFile))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	rules := app.Cfg.ToRules()
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("max_consecutive_work_days", rules.MaxConsecutiveWorkDays),
		zap.Int("recommended_min_interval", rules.RecommendedMinInterval),
		zap.Int("non_working_rules", len(rules.NonWorkingDays)))

	nonWorking, err := calendarrules.ParseNonWorkingDays(rules.NonWorkingDays)
	if err != nil {
		return fmt.Errorf("failed to parse non-working days: %w", err)
	}

	app.Logger.Info("Connecting to database")
	pgDB, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.Migrator = pgDB
	app.Logger.Info("Database initialized successfully")

	app.Service = services.New(pgDB, rules, calendarrules.SystemClock{}, nonWorking, app.Logger)
	return nil
}
