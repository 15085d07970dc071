// Package cli implements the carbonsense command tree: plan execution and
// validation, plus reference-data listings.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/agrata/carbonsense/internal/config"
	"github.com/agrata/carbonsense/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the carbonsense CLI and
// wires up logging and the plan/reference subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "carbonsense",
		Short:   "Battery manufacturing emissions and cost planner",
		Long:    "Carbonsense: model multi-year, multi-site battery cell production plans and report emissions, water, materials, and cost",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newPlanCmd(), newReferenceCmd())

	return cmd
}

// setupLogging configures the root logger from settings and the --debug
// flag, and attaches it to the command context.
func setupLogging(cmd *cobra.Command) {
	settings := config.LoadSettings()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		settings.LogLevel = "debug"
		settings.LogFormat = "console"
	}

	root := logging.New(logging.Config{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	logger = logging.ComponentLogger(root, "cli")

	ctx := logging.WithContext(cmd.Context(), root)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

const rootCmdExample = `  # Run a planning scenario and print the report
  carbonsense plan run --scenario plan.yaml

  # Export the report as JSON or CSV
  carbonsense plan run --scenario plan.yaml --output json
  carbonsense plan run --scenario plan.yaml --output csv --out report.csv

  # Validate a scenario without running it
  carbonsense plan validate --scenario plan.yaml

  # Inspect the built-in reference data
  carbonsense reference cells
  carbonsense reference mixes
  carbonsense reference sources
  carbonsense reference sites`
