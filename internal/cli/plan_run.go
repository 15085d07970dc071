package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrata/carbonsense/internal/engine"
	"github.com/agrata/carbonsense/internal/refdata"
)

// Output format values accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputCSV   = "csv"
)

// NewPlanRunCmd creates the plan run command.
func NewPlanRunCmd() *cobra.Command {
	var (
		scenarioPath string
		outputFormat string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a planning scenario and report the results",
		Long: `Runs a multi-year, multi-site planning scenario and reports per-year
production, emissions, water, cost, the cumulative totals, the aggregate
bill of materials, and derived efficiency metrics.

Site-years with invalid configuration (a cell mix not summing to 100%, a
missing silicon selection) contribute zero and are reported as warnings
rather than failing the run.`,
		Example: `  # Print the report as a table
  carbonsense plan run --scenario plan.yaml

  # Machine-readable output
  carbonsense plan run --scenario plan.yaml --output json
  carbonsense plan run --scenario plan.yaml --output csv --out report.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlanRun(cmd, scenarioPath, outputFormat, outPath)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to the scenario YAML file")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", outputTable, "output format: table, json, or csv")
	cmd.Flags().StringVar(&outPath, "out", "", "write the report to a file instead of stdout")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runPlanRun(cmd *cobra.Command, scenarioPath, outputFormat, outPath string) error {
	if outputFormat != outputTable && outputFormat != outputJSON && outputFormat != outputCSV {
		return fmt.Errorf("unknown output format %q (expected table, json, or csv)", outputFormat)
	}

	plan, err := loadAndCompile(cmd, scenarioPath)
	if err != nil {
		return err
	}

	tables, err := refdata.Load()
	if err != nil {
		return err
	}

	report, err := engine.New(tables).Run(cmd.Context(), plan)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch outputFormat {
	case outputJSON:
		return renderJSON(out, report)
	case outputCSV:
		return renderCSV(out, report)
	default:
		styled := outPath == "" && isTerminal(os.Stdout)
		return renderTable(out, report, styled)
	}
}
