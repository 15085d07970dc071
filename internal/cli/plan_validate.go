package cli

import (
	"github.com/spf13/cobra"
)

// NewPlanValidateCmd creates the plan validate command.
func NewPlanValidateCmd() *cobra.Command {
	var scenarioPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a scenario file without running it",
		Long: `Checks a scenario file against the reference data: schema version,
site and cell-type names, silicon percentages, power ranges, energy-mix
names, and sourcing options.

Findings that the model handles fail-soft at run time (a cell mix not
summing to 100%, incomplete sourcing weights) are reported as warnings;
the scenario is still runnable. Unknown names and out-of-range values
are errors.`,
		Example: `  # Validate a scenario
  carbonsense plan validate --scenario plan.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlanValidate(cmd, scenarioPath)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to the scenario YAML file")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runPlanValidate(cmd *cobra.Command, scenarioPath string) error {
	plan, err := loadAndCompile(cmd, scenarioPath)
	if err != nil {
		return err
	}

	years := len(plan.Years)
	logger.Debug().Int("years", years).Msg("scenario validated")
	cmd.Printf("Scenario is valid: %d year(s), schema %s\n", years, plan.SchemaVersion)
	return nil
}
