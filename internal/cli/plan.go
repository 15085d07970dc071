package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrata/carbonsense/internal/config"
	"github.com/agrata/carbonsense/internal/refdata"
)

// newPlanCmd creates the plan command group.
func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run and validate planning scenarios",
	}
	cmd.AddCommand(NewPlanRunCmd(), NewPlanValidateCmd())
	return cmd
}

// loadAndCompile loads a scenario file, compiles it against the reference
// tables, and prints every validation finding to stderr. It returns a nil
// plan (and a terminal error) when the scenario has error-severity issues.
func loadAndCompile(cmd *cobra.Command, scenarioPath string) (*config.Plan, error) {
	tables, err := refdata.Load()
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}

	scenario, err := config.LoadScenario(scenarioPath)
	if err != nil {
		return nil, err
	}

	plan, issues := scenario.Compile(tables)
	for _, issue := range issues {
		cmd.PrintErrln(issue.String())
	}
	if plan == nil {
		return nil, fmt.Errorf("scenario %s has %d validation error(s)", scenarioPath, len(issues.Errors()))
	}
	return plan, nil
}
