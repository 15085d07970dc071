package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrata/carbonsense/internal/engine"
)

const testScenario = `
schema_version: "1.0.0"
defaults:
  energy_mix: "100% Grid"
years:
  - year: 2027
    sites:
      uk:
        lines: 1
        power_pct: 100
        mix: {lfp: 100}
  - year: 2028
    sites:
      uk:
        lines: 2
        power_pct: 100
        mix: {lfp: 100}
      india:
        lines: 1
        power_pct: 100
        mix: {lfp: 100}
`

func writeTestScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestPlanRunTable(t *testing.T) {
	path := writeTestScenario(t, testScenario)

	out, _, err := execute(t, "plan", "run", "--scenario", path)
	require.NoError(t, err)

	assert.Contains(t, out, "PRODUCTION AND IMPACT BY YEAR")
	assert.Contains(t, out, "2027")
	assert.Contains(t, out, "2028")
	assert.Contains(t, out, "EFFICIENCY")
	assert.Contains(t, out, "CUMULATIVE MATERIAL DEMAND")
	assert.Contains(t, out, "Equivalent to driving")
	assert.NotContains(t, out, "WARNINGS")
}

func TestPlanRunJSON(t *testing.T) {
	path := writeTestScenario(t, testScenario)

	out, _, err := execute(t, "plan", "run", "--scenario", path, "--output", "json")
	require.NoError(t, err)

	var report engine.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.RunID, 26)
	require.Len(t, report.Years, 2)
	assert.Equal(t, 2027, report.Years[0].Year)
	assert.InDelta(t, 220, report.Cumulative.EnergyGWh, 1e-9)
	assert.NotEmpty(t, report.Materials)
}

func TestPlanRunCSV(t *testing.T) {
	path := writeTestScenario(t, testScenario)
	outPath := filepath.Join(t.TempDir(), "report.csv")

	_, _, err := execute(t, "plan", "run", "--scenario", path, "--output", "csv", "--out", outPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	content := string(raw)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "year,energy_gwh,total_cells"))
	assert.Contains(t, content, "\ncumulative,")
	assert.Contains(t, content, "material,unit,quantity")
	assert.Contains(t, content, "Li,kg,")
}

func TestPlanRunWarningsSurface(t *testing.T) {
	path := writeTestScenario(t, `
schema_version: "1.0.0"
defaults:
  energy_mix: "100% Grid"
years:
  - year: 2027
    sites:
      uk:
        lines: 1
        power_pct: 100
        mix: {lfp: 95}
`)

	out, errOut, err := execute(t, "plan", "run", "--scenario", path)
	require.NoError(t, err)

	// Compile-time warning on stderr, run-time warning section in output.
	assert.Contains(t, errOut, "WARN")
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "mix_not_100")
}

func TestPlanRunRejectsBadScenario(t *testing.T) {
	path := writeTestScenario(t, `
schema_version: "1.0.0"
defaults:
  energy_mix: "100% Grid"
years:
  - year: 2027
    sites:
      mars: {lines: 1, power_pct: 50, mix: {lfp: 100}}
`)

	_, errOut, err := execute(t, "plan", "run", "--scenario", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "unknown site")
}

func TestPlanRunRejectsBadFormat(t *testing.T) {
	path := writeTestScenario(t, testScenario)

	_, _, err := execute(t, "plan", "run", "--scenario", path, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestPlanValidate(t *testing.T) {
	t.Run("valid scenario", func(t *testing.T) {
		path := writeTestScenario(t, testScenario)
		out, _, err := execute(t, "plan", "validate", "--scenario", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Scenario is valid: 2 year(s)")
	})

	t.Run("invalid scenario", func(t *testing.T) {
		path := writeTestScenario(t, "schema_version: \"1.0.0\"\nyears: []\n")
		_, errOut, err := execute(t, "plan", "validate", "--scenario", path)
		require.Error(t, err)
		assert.Contains(t, errOut, "no years")
	})

	t.Run("missing scenario flag", func(t *testing.T) {
		_, _, err := execute(t, "plan", "validate")
		require.Error(t, err)
	})
}
