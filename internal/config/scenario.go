// Package config loads and validates carbonsense scenario files and tool
// settings. A scenario file is the YAML description of a multi-year,
// multi-site production plan; config compiles it into the typed
// model.SiteConfig inputs the planner consumes.
package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/agrata/carbonsense/internal/model"
	"github.com/agrata/carbonsense/internal/refdata"
)

// supportedScenarioRange is the semver constraint a scenario file's
// schema_version must satisfy.
const supportedScenarioRange = ">= 1.0.0, < 2.0.0"

// Scenario is the raw YAML shape of a planning scenario.
type Scenario struct {
	SchemaVersion string      `yaml:"schema_version"`
	Defaults      Defaults    `yaml:"defaults"`
	Years         []YearInput `yaml:"years"`
}

// Defaults carries scenario-wide settings that individual years and sites
// may override.
type Defaults struct {
	// EnergyMix is the default energy-mix name for every site-year.
	EnergyMix string `yaml:"energy_mix"`

	// DefaultSiliconPct, when set, is applied to active silicon-bearing
	// cell types that have no explicit silicon selection. Leaving it unset
	// makes a missing selection a configuration problem that excludes the
	// site-year (the recommended strict behavior).
	DefaultSiliconPct *int `yaml:"default_silicon_pct"`

	// PowerCaps overrides the per-site power-utilization upper bound,
	// keyed by site key ("uk", "india").
	PowerCaps map[string]float64 `yaml:"power_caps"`
}

// YearInput is one year's configuration.
type YearInput struct {
	Year      int                  `yaml:"year"`
	EnergyMix string               `yaml:"energy_mix"`
	Sites     map[string]SiteInput `yaml:"sites"`
}

// SiteInput is one site's configuration within a year. Sites omitted from a
// year are treated as inactive (zero lines).
type SiteInput struct {
	Lines    int                `yaml:"lines"`
	PowerPct float64            `yaml:"power_pct"`
	Mix      map[string]float64 `yaml:"mix"`
	Silicon  map[string]int     `yaml:"silicon"`

	// Sourcing is keyed cell type -> category -> source -> weight.
	Sourcing map[string]map[string]map[string]float64 `yaml:"sourcing"`

	// EnergyMix overrides the year/default mix for this site only. The
	// source tool shared one choice across both sites per year; the model
	// accepts one per site for composability.
	EnergyMix string `yaml:"energy_mix"`
}

// LoadScenario reads and unmarshals a scenario file. Structural validation
// happens in Compile.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Plan is a compiled scenario: typed inputs ready for the planner.
type Plan struct {
	SchemaVersion string
	Years         []PlanYear
}

// PlanYear holds the per-site model inputs for one year, in AllSites order.
type PlanYear struct {
	Year  int
	Sites []model.SiteConfig
}

// Compile type-checks the scenario against the reference tables and builds
// the planner input. All findings are returned as Issues; the returned Plan
// is usable only when Issues contains no error-severity entries. Soft
// findings (a mix that does not sum to 100, incomplete sourcing weights)
// are warnings here because the model handles them fail-soft at run time.
func (s *Scenario) Compile(tables *refdata.Tables) (*Plan, Issues) {
	var issues Issues

	if err := checkScenarioVersion(s.SchemaVersion); err != nil {
		issues = issues.errorf(0, "", "%v", err)
		return nil, issues
	}
	if len(s.Years) == 0 {
		issues = issues.errorf(0, "", "scenario defines no years")
		return nil, issues
	}

	defaultSilicon, issues := s.compileDefaultSilicon(issues)

	plan := &Plan{SchemaVersion: s.SchemaVersion}
	seen := make(map[int]bool, len(s.Years))

	for _, year := range s.Years {
		if year.Year <= 0 {
			issues = issues.errorf(year.Year, "", "invalid year %d", year.Year)
			continue
		}
		if seen[year.Year] {
			issues = issues.errorf(year.Year, "", "year %d defined more than once", year.Year)
			continue
		}
		seen[year.Year] = true

		for key := range year.Sites {
			if _, err := refdata.ParseSite(key); err != nil {
				issues = issues.errorf(year.Year, key, "%v", err)
			}
		}

		py := PlanYear{Year: year.Year}
		for _, site := range refdata.AllSites {
			cfg, siteIssues := s.compileSite(tables, year, site, defaultSilicon)
			issues = append(issues, siteIssues...)
			py.Sites = append(py.Sites, cfg)
		}
		plan.Years = append(plan.Years, py)
	}

	if issues.HasErrors() {
		return nil, issues
	}
	return plan, issues
}

func checkScenarioVersion(raw string) error {
	if raw == "" {
		return fmt.Errorf("scenario is missing schema_version")
	}
	version, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", raw, err)
	}
	constraint, err := semver.NewConstraint(supportedScenarioRange)
	if err != nil {
		return fmt.Errorf("invalid scenario constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("unsupported schema_version %s (supported: %s)", version, supportedScenarioRange)
	}
	return nil
}

func (s *Scenario) compileDefaultSilicon(issues Issues) (*refdata.SiliconPct, Issues) {
	if s.Defaults.DefaultSiliconPct == nil {
		return nil, issues
	}
	pct, err := refdata.ParseSiliconPct(*s.Defaults.DefaultSiliconPct)
	if err != nil {
		return nil, issues.errorf(0, "", "defaults.default_silicon_pct: %v", err)
	}
	return &pct, issues
}

//nolint:gocognit // Linear sequence of field checks; splitting would obscure the site shape.
func (s *Scenario) compileSite(
	tables *refdata.Tables,
	year YearInput,
	site refdata.Site,
	defaultSilicon *refdata.SiliconPct,
) (model.SiteConfig, Issues) {
	var issues Issues

	cfg := model.SiteConfig{
		Site:           site,
		Mix:            map[refdata.CellType]float64{},
		Silicon:        map[refdata.CellType]refdata.SiliconPct{},
		DefaultSilicon: defaultSilicon,
	}

	input, present := year.Sites[site.Key()]

	mixName := firstNonEmpty(input.EnergyMix, year.EnergyMix, s.Defaults.EnergyMix)
	if mixName == "" {
		issues = issues.errorf(year.Year, site.Key(),
			"no energy mix configured (site, year, or defaults)")
	} else if mix, err := refdata.ParseEnergyMix(mixName); err != nil {
		issues = issues.errorf(year.Year, site.Key(), "%v", err)
	} else {
		cfg.EnergyMix = mix
	}

	if !present {
		return cfg, issues
	}

	if input.Lines < 0 {
		issues = issues.errorf(year.Year, site.Key(), "lines must be >= 0, got %d", input.Lines)
	}
	if input.PowerPct < 0 {
		issues = issues.errorf(year.Year, site.Key(),
			"power_pct must be >= 0, got %g", input.PowerPct)
	}
	if capPct, err := s.powerCap(site); err != nil {
		issues = issues.errorf(year.Year, site.Key(), "%v", err)
	} else if input.PowerPct > capPct {
		issues = issues.errorf(year.Year, site.Key(),
			"power_pct %g exceeds the %s cap of %g", input.PowerPct, site, capPct)
	}
	cfg.Lines = input.Lines
	cfg.PowerPct = input.PowerPct

	var mixSum float64
	for name, pct := range input.Mix {
		ct, err := refdata.ParseCellType(name)
		if err != nil {
			issues = issues.errorf(year.Year, site.Key(), "mix: %v", err)
			continue
		}
		if pct < 0 {
			issues = issues.errorf(year.Year, site.Key(),
				"mix: negative percentage %g for %s", pct, ct)
			continue
		}
		cfg.Mix[ct] = pct
		mixSum += pct
	}
	if input.Lines > 0 && mixSum != 100 {
		issues = issues.warnf(year.Year, site.Key(),
			"cell mix sums to %g%%; the site will contribute zero until it is exactly 100%%", mixSum)
	}

	for name, pct := range input.Silicon {
		ct, err := refdata.ParseCellType(name)
		if err != nil {
			issues = issues.errorf(year.Year, site.Key(), "silicon: %v", err)
			continue
		}
		sil, err := refdata.ParseSiliconPct(pct)
		if err != nil {
			issues = issues.errorf(year.Year, site.Key(), "silicon for %s: %v", ct, err)
			continue
		}
		cfg.Silicon[ct] = sil
	}

	issues = append(issues, s.compileSourcing(tables, year, site, input, &cfg)...)

	return cfg, issues
}

func (s *Scenario) compileSourcing(
	tables *refdata.Tables,
	year YearInput,
	site refdata.Site,
	input SiteInput,
	cfg *model.SiteConfig,
) Issues {
	var issues Issues
	if len(input.Sourcing) == 0 {
		return issues
	}

	cfg.Sourcing = map[refdata.CellType]model.SourcingSelection{}
	for cellName, categories := range input.Sourcing {
		ct, err := refdata.ParseCellType(cellName)
		if err != nil {
			issues = issues.errorf(year.Year, site.Key(), "sourcing: %v", err)
			continue
		}

		selection := model.SourcingSelection{}
		for category, weights := range categories {
			if !tables.HasSourceCategory(category) {
				issues = issues.errorf(year.Year, site.Key(),
					"sourcing for %s: unknown category %q", ct, category)
				continue
			}
			var sum float64
			for source, weight := range weights {
				if weight < 0 {
					issues = issues.errorf(year.Year, site.Key(),
						"sourcing for %s / %s: negative weight %g for %q", ct, category, weight, source)
					continue
				}
				if _, ok := tables.SourceDelta(category, source); !ok {
					issues = issues.errorf(year.Year, site.Key(),
						"sourcing for %s / %s: unknown source %q", ct, category, source)
					continue
				}
				sum += weight
			}
			if sum != 0 && sum != 100 {
				issues = issues.warnf(year.Year, site.Key(),
					"sourcing for %s / %s: weights sum to %g%%; the category will contribute zero", ct, category, sum)
			}
			selection[category] = weights
		}
		cfg.Sourcing[ct] = selection
	}

	return issues
}

// powerCap resolves the site's power-utilization upper bound: a scenario
// override when present, otherwise the site default.
func (s *Scenario) powerCap(site refdata.Site) (float64, error) {
	if capPct, ok := s.Defaults.PowerCaps[site.Key()]; ok {
		if capPct <= 0 {
			return 0, fmt.Errorf("power cap for %s must be > 0, got %g", site, capPct)
		}
		return capPct, nil
	}
	caps, err := refdata.ConstantsFor(site)
	if err != nil {
		return 0, err
	}
	return caps.DefaultPowerCapPct, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
