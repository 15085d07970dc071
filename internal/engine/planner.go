// Package engine runs compiled plans through the model and assembles the
// final report: per-year results in ascending year order, running
// cumulative totals, the aggregate bill of materials, and derived
// efficiency metrics.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/agrata/carbonsense/internal/config"
	"github.com/agrata/carbonsense/internal/logging"
	"github.com/agrata/carbonsense/internal/model"
	"github.com/agrata/carbonsense/internal/refdata"
)

// Planner evaluates compiled plans against a fixed set of reference tables.
// A Planner is safe for concurrent use.
type Planner struct {
	tables *refdata.Tables
}

// New returns a Planner bound to the given reference tables.
func New(tables *refdata.Tables) *Planner {
	return &Planner{tables: tables}
}

// Report is the full output of one plan run.
type Report struct {
	// RunID is a ULID identifying this run in logs and exported files.
	RunID string `json:"run_id"`

	// GeneratedAt is the wall-clock time the run started, UTC.
	GeneratedAt time.Time `json:"generated_at"`

	SchemaVersion string `json:"schema_version"`

	// Years holds the per-year results in ascending year order.
	Years []model.YearResult `json:"years"`

	// Cumulative is the fold of every year in Years.
	Cumulative model.Cumulative `json:"cumulative"`

	// Materials is the cumulative bill of materials, largest quantity
	// first.
	Materials []model.MaterialQuantity `json:"materials"`

	// Efficiency holds derived per-year production-efficiency metrics,
	// parallel to Years, followed by one cumulative row.
	Efficiency []Efficiency `json:"efficiency"`

	// Warnings collects every site-year warning across the run.
	Warnings []model.Warning `json:"warnings,omitempty"`
}

// Efficiency is a set of derived production-efficiency ratios. Ratios are
// zero when the denominator is zero (an all-excluded or idle period).
type Efficiency struct {
	// Label is the year as a string, or "cumulative" for the fold row.
	Label string `json:"label"`

	// CellsPerGWh is cell output per GWh of energy produced.
	CellsPerGWh float64 `json:"cells_per_gwh"`

	// CO2PerCellKg is total emissions per cell, in kilograms.
	CO2PerCellKg float64 `json:"co2_per_cell_kg"`

	// MWhPerCell is energy produced per cell, in megawatt hours.
	MWhPerCell float64 `json:"mwh_per_cell"`
}

// Run evaluates every year of the plan and assembles the report.
//
// Sites within a year are evaluated concurrently; the model is pure, so the
// goroutines share the reference tables without locking. Results are
// reduced in the plan's fixed site order and years are reported in
// ascending order, so the report is deterministic regardless of
// goroutine scheduling.
func (p *Planner) Run(ctx context.Context, plan *config.Plan) (*Report, error) {
	log := logging.FromContext(ctx)

	report := &Report{
		RunID:         ulid.Make().String(),
		GeneratedAt:   time.Now().UTC(),
		SchemaVersion: plan.SchemaVersion,
	}

	log.Debug().
		Str("component", "engine").
		Str("run_id", report.RunID).
		Int("years", len(plan.Years)).
		Msg("starting plan run")

	years := make([]config.PlanYear, len(plan.Years))
	copy(years, plan.Years)
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	var cum model.Cumulative
	for _, py := range years {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan run canceled: %w", err)
		}

		sites, err := p.evaluateYear(ctx, py)
		if err != nil {
			return nil, err
		}

		year := model.AggregateYear(py.Year, sites)
		cum = cum.Add(year)

		report.Years = append(report.Years, year)
		report.Efficiency = append(report.Efficiency, efficiencyRow(
			fmt.Sprintf("%d", year.Year), year.EnergyGWh, year.TotalCells, year.TotalCO2))

		for _, warn := range year.Warnings() {
			report.Warnings = append(report.Warnings, warn)
			log.Warn().
				Str("component", "engine").
				Str("run_id", report.RunID).
				Int("year", warn.Year).
				Str("site", warn.Site.String()).
				Str("code", warn.Code.String()).
				Msg(warn.Detail)
		}
	}

	report.Cumulative = cum
	report.Materials = model.SortedMaterials(cum.Materials)
	report.Efficiency = append(report.Efficiency, efficiencyRow(
		"cumulative", cum.EnergyGWh, cum.TotalCells, cum.TotalCO2))

	log.Info().
		Str("component", "engine").
		Str("run_id", report.RunID).
		Int("years", len(report.Years)).
		Int("warnings", len(report.Warnings)).
		Float64("total_co2_tons", cum.TotalCO2).
		Msg("plan run complete")

	return report, nil
}

// evaluateYear runs the year's sites concurrently and returns the results
// in the plan's site order. Warnings come back stamped with the year.
func (p *Planner) evaluateYear(ctx context.Context, py config.PlanYear) ([]model.SiteResult, error) {
	results := make([]model.SiteResult, len(py.Sites))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, cfg := range py.Sites {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := model.EvaluateSite(cfg, p.tables)
			if err != nil {
				return fmt.Errorf("year %d, site %s: %w", py.Year, cfg.Site, err)
			}
			for j := range res.Warnings {
				res.Warnings[j].Year = py.Year
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func efficiencyRow(label string, energyGWh, cells, co2Tons float64) Efficiency {
	row := Efficiency{Label: label}
	if energyGWh > 0 {
		row.CellsPerGWh = cells / energyGWh
	}
	if cells > 0 {
		row.CO2PerCellKg = co2Tons * refdata.KgPerTon / cells
		row.MWhPerCell = energyGWh * 1000 / cells
	}
	return row
}
