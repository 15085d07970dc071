// Package model implements the site production and impact aggregation
// calculation: given one site's configuration for one year it produces
// energy output, cell count, CO2 split by source, water usage, cost, and a
// bill of materials, plus the year-level and cumulative aggregations.
//
// Every function in this package is pure: results depend only on the inputs
// and the read-only reference tables, accumulators are passed and returned
// as values, and repeated evaluation with identical inputs yields identical
// outputs. Callers may evaluate sites concurrently without locking.
package model

import (
	"sort"

	"github.com/agrata/carbonsense/internal/refdata"
)

// SourcingSelection assigns percentage weights to supplier sources, keyed by
// category name then source name. A category only contributes impact when
// its weights sum to exactly 100; anything else is a defined no-op.
type SourcingSelection map[string]map[string]float64

// SiteConfig is one site's input configuration for a single year.
type SiteConfig struct {
	Site refdata.Site

	// Lines is the number of production lines. Zero means no production.
	Lines int

	// PowerPct is the power-utilization percentage. Range enforcement is a
	// validation-boundary concern; the model clamps negatives to zero.
	PowerPct float64

	// Mix assigns production percentages per cell type. For an active site
	// (Lines > 0) the percentages must sum to exactly 100 or the site
	// contributes nothing.
	Mix map[refdata.CellType]float64

	// Silicon records the silicon-content choice per silicon-bearing cell
	// type present in the mix.
	Silicon map[refdata.CellType]refdata.SiliconPct

	// Sourcing optionally records material-sourcing weights per
	// silicon-bearing cell type present in the mix.
	Sourcing map[refdata.CellType]SourcingSelection

	// EnergyMix selects the grid emission formula for this site-year.
	EnergyMix refdata.EnergyMix

	// DefaultSilicon, when set, is applied to an active silicon-bearing
	// cell type that is missing a silicon selection. When nil, a missing
	// selection invalidates the site-year (it contributes zero).
	DefaultSilicon *refdata.SiliconPct
}

// MaterialKey identifies an aggregate bill-of-materials bucket. The same
// material name with different units is a distinct bucket.
type MaterialKey struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// String renders the key as "Name (unit)".
func (k MaterialKey) String() string {
	return k.Name + " (" + k.Unit + ")"
}

// SiteResult is one site's computed output for a single year. An invalid
// configuration yields a zero-valued result carrying the warnings that
// explain the exclusion.
type SiteResult struct {
	Site refdata.Site `json:"site"`

	EnergyGWh   float64 `json:"energy_gwh"`
	TotalCells  float64 `json:"total_cells"`
	EnergyCO2   float64 `json:"energy_co2"`
	MaterialCO2 float64 `json:"material_co2"`
	TotalCO2    float64 `json:"total_co2"`
	TotalWater  float64 `json:"total_water"`
	CostGBP     float64 `json:"cost_gbp"`

	Materials map[MaterialKey]float64 `json:"-"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// Excluded reports whether the site-year was dropped from aggregation
// because of an invalid configuration.
func (r *SiteResult) Excluded() bool {
	for _, w := range r.Warnings {
		if w.Code == WarnMixNot100 || w.Code == WarnMissingSilicon {
			return true
		}
	}
	return false
}

// YearResult is the sum of all site results for one year.
type YearResult struct {
	Year  int          `json:"year"`
	Sites []SiteResult `json:"sites"`

	EnergyGWh   float64 `json:"energy_gwh"`
	TotalCells  float64 `json:"total_cells"`
	EnergyCO2   float64 `json:"energy_co2"`
	MaterialCO2 float64 `json:"material_co2"`
	TotalCO2    float64 `json:"total_co2"`
	TotalWater  float64 `json:"total_water"`
	CostGBP     float64 `json:"cost_gbp"`

	Materials map[MaterialKey]float64 `json:"-"`
}

// Warnings collects every site warning for the year.
func (y *YearResult) Warnings() []Warning {
	var all []Warning
	for _, site := range y.Sites {
		all = append(all, site.Warnings...)
	}
	return all
}

// Cumulative is the running total across years. It is a value type: Add
// returns a new Cumulative and never mutates the receiver, so partial
// recomputation in any year order produces the same final totals.
type Cumulative struct {
	Years       int     `json:"years"`
	EnergyGWh   float64 `json:"energy_gwh"`
	TotalCells  float64 `json:"total_cells"`
	EnergyCO2   float64 `json:"energy_co2"`
	MaterialCO2 float64 `json:"material_co2"`
	TotalCO2    float64 `json:"total_co2"`
	TotalWater  float64 `json:"total_water"`
	CostGBP     float64 `json:"cost_gbp"`

	Materials map[MaterialKey]float64 `json:"-"`
}

// SortedMaterials returns the aggregate bill of materials ordered by
// descending quantity, ties broken by name then unit for stable output.
func SortedMaterials(materials map[MaterialKey]float64) []MaterialQuantity {
	out := make([]MaterialQuantity, 0, len(materials))
	for key, qty := range materials {
		out = append(out, MaterialQuantity{Key: key, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		if out[i].Key.Name != out[j].Key.Name {
			return out[i].Key.Name < out[j].Key.Name
		}
		return out[i].Key.Unit < out[j].Key.Unit
	})
	return out
}

// MaterialQuantity pairs a material bucket with its aggregate quantity.
type MaterialQuantity struct {
	Key      MaterialKey `json:"material"`
	Quantity float64     `json:"quantity"`
}
