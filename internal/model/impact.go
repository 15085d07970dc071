package model

import (
	"fmt"
	"sort"

	"github.com/agrata/carbonsense/internal/refdata"
)

// mixTolerance is the equality tolerance for percentage sums. Scenario
// inputs are human-entered percentages; the tolerance only absorbs float
// representation noise (e.g. 33.3+33.3+33.4), never a genuinely short or
// long mix: 99 and 101 are still rejected.
const mixTolerance = 1e-9

// EvaluateSite computes one site's production, emissions, water, cost, and
// bill of materials for a single year.
//
// The evaluation is fail-soft: an inactive site (Lines <= 0) returns the
// normal empty result, and an invalid configuration (mix not summing to
// 100, missing silicon selection without a configured default) returns a
// zero-valued result whose Warnings explain the exclusion. An error is
// returned only for broken references (unknown site or energy mix), which
// indicates a caller bug rather than a user configuration problem.
//
// All iteration is in fixed reference order, so repeated evaluation with
// identical inputs is bit-identical.
func EvaluateSite(cfg SiteConfig, tables *refdata.Tables) (SiteResult, error) {
	caps, err := refdata.ConstantsFor(cfg.Site)
	if err != nil {
		return SiteResult{}, err
	}
	formula, err := refdata.FormulaFor(cfg.EnergyMix)
	if err != nil {
		return SiteResult{}, err
	}

	result := SiteResult{
		Site:      cfg.Site,
		Materials: map[MaterialKey]float64{},
	}

	// No lines means no production: the normal empty case, not a warning.
	if cfg.Lines <= 0 {
		return result, nil
	}

	if warn, ok := checkMix(cfg); !ok {
		result.Warnings = append(result.Warnings, warn)
		return result, nil
	}

	silicon, warns, ok := resolveSilicon(cfg, tables)
	result.Warnings = append(result.Warnings, warns...)
	if !ok {
		return result, nil
	}

	result.EnergyGWh, result.TotalCells = Production(cfg.Lines, cfg.PowerPct, caps)

	for _, ct := range refdata.AllCellTypes {
		pct := cfg.Mix[ct]
		if pct <= 0 {
			continue
		}
		cellsOfType := result.TotalCells * pct / 100.0
		if cellsOfType <= 0 {
			continue
		}

		def, cellErr := tables.Cell(ct)
		if cellErr != nil {
			return SiteResult{}, cellErr
		}

		for _, entry := range def.BOM {
			key := MaterialKey{Name: entry.Material.Name, Unit: entry.Material.Unit}
			result.Materials[key] += entry.QtyPerCell * cellsOfType
		}

		perKWh := def.BaseImpact
		if def.HasSiliconVariant() {
			perKWh = perKWh.Add(def.SiliconDeltas[silicon[ct]])

			if sel, has := cfg.Sourcing[ct]; has {
				delta, sourcingWarns := sourcingDelta(cfg.Site, ct, sel, tables)
				perKWh = perKWh.Add(delta)
				result.Warnings = append(result.Warnings, sourcingWarns...)
			}
		}

		energyKWhShare := result.EnergyGWh * (pct / 100.0) * refdata.KWhPerGWh
		result.MaterialCO2 += energyKWhShare * perKWh.CO2 / refdata.KgPerTon
		result.TotalWater += energyKWhShare * perKWh.Water / refdata.KgPerTon
	}

	result.EnergyCO2 = formula.TonsCO2(result.EnergyGWh)
	result.TotalCO2 = result.EnergyCO2 + result.MaterialCO2
	result.CostGBP = result.EnergyGWh * refdata.KWhPerGWh * caps.PricePerKWhGBP()

	return result, nil
}

// checkMix verifies that an active site's mix percentages are non-negative
// and sum to exactly 100 (within float tolerance).
func checkMix(cfg SiteConfig) (Warning, bool) {
	var sum float64
	for _, ct := range refdata.AllCellTypes {
		pct := cfg.Mix[ct]
		if pct < 0 {
			return Warning{
				Code:   WarnMixNot100,
				Site:   cfg.Site,
				Detail: fmt.Sprintf("negative mix percentage %.4g for %s", pct, ct),
			}, false
		}
		sum += pct
	}
	if sum < 100-mixTolerance || sum > 100+mixTolerance {
		return Warning{
			Code:   WarnMixNot100,
			Site:   cfg.Site,
			Detail: fmt.Sprintf("cell mix sums to %.4g%%, must be exactly 100%%", sum),
		}, false
	}
	return Warning{}, true
}

// resolveSilicon returns the effective silicon selection per active
// silicon-bearing cell type. A missing selection falls back to the
// scenario's explicit default; without one the site-year is invalid.
func resolveSilicon(
	cfg SiteConfig,
	tables *refdata.Tables,
) (map[refdata.CellType]refdata.SiliconPct, []Warning, bool) {
	resolved := make(map[refdata.CellType]refdata.SiliconPct)
	var warns []Warning
	valid := true

	for _, ct := range refdata.AllCellTypes {
		if cfg.Mix[ct] <= 0 {
			// Inactive types need no selection even if the chemistry is
			// silicon-bearing.
			continue
		}
		def, err := tables.Cell(ct)
		if err != nil || !def.HasSiliconVariant() {
			continue
		}

		if pct, has := cfg.Silicon[ct]; has {
			resolved[ct] = pct
			continue
		}
		if cfg.DefaultSilicon != nil {
			resolved[ct] = *cfg.DefaultSilicon
			continue
		}

		warns = append(warns, Warning{
			Code:   WarnMissingSilicon,
			Site:   cfg.Site,
			Detail: fmt.Sprintf("no silicon selection for active cell type %s and no default configured", ct),
		})
		valid = false
	}

	return resolved, warns, valid
}

// sourcingDelta computes the additive per-kWh impact from material-sourcing
// selections for one cell type. Each category contributes its weighted
// average delta only when the category's weights sum to exactly 100;
// partially specified categories contribute zero (reported, not failed).
func sourcingDelta(
	site refdata.Site,
	ct refdata.CellType,
	sel SourcingSelection,
	tables *refdata.Tables,
) (refdata.Impact, []Warning) {
	var total refdata.Impact
	var warns []Warning

	// Categories are walked in reference-table order, selections keyed by
	// name; this keeps float accumulation order fixed across runs.
	for _, category := range tables.SourceCategories {
		weights, has := sel[category.Name]
		if !has {
			continue
		}

		var categoryDelta refdata.Impact
		var weightSum float64
		for _, option := range category.Options {
			weight := weights[option.Name]
			if weight <= 0 {
				continue
			}
			categoryDelta = categoryDelta.Add(option.Delta.Scale(weight / 100.0))
			weightSum += weight
		}

		for _, name := range unknownSources(weights, category) {
			warns = append(warns, Warning{
				Code: WarnUnknownSource,
				Site: site,
				Detail: fmt.Sprintf("%s / %s: unknown source %q ignored",
					ct, category.Name, name),
			})
		}

		switch {
		case weightSum == 0:
			// Nothing selected in this category; silent no-op.
		case weightSum >= 100-mixTolerance && weightSum <= 100+mixTolerance:
			total = total.Add(categoryDelta)
		default:
			warns = append(warns, Warning{
				Code: WarnSourcingIgnored,
				Site: site,
				Detail: fmt.Sprintf("%s / %s: weights sum to %.4g%%, category contributes zero",
					ct, category.Name, weightSum),
			})
		}
	}

	for _, name := range unknownCategories(sel, tables) {
		warns = append(warns, Warning{
			Code:   WarnUnknownSource,
			Site:   site,
			Detail: fmt.Sprintf("%s: unknown sourcing category %q ignored", ct, name),
		})
	}

	return total, warns
}

// unknownSources lists positively weighted source names absent from the
// category's option set, sorted for deterministic warning output.
func unknownSources(weights map[string]float64, category refdata.SourceCategory) []string {
	known := make(map[string]struct{}, len(category.Options))
	for _, option := range category.Options {
		known[option.Name] = struct{}{}
	}

	var unknown []string
	for name, weight := range weights {
		if weight <= 0 {
			continue
		}
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// unknownCategories lists selection categories absent from the reference
// tables, sorted for deterministic warning output.
func unknownCategories(sel SourcingSelection, tables *refdata.Tables) []string {
	var unknown []string
	for name := range sel {
		if !tables.HasSourceCategory(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
