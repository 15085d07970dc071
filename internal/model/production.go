package model

import "github.com/agrata/carbonsense/internal/refdata"

// Production converts line count and power utilization into energy output
// (GWh) and total cell count for a site. The formulas are exact, with no
// rounding:
//
//	energy = lines * maxEnergyPerLine * powerPct/100
//	cells  = lines * maxCellsPerLine  * powerPct/100
//
// Negative lines or power are clamped to zero rather than rejected; range
// validation (including the site-specific power-utilization cap) belongs to
// the scenario validation boundary, and clamping keeps the model total on
// malformed input instead of producing negative production.
func Production(lines int, powerPct float64, caps refdata.SiteConstants) (energyGWh, cells float64) {
	if lines < 0 {
		lines = 0
	}
	if powerPct < 0 {
		powerPct = 0
	}

	utilization := float64(lines) * powerPct / 100.0
	return utilization * caps.MaxEnergyPerLineGWh, utilization * caps.MaxCellsPerLine
}
