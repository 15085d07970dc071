package refdata

import "fmt"

// Currency units used in site constants.
const (
	// GBPPerINR is the fixed exchange rate applied to India energy costs.
	// Costs are reported in GBP after this single multiplication; there is
	// no further rounding step.
	GBPPerINR = 1.0 / 105.0

	// KWhPerGWh converts GWh to kWh.
	KWhPerGWh = 1e6

	// KgPerTon converts kilograms to metric tons (divisor).
	KgPerTon = 1000.0
)

// SiteConstants holds a site's capacity and cost parameters.
type SiteConstants struct {
	Site Site

	// MaxEnergyPerLineGWh is the energy output of one line at 100% power.
	MaxEnergyPerLineGWh float64

	// MaxCellsPerLine is the cell output of one line at 100% power.
	MaxCellsPerLine float64

	// PricePerKWh is the local-currency energy price.
	PricePerKWh float64

	// LocalCurrency is the ISO code the price is denominated in.
	LocalCurrency string

	// ToGBP converts the local currency to the GBP reporting currency.
	ToGBP float64

	// DefaultPowerCapPct is the default upper bound for the
	// power-utilization input. The source material treats UK as 0-100 and
	// India as 0-210 without a stated rationale, so the cap is a
	// configuration parameter; these are only the defaults.
	DefaultPowerCapPct float64
}

// siteConstants is the static per-site table.
//
// Capacity and pricing source: Agrata 2024 planning assumptions
// (UK 50 GWh/line at £0.258/kWh, India 70 GWh/line at Rs7.38/kWh,
// both 300 cells/line at 100% power).
//
//nolint:gochecknoglobals // Static reference table, read-only after init.
var siteConstants = map[Site]SiteConstants{
	SiteUK: {
		Site:                SiteUK,
		MaxEnergyPerLineGWh: 50,
		MaxCellsPerLine:     300,
		PricePerKWh:         0.258,
		LocalCurrency:       "GBP",
		ToGBP:               1,
		DefaultPowerCapPct:  100,
	},
	SiteIndia: {
		Site:                SiteIndia,
		MaxEnergyPerLineGWh: 70,
		MaxCellsPerLine:     300,
		PricePerKWh:         7.38,
		LocalCurrency:       "INR",
		ToGBP:               GBPPerINR,
		DefaultPowerCapPct:  210,
	},
}

// ConstantsFor returns the capacity and cost constants for a site.
func ConstantsFor(site Site) (SiteConstants, error) {
	c, ok := siteConstants[site]
	if !ok {
		return SiteConstants{}, fmt.Errorf("%w: %d", ErrUnknownSite, int(site))
	}
	return c, nil
}

// PricePerKWhGBP returns the site's energy price converted to GBP.
func (c SiteConstants) PricePerKWhGBP() float64 {
	return c.PricePerKWh * c.ToGBP
}
