// Package equiv translates plan-level CO2 totals into everyday
// equivalencies (miles driven, tree seedlings, home-years of electricity)
// using EPA greenhouse-gas equivalency factors. It exists to make
// multi-megaton planning output legible in reports.
package equiv

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agrata/carbonsense/internal/refdata"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Equivalency is one everyday comparison for a CO2 quantity.
type Equivalency struct {
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formatted_value"`
	Label          string  `json:"label"`
}

// Output carries the computed equivalencies for one CO2 input. IsEmpty is
// set when the input was too small (or invalid) to show anything.
type Output struct {
	InputKg     float64       `json:"input_kg"`
	Results     []Equivalency `json:"results,omitempty"`
	DisplayText string        `json:"display_text,omitempty"`
	IsEmpty     bool          `json:"-"`
}

// FromTons computes equivalencies for a CO2 quantity in metric tons, the
// unit the planning model reports in.
func FromTons(tons float64) Output {
	kg := tons * refdata.KgPerTon

	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < MinEquivalencyThresholdKg {
		return Output{InputKg: kg, IsEmpty: true}
	}

	miles := kg / EPAMilesDrivenFactor
	trees := kg / EPATreeSeedlingFactor
	homes := kg / EPAHomeYearFactor

	out := Output{
		InputKg: kg,
		Results: []Equivalency{
			{Value: miles, FormattedValue: FormatLarge(miles), Label: "miles driven"},
			{Value: trees, FormattedValue: FormatLarge(trees), Label: "tree seedlings grown for 10 years"},
			{Value: homes, FormattedValue: FormatLarge(homes), Label: "home-years of electricity"},
		},
	}
	out.DisplayText = fmt.Sprintf(
		"Equivalent to driving ~%s miles, or ~%s tree seedlings grown for 10 years, or ~%s home-years of electricity",
		out.Results[0].FormattedValue, out.Results[1].FormattedValue, out.Results[2].FormattedValue)
	return out
}

// FormatLarge formats a value with comma separators, abbreviating to
// "~X.X million" / "~X.X billion" past the respective thresholds.
func FormatLarge(v float64) string {
	switch {
	case v >= BillionThreshold:
		return fmt.Sprintf("%.1f billion", v/BillionThreshold)
	case v >= LargeNumberThreshold:
		return fmt.Sprintf("%.1f million", v/LargeNumberThreshold)
	default:
		return printer.Sprintf("%d", int64(math.Round(v)))
	}
}
