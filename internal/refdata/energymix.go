package refdata

import (
	"fmt"
	"math"
	"strings"
)

// EnergyMix identifies a grid/generation mix option for a site-year.
type EnergyMix int

const (
	// MixGridOnly is 100% grid electricity.
	MixGridOnly EnergyMix = iota

	// MixPPAGrid7030 is a 70:30 PPA-to-grid blend.
	MixPPAGrid7030

	// MixGridGas30 is grid plus on-site gas covering 30% of demand.
	MixGridGas30
)

// AllEnergyMixes lists the energy mixes in display order.
//
//nolint:gochecknoglobals // Static enumeration used for deterministic iteration.
var AllEnergyMixes = []EnergyMix{MixGridOnly, MixPPAGrid7030, MixGridGas30}

// String returns the display name for the energy mix.
func (m EnergyMix) String() string {
	switch m {
	case MixGridOnly:
		return "100% Grid"
	case MixPPAGrid7030:
		return "PPA:Grid (70:30)"
	case MixGridGas30:
		return "Grid+Gas (30% demand)"
	default:
		return fmt.Sprintf("EnergyMix(%d)", int(m))
	}
}

// Key returns the stable lowercase identifier used in scenario files.
func (m EnergyMix) Key() string {
	switch m {
	case MixGridOnly:
		return "grid"
	case MixPPAGrid7030:
		return "ppa_grid_70_30"
	case MixGridGas30:
		return "grid_gas_30"
	default:
		return fmt.Sprintf("mix_%d", int(m))
	}
}

// ParseEnergyMix resolves a scenario key or display name to an EnergyMix.
func ParseEnergyMix(name string) (EnergyMix, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grid", "100% grid":
		return MixGridOnly, nil
	case "ppa_grid_70_30", "ppa:grid (70:30)":
		return MixPPAGrid7030, nil
	case "grid_gas_30", "grid+gas (30% demand)":
		return MixGridGas30, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEnergyMix, name)
	}
}

// EnergyMixFormula is the power-law model a * x^b converting energy output
// (GWh) into grid-attributable CO2 emissions (metric tons).
type EnergyMixFormula struct {
	A float64
	B float64
}

// TonsCO2 evaluates the formula for an energy output in GWh. Non-positive
// input yields exactly zero.
func (f EnergyMixFormula) TonsCO2(energyGWh float64) float64 {
	if energyGWh <= 0 {
		return 0
	}
	return f.A * math.Pow(energyGWh, f.B)
}

// energyMixFormulas holds the fitted constants per mix option.
//
// Source: Agrata grid emission sensitivity fits (2024 planning dataset).
//
//nolint:gochecknoglobals // Static reference table, read-only after init.
var energyMixFormulas = map[EnergyMix]EnergyMixFormula{
	MixGridOnly:    {A: 2777.40274, B: 0.288551},
	MixPPAGrid7030: {A: 784.3886, B: 0.396496},
	MixGridGas30:   {A: 1460.00464, B: 0.534148},
}

// FormulaFor returns the emission formula for the given mix.
func FormulaFor(mix EnergyMix) (EnergyMixFormula, error) {
	f, ok := energyMixFormulas[mix]
	if !ok {
		return EnergyMixFormula{}, fmt.Errorf("%w: %d", ErrUnknownEnergyMix, int(mix))
	}
	return f, nil
}
