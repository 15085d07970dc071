// Package refdata holds the immutable reference tables for the carbonsense
// planning model: energy-mix emission formulas, cell-type definitions
// (bill of materials, per-kWh impact factors, silicon-content deltas),
// material-sourcing options, and per-site capacity and price constants.
//
// Tables are loaded exactly once at process start and never mutated; the
// model treats them as read-only input, so they are safe to share across
// concurrent evaluations.
package refdata

import (
	"fmt"
	"strings"
)

// Site identifies a manufacturing location.
type Site int

const (
	// SiteUK is the UK plant.
	SiteUK Site = iota

	// SiteIndia is the India plant.
	SiteIndia
)

// AllSites lists the sites in the order they are reported.
//
//nolint:gochecknoglobals // Static enumeration used for deterministic iteration.
var AllSites = []Site{SiteUK, SiteIndia}

// String returns the display name for the site.
func (s Site) String() string {
	switch s {
	case SiteUK:
		return "UK"
	case SiteIndia:
		return "India"
	default:
		return fmt.Sprintf("Site(%d)", int(s))
	}
}

// Key returns the stable lowercase identifier used in scenario files.
func (s Site) Key() string {
	switch s {
	case SiteUK:
		return "uk"
	case SiteIndia:
		return "india"
	default:
		return fmt.Sprintf("site_%d", int(s))
	}
}

// ParseSite resolves a scenario key or display name to a Site.
func ParseSite(name string) (Site, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uk":
		return SiteUK, nil
	case "india":
		return SiteIndia, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSite, name)
	}
}

// CellType identifies a manufacturing recipe (chemistry).
type CellType int

const (
	// CellNMC1 is the first NMC chemistry (silicon-bearing).
	CellNMC1 CellType = iota

	// CellNMC2 is the second NMC chemistry (silicon-bearing).
	CellNMC2

	// CellLFP is the LFP chemistry (no silicon variant).
	CellLFP
)

// AllCellTypes lists the cell types in mix-entry order.
//
//nolint:gochecknoglobals // Static enumeration used for deterministic iteration.
var AllCellTypes = []CellType{CellNMC1, CellNMC2, CellLFP}

// String returns the display name for the cell type.
func (c CellType) String() string {
	switch c {
	case CellNMC1:
		return "NMC Cell 1"
	case CellNMC2:
		return "NMC Cell 2"
	case CellLFP:
		return "LFP"
	default:
		return fmt.Sprintf("CellType(%d)", int(c))
	}
}

// Key returns the stable lowercase identifier used in scenario files and
// embedded data.
func (c CellType) Key() string {
	switch c {
	case CellNMC1:
		return "nmc_cell_1"
	case CellNMC2:
		return "nmc_cell_2"
	case CellLFP:
		return "lfp"
	default:
		return fmt.Sprintf("cell_%d", int(c))
	}
}

// ParseCellType resolves a scenario key or display name to a CellType.
func ParseCellType(name string) (CellType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nmc_cell_1", "nmc cell 1":
		return CellNMC1, nil
	case "nmc_cell_2", "nmc cell 2":
		return CellNMC2, nil
	case "lfp":
		return CellLFP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCellType, name)
	}
}

// SiliconPct is a discrete silicon-content variant for silicon-bearing
// chemistries. Only the values listed in AllSiliconPcts are valid.
type SiliconPct int

// AllSiliconPcts lists the allowed silicon-content percentages.
//
//nolint:gochecknoglobals // Static enumeration used for deterministic iteration.
var AllSiliconPcts = []SiliconPct{3, 5, 10, 15, 20}

// ParseSiliconPct validates a raw percentage against the closed set.
func ParseSiliconPct(pct int) (SiliconPct, error) {
	for _, p := range AllSiliconPcts {
		if int(p) == pct {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %d (allowed: 3, 5, 10, 15, 20)", ErrInvalidSiliconPct, pct)
}

// Impact is an additive (CO2, water) footprint pair. Depending on context
// the values are per-kWh factors (kg CO2/kWh, m3 water/kWh) or absolute
// totals (t CO2, m3 water). Negative values are allowed in sourcing deltas
// and represent credits.
type Impact struct {
	CO2   float64 `json:"co2"`
	Water float64 `json:"water"`
}

// Add returns the element-wise sum of two impacts.
func (i Impact) Add(other Impact) Impact {
	return Impact{CO2: i.CO2 + other.CO2, Water: i.Water + other.Water}
}

// Scale returns the impact multiplied by a scalar factor.
func (i Impact) Scale(factor float64) Impact {
	return Impact{CO2: i.CO2 * factor, Water: i.Water * factor}
}

// Material identifies a bill-of-materials entry. The same material name may
// appear with different units (mass, area, count) and is then tracked as a
// distinct entry.
type Material struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// String renders the material as "Name (unit)".
func (m Material) String() string {
	return m.Name + " (" + m.Unit + ")"
}

// BOMEntry is one line of a cell type's bill of materials.
type BOMEntry struct {
	Material   Material
	QtyPerCell float64
}

// CellDefinition is the full manufacturing recipe for one cell type.
type CellDefinition struct {
	Type CellType

	// BOM preserves the order of the reference dataset.
	BOM []BOMEntry

	// BaseImpact is the intrinsic per-kWh footprint of the chemistry.
	BaseImpact Impact

	// SiliconDeltas maps a silicon-content choice to its additive per-kWh
	// delta. Nil for chemistries without a silicon variant.
	SiliconDeltas map[SiliconPct]Impact
}

// HasSiliconVariant reports whether the chemistry requires a silicon-content
// selection when present in an active production mix.
func (d *CellDefinition) HasSiliconVariant() bool {
	return len(d.SiliconDeltas) > 0
}
