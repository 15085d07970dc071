package refdata

import (
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-json"
)

// supportedDataRange is the semver constraint the embedded dataset's
// schema_version must satisfy. Bump the upper bound together with the
// loader when the data layout changes.
const supportedDataRange = ">= 1.0.0, < 2.0.0"

// SourceOption is one upstream supplier choice within a sourcing category.
type SourceOption struct {
	Name string

	// Delta is the additive per-kWh impact of choosing this source.
	// Negative components are credits.
	Delta Impact
}

// SourceCategory is a material-sourcing category (e.g. "pCam Nickel") with
// its supplier options in dataset order.
type SourceCategory struct {
	Name    string
	Options []SourceOption
}

// Tables is the full immutable reference dataset consumed by the model.
type Tables struct {
	// Version is the parsed schema_version of the embedded dataset.
	Version *semver.Version

	// Cells maps every cell type to its definition.
	Cells map[CellType]*CellDefinition

	// SourceCategories preserves dataset order for rendering.
	SourceCategories []SourceCategory

	// sourceIndex is a category -> source -> delta lookup built at load.
	sourceIndex map[string]map[string]Impact
}

// Cell returns the definition for a cell type.
func (t *Tables) Cell(ct CellType) (*CellDefinition, error) {
	def, ok := t.Cells[ct]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCellType, ct)
	}
	return def, nil
}

// SourceDelta looks up the additive impact for a (category, source) pair.
func (t *Tables) SourceDelta(category, source string) (Impact, bool) {
	sources, ok := t.sourceIndex[category]
	if !ok {
		return Impact{}, false
	}
	delta, ok := sources[source]
	return delta, ok
}

// HasSourceCategory reports whether a sourcing category exists.
func (t *Tables) HasSourceCategory(category string) bool {
	_, ok := t.sourceIndex[category]
	return ok
}

// JSON shapes of the embedded dataset.
type (
	cellsFile struct {
		SchemaVersion string              `json:"schema_version"`
		Cells         map[string]cellJSON `json:"cells"`
	}

	cellJSON struct {
		Materials []materialJSON    `json:"materials"`
		Base      Impact            `json:"base_impact_per_kwh"`
		Silicon   map[string]Impact `json:"silicon_impact_per_kwh"`
	}

	materialJSON struct {
		Name       string  `json:"name"`
		Unit       string  `json:"unit"`
		QtyPerCell float64 `json:"qty_per_cell"`
	}

	sourcesFile struct {
		SchemaVersion string         `json:"schema_version"`
		Categories    []categoryJSON `json:"categories"`
	}

	categoryJSON struct {
		Name    string       `json:"name"`
		Sources []sourceJSON `json:"sources"`
	}

	sourceJSON struct {
		Name  string  `json:"name"`
		CO2   float64 `json:"co2"`
		Water float64 `json:"water"`
	}
)

//nolint:gochecknoglobals // Guards one-time parsing of the embedded dataset.
var (
	loadOnce   sync.Once
	loadedTabs *Tables
	loadErr    error
)

// Load parses the embedded reference dataset. Parsing happens exactly once
// per process; subsequent calls return the cached tables. The returned
// Tables must be treated as read-only.
func Load() (*Tables, error) {
	loadOnce.Do(func() {
		loadedTabs, loadErr = parse(rawCellsJSON, rawSourcesJSON)
	})
	return loadedTabs, loadErr
}

// parse builds Tables from raw dataset bytes. Split out from Load so tests
// can exercise version and consistency failures.
func parse(cellsRaw, sourcesRaw []byte) (*Tables, error) {
	var cf cellsFile
	if err := json.Unmarshal(cellsRaw, &cf); err != nil {
		return nil, fmt.Errorf("%w: cells: %w", ErrDatasetCorrupt, err)
	}

	var sf sourcesFile
	if err := json.Unmarshal(sourcesRaw, &sf); err != nil {
		return nil, fmt.Errorf("%w: sources: %w", ErrDatasetCorrupt, err)
	}

	version, err := checkVersion(cf.SchemaVersion, sf.SchemaVersion)
	if err != nil {
		return nil, err
	}

	tables := &Tables{
		Version:     version,
		Cells:       make(map[CellType]*CellDefinition, len(AllCellTypes)),
		sourceIndex: make(map[string]map[string]Impact, len(sf.Categories)),
	}

	for key, raw := range cf.Cells {
		ct, parseErr := ParseCellType(key)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatasetCorrupt, parseErr)
		}
		def, defErr := buildCellDefinition(ct, raw)
		if defErr != nil {
			return nil, defErr
		}
		tables.Cells[ct] = def
	}

	// Every member of the closed cell-type set must be defined.
	for _, ct := range AllCellTypes {
		if _, ok := tables.Cells[ct]; !ok {
			return nil, fmt.Errorf("%w: missing cell definition for %s", ErrDatasetCorrupt, ct)
		}
	}

	for _, cat := range sf.Categories {
		category := SourceCategory{Name: cat.Name, Options: make([]SourceOption, 0, len(cat.Sources))}
		index := make(map[string]Impact, len(cat.Sources))
		for _, src := range cat.Sources {
			delta := Impact{CO2: src.CO2, Water: src.Water}
			category.Options = append(category.Options, SourceOption{Name: src.Name, Delta: delta})
			index[src.Name] = delta
		}
		tables.SourceCategories = append(tables.SourceCategories, category)
		tables.sourceIndex[cat.Name] = index
	}

	return tables, nil
}

// checkVersion parses and validates both dataset versions against
// supportedDataRange. The two files must carry the same version.
func checkVersion(cellsVersion, sourcesVersion string) (*semver.Version, error) {
	if cellsVersion != sourcesVersion {
		return nil, fmt.Errorf("%w: cells %q vs sources %q",
			ErrDatasetVersion, cellsVersion, sourcesVersion)
	}

	version, err := semver.NewVersion(cellsVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrDatasetVersion, cellsVersion, err)
	}

	constraint, err := semver.NewConstraint(supportedDataRange)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset constraint %q: %w", supportedDataRange, err)
	}
	if !constraint.Check(version) {
		return nil, fmt.Errorf("%w: %s (supported: %s)",
			ErrDatasetVersion, version, supportedDataRange)
	}

	return version, nil
}

func buildCellDefinition(ct CellType, raw cellJSON) (*CellDefinition, error) {
	def := &CellDefinition{
		Type:       ct,
		BOM:        make([]BOMEntry, 0, len(raw.Materials)),
		BaseImpact: raw.Base,
	}

	for _, m := range raw.Materials {
		if m.QtyPerCell < 0 {
			return nil, fmt.Errorf("%w: %s: negative quantity for %q",
				ErrDatasetCorrupt, ct, m.Name)
		}
		def.BOM = append(def.BOM, BOMEntry{
			Material:   Material{Name: m.Name, Unit: m.Unit},
			QtyPerCell: m.QtyPerCell,
		})
	}

	if len(raw.Silicon) > 0 {
		def.SiliconDeltas = make(map[SiliconPct]Impact, len(raw.Silicon))
		for key, delta := range raw.Silicon {
			pct, err := parseSiliconKey(key)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrDatasetCorrupt, ct, err)
			}
			def.SiliconDeltas[pct] = delta
		}
		// A silicon-bearing chemistry must cover the whole discrete set,
		// otherwise a valid selection could fail to resolve at runtime.
		for _, pct := range AllSiliconPcts {
			if _, ok := def.SiliconDeltas[pct]; !ok {
				return nil, fmt.Errorf("%w: %s: missing silicon delta for %d%%",
					ErrDatasetCorrupt, ct, int(pct))
			}
		}
	}

	return def, nil
}

func parseSiliconKey(key string) (SiliconPct, error) {
	var pct int
	if _, err := fmt.Sscanf(key, "%d", &pct); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSiliconPct, key)
	}
	return ParseSiliconPct(pct)
}
