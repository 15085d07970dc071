package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)
	require.NotNil(t, tables)

	t.Run("all cell types defined", func(t *testing.T) {
		for _, ct := range AllCellTypes {
			def, cellErr := tables.Cell(ct)
			require.NoError(t, cellErr)
			assert.NotEmpty(t, def.BOM, "cell %s has empty BOM", ct)
		}
	})

	t.Run("bom sizes match dataset", func(t *testing.T) {
		sizes := map[CellType]int{
			CellNMC1: 33,
			CellNMC2: 33,
			CellLFP:  20,
		}
		for ct, want := range sizes {
			def, cellErr := tables.Cell(ct)
			require.NoError(t, cellErr)
			assert.Len(t, def.BOM, want, "cell %s", ct)
		}
	})

	t.Run("silicon variants", func(t *testing.T) {
		nmc1, cellErr := tables.Cell(CellNMC1)
		require.NoError(t, cellErr)
		assert.True(t, nmc1.HasSiliconVariant())
		assert.Len(t, nmc1.SiliconDeltas, len(AllSiliconPcts))

		lfp, cellErr := tables.Cell(CellLFP)
		require.NoError(t, cellErr)
		assert.False(t, lfp.HasSiliconVariant())
	})

	t.Run("base impacts", func(t *testing.T) {
		nmc1, cellErr := tables.Cell(CellNMC1)
		require.NoError(t, cellErr)
		assert.InDelta(t, 68.85, nmc1.BaseImpact.CO2, 1e-9)
		assert.InDelta(t, 24.14, nmc1.BaseImpact.Water, 1e-9)

		// LFP folds the fixed silicon-free adjustment into its base.
		lfp, cellErr := tables.Cell(CellLFP)
		require.NoError(t, cellErr)
		assert.InDelta(t, 76.85, lfp.BaseImpact.CO2, 1e-9)
		assert.InDelta(t, 33.14, lfp.BaseImpact.Water, 1e-9)
	})

	t.Run("sourcing categories", func(t *testing.T) {
		assert.Len(t, tables.SourceCategories, 5)

		delta, ok := tables.SourceDelta("pCam Nickel", "Nickel sulfate hexahydrate from global average")
		require.True(t, ok)
		assert.InDelta(t, 13.25, delta.CO2, 1e-9)
		assert.InDelta(t, 0, delta.Water, 1e-9)

		// Negative water deltas are credits and must survive parsing.
		delta, ok = tables.SourceDelta("pCam Nickel",
			"Nickel sulfate produced via pyrometallurgy in China from nickel sulfide ore from China")
		require.True(t, ok)
		assert.InDelta(t, -6.55, delta.Water, 1e-9)

		_, ok = tables.SourceDelta("pCam Nickel", "no such source")
		assert.False(t, ok)
		_, ok = tables.SourceDelta("no such category", "anything")
		assert.False(t, ok)
	})

	t.Run("load is cached", func(t *testing.T) {
		again, loadErr := Load()
		require.NoError(t, loadErr)
		assert.Same(t, tables, again)
	})
}

func TestParseVersionGate(t *testing.T) {
	tests := []struct {
		name       string
		cellsJSON  string
		sourcesVer string
		wantErr    error
	}{
		{
			name:       "version mismatch between files",
			cellsJSON:  `{"schema_version":"1.0.0","cells":{}}`,
			sourcesVer: "1.1.0",
			wantErr:    ErrDatasetVersion,
		},
		{
			name:       "major version too new",
			cellsJSON:  `{"schema_version":"2.0.0","cells":{}}`,
			sourcesVer: "2.0.0",
			wantErr:    ErrDatasetVersion,
		},
		{
			name:       "unparsable version",
			cellsJSON:  `{"schema_version":"not-a-version","cells":{}}`,
			sourcesVer: "not-a-version",
			wantErr:    ErrDatasetVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := `{"schema_version":"` + tt.sourcesVer + `","categories":[]}`
			_, err := parse([]byte(tt.cellsJSON), []byte(sources))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseConsistencyChecks(t *testing.T) {
	t.Run("missing cell definition", func(t *testing.T) {
		cells := `{"schema_version":"1.0.0","cells":{"lfp":{"materials":[{"name":"Li","unit":"kg","qty_per_cell":0.3}],"base_impact_per_kwh":{"co2":1,"water":1}}}}`
		sources := `{"schema_version":"1.0.0","categories":[]}`
		_, err := parse([]byte(cells), []byte(sources))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDatasetCorrupt)
	})

	t.Run("incomplete silicon table", func(t *testing.T) {
		cells := `{"schema_version":"1.0.0","cells":{"nmc_cell_1":{"materials":[],"base_impact_per_kwh":{"co2":1,"water":1},"silicon_impact_per_kwh":{"3":{"co2":1,"water":1}}}}}`
		sources := `{"schema_version":"1.0.0","categories":[]}`
		_, err := parse([]byte(cells), []byte(sources))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDatasetCorrupt)
	})

	t.Run("negative BOM quantity", func(t *testing.T) {
		cells := `{"schema_version":"1.0.0","cells":{"lfp":{"materials":[{"name":"Li","unit":"kg","qty_per_cell":-1}],"base_impact_per_kwh":{"co2":1,"water":1}}}}`
		sources := `{"schema_version":"1.0.0","categories":[]}`
		_, err := parse([]byte(cells), []byte(sources))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDatasetCorrupt)
	})
}

func TestEnergyMixFormulas(t *testing.T) {
	t.Run("zero input yields zero for every mix", func(t *testing.T) {
		for _, mix := range AllEnergyMixes {
			f, err := FormulaFor(mix)
			require.NoError(t, err)
			assert.Zero(t, f.TonsCO2(0), "mix %s", mix)
			assert.Zero(t, f.TonsCO2(-5), "mix %s negative input", mix)
		}
	})

	t.Run("known value", func(t *testing.T) {
		f, err := FormulaFor(MixGridOnly)
		require.NoError(t, err)
		// a * 1^b == a
		assert.InDelta(t, 2777.40274, f.TonsCO2(1), 1e-6)
	})

	t.Run("monotonic in energy", func(t *testing.T) {
		for _, mix := range AllEnergyMixes {
			f, err := FormulaFor(mix)
			require.NoError(t, err)
			assert.Greater(t, f.TonsCO2(100), f.TonsCO2(10), "mix %s", mix)
		}
	})
}

func TestParsers(t *testing.T) {
	t.Run("sites", func(t *testing.T) {
		s, err := ParseSite("UK")
		require.NoError(t, err)
		assert.Equal(t, SiteUK, s)

		s, err = ParseSite(" india ")
		require.NoError(t, err)
		assert.Equal(t, SiteIndia, s)

		_, err = ParseSite("germany")
		assert.ErrorIs(t, err, ErrUnknownSite)
	})

	t.Run("cell types", func(t *testing.T) {
		ct, err := ParseCellType("NMC Cell 1")
		require.NoError(t, err)
		assert.Equal(t, CellNMC1, ct)

		ct, err = ParseCellType("nmc_cell_2")
		require.NoError(t, err)
		assert.Equal(t, CellNMC2, ct)

		_, err = ParseCellType("sodium_ion")
		assert.ErrorIs(t, err, ErrUnknownCellType)
	})

	t.Run("energy mixes", func(t *testing.T) {
		m, err := ParseEnergyMix("PPA:Grid (70:30)")
		require.NoError(t, err)
		assert.Equal(t, MixPPAGrid7030, m)

		m, err = ParseEnergyMix("grid_gas_30")
		require.NoError(t, err)
		assert.Equal(t, MixGridGas30, m)

		_, err = ParseEnergyMix("nuclear")
		assert.ErrorIs(t, err, ErrUnknownEnergyMix)
	})

	t.Run("silicon percentages", func(t *testing.T) {
		for _, valid := range []int{3, 5, 10, 15, 20} {
			pct, err := ParseSiliconPct(valid)
			require.NoError(t, err)
			assert.Equal(t, SiliconPct(valid), pct)
		}
		for _, invalid := range []int{0, 4, 25, -3} {
			_, err := ParseSiliconPct(invalid)
			assert.ErrorIs(t, err, ErrInvalidSiliconPct, "pct %d", invalid)
		}
	})
}

func TestSiteConstants(t *testing.T) {
	uk, err := ConstantsFor(SiteUK)
	require.NoError(t, err)
	assert.InDelta(t, 50, uk.MaxEnergyPerLineGWh, 1e-9)
	assert.InDelta(t, 300, uk.MaxCellsPerLine, 1e-9)
	assert.InDelta(t, 0.258, uk.PricePerKWhGBP(), 1e-9)
	assert.InDelta(t, 100, uk.DefaultPowerCapPct, 1e-9)

	india, err := ConstantsFor(SiteIndia)
	require.NoError(t, err)
	assert.InDelta(t, 70, india.MaxEnergyPerLineGWh, 1e-9)
	assert.InDelta(t, 7.38/105.0, india.PricePerKWhGBP(), 1e-9)
	assert.InDelta(t, 210, india.DefaultPowerCapPct, 1e-9)
}
