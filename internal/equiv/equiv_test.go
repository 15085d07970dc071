package equiv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTons(t *testing.T) {
	t.Run("typical plan total", func(t *testing.T) {
		out := FromTons(150_000) // 150 kt CO2
		require.False(t, out.IsEmpty)
		assert.InDelta(t, 150_000_000, out.InputKg, 1e-6)

		require.Len(t, out.Results, 3)
		assert.InDelta(t, 150_000_000/0.192, out.Results[0].Value, 1e-3)
		assert.Equal(t, "miles driven", out.Results[0].Label)
		assert.InDelta(t, 2_500_000, out.Results[1].Value, 1e-6)
		assert.Contains(t, out.DisplayText, "Equivalent to driving")
	})

	t.Run("below threshold is empty", func(t *testing.T) {
		out := FromTons(0.0001) // 0.1 kg
		assert.True(t, out.IsEmpty)
		assert.Empty(t, out.Results)
	})

	t.Run("zero and non-finite are empty", func(t *testing.T) {
		assert.True(t, FromTons(0).IsEmpty)
		assert.True(t, FromTons(math.NaN()).IsEmpty)
		assert.True(t, FromTons(math.Inf(1)).IsEmpty)
	})
}

func TestFormatLarge(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{18248, "18,248"},
		{999_999, "999,999"},
		{1_500_000, "1.5 million"},
		{781_250_000, "781.2 million"},
		{2_300_000_000, "2.3 billion"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLarge(tt.value), "value %g", tt.value)
	}
}
