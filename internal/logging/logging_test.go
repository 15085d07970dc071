package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json format emits structured events", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: "debug", Format: "json", Output: &buf})

		logger.Info().Str("key", "value").Msg("hello")

		var event map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
		assert.Equal(t, "hello", event["message"])
		assert.Equal(t, "value", event["key"])
		assert.Equal(t, "info", event["level"])
	})

	t.Run("level filters lower events", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: "warn", Format: "json", Output: &buf})

		logger.Info().Msg("dropped")
		assert.Zero(t, buf.Len())

		logger.Warn().Msg("kept")
		assert.NotZero(t, buf.Len())
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: "nonsense", Format: "json", Output: &buf})

		logger.Debug().Msg("dropped")
		assert.Zero(t, buf.Len())

		logger.Info().Msg("kept")
		assert.NotZero(t, buf.Len())
	})
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: "debug", Format: "json", Output: &buf})

	tagged := ComponentLogger(base, "engine")
	tagged.Info().Msg("tagged")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "engine", event["component"])
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")
}

func TestFromContextWithoutLogger(t *testing.T) {
	// Must not panic and must not write anywhere.
	noCtx := FromContext(context.Background())
	noCtx.Info().Msg("dropped")
	nilCtx := FromContext(nil) //nolint:staticcheck // nil ctx is the case under test
	nilCtx.Info().Msg("dropped")
}
