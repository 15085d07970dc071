package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceCells(t *testing.T) {
	out, _, err := execute(t, "reference", "cells")
	require.NoError(t, err)

	assert.Contains(t, out, "NMC Cell 1")
	assert.Contains(t, out, "NMC Cell 2")
	assert.Contains(t, out, "LFP")
	assert.Contains(t, out, "68.85")
	assert.Contains(t, out, "76.85")
	// LFP has no silicon variants.
	assert.Contains(t, out, "-")
}

func TestReferenceMixes(t *testing.T) {
	out, _, err := execute(t, "reference", "mixes")
	require.NoError(t, err)

	assert.Contains(t, out, "100% Grid")
	assert.Contains(t, out, "PPA:Grid (70:30)")
	assert.Contains(t, out, "Grid+Gas (30% demand)")
}

func TestReferenceSources(t *testing.T) {
	out, _, err := execute(t, "reference", "sources")
	require.NoError(t, err)

	assert.Contains(t, out, "pCam Nickel (13 options)")
	assert.Contains(t, out, "Synthetic Graphite (6 options)")
	assert.Contains(t, out, "pCam Manganese (11 options)")
	assert.Contains(t, out, "CAM Lithium (7 options)")
	assert.Contains(t, out, "pCam Cobalt (3 options)")
}

func TestReferenceSites(t *testing.T) {
	out, _, err := execute(t, "reference", "sites")
	require.NoError(t, err)

	assert.Contains(t, out, "UK")
	assert.Contains(t, out, "India")
	assert.Contains(t, out, "GBP")
	assert.Contains(t, out, "INR")
	assert.Contains(t, out, "0.258")
	assert.Contains(t, out, "7.380")
}
