package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/refuelsim/refuelsim/sim"
)

func TestRunReplications_ReportsEveryRunAndSummary(t *testing.T) {
	// GIVEN the default scenario and three requested replications
	var buf bytes.Buffer
	cfg := sim.DefaultScenarioConfig()

	// WHEN the replication driver runs
	require.NoError(t, runReplications(&buf, cfg, 3))
	out := buf.String()

	// THEN one row per derived seed appears, plus the aggregate block
	for _, seed := range []string{"42", "43", "44"} {
		assert.Contains(t, out, seed)
	}
	assert.Contains(t, out, "Across 3 replications")
	assert.Contains(t, out, "vehicles in queue (Lq)")
	assert.Contains(t, out, "time in system (W)")

	// header + 3 data rows before the summary
	table := strings.Split(out, "\nAcross")[0]
	assert.Len(t, strings.Split(strings.TrimSpace(table), "\n"), 4)
}

func TestRunReplications_SameBaseSeedReproducesReport(t *testing.T) {
	// GIVEN two drivers over the identical configuration
	var first, second bytes.Buffer
	cfg := sim.DefaultScenarioConfig()

	require.NoError(t, runReplications(&first, cfg, 2))
	require.NoError(t, runReplications(&second, cfg, 2))

	// THEN the reports match byte for byte
	assert.Equal(t, first.String(), second.String())
}

func TestRunReplications_RejectsNonPositiveCount(t *testing.T) {
	var buf bytes.Buffer
	err := runReplications(&buf, sim.DefaultScenarioConfig(), 0)
	assert.Error(t, err)
}

func TestRunReplications_InvalidScenarioSurfacesError(t *testing.T) {
	var buf bytes.Buffer
	cfg := sim.DefaultScenarioConfig()
	cfg.Pumps = 0
	assert.Error(t, runReplications(&buf, cfg, 2))
}
