package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapf-solver/internal/algo"
	"mapf-solver/internal/core"
)

const sampleYAML = `
grid:
  size: 5
  blocked:
    - "1,1"
    - "2,2"
agents:
  - id: 0
    start: [0, 0]
    goal: [0, 4]
  - id: 1
    start: [0, 4]
    goal: [0, 0]
algorithm: cooperative
priority_policy: distance_first
max_time_seconds: 5
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndBuild(t *testing.T) {
	path := writeScenario(t, sampleYAML)
	f, err := Load(path)
	require.NoError(t, err)

	req, err := f.Build("independent", "id_order", 0)
	require.NoError(t, err)

	assert.Equal(t, 5, req.Grid.Size)
	assert.False(t, req.Grid.Passable(core.Cell{R: 1, C: 1}))
	assert.Len(t, req.Agents, 2)
	assert.Equal(t, algo.AlgoCooperative, req.Algorithm)
	assert.Equal(t, algo.DistanceFirst, req.PriorityPolicy)
}

func TestBuild_FallsBackToDefaults(t *testing.T) {
	path := writeScenario(t, `
grid:
  size: 3
agents:
  - id: 0
    start: [0, 0]
    goal: [0, 0]
`)
	f, err := Load(path)
	require.NoError(t, err)

	req, err := f.Build("cbs", "id_order", 0)
	require.NoError(t, err)
	assert.Equal(t, algo.AlgoCBS, req.Algorithm)
	assert.Equal(t, algo.IDOrder, req.PriorityPolicy)
}

func TestBuild_RejectsOutOfBoundsBlockedCell(t *testing.T) {
	path := writeScenario(t, `
grid:
  size: 3
  blocked:
    - "9,9"
agents:
  - id: 0
    start: [0, 0]
    goal: [0, 0]
`)
	f, err := Load(path)
	require.NoError(t, err)

	_, err = f.Build("cbs", "id_order", 0)
	assert.Error(t, err)
}

func TestBuild_RejectsGridLargerThanMax(t *testing.T) {
	path := writeScenario(t, sampleYAML)
	f, err := Load(path)
	require.NoError(t, err)

	_, err = f.Build("cbs", "id_order", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
