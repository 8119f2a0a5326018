package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapf-solver/internal/core"
)

func TestIndependent_HeadOnCorridorSucceedsButReportsConflict(t *testing.T) {
	g := emptyGrid(t, 5)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{R: 0, C: 0}, Goal: core.Cell{R: 0, C: 4}},
		{ID: 1, Start: core.Cell{R: 0, C: 4}, Goal: core.Cell{R: 0, C: 0}},
	}

	res := Independent(g, agents, Caps{})
	require.True(t, res.Success, "independent planner does not fail on conflicts (§9)")
	assert.False(t, res.CollisionFreeCheck)
	assert.NotEmpty(t, res.Conflicts, "head-on corridor must surface a conflict")
}

func TestIndependent_UnreachableGoalFailsThatAgentOnly(t *testing.T) {
	blocks := [][]bool{
		{false, false, false},
		{false, false, false},
		{false, false, false},
	}
	blocks[0][1] = true
	blocks[1][0] = true
	blocks[1][2] = true
	blocks[2][1] = true
	g, err := core.NewGrid(3, blocks)
	require.NoError(t, err)

	// The ring around (1,1) also walls off every corner, so agent 1 is
	// given a goal it already stands on.
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{R: 0, C: 0}, Goal: core.Cell{R: 1, C: 1}},
		{ID: 1, Start: core.Cell{R: 2, C: 0}, Goal: core.Cell{R: 2, C: 0}},
	}
	res := Independent(g, agents, Caps{})
	assert.False(t, res.Success)
	assert.Nil(t, res.Plan[0])
	assert.NotNil(t, res.Plan[1])
}
