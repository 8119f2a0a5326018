package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyBlocks(n int) [][]bool {
	b := make([][]bool, n)
	for i := range b {
		b[i] = make([]bool, n)
	}
	return b
}

func TestNewGrid_RejectsBadShape(t *testing.T) {
	_, err := NewGrid(3, [][]bool{{false, false}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGrid_PassableAndBounds(t *testing.T) {
	blocks := emptyBlocks(3)
	blocks[1][1] = true
	g, err := NewGrid(3, blocks)
	require.NoError(t, err)

	assert.True(t, g.Passable(Cell{0, 0}))
	assert.False(t, g.Passable(Cell{1, 1}))
	assert.False(t, g.Passable(Cell{3, 0}))
	assert.False(t, g.InBounds(Cell{-1, 0}))
}

func TestGrid_ActionsExcludesBlocksAndOutOfBounds(t *testing.T) {
	blocks := emptyBlocks(3)
	blocks[0][1] = true
	g, err := NewGrid(3, blocks)
	require.NoError(t, err)

	acts := g.Actions(Cell{0, 0})
	// Neighbors of (0,0): (-1,0) oob, (1,0) ok, (0,-1) oob, (0,1) blocked, plus wait.
	assert.ElementsMatch(t, []Cell{{1, 0}, {0, 0}}, acts)
}

func TestNewGrid_CopiesInput(t *testing.T) {
	blocks := emptyBlocks(2)
	g, err := NewGrid(2, blocks)
	require.NoError(t, err)
	blocks[0][0] = true
	assert.True(t, g.Passable(Cell{0, 0}), "grid must not alias caller's slice")
}
