// Package core defines the grid/agent/plan/conflict/constraint data model
// shared by every MAPF planner.
package core

import "fmt"

// Cell is a 0-based, row-major grid coordinate.
type Cell struct {
	R, C int
}

// Manhattan returns the L1 distance between two cells.
func (a Cell) Manhattan(b Cell) int {
	return absInt(a.R-b.R) + absInt(a.C-b.C)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Grid is a square, 4-connected passability map. blocks[r][c] == true means
// (r, c) is impassable.
type Grid struct {
	Size   int
	blocks [][]bool
}

// NewGrid validates and wraps a size x size passability matrix.
func NewGrid(size int, blocks [][]bool) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: grid size %d must be positive", ErrInvalidInput, size)
	}
	if len(blocks) != size {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidInput, size, len(blocks))
	}
	cp := make([][]bool, size)
	for r, row := range blocks {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, r, len(row), size)
		}
		cp[r] = append([]bool(nil), row...)
	}
	return &Grid{Size: size, blocks: cp}, nil
}

// InBounds reports whether a cell lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.R >= 0 && c.R < g.Size && c.C >= 0 && c.C < g.Size
}

// Passable reports whether a cell is in bounds and not blocked.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && !g.blocks[c.R][c.C]
}

// Neighbors4 returns the four axis-aligned neighbors of c, without
// filtering for passability or bounds.
func Neighbors4(c Cell) [4]Cell {
	return [4]Cell{
		{R: c.R - 1, C: c.C},
		{R: c.R + 1, C: c.C},
		{R: c.R, C: c.C - 1},
		{R: c.R, C: c.C + 1},
	}
}

// Actions lists a cell's legal successors (4-connected moves plus wait),
// in a fixed deterministic order: N, S, W, E, Wait.
func (g *Grid) Actions(c Cell) []Cell {
	out := make([]Cell, 0, 5)
	for _, n := range Neighbors4(c) {
		if g.Passable(n) {
			out = append(out, n)
		}
	}
	out = append(out, c) // wait
	return out
}
