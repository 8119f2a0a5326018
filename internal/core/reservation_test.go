package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationTable_CommitReservesPathAndParking(t *testing.T) {
	rt := NewReservationTable()
	rt.Commit(Path{{0, 0}, {0, 1}, {0, 2}})

	assert.True(t, rt.IsVertexReserved(Cell{0, 1}, 1))
	assert.False(t, rt.IsVertexReserved(Cell{0, 1}, 0))
	assert.True(t, rt.IsEdgeReserved(Cell{0, 0}, Cell{0, 1}, 0))
	assert.False(t, rt.IsEdgeReserved(Cell{0, 1}, Cell{0, 0}, 0))

	// Goal parking: (0,2) is reserved forever from arrival tick 2 onward.
	assert.True(t, rt.IsVertexReserved(Cell{0, 2}, 2))
	assert.True(t, rt.IsVertexReserved(Cell{0, 2}, 1000))
	assert.False(t, rt.IsVertexReserved(Cell{0, 2}, 1))
}

func TestReservationTable_OpposingEdgeDetectsSwap(t *testing.T) {
	rt := NewReservationTable()
	rt.ReserveEdge(Cell{0, 1}, Cell{0, 0}, 0)
	assert.True(t, rt.IsEdgeReserved(Cell{0, 1}, Cell{0, 0}, 0))
	assert.False(t, rt.IsEdgeReserved(Cell{0, 0}, Cell{0, 1}, 0))
}

func TestConstraintSet_AddIsPersistent(t *testing.T) {
	var base *ConstraintSet
	child := base.Add(Constraint{Agent: 0, Cell: Cell{1, 1}, Tick: 3})
	grandchild := child.Add(Constraint{Agent: 1, Cell: Cell{2, 2}, Tick: 4})

	assert.False(t, base.VertexBlocked(0, Cell{1, 1}, 3), "parent must be unaffected by child extension")
	assert.True(t, child.VertexBlocked(0, Cell{1, 1}, 3))
	assert.True(t, grandchild.VertexBlocked(0, Cell{1, 1}, 3))
	assert.True(t, grandchild.VertexBlocked(1, Cell{2, 2}, 4))
	assert.False(t, child.VertexBlocked(1, Cell{2, 2}, 4))
}

func TestConstraintSet_MaxVertexTick(t *testing.T) {
	var s *ConstraintSet
	s = s.Add(Constraint{Agent: 0, Cell: Cell{0, 0}, Tick: 2})
	s = s.Add(Constraint{Agent: 0, Cell: Cell{0, 0}, Tick: 7})
	s = s.Add(Constraint{Agent: 1, Cell: Cell{0, 0}, Tick: 9})

	assert.Equal(t, 7, s.MaxVertexTick(0, Cell{0, 0}))
	assert.Equal(t, -1, s.MaxVertexTick(0, Cell{1, 1}))
}
