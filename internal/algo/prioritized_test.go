package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapf-solver/internal/core"
)

func TestCooperative_HeadOnCorridorResolvesViaReservation(t *testing.T) {
	g := emptyGrid(t, 5)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{R: 0, C: 0}, Goal: core.Cell{R: 0, C: 4}},
		{ID: 1, Start: core.Cell{R: 0, C: 4}, Goal: core.Cell{R: 0, C: 0}},
	}

	res := Cooperative(g, agents, DistanceFirst, Caps{})
	require.True(t, res.Success)
	assert.Empty(t, res.Conflicts)
	assert.True(t, res.CollisionFreeCheck)
}

func TestCooperative_EdgeSwapAvoided(t *testing.T) {
	g := emptyGrid(t, 2)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{R: 0, C: 0}, Goal: core.Cell{R: 0, C: 1}},
		{ID: 1, Start: core.Cell{R: 0, C: 1}, Goal: core.Cell{R: 0, C: 0}},
	}

	res := Cooperative(g, agents, DistanceFirst, Caps{})
	require.True(t, res.Success)
	assert.Empty(t, res.Conflicts)
}

func TestCooperative_IDOrderPlansAscending(t *testing.T) {
	g := emptyGrid(t, 5)
	agents := []core.Agent{
		{ID: 1, Start: core.Cell{R: 0, C: 0}, Goal: core.Cell{R: 0, C: 2}},
		{ID: 0, Start: core.Cell{R: 1, C: 0}, Goal: core.Cell{R: 1, C: 2}},
	}

	ordered := priorityOrder(g, agents, IDOrder)
	require.Len(t, ordered, 2)
	assert.Equal(t, core.AgentID(0), ordered[0].ID)
	assert.Equal(t, core.AgentID(1), ordered[1].ID)
}

// TestCollisionFreeInvariant_CatchesMisseededReservation forces the exact
// bug class §7 kind 4 names: a cooperative-style plan that reports two
// agents' paths as individually found but never actually committed to the
// shared reservation table, so each agent plans as if alone and collides.
// This replicates Cooperative's per-agent loop by hand, skipping the
// reservation.Commit step, to prove checkCollisionFreeInvariant actually
// catches the resulting Success=true-with-conflicts Result.
func TestCollisionFreeInvariant_CatchesMisseededReservation(t *testing.T) {
	g := emptyGrid(t, 3)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{R: 0, C: 0}, Goal: core.Cell{R: 0, C: 2}},
		{ID: 1, Start: core.Cell{R: 0, C: 2}, Goal: core.Cell{R: 0, C: 0}},
	}

	reservation := core.NewReservationTable()
	plan := make(core.Plan, len(agents))
	for _, a := range agents {
		sta := SpaceTimeAStar(g, a.Start, a.Goal, STAOptions{Agent: a.ID, Reservation: reservation})
		require.True(t, sta.Found)
		plan[a.ID] = sta.Path
		// Deliberately skip reservation.Commit(sta.Path): a mis-seeded
		// table that never records what it just planned, so the next
		// agent plans through the same cells unaware of them.
	}

	conflicts := core.DetectConflicts(plan)
	require.NotEmpty(t, conflicts, "two agents swapping along an uncommitted reservation table must collide head-on")

	res := Result{
		Plan:       plan,
		Conflicts:  conflicts,
		Success:    true,
		SumOfCosts: plan.SumOfCosts(),
		Makespan:   plan.Makespan(),
	}

	err := checkCollisionFreeInvariant(AlgoCooperative, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInternal)
}

func TestCooperative_DistanceFirstOrdersDescendingWithIDTieBreak(t *testing.T) {
	g := emptyGrid(t, 5)
	agents := []core.Agent{
		{ID: 2, Start: core.Cell{R: 2, C: 0}, Goal: core.Cell{R: 2, C: 1}},
		{ID: 0, Start: core.Cell{R: 0, C: 0}, Goal: core.Cell{R: 0, C: 1}},
		{ID: 1, Start: core.Cell{R: 1, C: 0}, Goal: core.Cell{R: 1, C: 4}},
	}

	ordered := priorityOrder(g, agents, DistanceFirst)
	require.Len(t, ordered, 3)
	assert.Equal(t, core.AgentID(1), ordered[0].ID, "longer start-goal distance plans first")
	assert.Equal(t, core.AgentID(0), ordered[1].ID, "equal distances fall back to ascending id")
	assert.Equal(t, core.AgentID(2), ordered[2].ID)
}
