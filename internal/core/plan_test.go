package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_CostAndAt(t *testing.T) {
	p := Path{{0, 0}, {0, 1}, {0, 2}}
	assert.Equal(t, 2, p.Cost())
	assert.Equal(t, Cell{0, 0}, p.At(0))
	assert.Equal(t, Cell{0, 2}, p.At(2))
	assert.Equal(t, Cell{0, 2}, p.At(5), "agent parks on its goal past path length")
}

func TestPath_TrivialStartEqualsGoal(t *testing.T) {
	p := Path{{2, 2}}
	assert.Equal(t, 0, p.Cost())
	assert.Equal(t, Cell{2, 2}, p.At(3))
}

func TestPlan_SumOfCostsAndMakespan(t *testing.T) {
	plan := Plan{
		0: {{0, 0}, {0, 1}, {0, 2}},
		1: {{1, 0}, {1, 1}},
	}
	assert.Equal(t, 3, plan.SumOfCosts())
	assert.Equal(t, 2, plan.Makespan())
}

func TestPlan_Complete(t *testing.T) {
	plan := Plan{0: {{0, 0}}}
	assert.True(t, plan.Complete([]AgentID{0}))
	assert.False(t, plan.Complete([]AgentID{0, 1}))
}
