package algo

import (
	"container/heap"
	"fmt"
	"time"

	"mapf-solver/internal/core"
)

// MIP solves the time-expanded 0/1 formulation of §4.5 via a bounded
// branch-and-bound search over the joint state space, rather than an
// external LP/ILP solver: no suitable solver library is available in this
// module's dependency surface (see DESIGN.md). The joint state at tick t
// is one cell per agent; a transition is exactly the simultaneous
// assignment x[i,r,c,t+1] the ILP would assign, and the same vertex
// collision / edge-swap / flow-conservation constraints apply. The
// objective (minimize ticks spent off-goal, summed over agents) is
// exactly SOC once an agent is required to stay once it reaches its
// goal.
//
// Treated as an optional oracle (§9): small instances only. Horizon
// starts at Σ Manhattan distances plus a pad and doubles on infeasibility
// up to mipMaxDoublings before giving up.
const mipMaxDoublings = 3

// ErrMIPUnavailable is returned by the façade (not MIP itself) when the
// caller asks for algorithm "mip" in a build where the backend has been
// configured unavailable (§9 "MIP as oracle").
var ErrMIPUnavailable = fmt.Errorf("%w: mip backend unavailable", core.ErrInternal)

type jointNode struct {
	cells  []core.Cell
	g      int
	h      int
	f      int
	seq    int
	parent *jointNode
	index  int
}

type jointHeap []*jointNode

func (h jointHeap) Len() int { return len(h) }
func (h jointHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}
func (h jointHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *jointHeap) Push(x any) {
	n := x.(*jointNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *jointHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

func jointKey(cells []core.Cell) string {
	s := ""
	for _, c := range cells {
		s += fmt.Sprintf("%d,%d|", c.R, c.C)
	}
	return s
}

func jointHeuristic(cells []core.Cell, goals []core.Cell) int {
	h := 0
	for i, c := range cells {
		h += c.Manhattan(goals[i])
	}
	return h
}

func jointDone(cells, goals []core.Cell) bool {
	for i, c := range cells {
		if c != goals[i] {
			return false
		}
	}
	return true
}

// expandJoint enumerates every collision-free simultaneous assignment of
// next cells, one per agent: an agent already at its goal is forced to
// stay (§4.5 "once at goal, stay"); others choose among grid.Actions.
// Partial vertex collisions are pruned as agents are assigned in order;
// edge swaps are checked once a full assignment is built.
func expandJoint(g *core.Grid, prev, goals []core.Cell) [][]core.Cell {
	n := len(prev)
	options := make([][]core.Cell, n)
	for i, c := range prev {
		if c == goals[i] {
			options[i] = []core.Cell{c}
		} else {
			options[i] = g.Actions(c)
		}
	}

	var out [][]core.Cell
	chosen := make([]core.Cell, n)
	used := make(map[core.Cell]bool, n)

	var recurse func(idx int)
	recurse = func(idx int) {
		if idx == n {
			if !hasEdgeSwap(prev, chosen) {
				cp := make([]core.Cell, n)
				copy(cp, chosen)
				out = append(out, cp)
			}
			return
		}
		for _, cand := range options[idx] {
			if used[cand] {
				continue
			}
			used[cand] = true
			chosen[idx] = cand
			recurse(idx + 1)
			delete(used, cand)
		}
	}
	recurse(0)
	return out
}

func hasEdgeSwap(prev, next []core.Cell) bool {
	for i := 0; i < len(prev); i++ {
		if prev[i] == next[i] {
			continue
		}
		for j := i + 1; j < len(prev); j++ {
			if prev[j] == next[j] {
				continue
			}
			if prev[i] == next[j] && prev[j] == next[i] {
				return true
			}
		}
	}
	return false
}

// jointAStar runs one bounded search attempt at a fixed horizon. bound is
// the best (largest) f value popped off the open set so far: since f is
// admissible and non-decreasing across A* pops, it is a valid lower bound
// on the cost of any solution still reachable from the current frontier.
func jointAStar(g *core.Grid, starts, goals []core.Cell, maxTicks int, caps Caps) (path [][]core.Cell, found, timedOut bool, expansions, bound int) {
	bud := newBudget(caps)
	seq := 0
	open := &jointHeap{}
	heap.Init(open)
	root := &jointNode{cells: starts, h: jointHeuristic(starts, goals)}
	root.f = root.g + root.h
	heap.Push(open, root)

	closed := make(map[string]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*jointNode)
		key := jointKey(cur.cells)
		if closed[key] {
			continue
		}
		closed[key] = true
		expansions++
		if cur.f > bound {
			bound = cur.f
		}

		if expansions%expansionCheckInterval == 0 && bud.tick() {
			return nil, false, true, expansions, bound
		}

		if jointDone(cur.cells, goals) {
			return reconstructJoint(cur), true, false, expansions, cur.f
		}

		// Nodes whose accumulated cost g has reached maxTicks are not
		// expanded; every tick before completion adds at least 1 to g, so
		// this also keeps the tick count within maxTicks.
		if cur.g >= maxTicks {
			continue
		}

		for _, next := range expandJoint(g, cur.cells, goals) {
			nextKey := jointKey(next)
			if closed[nextKey] {
				continue
			}
			stepCost := 0
			for i, c := range cur.cells {
				if c != goals[i] {
					stepCost++
				}
			}
			seq++
			node := &jointNode{
				cells:  next,
				g:      cur.g + stepCost,
				h:      jointHeuristic(next, goals),
				parent: cur,
				seq:    seq,
			}
			node.f = node.g + node.h
			heap.Push(open, node)
		}
	}

	return nil, false, false, expansions, bound
}

func reconstructJoint(n *jointNode) [][]core.Cell {
	var steps [][]core.Cell
	for cur := n; cur != nil; cur = cur.parent {
		steps = append([][]core.Cell{cur.cells}, steps...)
	}
	return steps
}

// MIP attempts an exact time-expanded solve, doubling the horizon on
// infeasibility up to mipMaxDoublings (§4.5).
func MIP(g *core.Grid, agents []core.Agent, caps Caps) Result {
	started := time.Now()

	starts := make([]core.Cell, len(agents))
	goals := make([]core.Cell, len(agents))
	sumManhattan := 0
	for i, a := range agents {
		starts[i] = a.Start
		goals[i] = a.Goal
		sumManhattan += a.Start.Manhattan(a.Goal)
	}

	maxTicks := sumManhattan + 4*len(agents)
	exploredSize := 0
	bestBound := 0

	doublings := mipMaxDoublings
	if caps.MaxMIPDoublings > 0 {
		doublings = caps.MaxMIPDoublings
	}

	for attempt := 0; attempt <= doublings; attempt++ {
		steps, found, timedOut, expansions, bound := jointAStar(g, starts, goals, maxTicks, caps)
		exploredSize += expansions
		if bound > bestBound {
			bestBound = bound
		}

		if timedOut {
			return Result{Success: false, ExploredSize: exploredSize, TimeTaken: time.Since(started), Bound: bestBound}
		}
		if found {
			plan := jointStepsToPlan(agents, steps)
			soc := plan.SumOfCosts()
			return Result{
				Plan:               plan,
				Conflicts:          nil,
				Success:            true,
				SumOfCosts:         soc,
				Makespan:           plan.Makespan(),
				ExploredSize:       exploredSize,
				TimeTaken:          time.Since(started),
				CollisionFreeCheck: true,
				Optimal:            true,
				Bound:              soc,
			}
		}
		maxTicks *= 2
	}

	return Result{Success: false, ExploredSize: exploredSize, TimeTaken: time.Since(started), Bound: bestBound}
}

func jointStepsToPlan(agents []core.Agent, steps [][]core.Cell) core.Plan {
	plan := make(core.Plan, len(agents))
	for i, a := range agents {
		// An agent stays on its goal once it arrives, so its path ends at
		// the first tick of that final stretch.
		end := len(steps) - 1
		for end > 0 && steps[end-1][i] == a.Goal {
			end--
		}
		path := make(core.Path, end+1)
		for t := 0; t <= end; t++ {
			path[t] = steps[t][i]
		}
		plan[a.ID] = path
	}
	return plan
}
