package algo

import (
	"container/heap"
	"time"

	"mapf-solver/internal/core"
)

// staState is a node in (cell, tick) space-time.
type staState struct {
	cell core.Cell
	t    int
}

// staNode is a priority-queue entry. Ordering matches §4.1's tie-break:
// lower f, then lower h, then lower t, then insertion order.
type staNode struct {
	state  staState
	g      int
	h      int
	f      int
	seq    int
	parent *staNode
	index  int
}

type staHeap []*staNode

func (h staHeap) Len() int { return len(h) }
func (h staHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	if a.state.t != b.state.t {
		return a.state.t < b.state.t
	}
	return a.seq < b.seq
}
func (h staHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *staHeap) Push(x any) {
	n := x.(*staNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *staHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// STAOptions parameterizes a single space-time A* call.
type STAOptions struct {
	Agent             core.AgentID
	Reservation       *core.ReservationTable // optional
	Constraints       *core.ConstraintSet    // optional, scoped to Agent
	MaxTicks          int                    // 0 selects the §4.1 default
	RecordExploration bool
	Caps              Caps
	// budget, when set, is shared across several STA* calls from the same
	// caller (e.g. CBS's per-branch low-level replans) so a later call
	// inherits however much of the wall-time window is already spent
	// instead of getting its own fresh Caps.MaxWallTime allowance. Callers
	// outside this package always leave it nil and get a fresh budget
	// from Caps, as before.
	budget *budget
}

// STAResult is what a single STA* call reports, including the metrics
// §4.1 asks STA* to expose.
type STAResult struct {
	Path         core.Path
	Found        bool
	TimedOut     bool
	Expansions   int
	PeakOpenSize int
	Elapsed      time.Duration
	// Exploration lists every cell pushed onto the open set, in push
	// order, when opts.RecordExploration is set (§6 exploration_orders).
	Exploration []core.Cell
}

// defaultMaxTicks implements §4.1's "(N² · k) for some small constant,
// but always at least the Manhattan distance plus a pad".
func defaultMaxTicks(g *core.Grid, start, goal core.Cell) int {
	const k = 2
	const pad = 4
	byArea := g.Size * g.Size * k
	byDistance := start.Manhattan(goal) + pad
	if byDistance > byArea {
		return byDistance
	}
	return byArea
}

// SpaceTimeAStar finds a single agent's shortest path from start to goal
// in (row, col, tick) space, honoring an optional reservation table
// and/or constraint set (§4.1).
func SpaceTimeAStar(g *core.Grid, start, goal core.Cell, opts STAOptions) STAResult {
	startedAt := time.Now()
	maxTicks := opts.MaxTicks
	if maxTicks <= 0 {
		maxTicks = defaultMaxTicks(g, start, goal)
	}

	seq := 0
	open := &staHeap{}
	heap.Init(open)
	startNode := &staNode{
		state: staState{cell: start, t: 0},
		g:     0,
		h:     start.Manhattan(goal),
		seq:   seq,
	}
	startNode.f = startNode.g + startNode.h
	heap.Push(open, startNode)

	closed := make(map[staState]bool)
	result := STAResult{}
	if opts.RecordExploration {
		result.Exploration = append(result.Exploration, start)
	}

	bud := opts.budget
	if bud == nil {
		bud = newBudget(opts.Caps)
	}
	peak := 1

	for open.Len() > 0 {
		if len(*open) > peak {
			peak = len(*open)
		}

		current := heap.Pop(open).(*staNode)
		if closed[current.state] {
			continue
		}
		closed[current.state] = true
		result.Expansions++

		if result.Expansions%expansionCheckInterval == 0 && bud.tick() {
			result.TimedOut = true
			break
		}

		if current.state.cell == goal {
			if opts.Constraints.MaxVertexTick(opts.Agent, goal) <= current.state.t {
				result.Path = reconstructSTA(current)
				result.Found = true
				result.PeakOpenSize = peak
				result.Elapsed = time.Since(startedAt)
				return result
			}
			// A future constraint forbids parking here yet; keep
			// searching instead of terminating (§4.1 Termination).
		}

		if current.state.t >= maxTicks {
			continue
		}

		for _, next := range g.Actions(current.state.cell) {
			nt := current.state.t + 1
			if opts.Constraints.VertexBlocked(opts.Agent, next, nt) {
				continue
			}
			if opts.Constraints.EdgeBlocked(opts.Agent, current.state.cell, next, current.state.t) {
				continue
			}
			if opts.Reservation != nil {
				if opts.Reservation.IsVertexReserved(next, nt) {
					continue
				}
				if opts.Reservation.IsEdgeReserved(next, current.state.cell, current.state.t) {
					continue
				}
			}

			nextState := staState{cell: next, t: nt}
			if closed[nextState] {
				continue
			}

			seq++
			node := &staNode{
				state:  nextState,
				g:      nt,
				h:      next.Manhattan(goal),
				parent: current,
				seq:    seq,
			}
			node.f = node.g + node.h
			heap.Push(open, node)
			if opts.RecordExploration {
				result.Exploration = append(result.Exploration, next)
			}
		}
	}

	result.PeakOpenSize = peak
	result.Elapsed = time.Since(startedAt)
	return result
}

func reconstructSTA(n *staNode) core.Path {
	var path core.Path
	for cur := n; cur != nil; cur = cur.parent {
		path = append(core.Path{cur.state.cell}, path...)
	}
	return path
}
