package algo

import (
	"container/heap"
	"time"

	"mapf-solver/internal/core"
)

// cbsNode is a constraint-tree node (§4.4).
type cbsNode struct {
	constraints  *core.ConstraintSet
	plan         core.Plan
	cost         int
	numConflicts int
	seq          int
	index        int
}

type cbsHeap []*cbsNode

func (h cbsHeap) Len() int { return len(h) }
func (h cbsHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.numConflicts != b.numConflicts {
		return a.numConflicts < b.numConflicts
	}
	return a.seq < b.seq
}
func (h cbsHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *cbsHeap) Push(x any) {
	n := x.(*cbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *cbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// CBS runs Conflict-Based Search: best-first over the constraint tree,
// branching on the earliest conflict, with STA* as the low-level planner
// (§4.4). On cap breach it returns the best plan found so far with
// Success = false.
func CBS(g *core.Grid, agents []core.Agent, caps Caps) Result {
	started := time.Now()
	bud := newBudget(caps)
	exploredSize := 0

	root := &cbsNode{plan: make(core.Plan, len(agents))}
	for _, a := range agents {
		sta := SpaceTimeAStar(g, a.Start, a.Goal, STAOptions{Agent: a.ID, Caps: caps, budget: bud})
		exploredSize += sta.Expansions
		if !sta.Found {
			// Unconstrained failure: no branching can recover this
			// agent, so the whole instance has no solution (§7 NoSolution).
			return Result{
				Plan:         root.plan,
				Conflicts:    nil,
				Success:      false,
				SumOfCosts:   0,
				Makespan:     0,
				ExploredSize: exploredSize,
				TimeTaken:    time.Since(started),
			}
		}
		root.plan[a.ID] = sta.Path
	}
	root.cost = root.plan.SumOfCosts()
	root.numConflicts = len(core.DetectConflicts(root.plan))

	open := &cbsHeap{}
	heap.Init(open)
	heap.Push(open, root)
	seq := 0

	var bestSoFar *cbsNode

	for open.Len() > 0 {
		node := heap.Pop(open).(*cbsNode)
		if bestSoFar == nil || node.numConflicts < bestSoFar.numConflicts {
			bestSoFar = node
		}

		if bud.exceeded() {
			return timedOutCBSResult(bestSoFar, exploredSize, started)
		}

		conflicts := core.DetectConflicts(node.plan)
		if len(conflicts) == 0 {
			return Result{
				Plan:               node.plan,
				Conflicts:          nil,
				Success:            true,
				SumOfCosts:         node.plan.SumOfCosts(),
				Makespan:           node.plan.Makespan(),
				ExploredSize:       exploredSize,
				TimeTaken:          time.Since(started),
				CollisionFreeCheck: true,
			}
		}

		conflict := core.FirstBranchConflict(conflicts)
		for _, childConstraint := range childConstraints(*conflict) {
			agentID := childConstraint.Agent
			extended := node.constraints.Add(childConstraint)

			agent := findAgent(agents, agentID)
			sta := SpaceTimeAStar(g, agent.Start, agent.Goal, STAOptions{
				Agent:       agentID,
				Constraints: extended,
				Caps:        caps,
				budget:      bud,
			})
			exploredSize += sta.Expansions
			if bud.tick() {
				return timedOutCBSResult(bestSoFar, exploredSize, started)
			}
			if !sta.Found {
				continue
			}

			childPlan := make(core.Plan, len(node.plan))
			for id, p := range node.plan {
				childPlan[id] = p
			}
			childPlan[agentID] = sta.Path

			seq++
			child := &cbsNode{
				constraints:  extended,
				plan:         childPlan,
				cost:         childPlan.SumOfCosts(),
				numConflicts: len(core.DetectConflicts(childPlan)),
				seq:          seq,
			}
			heap.Push(open, child)
		}
	}

	// Open emptied without finding a conflict-free node: proven
	// NoSolution (§7).
	return Result{
		Plan:         nil,
		Success:      false,
		ExploredSize: exploredSize,
		TimeTaken:    time.Since(started),
	}
}

func timedOutCBSResult(best *cbsNode, exploredSize int, started time.Time) Result {
	if best == nil {
		return Result{Success: false, ExploredSize: exploredSize, TimeTaken: time.Since(started)}
	}
	return Result{
		Plan:         best.plan,
		Conflicts:    core.DetectConflicts(best.plan),
		Success:      false,
		SumOfCosts:   best.plan.SumOfCosts(),
		Makespan:     best.plan.Makespan(),
		ExploredSize: exploredSize,
		TimeTaken:    time.Since(started),
	}
}

// childConstraints returns the two constraints CBS branches a conflict
// into (§4.4): one per involved agent.
func childConstraints(c core.Conflict) []core.Constraint {
	if c.Type == core.VertexConflict {
		return []core.Constraint{
			{Agent: c.AgentA, Cell: c.Cell, Tick: c.Tick},
			{Agent: c.AgentB, Cell: c.Cell, Tick: c.Tick},
		}
	}
	return []core.Constraint{
		{Agent: c.AgentA, IsEdge: true, From: c.From, To: c.To, Tick: c.Tick},
		{Agent: c.AgentB, IsEdge: true, From: c.To, To: c.From, Tick: c.Tick},
	}
}

func findAgent(agents []core.Agent, id core.AgentID) core.Agent {
	for _, a := range agents {
		if a.ID == id {
			return a
		}
	}
	return core.Agent{}
}
