package core

// Path is a non-empty, time-indexed sequence of cells: p[0] is the agent's
// start, p[len-1] is its goal, and each consecutive pair is adjacent-or-equal.
// Cost is len(p)-1. An agent is implicitly parked on p[len-1] for any tick
// beyond len(p)-1.
type Path []Cell

// Cost is the path's arrival tick (len-1); a trivial start==goal path has
// cost 0.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// At returns the agent's cell at tick t, parking on the final cell for any
// t beyond the path's length.
func (p Path) At(t int) Cell {
	if len(p) == 0 {
		return Cell{}
	}
	if t < 0 {
		t = 0
	}
	if t >= len(p) {
		return p[len(p)-1]
	}
	return p[t]
}

// Plan maps agent id to its path. A plan may be partial: an agent with no
// entry failed to find a path.
type Plan map[AgentID]Path

// SumOfCosts is SOC = Σ_i (len(p_i) - 1) over agents with a path.
func (p Plan) SumOfCosts() int {
	soc := 0
	for _, path := range p {
		soc += path.Cost()
	}
	return soc
}

// Makespan is the latest arrival tick across agents with a path.
func (p Plan) Makespan() int {
	m := 0
	for _, path := range p {
		if c := path.Cost(); c > m {
			m = c
		}
	}
	return m
}

// Complete reports whether every agent in ids has a non-empty path in p.
func (p Plan) Complete(ids []AgentID) bool {
	for _, id := range ids {
		path, ok := p[id]
		if !ok || len(path) == 0 {
			return false
		}
	}
	return true
}
