package core

// Constraint prohibits a single agent from occupying a cell (vertex) or
// traversing an edge at a specific tick.
type Constraint struct {
	Agent  AgentID
	IsEdge bool
	Cell   Cell // vertex constraint target
	From   Cell // edge constraint: agent may not move From->To
	To     Cell
	Tick   int // vertex: tick agent may not occupy Cell; edge: tick of the From->To step
}

// ConstraintSet is an immutable, persistent set of constraints, extended
// by parent-pointer + delta chains so a CBS child never copies its
// parent's constraints (§9 "cyclic / mutable ownership of constraints").
// A nil *ConstraintSet is the empty set.
type ConstraintSet struct {
	parent *ConstraintSet
	delta  Constraint
}

// Add returns a new set containing every constraint in s plus c. s is
// never mutated.
func (s *ConstraintSet) Add(c Constraint) *ConstraintSet {
	return &ConstraintSet{parent: s, delta: c}
}

// forAgent walks the chain, invoking fn for every constraint bound to
// agent, most-recently-added first.
func (s *ConstraintSet) forAgent(agent AgentID, fn func(Constraint)) {
	for n := s; n != nil; n = n.parent {
		if n.delta.Agent == agent {
			fn(n.delta)
		}
	}
}

// VertexBlocked reports whether agent is forbidden from occupying cell at
// tick t.
func (s *ConstraintSet) VertexBlocked(agent AgentID, cell Cell, t int) bool {
	blocked := false
	s.forAgent(agent, func(c Constraint) {
		if !c.IsEdge && c.Cell == cell && c.Tick == t {
			blocked = true
		}
	})
	return blocked
}

// EdgeBlocked reports whether agent is forbidden from traversing from->to
// during the step starting at tick t.
func (s *ConstraintSet) EdgeBlocked(agent AgentID, from, to Cell, t int) bool {
	blocked := false
	s.forAgent(agent, func(c Constraint) {
		if c.IsEdge && c.From == from && c.To == to && c.Tick == t {
			blocked = true
		}
	})
	return blocked
}

// MaxVertexTick returns the highest tick at which agent is constrained off
// of cell, or -1 if there is no such constraint. STA* uses this to decide
// whether it is safe to terminate at cell (its goal parks there forever,
// so any later constraint on it must be honored by continuing the search).
func (s *ConstraintSet) MaxVertexTick(agent AgentID, cell Cell) int {
	max := -1
	s.forAgent(agent, func(c Constraint) {
		if !c.IsEdge && c.Cell == cell && c.Tick > max {
			max = c.Tick
		}
	})
	return max
}

// Len counts the constraints in the chain (diagnostic use only).
func (s *ConstraintSet) Len() int {
	n := 0
	for c := s; c != nil; c = c.parent {
		n++
	}
	return n
}
