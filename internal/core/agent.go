package core

import "fmt"

// AgentID uniquely identifies an agent within a request.
type AgentID int

// Agent is an immutable start/goal record. IDs are unique within a request
// and used for stable tie-breaking across every planner.
type Agent struct {
	ID    AgentID
	Start Cell
	Goal  Cell
}

// ValidateAgents checks the invariants §3 places on the agent list: in
// bounds, passable starts/goals, and unique ids. start == goal is allowed.
func ValidateAgents(g *Grid, agents []Agent) error {
	seen := make(map[AgentID]bool, len(agents))
	for _, a := range agents {
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidInput, a.ID)
		}
		seen[a.ID] = true
		if !g.InBounds(a.Start) || !g.Passable(a.Start) {
			return fmt.Errorf("%w: agent %d start %v is out of bounds or blocked", ErrInvalidInput, a.ID, a.Start)
		}
		if !g.InBounds(a.Goal) || !g.Passable(a.Goal) {
			return fmt.Errorf("%w: agent %d goal %v is out of bounds or blocked", ErrInvalidInput, a.ID, a.Goal)
		}
	}
	return nil
}
