package algo

import (
	"time"

	"mapf-solver/internal/core"
)

// Independent runs STA* per agent with no coordination (§4.2). It is a
// diagnostic baseline, not an operational planner: Success reports true
// whenever every agent has *a* path, regardless of whether those paths
// collide. Callers that need a collision-free guarantee must check
// Result.Conflicts, or use Cooperative/CBS/MIP instead (§9 Open
// Question).
func Independent(g *core.Grid, agents []core.Agent, caps Caps) Result {
	started := time.Now()
	plan := make(core.Plan, len(agents))
	explorations := make(map[core.AgentID][]core.Cell, len(agents))

	exploredSize := 0
	allSucceeded := true

	for _, a := range agents {
		sta := SpaceTimeAStar(g, a.Start, a.Goal, STAOptions{
			Agent:             a.ID,
			RecordExploration: true,
			Caps:              caps,
		})
		exploredSize += sta.Expansions
		if !sta.Found {
			allSucceeded = false
			continue
		}
		plan[a.ID] = sta.Path
		explorations[a.ID] = sta.Exploration
	}

	conflicts := core.DetectConflicts(plan)

	return Result{
		Plan:               plan,
		ExplorationOrders:  explorations,
		Conflicts:          conflicts,
		Success:            allSucceeded,
		SumOfCosts:         plan.SumOfCosts(),
		Makespan:           plan.Makespan(),
		ExploredSize:       exploredSize,
		TimeTaken:          time.Since(started),
		CollisionFreeCheck: false,
	}
}
