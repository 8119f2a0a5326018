package core

import "errors"

// Sentinel error kinds returned by the solver core. Callers match with
// errors.Is; the façade maps these onto the response envelope described
// in the solve response contract.
var (
	// ErrInvalidInput marks a request rejected before planning begins:
	// an out-of-bounds coordinate, a blocked start/goal, or a duplicate
	// agent id.
	ErrInvalidInput = errors.New("mapf: invalid input")

	// ErrNoSolution marks a planner that proved, or declared, that no
	// plan exists for the given instance.
	ErrNoSolution = errors.New("mapf: no solution")

	// ErrTimeout marks a planner that hit its wall-time or expansion
	// cap before finding (or disproving) a solution.
	ErrTimeout = errors.New("mapf: timeout")

	// ErrInternal marks a violated invariant, e.g. a planner returning
	// a path that collides with another agent's. Treated as a bug.
	ErrInternal = errors.New("mapf: internal error")
)
