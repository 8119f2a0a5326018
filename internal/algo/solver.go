package algo

import (
	"fmt"
	"time"

	"mapf-solver/internal/core"
)

// Result is the uniform envelope every planner returns (§9 "Dynamic
// algorithm dispatch": a sum type of planner kinds dispatched by the
// façade, modeled here as one struct shape every planner fills in).
type Result struct {
	Plan              core.Plan
	ExplorationOrders map[core.AgentID][]core.Cell
	Conflicts         []core.Conflict
	Success           bool
	SumOfCosts        int
	Makespan          int
	ExploredSize      int
	TimeTaken         time.Duration
	// CollisionFreeCheck records whether Success implies Conflicts is
	// empty (P2): true for successful cooperative/cbs/mip results, false
	// for their failed ones, and always false for independent, which is
	// diagnostic only (§9 Open Question).
	CollisionFreeCheck bool
	// Optimal is set by planners (today, only MIP) that can certify SOC
	// optimality when they succeed.
	Optimal bool
	// Bound is MIP's best proven lower bound on SOC (§4.5 "report solver
	// wall-time and LP bound"): the best joint-state g+h seen at cutoff on
	// timeout or horizon exhaustion, or SumOfCosts itself once Optimal is
	// true. Zero for planners that do not certify a bound.
	Bound int
}

// Algorithm names the four planner kinds exposed by the façade (§6).
type Algorithm string

const (
	AlgoIndependent Algorithm = "independent"
	AlgoCooperative Algorithm = "cooperative"
	AlgoCBS         Algorithm = "cbs"
	AlgoMIP         Algorithm = "mip"
)

// ParsePriorityPolicy maps the request's priority_policy string (§6) to a
// PriorityPolicy, defaulting to DistanceFirst for "" (unset).
func ParsePriorityPolicy(s string) (PriorityPolicy, error) {
	switch s {
	case "", "distance_first":
		return DistanceFirst, nil
	case "constrained_first":
		return ConstrainedFirst, nil
	case "id_order":
		return IDOrder, nil
	default:
		return 0, fmt.Errorf("%w: unknown priority_policy %q", core.ErrInvalidInput, s)
	}
}

// Planner is the uniform contract (§9) every algorithm implements, so the
// façade (and the benchmark harness) can dispatch without a type switch
// per call site.
type Planner interface {
	Name() string
	Plan(g *core.Grid, agents []core.Agent, caps Caps) Result
}

type independentPlanner struct{}

func (independentPlanner) Name() string { return string(AlgoIndependent) }
func (independentPlanner) Plan(g *core.Grid, agents []core.Agent, caps Caps) Result {
	return Independent(g, agents, caps)
}

type cooperativePlanner struct{ Policy PriorityPolicy }

func (cooperativePlanner) Name() string { return string(AlgoCooperative) }
func (p cooperativePlanner) Plan(g *core.Grid, agents []core.Agent, caps Caps) Result {
	return Cooperative(g, agents, p.Policy, caps)
}

type cbsPlanner struct{}

func (cbsPlanner) Name() string { return string(AlgoCBS) }
func (cbsPlanner) Plan(g *core.Grid, agents []core.Agent, caps Caps) Result {
	return CBS(g, agents, caps)
}

type mipPlanner struct{}

func (mipPlanner) Name() string { return string(AlgoMIP) }
func (mipPlanner) Plan(g *core.Grid, agents []core.Agent, caps Caps) Result {
	return MIP(g, agents, caps)
}

// NewPlanner builds the Planner for a given algorithm and (for
// cooperative) priority policy. mipAvailable gates "mip": when false, it
// returns ErrMIPUnavailable instead of a planner (§9 "MIP as oracle").
func NewPlanner(alg Algorithm, policy PriorityPolicy, mipAvailable bool) (Planner, error) {
	switch alg {
	case AlgoIndependent:
		return independentPlanner{}, nil
	case AlgoCooperative:
		return cooperativePlanner{Policy: policy}, nil
	case AlgoCBS:
		return cbsPlanner{}, nil
	case AlgoMIP:
		if !mipAvailable {
			return nil, ErrMIPUnavailable
		}
		return mipPlanner{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", core.ErrInvalidInput, alg)
	}
}

// Request is the façade's solve request (§6), already parsed into core
// types.
type Request struct {
	Grid           *core.Grid
	Agents         []core.Agent
	Algorithm      Algorithm
	MaxTime        time.Duration
	PriorityPolicy PriorityPolicy
	MIPAvailable   bool
	// MIPMaxDoublings overrides the mip planner's horizon-doubling limit;
	// zero selects the package default (see Caps.MaxMIPDoublings).
	MIPMaxDoublings int
}

// DefaultMaxTime is §6's default max_time of 100 seconds.
const DefaultMaxTime = 100 * time.Second

// Solve is the solver façade (C10): it validates the request, selects a
// planner by algorithm name, and returns its Result. Invalid input is
// rejected before planning begins (§7); NoSolution/Timeout are reported
// inside Result rather than as errors, except for ErrMIPUnavailable and
// ErrInvalidInput which abort before any planning work happens.
func Solve(req Request) (Result, error) {
	if req.Grid == nil {
		return Result{}, fmt.Errorf("%w: nil grid", core.ErrInvalidInput)
	}
	if err := core.ValidateAgents(req.Grid, req.Agents); err != nil {
		return Result{}, err
	}

	planner, err := NewPlanner(req.Algorithm, req.PriorityPolicy, req.MIPAvailable)
	if err != nil {
		return Result{}, err
	}

	maxTime := req.MaxTime
	if maxTime <= 0 {
		maxTime = DefaultMaxTime
	}
	caps := Caps{MaxWallTime: maxTime, MaxMIPDoublings: req.MIPMaxDoublings}

	res := planner.Plan(req.Grid, req.Agents, caps)
	if err := checkCollisionFreeInvariant(req.Algorithm, res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// checkCollisionFreeInvariant is the sanity-check assertion §4.3 step 4
// requires and §7 kind 4 names as the paradigm InternalError trigger: any
// planner other than the diagnostic-only independent one must never report
// Success with Conflicts non-empty. A violation here means a planner bug
// let two agents' committed paths collide despite the coordination
// mechanism meant to prevent it.
func checkCollisionFreeInvariant(alg Algorithm, res Result) error {
	if alg == AlgoIndependent {
		return nil
	}
	if res.Success && len(res.Conflicts) > 0 {
		return fmt.Errorf("%w: %s planner reported success with %d unresolved conflict(s)", core.ErrInternal, alg, len(res.Conflicts))
	}
	return nil
}
