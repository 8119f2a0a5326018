// Package bench runs a batch of independent solve requests concurrently
// and collects their results, for comparing planners across a scenario
// set (the solver core itself stays single-threaded and synchronous per
// request).
package bench

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mapf-solver/internal/algo"
	"mapf-solver/internal/core"
)

// Scenario names one solve request within a batch.
type Scenario struct {
	Name         string
	Grid         *core.Grid
	Agents       []core.Agent
	Algorithm    algo.Algorithm
	MaxTime      time.Duration
	MIPAvailable bool
}

// Outcome is one scenario's result, paired back with its name since
// results may complete out of order.
type Outcome struct {
	Name   string
	Result algo.Result
	Err    error
}

// Run solves every scenario concurrently, bounded by maxConcurrency (0
// means unbounded), and returns one Outcome per scenario in input order.
// It returns the first non-planner error (e.g. invalid input) and
// cancels the remaining scenarios; per-scenario solver failures
// (Result.Success == false) are not errors and are reported in Outcome.
func Run(ctx context.Context, scenarios []Scenario, maxConcurrency int) ([]Outcome, error) {
	outcomes := make([]Outcome, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := algo.Solve(algo.Request{
				Grid:         sc.Grid,
				Agents:       sc.Agents,
				Algorithm:    sc.Algorithm,
				MaxTime:      sc.MaxTime,
				MIPAvailable: sc.MIPAvailable,
			})
			outcomes[i] = Outcome{Name: sc.Name, Result: res, Err: err}
			if err != nil {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
