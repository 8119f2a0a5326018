package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mapf-solver/internal/algo"
	"mapf-solver/internal/config"
	"mapf-solver/internal/core"
	"mapf-solver/internal/logging"
	"mapf-solver/internal/scenario"
)

var (
	solveConfigPath string
	solveAlgorithm  string
	solvePolicy     string
	solveMaxTime    float64
	solveLogLevel   string
)

var solveCmd = &cobra.Command{
	Use:   "solve <scenario.yaml>",
	Short: "Solve a MAPF scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(args[0])
	},
}

func init() {
	solveCmd.Flags().StringVar(&solveConfigPath, "config", "mapfsolve.yaml", "path to the solver config file")
	solveCmd.Flags().StringVar(&solveAlgorithm, "algorithm", "", "override the scenario/config algorithm (independent, cooperative, cbs, mip)")
	solveCmd.Flags().StringVar(&solvePolicy, "priority-policy", "", "override the priority policy (distance_first, constrained_first, id_order)")
	solveCmd.Flags().Float64Var(&solveMaxTime, "max-time", 0, "override the max solve time in seconds")
	solveCmd.Flags().StringVar(&solveLogLevel, "log-level", "", "override the config log level (debug, info, warn, error)")
}

func runSolve(path string) error {
	mgr, err := config.NewManager(solveConfigPath)
	if err != nil {
		return err
	}
	cfg := mgr.Get()

	level := cfg.LogLevel
	if solveLogLevel != "" {
		level = solveLogLevel
	}
	logger := logging.New(os.Stderr, "mapfsolve", logging.ParseLevel(level))

	f, err := scenario.Load(path)
	if err != nil {
		return err
	}

	defaultAlgorithm := cfg.DefaultAlgorithm
	if solveAlgorithm != "" {
		defaultAlgorithm = solveAlgorithm
	} else if f.Algorithm != "" {
		defaultAlgorithm = f.Algorithm
	}
	defaultPolicy := cfg.DefaultPriorityPolicy
	if solvePolicy != "" {
		defaultPolicy = solvePolicy
	}

	if solveAlgorithm != "" {
		f.Algorithm = solveAlgorithm
	}
	if solvePolicy != "" {
		f.PriorityPolicy = solvePolicy
	}

	req, err := f.Build(defaultAlgorithm, defaultPolicy, cfg.MaxGridSize)
	if err != nil {
		return err
	}
	req.MIPAvailable = req.MIPAvailable || cfg.MIPAvailable
	req.MIPMaxDoublings = cfg.MIPMaxDoublings
	if req.MaxTime <= 0 {
		req.MaxTime = time.Duration(cfg.DefaultMaxTimeSeconds * float64(time.Second))
	}
	if solveMaxTime > 0 {
		req.MaxTime = time.Duration(solveMaxTime * float64(time.Second))
	}

	logger.Infof("solving %s with algorithm=%s agents=%d grid=%dx%d", path, req.Algorithm, len(req.Agents), req.Grid.Size, req.Grid.Size)

	res, err := algo.Solve(req)
	if err != nil {
		return err
	}

	printSection("Result")
	printLabelValue("algorithm", string(req.Algorithm))
	printLabelValue("agents", fmt.Sprintf("%d", len(req.Agents)))
	printLabelValue("sum_of_costs", fmt.Sprintf("%d", res.SumOfCosts))
	printLabelValue("makespan", fmt.Sprintf("%d", res.Makespan))
	printLabelValue("explored", fmt.Sprintf("%d", res.ExploredSize))
	printLabelValue("time_taken", res.TimeTaken.String())

	if res.Success {
		printSuccess(fmt.Sprintf("solved: %d agents, SOC=%d, makespan=%d", len(req.Agents), res.SumOfCosts, res.Makespan))
	} else {
		printWarning("no collision-free solution found within budget")
	}

	if len(res.Conflicts) > 0 {
		printSection("Conflicts")
		for _, c := range res.Conflicts {
			printConflict(c)
		}
	}

	return nil
}

func printConflict(c core.Conflict) {
	switch c.Type {
	case core.VertexConflict:
		fmt.Printf("  vertex conflict: agents %d,%d at %v tick %d\n", c.AgentA, c.AgentB, c.Cell, c.Tick)
	case core.EdgeConflict:
		fmt.Printf("  edge conflict: agents %d,%d crossing %v<->%v tick %d\n", c.AgentA, c.AgentB, c.From, c.To, c.Tick)
	}
}
