// Command run_benchmarks runs the independent, cooperative and CBS
// planners (and, with -mip, the MIP planner) against a directory of
// scenario files and writes a CSV summary.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"mapf-solver/internal/algo"
	"mapf-solver/internal/bench"
	"mapf-solver/internal/scenario"
)

var allAlgorithms = []algo.Algorithm{
	algo.AlgoIndependent,
	algo.AlgoCooperative,
	algo.AlgoCBS,
}

// benchmarkRow is one (scenario, algorithm) result, flattened for CSV.
type benchmarkRow struct {
	Timestamp    string
	GoVersion    string
	OS           string
	Arch         string
	Instance     string
	NumAgents    int
	GridSize     int
	Algorithm    string
	RuntimeMs    float64
	Success      bool
	SumOfCosts   int
	Makespan     int
	NumConflicts int
	Explored     int
}

// solverMetrics aggregates rows by algorithm for the printed summary.
type solverMetrics struct {
	Name           string
	TotalRuns      int
	Successes      int
	TotalRuntimeMs float64
	TotalSOC       int
}

func loadScenarios(dir string, algFilter []algo.Algorithm) ([]bench.Scenario, []string, error) {
	pattern := filepath.Join(dir, "*.yaml")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	var scenarios []bench.Scenario
	var names []string
	for _, path := range files {
		f, err := scenario.Load(path)
		if err != nil {
			return nil, nil, err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for _, alg := range algFilter {
			req, err := f.Build(string(alg), "distance_first", 0)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", path, err)
			}
			req.Algorithm = alg
			scenarios = append(scenarios, bench.Scenario{
				Name:         fmt.Sprintf("%s/%s", base, alg),
				Grid:         req.Grid,
				Agents:       req.Agents,
				Algorithm:    alg,
				MaxTime:      req.MaxTime,
				MIPAvailable: alg == algo.AlgoMIP,
			})
			names = append(names, base)
		}
	}
	return scenarios, names, nil
}

func toRows(outcomes []bench.Outcome, scenarios []bench.Scenario, instanceNames []string) []benchmarkRow {
	rows := make([]benchmarkRow, len(outcomes))
	now := time.Now().UTC().Format(time.RFC3339)
	for i, o := range outcomes {
		sc := scenarios[i]
		rows[i] = benchmarkRow{
			Timestamp:    now,
			GoVersion:    runtime.Version(),
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			Instance:     instanceNames[i],
			NumAgents:    len(sc.Agents),
			GridSize:     sc.Grid.Size,
			Algorithm:    string(sc.Algorithm),
			RuntimeMs:    float64(o.Result.TimeTaken.Microseconds()) / 1000.0,
			Success:      o.Result.Success,
			SumOfCosts:   o.Result.SumOfCosts,
			Makespan:     o.Result.Makespan,
			NumConflicts: len(o.Result.Conflicts),
			Explored:     o.Result.ExploredSize,
		}
	}
	return rows
}

func writeCSV(rows []benchmarkRow, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "go_version", "os", "arch",
		"instance", "num_agents", "grid_size", "algorithm",
		"runtime_ms", "success", "sum_of_costs", "makespan",
		"num_conflicts", "explored",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.Timestamp, r.GoVersion, r.OS, r.Arch,
			r.Instance, fmt.Sprintf("%d", r.NumAgents), fmt.Sprintf("%d", r.GridSize), r.Algorithm,
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%t", r.Success),
			fmt.Sprintf("%d", r.SumOfCosts), fmt.Sprintf("%d", r.Makespan),
			fmt.Sprintf("%d", r.NumConflicts), fmt.Sprintf("%d", r.Explored),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(rows []benchmarkRow) {
	metrics := make(map[string]*solverMetrics)
	for _, r := range rows {
		m, ok := metrics[r.Algorithm]
		if !ok {
			m = &solverMetrics{Name: r.Algorithm}
			metrics[r.Algorithm] = m
		}
		m.TotalRuns++
		if r.Success {
			m.Successes++
			m.TotalRuntimeMs += r.RuntimeMs
			m.TotalSOC += r.SumOfCosts
		}
	}

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-24s %8s %8s %14s %10s\n", "Algorithm", "Runs", "Success", "Avg Time(ms)", "Avg SOC")
	fmt.Println(strings.Repeat("-", 70))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgTime, avgSOC := 0.0, 0.0
		if m.Successes > 0 {
			avgTime = m.TotalRuntimeMs / float64(m.Successes)
			avgSOC = float64(m.TotalSOC) / float64(m.Successes)
		}
		fmt.Printf("%-24s %8d %8d %14.2f %10.2f\n", m.Name, m.TotalRuns, m.Successes, avgTime, avgSOC)
	}
}

func main() {
	inputDir := flag.String("input", "testdata/scenarios", "directory of scenario YAML files")
	outputFile := flag.String("output", "evidence/benchmark_results.csv", "output CSV file")
	concurrency := flag.Int("concurrency", 4, "max scenarios solved concurrently")
	includeMIP := flag.Bool("mip", false, "also run the mip planner")

	flag.Parse()

	algorithms := append([]algo.Algorithm(nil), allAlgorithms...)
	if *includeMIP {
		algorithms = append(algorithms, algo.AlgoMIP)
	}

	scenarios, names, err := loadScenarios(*inputDir, algorithms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading scenarios: %v\n", err)
		os.Exit(1)
	}
	if len(scenarios) == 0 {
		fmt.Fprintf(os.Stderr, "no scenario files found in %s\n", *inputDir)
		os.Exit(1)
	}

	fmt.Printf("Running benchmarks: %d scenario runs\n", len(scenarios))
	outcomes, err := bench.Run(context.Background(), scenarios, *concurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running benchmarks: %v\n", err)
		os.Exit(1)
	}

	rows := toRows(outcomes, scenarios, names)
	if err := writeCSV(rows, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(rows)
}
