// Package scenario loads a solve request (grid, agents, algorithm
// choice) from a YAML scenario file.
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mapf-solver/internal/algo"
	"mapf-solver/internal/core"
)

// agentSpec and gridSpec mirror the on-disk YAML shape; File.Build
// converts them into the core/algo types the solver actually consumes.
type agentSpec struct {
	ID    int    `yaml:"id"`
	Start [2]int `yaml:"start"`
	Goal  [2]int `yaml:"goal"`
}

type gridSpec struct {
	Size    int      `yaml:"size"`
	Blocked []string `yaml:"blocked"`
}

// File is the parsed scenario document.
type File struct {
	Grid           gridSpec    `yaml:"grid"`
	Agents         []agentSpec `yaml:"agents"`
	Algorithm      string      `yaml:"algorithm"`
	PriorityPolicy string      `yaml:"priority_policy"`
	MaxTimeSeconds float64     `yaml:"max_time_seconds"`
	MIPAvailable   bool        `yaml:"mip_available"`
}

// Load reads and parses a scenario file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: decode %s: %w", path, err)
	}
	return &f, nil
}

// Build converts the parsed file into a solve Request. Algorithm and
// priority policy defaults come from the caller (typically the active
// config), used when the scenario file leaves them unset. maxGridSize
// rejects oversized grids before allocation; zero means unbounded.
func (f *File) Build(defaultAlgorithm, defaultPolicy string, maxGridSize int) (algo.Request, error) {
	if maxGridSize > 0 && f.Grid.Size > maxGridSize {
		return algo.Request{}, fmt.Errorf("%w: grid size %d exceeds max_grid_size %d", core.ErrInvalidInput, f.Grid.Size, maxGridSize)
	}
	blocks := make([][]bool, f.Grid.Size)
	for r := range blocks {
		blocks[r] = make([]bool, f.Grid.Size)
	}
	for _, token := range f.Grid.Blocked {
		var r, c int
		if _, err := fmt.Sscanf(token, "%d,%d", &r, &c); err != nil {
			return algo.Request{}, fmt.Errorf("scenario: bad blocked cell %q: %w", token, err)
		}
		if r < 0 || r >= f.Grid.Size || c < 0 || c >= f.Grid.Size {
			return algo.Request{}, fmt.Errorf("%w: blocked cell %q out of bounds", core.ErrInvalidInput, token)
		}
		blocks[r][c] = true
	}
	grid, err := core.NewGrid(f.Grid.Size, blocks)
	if err != nil {
		return algo.Request{}, err
	}

	agents := make([]core.Agent, len(f.Agents))
	for i, a := range f.Agents {
		agents[i] = core.Agent{
			ID:    core.AgentID(a.ID),
			Start: core.Cell{R: a.Start[0], C: a.Start[1]},
			Goal:  core.Cell{R: a.Goal[0], C: a.Goal[1]},
		}
	}

	algName := f.Algorithm
	if algName == "" {
		algName = defaultAlgorithm
	}
	policyStr := f.PriorityPolicy
	if policyStr == "" {
		policyStr = defaultPolicy
	}
	policy, err := algo.ParsePriorityPolicy(policyStr)
	if err != nil {
		return algo.Request{}, err
	}

	req := algo.Request{
		Grid:           grid,
		Agents:         agents,
		Algorithm:      algo.Algorithm(algName),
		PriorityPolicy: policy,
		MIPAvailable:   f.MIPAvailable,
	}
	if f.MaxTimeSeconds > 0 {
		req.MaxTime = secondsToDuration(f.MaxTimeSeconds)
	}
	return req, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
