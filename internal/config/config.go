// Package config loads and hot-reloads the solver's YAML configuration,
// modeled on the mutex-guarded load/save/validate cycle used for the
// bot's runtime config.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"mapf-solver/internal/algo"
)

// Config is the solver's on-disk configuration: defaults for any request
// field the caller omits.
type Config struct {
	DefaultAlgorithm      string  `yaml:"default_algorithm"`
	DefaultPriorityPolicy string  `yaml:"default_priority_policy"`
	DefaultMaxTimeSeconds float64 `yaml:"default_max_time_seconds"`
	MIPAvailable          bool    `yaml:"mip_available"`
	MIPMaxDoublings       int     `yaml:"mip_max_doublings"`
	MaxGridSize           int     `yaml:"max_grid_size"`
	LogLevel              string  `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DefaultAlgorithm:      string(algo.AlgoCooperative),
		DefaultPriorityPolicy: "distance_first",
		DefaultMaxTimeSeconds: 100,
		MIPAvailable:          false,
		MIPMaxDoublings:       3,
		MaxGridSize:           200,
		LogLevel:              "info",
	}
}

// Validate checks the fields NewManager and Watch cannot validate by type
// alone.
func (c Config) Validate() error {
	if _, err := algo.ParsePriorityPolicy(c.DefaultPriorityPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch algo.Algorithm(c.DefaultAlgorithm) {
	case algo.AlgoIndependent, algo.AlgoCooperative, algo.AlgoCBS, algo.AlgoMIP:
	default:
		return fmt.Errorf("config: unknown default_algorithm %q", c.DefaultAlgorithm)
	}
	if c.DefaultMaxTimeSeconds <= 0 {
		return fmt.Errorf("config: default_max_time_seconds must be positive")
	}
	if c.MIPMaxDoublings < 0 {
		return fmt.Errorf("config: mip_max_doublings must be non-negative")
	}
	if c.MaxGridSize < 0 {
		return fmt.Errorf("config: max_grid_size must be non-negative")
	}
	return nil
}

// Manager owns a Config loaded from path, optionally kept fresh by a
// filesystem watch.
type Manager struct {
	path string

	mu  sync.RWMutex
	cfg Config
}

// NewManager loads path if it exists, or seeds the manager with Default()
// and writes it out otherwise.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path, cfg: Default()}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		m.cfg = cfg
	case os.IsNotExist(err):
		if err := m.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return m, nil
}

func (m *Manager) save() error {
	data, err := yaml.Marshal(m.cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", m.path, err)
	}
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch starts an fsnotify watch on the config file's directory, reloading
// on every write event and calling onChange with the new Config. It
// returns once ctx is done or the watcher cannot be created.
func (m *Manager) Watch(ctx context.Context, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != m.path || !event.Has(fsnotify.Write) {
				continue
			}
			data, err := os.ReadFile(m.path)
			if err != nil {
				continue
			}
			var cfg Config
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				continue
			}
			if err := cfg.Validate(); err != nil {
				continue
			}
			m.mu.Lock()
			m.cfg = cfg
			m.mu.Unlock()
			if onChange != nil {
				onChange(cfg)
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
