package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_SeedsDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solver.yaml")

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), m.Get())

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "seeding a missing config must write it out")
}

func TestNewManager_LoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_algorithm: cbs\ndefault_priority_policy: id_order\ndefault_max_time_seconds: 5\n"), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	cfg := m.Get()
	assert.Equal(t, "cbs", cfg.DefaultAlgorithm)
	assert.Equal(t, "id_order", cfg.DefaultPriorityPolicy)
	assert.Equal(t, 5.0, cfg.DefaultMaxTimeSeconds)
}

func TestNewManager_RejectsInvalidAlgorithm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_algorithm: not-a-real-one\ndefault_max_time_seconds: 5\n"), 0o644))

	_, err := NewManager(path)
	assert.Error(t, err)
}

func TestManager_WatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solver.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	changed := make(chan Config, 1)
	go m.Watch(ctx, func(cfg Config) {
		select {
		case changed <- cfg:
		default:
		}
	})

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("default_algorithm: mip\ndefault_max_time_seconds: 9\nmip_available: true\n"), 0o644))

	select {
	case cfg := <-changed:
		assert.Equal(t, "mip", cfg.DefaultAlgorithm)
		assert.True(t, cfg.MIPAvailable)
	case <-time.After(1800 * time.Millisecond):
		t.Fatal("config watch did not observe the file write")
	}
}
