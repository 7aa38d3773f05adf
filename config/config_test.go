package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20*time.Millisecond, cfg.Simulation.Tick())
	assert.Equal(t, 180*time.Second, cfg.Simulation.DayLength())
	assert.True(t, cfg.Simulation.RerollOrbitDirection)
	assert.Equal(t, int64(1), cfg.Simulation.Seed)
	assert.Equal(t, "memory", cfg.Journal.Mode)
	assert.Equal(t, time.Second, cfg.Journal.FlushEvery)
	assert.Equal(t, 30*time.Second, cfg.Cache.LocalGCInterval)
	assert.Equal(t, 200, cfg.Security.RateLimitBurst)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9000
  allowed_origins: ["http://localhost:3000"]
simulation:
  tick_ms: 50
  real_seconds_per_game_day: 90
  reroll_orbit_direction: false
journal:
  mode: sqlite
  sqlite_path: /tmp/j.db
cache:
  redis_addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.Tick())
	assert.Equal(t, 90*time.Second, cfg.Simulation.DayLength())
	assert.False(t, cfg.Simulation.RerollOrbitDirection)
	assert.Equal(t, "sqlite", cfg.Journal.Mode)
	assert.Equal(t, "/tmp/j.db", cfg.Journal.SQLitePath)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.Simulation.SnapshotEveryTicks)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveTick(t *testing.T) {
	for _, tick := range []string{"0", "-20"} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("simulation:\n  tick_ms: "+tick+"\n"), 0644))

		_, err := Load(path)
		assert.ErrorContains(t, err, "tick_ms", "tick_ms=%s", tick)
	}
}
