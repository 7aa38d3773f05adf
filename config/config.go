package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Journal    JournalConfig    `mapstructure:"journal"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Security   SecurityConfig   `mapstructure:"security"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
	// AllowedOrigins lists the WebSocket/SSE origins that are permitted.
	// An empty slice allows all origins (useful for local development only).
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SimulationConfig struct {
	TickMs                int     `mapstructure:"tick_ms"`
	RealSecondsPerGameDay float64 `mapstructure:"real_seconds_per_game_day"`
	RerollOrbitDirection  bool    `mapstructure:"reroll_orbit_direction"`
	Seed                  int64   `mapstructure:"seed"`
	SnapshotEveryTicks    int     `mapstructure:"snapshot_every_ticks"`
	ContentPath           string  `mapstructure:"content_path"` // empty: built-in content
}

// Tick returns the fixed step length.
func (c SimulationConfig) Tick() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// DayLength returns the real time one game day takes.
func (c SimulationConfig) DayLength() time.Duration {
	return time.Duration(c.RealSecondsPerGameDay * float64(time.Second))
}

type JournalConfig struct {
	Mode         string        `mapstructure:"mode"` // sqlite | mysql | memory | off
	SQLitePath   string        `mapstructure:"sqlite_path"`
	MySQLDSN     string        `mapstructure:"mysql_dsn"`
	MySQLMaxOpen int           `mapstructure:"mysql_max_open"`
	MySQLMaxIdle int           `mapstructure:"mysql_max_idle"`
	MySQLMaxLife time.Duration `mapstructure:"mysql_max_life"`
	BufferSize   int           `mapstructure:"buffer_size"`
	BatchSize    int           `mapstructure:"batch_size"`
	FlushEvery   time.Duration `mapstructure:"flush_every"`
}

type CacheConfig struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	LocalGCInterval time.Duration `mapstructure:"local_gc_interval"`
	LocalPubSubBuf  int           `mapstructure:"local_pubsub_buf"`
	QuestLogMax     int           `mapstructure:"quest_log_max"`
}

type SecurityConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Load reads config from the given YAML file path. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("simulation.tick_ms", 20)
	v.SetDefault("simulation.real_seconds_per_game_day", 180)
	v.SetDefault("simulation.reroll_orbit_direction", true)
	v.SetDefault("simulation.seed", 1)
	v.SetDefault("simulation.snapshot_every_ticks", 5)
	v.SetDefault("journal.mode", "memory")
	v.SetDefault("journal.sqlite_path", "./data/journal.db")
	v.SetDefault("journal.mysql_max_open", 10)
	v.SetDefault("journal.mysql_max_idle", 2)
	v.SetDefault("journal.mysql_max_life", "1h")
	v.SetDefault("journal.buffer_size", 1024)
	v.SetDefault("journal.batch_size", 100)
	v.SetDefault("journal.flush_every", "1s")
	v.SetDefault("cache.local_gc_interval", "30s")
	v.SetDefault("cache.local_pubsub_buf", 256)
	v.SetDefault("cache.quest_log_max", 100)
	v.SetDefault("security.rate_limit_rps", 100)
	v.SetDefault("security.rate_limit_burst", 200)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Simulation.TickMs <= 0 {
		return nil, fmt.Errorf("config: simulation.tick_ms must be positive, got %d", cfg.Simulation.TickMs)
	}
	return cfg, nil
}
