package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process-level settings. Engine constants (scoring, rating
// brackets, generator tables) are not configurable and live with the engines.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`

	// LogMode selects the logger encoding: "dev" or "prod".
	LogMode string `yaml:"log_mode"`

	Redis      RedisConfig      `yaml:"redis"`
	Tournament TournamentConfig `yaml:"tournament"`
}

// RedisConfig configures the optional leaderboard cache.
type RedisConfig struct {
	// Addr is host:port. Empty disables the cache.
	Addr string `yaml:"addr"`

	// TTL is how long a cached leaderboard page stays valid.
	TTL time.Duration `yaml:"ttl"`

	// Prefix namespaces cache keys.
	Prefix string `yaml:"prefix"`
}

// TournamentConfig holds the admin-facing tournament knobs.
type TournamentConfig struct {
	// DefaultSeason is used when a qualifier start does not name a season.
	DefaultSeason string `yaml:"default_season"`

	// DefaultRegion is used when a user has no region.
	DefaultRegion string `yaml:"default_region"`

	// FinalistsPerQualifier is the top-N promoted when a qualifier locks.
	FinalistsPerQualifier int `yaml:"finalists_per_qualifier"`
}

// DefaultConfig returns a Config with the standard defaults.
func DefaultConfig() Config {
	return Config{
		LogMode: "dev",
		Redis: RedisConfig{
			TTL:    60 * time.Second,
			Prefix: "mathquest",
		},
		Tournament: TournamentConfig{
			DefaultSeason:         "SEASON_1_DEFAULT",
			DefaultRegion:         "IN",
			FinalistsPerQualifier: 50,
		},
	}
}

// Load builds a Config from defaults, an optional YAML file, and then the
// environment, in increasing priority.
func Load(path string) (Config, error) {
	if path == "" {
		return FromEnv(), nil
	}
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

// FromEnv returns defaults overridden by MATHQUEST_* environment variables.
func FromEnv() Config {
	cfg := DefaultConfig()
	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MATHQUEST_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("MATHQUEST_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("MATHQUEST_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("MATHQUEST_REDIS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Redis.TTL = d
		}
	}
	if v := os.Getenv("MATHQUEST_SEASON"); v != "" {
		cfg.Tournament.DefaultSeason = v
	}
	if v := os.Getenv("MATHQUEST_REGION"); v != "" {
		cfg.Tournament.DefaultRegion = v
	}
	if v := os.Getenv("MATHQUEST_FINALISTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Tournament.FinalistsPerQualifier = n
		}
	}
}

// DefaultDBPath resolves the database file path when none is configured:
// $XDG_DATA_HOME/mathquest/mathquest.db, else ~/.local/share/mathquest/mathquest.db.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mathquest", "mathquest.db"), nil
}
