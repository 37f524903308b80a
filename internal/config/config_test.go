package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 50, cfg.Tournament.FinalistsPerQualifier)
	assert.Equal(t, "SEASON_1_DEFAULT", cfg.Tournament.DefaultSeason)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MATHQUEST_DB", "/tmp/x.db")
	t.Setenv("MATHQUEST_REDIS_ADDR", "localhost:6379")
	t.Setenv("MATHQUEST_REDIS_TTL", "5s")
	t.Setenv("MATHQUEST_FINALISTS", "10")

	cfg := FromEnv()
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 10, cfg.Tournament.FinalistsPerQualifier)
}

func TestFromEnv_IgnoresBadNumbers(t *testing.T) {
	t.Setenv("MATHQUEST_FINALISTS", "lots")
	t.Setenv("MATHQUEST_REDIS_TTL", "soon")

	cfg := FromEnv()
	assert.Equal(t, 50, cfg.Tournament.FinalistsPerQualifier)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mathquest.yaml")
	body := "db_path: /data/a.db\nlog_mode: prod\ntournament:\n  default_region: US\n  finalists_per_qualifier: 20\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("MATHQUEST_DB", "/data/b.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/b.db", cfg.DBPath)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, "US", cfg.Tournament.DefaultRegion)
	assert.Equal(t, 20, cfg.Tournament.FinalistsPerQualifier)
	// Unset keys keep their defaults.
	assert.Equal(t, "SEASON_1_DEFAULT", cfg.Tournament.DefaultSeason)
}

func TestLoad_NoPathReadsEnv(t *testing.T) {
	t.Setenv("MATHQUEST_REGION", "US")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FromEnv(), cfg)
	assert.Equal(t, "US", cfg.Tournament.DefaultRegion)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefaultDBPath_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "mathquest", "mathquest.db"), p)
}
