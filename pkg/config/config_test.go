package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "academic_system.db", cfg.Database.Path)
	assert.True(t, cfg.Database.SeedDemo)
	assert.Equal(t, ".", cfg.Reports.Dir)
	assert.Empty(t, cfg.Reports.ExtraFormats)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REPORTS_EXTRA_FORMATS", "CSV, pdf,,")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "bogus")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.Reports.ExtraFormats)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(dir+"/.env", []byte("REPORTS_DIR=./exports\nLOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("REPORTS_DIR")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./exports", cfg.Reports.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
}
