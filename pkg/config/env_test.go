package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEnvSet(t *testing.T) {
	t.Setenv("FINHUB_TEST_VAR", "value")
	t.Setenv("FINHUB_BLANK_VAR", "  ")

	assert.True(t, IsEnvSet("FINHUB_TEST_VAR"))
	assert.False(t, IsEnvSet("FINHUB_BLANK_VAR"))
	assert.False(t, IsEnvSet("FINHUB_NONEXISTENT_VAR"))
}

func TestPresence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://secret")
	got := Presence("DATABASE_URL", "FINHUB_MISSING")
	assert.Equal(t, map[string]bool{"DATABASE_URL": true, "FINHUB_MISSING": false}, got)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, SplitList(" a:1, ,b:2 "))
	assert.Empty(t, SplitList(""))
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"DATABASE_DRIVER", "DATABASE_QUERY_TIMEOUT", "SCHEDULER_CRON", "EVENT_BUS_DRIVER"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, "0 0 * * *", cfg.Scheduler.Cron)
	assert.Equal(t, 10*time.Minute, cfg.Scheduler.SweepTimeout)
	assert.Equal(t, "memory", cfg.EventBus.Driver)
	assert.Equal(t, 256, cfg.EventBus.QueueSize)
	assert.Equal(t, 4, cfg.EventBus.Workers)
	assert.Equal(t, "admin", cfg.Auth.Jwt.AdminRole)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"),
		[]byte("DATABASE_QUERY_TIMEOUT=2s\nSCHEDULER_ENABLED=false\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("DATABASE_QUERY_TIMEOUT", "")
	require.NoError(t, os.Unsetenv("DATABASE_QUERY_TIMEOUT"))
	t.Setenv("SCHEDULER_ENABLED", "")
	require.NoError(t, os.Unsetenv("SCHEDULER_ENABLED"))

	cfg, err := Load(".env.test")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.DB.QueryTimeout)
	assert.False(t, cfg.Scheduler.Enabled)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", maskValue(""))
	assert.Equal(t, "****", maskValue("abc"))
	assert.Equal(t, "po****5432", maskValue("postgres://host:5432"))
}

func TestLoad_FindsEnvFileInParent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.parent"),
		[]byte("SCHEDULER_CRON=30 1 * * *\n"), 0o600))
	sub := filepath.Join(dir, "cmd", "server")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)
	t.Setenv("SCHEDULER_CRON", "")
	require.NoError(t, os.Unsetenv("SCHEDULER_CRON"))

	cfg, err := Load(".env.parent")
	require.NoError(t, err)
	assert.Equal(t, "30 1 * * *", cfg.Scheduler.Cron)
}
