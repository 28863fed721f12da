package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default().HTTP.Addr, cfg.HTTP.Addr)
	assert.Equal(t, time.Second, cfg.Interval)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automata.yaml")
	content := `
log_level: debug
interval: 250ms
frontier: fifo
redis:
  addr: localhost:6379
  ttl: 3600
store:
  dir: /var/lib/automata
  fallback_keys: [old]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset fields keep defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, "fifo", cfg.Frontier)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "automata:session:", cfg.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "/var/lib/automata", cfg.Store.Dir)
	assert.Equal(t, []string{"old"}, cfg.Store.FallbackKeys)
	assert.Empty(t, cfg.Store.Key)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Parse([]byte("log_levle: debug\n"), &cfg)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:  "WARN",
		EnvInterval:  "2s",
		EnvAddr:      ":9090",
		EnvRedisAddr: "redis:6379",
		EnvStoreKey:  "c2VjcmV0",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, applyEnv(&cfg, lookup))
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "c2VjcmV0", cfg.Store.Key)

	env[EnvInterval] = "soon"
	assert.Error(t, applyEnv(&cfg, lookup))
}

func TestLoad_EnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  addr: \":7000\"\n"), 0o644))
	t.Setenv(EnvAddr, ":7001")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.HTTP.Addr)
}
