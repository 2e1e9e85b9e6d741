package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  address: 127.0.0.1
  port: 9090
  db_path: memory
  seed_path: ./seed.json
  max_body_bytes: 1MB
cache:
  ttl: 300s
security:
  demo_auth: true
  cors:
    allowed_origins: ["https://dash.example.com"]
  rate_limit:
    rps: 20
    burst: 40
  api_keys:
    creator: ["ck_1"]
    admin: ["ak_1"]
logging:
  level: debug
  format: json
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, "memory", cfg.Server.DBPath)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes.Int64())
	assert.Equal(t, 300*time.Second, cfg.Cache.TTL.Duration())
	assert.True(t, cfg.Security.DemoAuth)
	assert.Equal(t, []string{"ck_1"}, cfg.Security.APIKeys.Creator)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAddrDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestDurationForms(t *testing.T) {
	cfg, err := Load(writeConfig(t, "cache:\n  ttl: 90\n"))
	require.NoError(t, err)
	// bare numbers are seconds
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL.Duration())

	cfg, err = Load(writeConfig(t, "cache:\n  ttl: 5m\n"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL.Duration())

	_, err = Load(writeConfig(t, "cache:\n  ttl: soon\n"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FANDASH_ADDR", "0.0.0.0:7070")
	t.Setenv("FANDASH_CACHE_TTL", "120s")
	t.Setenv("FANDASH_API_CREATOR_KEYS", "ck_a, ck_b")
	t.Setenv("FANDASH_DEMO_AUTH", "true")
	t.Setenv("FANDASH_RATE_RPS", "5")

	cfg := &Config{}
	used := LoadEnvOverrides(cfg)
	assert.True(t, used)
	assert.Equal(t, "0.0.0.0:7070", cfg.Addr())
	assert.Equal(t, 120*time.Second, cfg.Cache.TTL.Duration())
	assert.Equal(t, []string{"ck_a", "ck_b"}, cfg.Security.APIKeys.Creator)
	assert.True(t, cfg.Security.DemoAuth)
	assert.Equal(t, 5.0, cfg.Security.RateLimit.RPS)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	t.Setenv("FANDASH_PORT", "7071")

	cfg, envUsed, err := LoadEffective(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.True(t, envUsed)
	assert.Equal(t, "127.0.0.1:7071", cfg.Addr())
	// untouched file values survive
	assert.Equal(t, "./seed.json", cfg.Server.SeedPath)
}

func TestLoadEffectiveMissingFile(t *testing.T) {
	cfg, envUsed, err := LoadEffective(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, envUsed)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestKeySet(t *testing.T) {
	set := KeySet([]string{"a", " b ", "", "a"})
	assert.Len(t, set, 2)
	_, ok := set["b"]
	assert.True(t, ok)
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, "./flag.yaml", ResolveConfigPath("./flag.yaml", true))

	t.Setenv("FANDASH_CONFIG", "/etc/fandash.yaml")
	assert.Equal(t, "/etc/fandash.yaml", ResolveConfigPath("./default.yaml", false))
}
