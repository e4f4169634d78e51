package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hanvit.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMinimalConfig(t *testing.T) {
	path := writeConfig(t, "instance: classroom\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "classroom", cfg.Instance)
	assert.Equal(t, ".hanvit", cfg.DataDir)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 1000, cfg.Sync.DebounceMs)
	assert.Equal(t, 200, cfg.Sync.GuardMs)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `instance: classroom
data_dir: /var/lib/hanvit
redis:
  addr: redis.internal:6380
  password: hunter2
  db: 3
sync:
  debounce_ms: 500
  guard_ms: 100
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/hanvit", cfg.DataDir)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 500*time.Millisecond, cfg.Sync.Debounce())
	assert.Equal(t, 100*time.Millisecond, cfg.Sync.Guard())
}

func TestLoadRejectsMissingInstance(t *testing.T) {
	path := writeConfig(t, "data_dir: /tmp/x\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instance is required")
}

func TestLoadRejectsNegativeIntervals(t *testing.T) {
	path := writeConfig(t, `instance: classroom
sync:
  debounce_ms: -10
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync intervals must be positive")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "instance: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestSecretsComeFromEnvironment(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "test-api-key")
	t.Setenv(EnvAdminSecret, "test-admin-secret")

	path := writeConfig(t, "instance: classroom\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-api-key", cfg.GeminiAPIKey)
	assert.Equal(t, "test-admin-secret", cfg.AdminSecret)
}
