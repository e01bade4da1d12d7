package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pledgekit/reconciler/internal/domain/bank"
	"github.com/pledgekit/reconciler/internal/domain/matcher"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
inputs:
  members_file: data/members.csv
  supporters_file: data/supporters.csv
storage:
  database_path: /tmp/recon.db
api:
  addr: ":9090"
  allowed_origins:
    - http://localhost:3000
observability:
  logging:
    level: debug
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "data/members.csv", cfg.Inputs.MembersFile)
	assert.Equal(t, "/tmp/recon.db", cfg.Storage.DatabasePath)
	assert.Equal(t, ":9090", cfg.API.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.API.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("RECONCILER_DB_PATH", "/var/lib/recon.db")
	path := writeConfig(t, `
storage:
  database_path: ${RECONCILER_DB_PATH}
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/recon.db", cfg.Storage.DatabasePath)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	// A minimal file gets the built-in banks and thresholds.
	path := writeConfig(t, `
inputs:
  members_file: members.csv
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, bank.DefaultSources(), cfg.Sources)
	assert.Equal(t, matcher.DefaultConfig(), cfg.Matcher)
	assert.Equal(t, "reconciler.db", cfg.Storage.DatabasePath)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoad_SourcesOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - code: sh
    name: 신한은행
    file: data/sh.csv
    columns:
      date: 거래일시
      depositor: 내용
      amount: 입금
    extract: hangul_name
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "sh", cfg.Sources[0].Code)
	assert.Equal(t, bank.ExtractHangulName, cfg.Sources[0].Extract)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MEMBERS_FILE", "/data/m.csv")
	t.Setenv("API_ADDR", ":7070")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := LoadFromEnv()

	assert.Equal(t, "/data/m.csv", cfg.Inputs.MembersFile)
	assert.Equal(t, ":7070", cfg.API.Addr)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.NotEmpty(t, cfg.Sources)
}

func TestLoadOrEnvWithPath_FallsBackToEnv(t *testing.T) {
	t.Setenv("RECONCILER_DB_PATH", "/tmp/fallback.db")

	cfg := LoadOrEnvWithPath(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "/tmp/fallback.db", cfg.Storage.DatabasePath)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_VAL", "42")

	assert.Equal(t, 42, getEnvInt("TEST_INT_VAL", 7))
	assert.Equal(t, 7, getEnvInt("TEST_INT_MISSING", 7))

	t.Setenv("TEST_INT_VAL", "not-a-number")
	assert.Equal(t, 7, getEnvInt("TEST_INT_VAL", 7))
}
