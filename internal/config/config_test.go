package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripwise/internal/catalog"
)

// isolate points HOME and TRIPWISE_CONFIG into a temp dir and clears the
// TRIPWISE_* variables a developer machine might carry.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TRIPWISE_CONFIG", filepath.Join(dir, "config.yaml"))
	for _, name := range []string{
		"TRIPWISE_STORE_DRIVER", "TRIPWISE_DB", "TRIPWISE_REDIS_ADDR", "TRIPWISE_REDIS_DB",
		"TRIPWISE_CATALOG_MODE", "TRIPWISE_CATALOG_ENDPOINT", "TRIPWISE_CATALOG_TIMEOUT_MS",
		"TRIPWISE_CATALOG_MAX_RETRIES", "TRIPWISE_CATALOG_LOG_CALLS",
		"TRIPWISE_HANDOFF_CHANNEL", "TRIPWISE_HANDOFF_TO", "TRIPWISE_SMTP_HOST",
		"TRIPWISE_LOG_LEVEL", "TRIPWISE_LOG_FORMAT", "TRIPWISE_LOG_FILE",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("", filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(dir, ".tripwise", "tripwise.db"), cfg.Store.Path)
	assert.Equal(t, catalog.ModeStatic, cfg.CatalogSettings().Mode)
	assert.Equal(t, 4000, cfg.Catalog.TimeoutMs)
	assert.Equal(t, 1, cfg.Catalog.MaxRetries)
	assert.Equal(t, "stdout", cfg.Handoff.Channel)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: memory
catalog:
  mode: http
  endpoint: https://catalog.example.test/api
  max_retries: 0
handoff:
  channel: smtp
  recipient: advisor@example.test
  smtp:
    host: mail.example.test
    from: planner@example.test
`), 0o600))

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, catalog.ModeHTTP, cfg.CatalogSettings().Mode)
	assert.Equal(t, "https://catalog.example.test/api", cfg.Catalog.Endpoint)
	assert.Equal(t, 0, cfg.Catalog.MaxRetries)
	assert.Equal(t, 4000, cfg.Catalog.TimeoutMs, "unset keys keep their default")
	assert.Equal(t, "advisor@example.test", cfg.Handoff.Recipient)

	smtp := cfg.SMTPSettings()
	assert.Equal(t, "mail.example.test", smtp.Host)
	assert.Equal(t, "587", smtp.Port)
	assert.True(t, smtp.IsConfigured())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n  format: json\n"), 0o600))

	t.Setenv("TRIPWISE_LOG_LEVEL", "debug")
	t.Setenv("TRIPWISE_CATALOG_TIMEOUT_MS", "2500")
	t.Setenv("TRIPWISE_CATALOG_MAX_RETRIES", "-3")
	t.Setenv("TRIPWISE_CATALOG_LOG_CALLS", "true")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2500, cfg.Catalog.TimeoutMs)
	assert.Equal(t, 1, cfg.Catalog.MaxRetries, "negative retries are ignored")
	assert.True(t, cfg.Catalog.LogCalls)
}

func TestLoad_DotEnvFillsUnsetVariables(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRIPWISE_HANDOFF_TO=office@example.test\n"), 0o600))
	// godotenv.Load sets the variable in the process; t.Setenv restores it.
	t.Setenv("TRIPWISE_HANDOFF_TO", "")
	require.NoError(t, os.Unsetenv("TRIPWISE_HANDOFF_TO"))

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "office@example.test", cfg.Handoff.Recipient)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		want string
	}{
		{"store driver", "TRIPWISE_STORE_DRIVER", "postgres", "unknown store driver"},
		{"catalog mode", "TRIPWISE_CATALOG_MODE", "ftp", "mode"},
		{"handoff channel", "TRIPWISE_HANDOFF_CHANNEL", "fax", "unknown handoff channel"},
		{"log format", "TRIPWISE_LOG_FORMAT", "xml", "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			t.Setenv(tt.env, tt.val)

			_, err := Load("", filepath.Join(dir, "missing.env"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unterminated"), 0o600))

	_, err := Load(path, filepath.Join(dir, "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSave_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default(dir)
	cfg.Handoff.Recipient = "advisor@example.test"
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "advisor@example.test", loaded.Handoff.Recipient)
	assert.Equal(t, cfg.Store.Path, loaded.Store.Path)
}
