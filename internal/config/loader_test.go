package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Default(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvDriver, "")
	t.Setenv(EnvHeadless, "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultURL, cfg.App.URL)
	assert.Equal(t, "todos-troopjs", cfg.App.StorageKey)
	assert.Equal(t, DriverPlaywright, cfg.Browser.Driver)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, DefaultActionTimeout, cfg.Timeouts.Action)
	assert.Equal(t, 4*time.Second, cfg.Timeouts.Assert)
	assert.Equal(t, 100*time.Millisecond, cfg.Timeouts.Poll)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ValidFile(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvDriver, "")
	t.Setenv(EnvHeadless, "")

	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, `app:
  url: http://localhost:8080/
  storage_key: todos-vanilla
browser:
  driver: chromedp
  headless: false
timeouts:
  action: 30s
  assert: 2s
  poll: 50ms
log:
  level: debug
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/", cfg.App.URL)
	assert.Equal(t, "todos-vanilla", cfg.App.StorageKey)
	assert.Equal(t, DriverChromedp, cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.Action)
	assert.Equal(t, 2*time.Second, cfg.Timeouts.Assert)
	assert.Equal(t, 50*time.Millisecond, cfg.Timeouts.Poll)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_PartialFile(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvDriver, "")

	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, `browser:
  driver: chromedp
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverChromedp, cfg.Browser.Driver)
	assert.Equal(t, DefaultURL, cfg.App.URL)
	assert.Equal(t, DefaultAssertTimeout, cfg.Timeouts.Assert)
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Setenv(EnvURL, "")

	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, cfg.App.URL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, `app: [`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_SchemaRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, `app:
  url: http://localhost/
  storgae_key: typo
`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoad_SchemaRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, `browser:
  driver: selenium
`)

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvHeadless, "")
	t.Setenv(EnvDriver, "chromedp")

	dir := t.TempDir()
	writeFile(t, dir, EnvFile, "TODOMVC_URL=http://127.0.0.1:9000/\nTODOMVC_DRIVER=playwright\nHEADLESS=false\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000/", cfg.App.URL, ".env should fill unset variables")
	assert.Equal(t, DriverChromedp, cfg.Browser.Driver, "process environment should win over .env")
	assert.False(t, cfg.Browser.Headless)
}

func TestLoadEnvFile(t *testing.T) {
	t.Parallel()

	env, err := LoadEnvFile(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, env)

	dir := t.TempDir()
	writeFile(t, dir, EnvFile, "# comment\nA=1\nB=\"two words\"\n")
	env, err = LoadEnvFile(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two words"}, env)
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvURL:        "http://example.test/",
		EnvStorageKey: "todos-x",
		EnvDriver:     "ChromeDP",
		EnvHeadless:   "0",
		EnvLogLevel:   "INFO",
	}
	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg, mapLookup(env)))

	assert.Equal(t, "http://example.test/", cfg.App.URL)
	assert.Equal(t, "todos-x", cfg.App.StorageKey)
	assert.Equal(t, DriverChromedp, cfg.Browser.Driver)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "info", cfg.Log.Level)

	cfg = DefaultConfig()
	err := ApplyEnv(&cfg, mapLookup(map[string]string{EnvHeadless: "maybe"}))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	cfg = DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg, mapLookup(map[string]string{EnvURL: "  "})))
	assert.Equal(t, DefaultURL, cfg.App.URL, "blank values are ignored")
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid default", func(*Config) {}, ""},
		{"file url", func(c *Config) { c.App.URL = "file:///tmp/todomvc/index.html" }, ""},
		{"empty url", func(c *Config) { c.App.URL = "" }, "app.url"},
		{"relative url", func(c *Config) { c.App.URL = "/index.html" }, "app.url"},
		{"http without host", func(c *Config) { c.App.URL = "http:///x" }, "app.url"},
		{"empty storage key", func(c *Config) { c.App.StorageKey = "" }, "app.storage_key"},
		{"unknown driver", func(c *Config) { c.Browser.Driver = "selenium" }, "browser.driver"},
		{"zero action timeout", func(c *Config) { c.Timeouts.Action = 0 }, "timeouts.action"},
		{"zero assert timeout", func(c *Config) { c.Timeouts.Assert = 0 }, "timeouts.assert"},
		{"zero poll", func(c *Config) { c.Timeouts.Poll = 0 }, "timeouts.poll"},
		{"poll longer than assert", func(c *Config) { c.Timeouts.Poll = 5 * time.Second }, "timeouts.poll"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&cfg)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
