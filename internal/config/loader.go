package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thruflo/todomvc-e2e/internal/fixture"
	"github.com/thruflo/todomvc-e2e/internal/logging"
	"github.com/thruflo/todomvc-e2e/internal/schema"
)

// File names looked up in the base directory.
const (
	DefaultConfigFile = "todomvc-e2e.yaml"
	EnvFile           = ".env"
)

// Default values for Config. The assert and poll values match Selenide's
// defaults, which the original suite was written against.
const (
	DefaultURL           = "https://todomvc4tasj.herokuapp.com/"
	DefaultDriver        = DriverPlaywright
	DefaultHeadless      = true
	DefaultActionTimeout = 10 * time.Second
	DefaultAssertTimeout = 4 * time.Second
	DefaultPollInterval  = 100 * time.Millisecond
	DefaultLogLevel      = "warn"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		App: App{
			URL:        DefaultURL,
			StorageKey: fixture.DefaultStorageKey,
		},
		Browser: Browser{
			Driver:   DefaultDriver,
			Headless: DefaultHeadless,
		},
		Timeouts: Timeouts{
			Action: DefaultActionTimeout,
			Assert: DefaultAssertTimeout,
			Poll:   DefaultPollInterval,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads todomvc-e2e.yaml and .env from basePath. A missing config file
// yields the defaults; the process environment wins over .env, and both win
// over the file.
func Load(basePath string) (*Config, error) {
	return load(filepath.Join(basePath, DefaultConfigFile), false)
}

// LoadFile reads an explicitly named config file, which must exist. The .env
// file is looked up next to it.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && !required:
	case os.IsNotExist(err):
		return nil, fmt.Errorf("config file not found: %s", path)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	envVars, err := LoadEnvFile(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(&cfg, chainLookup(os.LookupEnv, mapLookup(envVars))); err != nil {
		return nil, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// decode checks the document against the config schema, then unmarshals it
// over cfg so unset fields keep their defaults.
func decode(data []byte, cfg *Config) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if doc == nil {
		return nil
	}

	jsonDoc, err := schema.ToJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := schema.ValidateConfig(jsonDoc); err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// LoadEnvFile parses the .env file in dir. A missing file yields an empty map.
func LoadEnvFile(dir string) (map[string]string, error) {
	envPath := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return make(map[string]string), nil
	}

	env, err := godotenv.Read(envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return env, nil
}

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func chainLookup(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
				return v, true
			}
		}
		return "", false
	}
}

// ApplyEnv overrides cfg from environment variables. Empty values are ignored.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvURL); ok {
		cfg.App.URL = v
	}
	if v, ok := get(EnvStorageKey); ok {
		cfg.App.StorageKey = v
	}
	if v, ok := get(EnvDriver); ok {
		cfg.Browser.Driver = strings.ToLower(v)
	}
	if v, ok := get(EnvHeadless); ok {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return ValidationError{Field: EnvHeadless, Message: fmt.Sprintf("invalid boolean %q", v)}
		}
		cfg.Browser.Headless = headless
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.App.URL == "" {
		return ValidationError{Field: "app.url", Message: "required field is empty"}
	}
	u, err := url.Parse(cfg.App.URL)
	if err != nil {
		return ValidationError{Field: "app.url", Message: err.Error()}
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return ValidationError{Field: "app.url", Message: "missing host"}
		}
	case "file":
	default:
		return ValidationError{Field: "app.url", Message: "must be an http, https or file URL"}
	}
	if cfg.App.StorageKey == "" {
		return ValidationError{Field: "app.storage_key", Message: "required field is empty"}
	}
	switch cfg.Browser.Driver {
	case DriverPlaywright, DriverChromedp:
	default:
		return ValidationError{Field: "browser.driver", Message: fmt.Sprintf("unknown driver %q", cfg.Browser.Driver)}
	}
	if cfg.Timeouts.Action <= 0 {
		return ValidationError{Field: "timeouts.action", Message: "must be positive"}
	}
	if cfg.Timeouts.Assert <= 0 {
		return ValidationError{Field: "timeouts.assert", Message: "must be positive"}
	}
	if cfg.Timeouts.Poll <= 0 {
		return ValidationError{Field: "timeouts.poll", Message: "must be positive"}
	}
	if cfg.Timeouts.Poll > cfg.Timeouts.Assert {
		return ValidationError{Field: "timeouts.poll", Message: "must not exceed timeouts.assert"}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	return nil
}
