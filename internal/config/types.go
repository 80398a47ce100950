package config

import "time"

// App describes the page under test.
type App struct {
	URL        string `yaml:"url"`
	StorageKey string `yaml:"storage_key"`
}

// Browser selects and configures the automation engine.
type Browser struct {
	Driver   string `yaml:"driver"`
	Headless bool   `yaml:"headless"`
}

// Timeouts bounds the blocking operations of a scenario.
type Timeouts struct {
	// Action bounds a single driver call (click, navigate, script).
	Action time.Duration `yaml:"action"`
	// Assert is how long an assertion or element lookup keeps polling.
	Assert time.Duration `yaml:"assert"`
	// Poll is the interval between two checks of a polled condition.
	Poll time.Duration `yaml:"poll"`
}

// Log configures diagnostic output.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents the todomvc-e2e.yaml file.
type Config struct {
	App      App      `yaml:"app"`
	Browser  Browser  `yaml:"browser"`
	Timeouts Timeouts `yaml:"timeouts"`
	Log      Log      `yaml:"log"`
}

// Supported browser drivers.
const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

// Environment variables that override the config file.
const (
	EnvURL        = "TODOMVC_URL"
	EnvStorageKey = "TODOMVC_STORAGE_KEY"
	EnvDriver     = "TODOMVC_DRIVER"
	EnvHeadless   = "HEADLESS"
	EnvLogLevel   = "TODOMVC_LOG_LEVEL"
)
