package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thruflo/todomvc-e2e/internal/config"
)

// SetupConfigDir creates a temporary directory holding a todomvc-e2e.yaml with
// content, or no config file when content is empty. The environment variables
// that override config are cleared for the duration of the test.
func SetupConfigDir(t *testing.T, content string) string {
	t.Helper()

	ClearConfigEnv(t)
	dir := t.TempDir()
	if content != "" {
		WriteTestFile(t, dir, config.DefaultConfigFile, []byte(content))
	}
	return dir
}

// ClearConfigEnv blanks every environment variable config.Load reads.
func ClearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvURL,
		config.EnvStorageKey,
		config.EnvDriver,
		config.EnvHeadless,
		config.EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
}

// FindProjectRoot walks up from the working directory to the directory
// holding go.mod. It returns "" when there is none.
func FindProjectRoot(t *testing.T) string {
	t.Helper()
	return findProjectRootNoTest()
}

func findProjectRootNoTest() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadE2EConfig loads the suite configuration from the project root, the way
// the CLI does. Skips the test in short mode.
func LoadE2EConfig(t *testing.T) *config.Config {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	cfg, err := TryLoadE2EConfig()
	require.NoError(t, err)
	return cfg
}

// TryLoadE2EConfig is LoadE2EConfig for TestMain, where no *testing.T exists.
func TryLoadE2EConfig() (*config.Config, error) {
	root := findProjectRootNoTest()
	if root == "" {
		root = "."
	}
	return config.Load(root)
}

// WriteTestFile writes content to relativePath under basePath, creating
// parent directories as needed.
func WriteTestFile(t *testing.T, basePath, relativePath string, content []byte) {
	t.Helper()
	fullPath := filepath.Join(basePath, relativePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, content, 0o644))
}
