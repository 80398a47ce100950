//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/todomvc-e2e/internal/browser"
	"github.com/thruflo/todomvc-e2e/internal/config"
	"github.com/thruflo/todomvc-e2e/internal/fixture"
	"github.com/thruflo/todomvc-e2e/internal/logging"
	"github.com/thruflo/todomvc-e2e/internal/scenarios"
	"github.com/thruflo/todomvc-e2e/internal/testutil"
	"github.com/thruflo/todomvc-e2e/internal/todomvc"
)

// launch starts a browser for engine, or for the configured driver when
// engine is empty, and closes it when the test ends.
func launch(t *testing.T, engine string) (*todomvc.Page, *config.Config) {
	t.Helper()

	cfg := testutil.LoadE2EConfig(t)
	if engine != "" {
		cfg.Browser.Driver = engine
	}

	ctx, cancel := testutil.BrowserContext(t)
	t.Cleanup(cancel)

	drv, err := browser.Launch(ctx, browser.Options{
		Engine:        cfg.Browser.Driver,
		Headless:      cfg.Browser.Headless,
		ActionTimeout: cfg.Timeouts.Action,
	})
	if err != nil {
		t.Skipf("browser %s not available: %v", cfg.Browser.Driver, err)
	}

	name := t.Name()
	testutil.RegisterDriver(name, drv)
	t.Cleanup(func() {
		testutil.UnregisterDriver(name)
		if err := drv.Close(); err != nil {
			t.Logf("cleanup: failed to close browser: %v", err)
		}
	})

	opts := todomvc.OptionsFromConfig(cfg)
	opts.Logger = logging.Default()
	return todomvc.NewPage(drv, opts), cfg
}

func TestScenarios(t *testing.T) {
	page, _ := launch(t, "")
	ctx, cancel := testutil.BrowserContext(t)
	defer cancel()

	runner := &scenarios.Runner{Page: page, Log: logging.Default()}
	report := runner.Run(ctx, scenarios.All())

	for _, res := range report.Results {
		t.Run(res.Name, func(t *testing.T) {
			assert.NoError(t, res.Err, "run %s", res.RunID)
		})
	}
	assert.False(t, report.Aborted)
}

func TestDriverContract(t *testing.T) {
	for _, engine := range []string{browser.EnginePlaywright, browser.EngineChromedp} {
		t.Run(engine, func(t *testing.T) {
			page, cfg := launch(t, engine)
			ctx, cancel := testutil.BrowserContext(t)
			defer cancel()
			drv := page.Driver()

			require.NoError(t, page.Open(ctx))
			on, err := page.OnPage(ctx)
			require.NoError(t, err)
			assert.True(t, on)

			_, err = drv.Query(ctx, "#no-such-element")
			assert.ErrorIs(t, err, browser.ErrNotFound)

			tasks := testutil.SampleTrickyTasks()
			require.NoError(t, page.Given(ctx, tasks...))
			require.NoError(t, page.ExpectTasks(ctx, testutil.Texts(tasks)...))

			require.NoError(t, page.GivenAt(ctx, todomvc.ShowActive, testutil.SampleMixedTasks()...))
			require.NoError(t, page.ExpectVisibleTasks(ctx, "a", "c"))
			require.NoError(t, page.ExpectTasks(ctx, "a", "b", "c"))

			loc, err := drv.Location(ctx)
			require.NoError(t, err)
			assert.Contains(t, loc, todomvc.ShowActive.Fragment())

			require.NoError(t, page.Given(ctx, fixture.ATask("x", fixture.Active)))
			require.NoError(t, page.ClearStorage(ctx))
			require.NoError(t, drv.Reload(ctx))
			require.NoError(t, page.ExpectNoTasks(ctx))

			t.Logf("checked %s against %s", engine, cfg.App.URL)
		})
	}
}

func TestAppRules(t *testing.T) {
	page, _ := launch(t, "")
	ctx, cancel := testutil.BrowserContext(t)
	defer cancel()
	t.Cleanup(func() {
		if err := page.ClearStorage(ctx); err != nil {
			t.Logf("cleanup: %v", err)
		}
	})

	t.Run("toggle all on a mixed list", func(t *testing.T) {
		require.NoError(t, page.Given(ctx, testutil.SampleMixedTasks()...))

		require.NoError(t, page.ToggleAll(ctx))
		require.NoError(t, page.ExpectItemsLeft(ctx, 0))

		require.NoError(t, page.ToggleAll(ctx))
		require.NoError(t, page.ExpectItemsLeft(ctx, 3))
	})

	t.Run("clear completed with nothing completed", func(t *testing.T) {
		require.NoError(t, page.Given(ctx, fixture.Uniform(fixture.Active, "1", "2")...))

		require.NoError(t, page.ClearCompleted(ctx))
		require.NoError(t, page.ExpectTasks(ctx, "1", "2"))
		require.NoError(t, page.ExpectItemsLeft(ctx, 2))
	})
}
