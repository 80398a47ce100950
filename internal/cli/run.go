package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thruflo/todomvc-e2e/internal/browser"
	"github.com/thruflo/todomvc-e2e/internal/config"
	"github.com/thruflo/todomvc-e2e/internal/exitcode"
	"github.com/thruflo/todomvc-e2e/internal/logging"
	"github.com/thruflo/todomvc-e2e/internal/scenarios"
	"github.com/thruflo/todomvc-e2e/internal/todomvc"
)

var (
	runConfig   string
	runURL      string
	runDriver   string
	runHeaded   bool
	runFailFast bool
)

// launchBrowser starts the browser for the run command. It can be overridden
// in tests.
var launchBrowser = browser.Launch

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run scenarios against the app",
	Long: `Launches a browser, runs the named scenarios (all of them by default) one
after another and prints a line per scenario plus a summary.

Configuration comes from todomvc-e2e.yaml in the current directory (or the
file named by --config), then .env, then the environment, then flags.

Exit status is 0 when every scenario passed, 1 when any failed, 2 for
configuration errors or unknown scenario names and 3 when the browser
could not be launched.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "", "path to a config file (default: ./todomvc-e2e.yaml if present)")
	runCmd.Flags().StringVar(&runURL, "url", "", "app URL, overrides app.url")
	runCmd.Flags().StringVar(&runDriver, "driver", "", "browser driver (playwright or chromedp), overrides browser.driver")
	runCmd.Flags().BoolVar(&runHeaded, "headed", false, "show the browser window")
	runCmd.Flags().BoolVar(&runFailFast, "fail-fast", false, "stop after the first failing scenario")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadRunConfig()
	if err != nil {
		return exitcode.Wrap(exitcode.ConfigError, err)
	}

	if !verbose {
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return exitcode.Wrap(exitcode.ConfigError, err)
		}
		logging.SetLevel(level)
	}

	selected, err := scenarios.Select(args...)
	if err != nil {
		return exitcode.Wrap(exitcode.ConfigError, err)
	}

	log := logging.With("component", "run")
	log.Info("launching browser", "driver", cfg.Browser.Driver, "headless", cfg.Browser.Headless, "url", cfg.App.URL)

	drv, err := launchBrowser(ctx, browser.Options{
		Engine:        cfg.Browser.Driver,
		Headless:      cfg.Browser.Headless,
		ActionTimeout: cfg.Timeouts.Action,
	})
	if err != nil {
		return exitcode.Wrap(exitcode.BrowserError, fmt.Errorf("failed to launch browser: %w", err))
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Warn("failed to close browser", "error", err)
		}
	}()

	opts := todomvc.OptionsFromConfig(cfg)
	opts.Logger = logging.Default()

	out := cmd.OutOrStdout()
	runner := &scenarios.Runner{
		Page:     todomvc.NewPage(drv, opts),
		Log:      log,
		FailFast: runFailFast,
		OnResult: func(r scenarios.Result) { printResult(out, r) },
	}
	report := runner.Run(ctx, selected)
	printSummary(out, report, len(selected))

	return exitcode.Wrap(exitcode.Failure, report.Err())
}

// loadRunConfig loads the config and applies the run flags on top of it.
func loadRunConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if runConfig != "" {
		cfg, err = config.LoadFile(runConfig)
	} else {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", cwdErr)
		}
		cfg, err = config.Load(cwd)
	}
	if err != nil {
		return nil, err
	}

	if runURL != "" {
		cfg.App.URL = runURL
	}
	if runDriver != "" {
		cfg.Browser.Driver = strings.ToLower(runDriver)
	}
	if runHeaded {
		cfg.Browser.Headless = false
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printResult(w io.Writer, r scenarios.Result) {
	d := r.Duration.Round(time.Millisecond)
	if r.Passed() {
		fmt.Fprintf(w, "PASS  %s (%s)\n", r.Name, d)
		return
	}
	fmt.Fprintf(w, "FAIL  %s (%s)\n", r.Name, d)
	for _, line := range strings.Split(r.Err.Error(), "\n") {
		fmt.Fprintf(w, "      %s\n", line)
	}
}

func printSummary(w io.Writer, report *scenarios.Report, selected int) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d passed, %d failed", report.Passed(), report.Failed())
	if skipped := selected - len(report.Results); skipped > 0 {
		fmt.Fprintf(w, ", %d not run", skipped)
	}
	fmt.Fprintf(w, " in %s\n", report.Duration.Round(time.Millisecond))
}
