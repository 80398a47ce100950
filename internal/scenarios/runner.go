package scenarios

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thruflo/todomvc-e2e/internal/logging"
	"github.com/thruflo/todomvc-e2e/internal/todomvc"
)

// Result is the outcome of one scenario run.
type Result struct {
	Name     string
	Group    Group
	RunID    string
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario succeeded.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Report collects the results of a run in execution order.
type Report struct {
	Results  []Result
	Duration time.Duration
	// Aborted is set when the run stopped before every scenario ran, because
	// ctx ended or FailFast tripped.
	Aborted bool
}

// Passed returns the number of passing scenarios.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failing scenarios.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// OK reports whether every scenario that ran passed and none was skipped.
func (r *Report) OK() bool {
	return r.Failed() == 0 && !r.Aborted
}

// Runner executes scenarios one after another on a single page.
type Runner struct {
	Page *todomvc.Page
	Log  *logging.Logger
	// FailFast stops the run after the first failing scenario.
	FailFast bool
	// OnResult, if set, is called after each scenario.
	OnResult func(Result)
}

// Run executes scenarios in order. Each one opens the app, performs its steps
// and then clears storage, whether or not the steps succeeded. A storage
// clear failure fails a scenario that otherwise passed.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) *Report {
	log := r.Log
	if log == nil {
		log = logging.Default()
	}

	start := time.Now()
	report := &Report{Results: make([]Result, 0, len(scenarios))}
	for i, s := range scenarios {
		if ctx.Err() != nil {
			log.Warn("run cancelled", "remaining", len(scenarios)-i)
			report.Aborted = true
			break
		}

		res := r.runOne(ctx, log, s)
		report.Results = append(report.Results, res)
		if r.OnResult != nil {
			r.OnResult(res)
		}

		if !res.Passed() && r.FailFast && i < len(scenarios)-1 {
			log.Warn("stopping after first failure", "scenario", s.Name)
			report.Aborted = true
			break
		}
	}
	report.Duration = time.Since(start)
	return report
}

func (r *Runner) runOne(ctx context.Context, log *logging.Logger, s Scenario) Result {
	res := Result{Name: s.Name, Group: s.Group, RunID: uuid.NewString()}
	log = log.WithFields(map[string]interface{}{"scenario": s.Name, "run_id": res.RunID})
	page := r.Page.WithLogger(log)

	log.Info("scenario started", "group", string(s.Group))
	start := time.Now()

	err := page.Open(ctx)
	if err == nil {
		err = todomvc.Run(ctx, page, s.Steps...)
	}
	clearCtx, cancel := cleanupContext(ctx)
	defer cancel()
	if clearErr := page.ClearStorage(clearCtx); clearErr != nil {
		log.Warn("failed to clear storage", "error", clearErr)
		if err == nil {
			err = fmt.Errorf("cleanup: %w", clearErr)
		}
	}

	res.Duration = time.Since(start)
	res.Err = err
	if err != nil {
		log.Error("scenario failed", "error", err, "duration", res.Duration)
	} else {
		log.Info("scenario passed", "duration", res.Duration)
	}
	return res
}

// cleanupContext returns a context for clearing storage that outlives a
// cancelled ctx by at most cleanupTimeout.
func cleanupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx.Err() == nil {
		return ctx, func() {}
	}
	return context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
}

const cleanupTimeout = 5 * time.Second

// ErrFailures is returned by Report.Err when a scenario failed.
var ErrFailures = errors.New("scenarios failed")

// Err summarizes the report as an error, nil when it is OK.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	if r.Failed() == 0 {
		return fmt.Errorf("run aborted after %d of the selected scenarios", len(r.Results))
	}
	return fmt.Errorf("%w: %d of %d", ErrFailures, r.Failed(), len(r.Results))
}
