package scenarios

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/todomvc-e2e/internal/fixture"
	"github.com/thruflo/todomvc-e2e/internal/logging"
	"github.com/thruflo/todomvc-e2e/internal/testutil"
	"github.com/thruflo/todomvc-e2e/internal/todomvc"
)

func newRunner(t *testing.T) (*Runner, *testutil.FakePage) {
	t.Helper()

	log := logging.New()
	log.SetOutput(io.Discard)

	fake := testutil.NewFakePage()
	page := todomvc.NewPage(fake, todomvc.Options{
		BaseURL:       testutil.FakeURL,
		AssertTimeout: testutil.FastAssertTimeout,
		PollInterval:  testutil.FastPollInterval,
		Logger:        log,
	})
	return &Runner{Page: page, Log: log}, fake
}

func failing(name string) Scenario {
	return Scenario{
		Name:  name,
		Group: GroupAll,
		Steps: []todomvc.Action{
			todomvc.Given(fixture.ATask("leftover", fixture.Active)),
			todomvc.AssertTasks("something else"),
		},
	}
}

func TestCatalogPassesAgainstFakePage(t *testing.T) {
	t.Parallel()

	for _, s := range All() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			t.Parallel()

			runner, fake := newRunner(t)
			ctx, cancel := testutil.FakeContext(t)
			defer cancel()

			report := runner.Run(ctx, []Scenario{s})
			require.Len(t, report.Results, 1)
			require.NoError(t, report.Results[0].Err)
			assert.True(t, report.OK())
			testutil.AssertStorageEmpty(t, fake)
		})
	}
}

func TestRunWholeCatalogOnOnePage(t *testing.T) {
	t.Parallel()

	runner, fake := newRunner(t)
	ctx, cancel := testutil.FakeContext(t)
	defer cancel()

	var seen []string
	runner.OnResult = func(r Result) { seen = append(seen, r.Name) }

	report := runner.Run(ctx, All())
	require.NoError(t, report.Err())
	assert.Equal(t, 29, report.Passed())
	assert.Zero(t, report.Failed())
	assert.Len(t, seen, 29)
	assert.Equal(t, 29, fake.CallCount(testutil.OpNavigate), "every scenario opens the app")

	ids := make(map[string]bool)
	for _, r := range report.Results {
		_, err := uuid.Parse(r.RunID)
		require.NoError(t, err)
		ids[r.RunID] = true
	}
	assert.Len(t, ids, 29)
}

func TestRunClearsStorageAfterFailure(t *testing.T) {
	t.Parallel()

	runner, fake := newRunner(t)
	ctx, cancel := testutil.FakeContext(t)
	defer cancel()

	pass, ok := Lookup("CompleteAtAll")
	require.True(t, ok)

	report := runner.Run(ctx, []Scenario{failing("Broken"), pass})
	require.Len(t, report.Results, 2)

	broken := report.Results[0]
	require.Error(t, broken.Err)
	assert.True(t, todomvc.IsKind(broken.Err, todomvc.KindAssertion))
	assert.Contains(t, broken.Err.Error(), "step 2")
	assert.Equal(t, "Broken", broken.Name)

	assert.NoError(t, report.Results[1].Err, "the next scenario starts from clean storage")
	testutil.AssertStorageEmpty(t, fake)

	assert.Equal(t, 1, report.Passed())
	assert.Equal(t, 1, report.Failed())
	require.Error(t, report.Err())
	assert.ErrorIs(t, report.Err(), ErrFailures)
	assert.False(t, report.Aborted)
}

func TestRunFailFast(t *testing.T) {
	t.Parallel()

	runner, _ := newRunner(t)
	runner.FailFast = true
	ctx, cancel := testutil.FakeContext(t)
	defer cancel()

	report := runner.Run(ctx, []Scenario{failing("First"), failing("Second")})
	require.Len(t, report.Results, 1)
	assert.True(t, report.Aborted)
	assert.False(t, report.OK())
}

func TestRunFailFastOnLastScenarioIsNotAborted(t *testing.T) {
	t.Parallel()

	runner, _ := newRunner(t)
	runner.FailFast = true
	ctx, cancel := testutil.FakeContext(t)
	defer cancel()

	report := runner.Run(ctx, []Scenario{failing("Only")})
	require.Len(t, report.Results, 1)
	assert.False(t, report.Aborted)
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	t.Parallel()

	runner, fake := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())

	cancelling := Scenario{
		Name:  "Cancels",
		Group: GroupAll,
		Steps: []todomvc.Action{
			todomvc.Given(fixture.ATask("1", fixture.Active)),
			todomvc.ActionFunc(func(context.Context, *todomvc.Page) error {
				cancel()
				return nil
			}),
			todomvc.Toggle("1"),
		},
	}
	pass, _ := Lookup("CompleteAtAll")

	report := runner.Run(ctx, []Scenario{cancelling, pass})
	require.Len(t, report.Results, 1)
	assert.ErrorIs(t, report.Results[0].Err, context.Canceled)
	assert.True(t, report.Aborted)
	require.Error(t, report.Err())
	testutil.AssertStorageEmpty(t, fake)
}

func TestRunCleanupFailureFailsPassingScenario(t *testing.T) {
	t.Parallel()

	runner, fake := newRunner(t)
	ctx, cancel := testutil.FakeContext(t)
	defer cancel()

	boom := errors.New("storage gone")
	noop := Scenario{
		Name:  "Noop",
		Group: GroupAll,
		Steps: []todomvc.Action{
			todomvc.ActionFunc(func(context.Context, *todomvc.Page) error {
				fake.FailOn(testutil.OpEval, boom)
				return nil
			}),
		},
	}

	report := runner.Run(ctx, []Scenario{noop})
	require.Len(t, report.Results, 1)
	err := report.Results[0].Err
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "cleanup")
}

func TestRunOpenFailure(t *testing.T) {
	t.Parallel()

	runner, fake := newRunner(t)
	fake.FailOn(testutil.OpNavigate, errors.New("net::ERR_CONNECTION_REFUSED"))
	ctx, cancel := testutil.FakeContext(t)
	defer cancel()

	pass, _ := Lookup("CompleteAtAll")
	report := runner.Run(ctx, []Scenario{pass})
	require.Len(t, report.Results, 1)
	assert.True(t, todomvc.IsKind(report.Results[0].Err, todomvc.KindSetup))
}
