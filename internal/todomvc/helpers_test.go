package todomvc

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thruflo/todomvc-e2e/internal/logging"
	"github.com/thruflo/todomvc-e2e/internal/testutil"
)

func quietLogger() *logging.Logger {
	log := logging.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestPage(t *testing.T) (*Page, *testutil.FakePage, context.Context) {
	t.Helper()

	fake := testutil.NewFakePage()
	page := NewPage(fake, Options{
		BaseURL:       testutil.FakeURL,
		AssertTimeout: testutil.FastAssertTimeout,
		PollInterval:  testutil.FastPollInterval,
		Logger:        quietLogger(),
	})
	ctx, cancel := testutil.FakeContext(t)
	t.Cleanup(cancel)
	return page, fake, ctx
}

// openTestPage is newTestPage with the app already loaded.
func openTestPage(t *testing.T) (*Page, *testutil.FakePage, context.Context) {
	t.Helper()
	page, fake, ctx := newTestPage(t)
	require.NoError(t, page.Open(ctx))
	return page, fake, ctx
}
