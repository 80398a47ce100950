package testutil

import (
	"context"
	"testing"
	"time"
)

// Default timeouts for browser-backed tests.
const (
	// DefaultBrowserTimeout bounds launching a browser and running one
	// scenario against it.
	DefaultBrowserTimeout = 2 * time.Minute

	// DefaultFakeTimeout bounds a test that drives FakePage only.
	DefaultFakeTimeout = 10 * time.Second

	// DefaultTestBuffer is subtracted from the test deadline to leave time
	// for closing browsers before the test binary times out.
	DefaultTestBuffer = 10 * time.Second
)

// Short polling settings for page tests against FakePage, where every
// condition either holds on the first poll or never does.
const (
	FastAssertTimeout = 200 * time.Millisecond
	FastPollInterval  = 10 * time.Millisecond
)

// ContextWithTestDeadline returns a context that ends DefaultTestBuffer before
// the test deadline, or after fallback if the test has none.
//
//	func TestSomething(t *testing.T) {
//	    ctx, cancel := testutil.ContextWithTestDeadline(t, time.Minute)
//	    defer cancel()
//	}
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadlineBuffer(t, fallback, DefaultTestBuffer)
}

// ContextWithTestDeadlineBuffer is ContextWithTestDeadline with a custom
// buffer. An adjusted deadline already in the past falls back to fallback.
func ContextWithTestDeadlineBuffer(t *testing.T, fallback, buffer time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-buffer)
		if time.Until(adjusted) > 0 {
			t.Logf("Using test deadline: %v (buffer: %v)", time.Until(adjusted).Round(time.Second), buffer)
			return context.WithDeadline(context.Background(), adjusted)
		}
	}

	t.Logf("Using fallback timeout: %v", fallback)
	return context.WithTimeout(context.Background(), fallback)
}

// BrowserContext returns a context suited to launching a real browser and
// running a scenario.
func BrowserContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultBrowserTimeout)
}

// FakeContext returns a context for tests against FakePage.
func FakeContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultFakeTimeout)
}
