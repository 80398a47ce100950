// Package browser defines the minimal automation capability set the suite
// needs from a browser and provides Playwright and Chrome DevTools Protocol
// implementations of it.
//
// Selectors are CSS selectors. Element operations act on the first match.
package browser

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrNotFound is returned by Query when no element matches the selector.
var ErrNotFound = errors.New("element not found")

// Node is a read-only snapshot of one DOM element.
type Node struct {
	// Text is the element's trimmed textContent, reported for hidden
	// elements too.
	Text string `json:"text"`
	// Visible follows jQuery's :visible rule: the element has a layout box.
	Visible bool `json:"visible"`
	// Class is the raw class attribute.
	Class string `json:"class"`
}

// HasClass reports whether the node carries the given CSS class.
func (n Node) HasClass(name string) bool {
	return slices.Contains(strings.Fields(n.Class), name)
}

// Key is a named keyboard key.
type Key string

// Keys used by the suite, named as Playwright names them.
const (
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
	KeyTab    Key = "Tab"
)

// Driver is a single browser page under automation. Element operations wait
// for their target the way the underlying engine does and fail once ctx or
// the engine's own action timeout expires.
type Driver interface {
	// Navigate loads url and waits for the document to load.
	Navigate(ctx context.Context, url string) error
	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)
	// Reload reloads the current page.
	Reload(ctx context.Context) error
	// Eval executes script in the page and discards its result.
	Eval(ctx context.Context, script string) error

	// Query snapshots the first element matching selector.
	Query(ctx context.Context, selector string) (Node, error)
	// QueryAll snapshots every element matching selector, in document order.
	QueryAll(ctx context.Context, selector string) ([]Node, error)

	Click(ctx context.Context, selector string) error
	DoubleClick(ctx context.Context, selector string) error
	Hover(ctx context.Context, selector string) error
	// SetValue replaces the value of an input element.
	SetValue(ctx context.Context, selector, value string) error
	// Press sends key to the focused target element.
	Press(ctx context.Context, selector string, key Key) error

	// Close releases the page and the browser behind it.
	Close() error
}

// Supported engines.
const (
	EnginePlaywright = "playwright"
	EngineChromedp   = "chromedp"
)

// Options configures Launch.
type Options struct {
	Engine   string
	Headless bool
	// ActionTimeout bounds each driver call.
	ActionTimeout time.Duration
}

// Launch starts a browser with the selected engine and opens a blank page.
func Launch(ctx context.Context, opts Options) (Driver, error) {
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 10 * time.Second
	}
	switch opts.Engine {
	case EnginePlaywright:
		return launchPlaywright(opts)
	case EngineChromedp:
		return launchChromedp(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown browser engine %q", opts.Engine)
	}
}

// actionTimeout returns the smaller of the engine timeout and the time left
// before ctx's deadline.
func actionTimeout(ctx context.Context, limit time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < limit {
			if left < 0 {
				return 0
			}
			return left
		}
	}
	return limit
}
