package todomvc

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/thruflo/todomvc-e2e/internal/browser"
	"github.com/thruflo/todomvc-e2e/internal/config"
	"github.com/thruflo/todomvc-e2e/internal/fixture"
	"github.com/thruflo/todomvc-e2e/internal/logging"
	"github.com/thruflo/todomvc-e2e/internal/schema"
)

// Options configures a Page.
type Options struct {
	// BaseURL is the location of the app.
	BaseURL string
	// StorageKey is the localStorage key the app reads its todos from.
	StorageKey string
	// AssertTimeout is how long lookups and assertions keep polling.
	AssertTimeout time.Duration
	// PollInterval is the pause between two polls.
	PollInterval time.Duration
	Logger       *logging.Logger
}

// OptionsFromConfig maps the suite configuration onto page options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:       cfg.App.URL,
		StorageKey:    cfg.App.StorageKey,
		AssertTimeout: cfg.Timeouts.Assert,
		PollInterval:  cfg.Timeouts.Poll,
	}
}

// Page is the session handle for one browser page showing the app.
type Page struct {
	drv  browser.Driver
	opts Options
	log  *logging.Logger
}

// NewPage wraps drv. Zero option values fall back to the config defaults.
func NewPage(drv browser.Driver, opts Options) *Page {
	if opts.BaseURL == "" {
		opts.BaseURL = config.DefaultURL
	}
	if opts.StorageKey == "" {
		opts.StorageKey = fixture.DefaultStorageKey
	}
	if opts.AssertTimeout <= 0 {
		opts.AssertTimeout = config.DefaultAssertTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = config.DefaultPollInterval
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Page{drv: drv, opts: opts, log: log.With("component", "page")}
}

// Driver returns the underlying driver.
func (p *Page) Driver() browser.Driver {
	return p.drv
}

// BaseURL returns the app location.
func (p *Page) BaseURL() string {
	return p.opts.BaseURL
}

// WithLogger returns a copy of the page that logs through log.
func (p *Page) WithLogger(log *logging.Logger) *Page {
	cp := *p
	cp.log = log.With("component", "page")
	return &cp
}

// Open navigates to the app, discarding the current page state.
func (p *Page) Open(ctx context.Context) error {
	p.log.Debug("open", "url", p.opts.BaseURL)
	if err := p.drv.Navigate(ctx, p.opts.BaseURL); err != nil {
		return setupError("open", err)
	}
	return nil
}

// OnPage reports whether the browser currently shows the app document.
// The URL fragment is ignored, so any filter route counts.
func (p *Page) OnPage(ctx context.Context) (bool, error) {
	loc, err := p.drv.Location(ctx)
	if err != nil {
		return false, setupError("read location", err)
	}
	return sameDocument(loc, p.opts.BaseURL), nil
}

// EnsureOnPage navigates to the app unless the browser already shows it.
func (p *Page) EnsureOnPage(ctx context.Context) error {
	on, err := p.OnPage(ctx)
	if err != nil {
		return err
	}
	if on {
		return nil
	}
	return p.Open(ctx)
}

// Given replaces the app's persisted todos with tasks and reloads the page so
// they are rendered.
func (p *Page) Given(ctx context.Context, tasks ...fixture.Task) error {
	if err := p.EnsureOnPage(ctx); err != nil {
		return err
	}

	payload, err := fixture.Marshal(tasks...)
	if err != nil {
		return setupError("given", err)
	}
	if err := schema.ValidateStorage(payload); err != nil {
		return setupError("given", err)
	}
	script, err := fixture.StorageScript(p.opts.StorageKey, payload)
	if err != nil {
		return setupError("given", err)
	}

	p.log.Debug("seed storage", "key", p.opts.StorageKey, "tasks", len(tasks))
	if err := p.drv.Eval(ctx, script); err != nil {
		return setupError("given", fmt.Errorf("write storage: %w", err))
	}
	if err := p.drv.Reload(ctx); err != nil {
		return setupError("given", err)
	}
	return nil
}

// GivenAt seeds tasks and then switches to filter.
func (p *Page) GivenAt(ctx context.Context, filter Filter, tasks ...fixture.Task) error {
	if err := p.Given(ctx, tasks...); err != nil {
		return err
	}
	return p.Filter(ctx, filter)
}

// ClearStorage wipes everything the app persisted.
func (p *Page) ClearStorage(ctx context.Context) error {
	if err := p.drv.Eval(ctx, fixture.ClearStorageScript); err != nil {
		return setupError("clear storage", err)
	}
	return nil
}

// sameDocument compares two URLs ignoring fragments and a trailing slash.
func sameDocument(a, b string) bool {
	return normalizeDocumentURL(a) == normalizeDocumentURL(b)
}

func normalizeDocumentURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		raw, _, _ = strings.Cut(raw, "#")
		return strings.TrimSuffix(raw, "/")
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	return u.String()
}
