package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// playwrightDriver drives one Chromium page through Playwright.
type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	timeout time.Duration
}

func launchPlaywright(opts Options) (Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright (install browsers with `go run github.com/playwright-community/playwright-go/cmd/playwright install chromium`): %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))

	return &playwrightDriver{pw: pw, browser: browser, page: page, timeout: opts.ActionTimeout}, nil
}

// timeoutMS returns the Playwright timeout option for a call made under ctx.
// Playwright treats 0 as "no timeout", so an expired budget is an error.
func (d *playwrightDriver) timeoutMS(ctx context.Context) (*float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	left := actionTimeout(ctx, d.timeout)
	if left <= 0 {
		return nil, context.DeadlineExceeded
	}
	ms := float64(left.Milliseconds())
	if ms < 1 {
		ms = 1
	}
	return playwright.Float(ms), nil
}

func (d *playwrightDriver) Navigate(ctx context.Context, url string) error {
	timeout, err := d.timeoutMS(ctx)
	if err != nil {
		return err
	}
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   timeout,
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (d *playwrightDriver) Location(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.URL(), nil
}

func (d *playwrightDriver) Reload(ctx context.Context) error {
	timeout, err := d.timeoutMS(ctx)
	if err != nil {
		return err
	}
	if _, err := d.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   timeout,
	}); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

func (d *playwrightDriver) Eval(ctx context.Context, script string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := d.page.Evaluate(script); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (d *playwrightDriver) Query(ctx context.Context, selector string) (Node, error) {
	nodes, err := d.QueryAll(ctx, selector)
	if err != nil {
		return Node{}, err
	}
	if len(nodes) == 0 {
		return Node{}, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return nodes[0], nil
}

func (d *playwrightDriver) QueryAll(ctx context.Context, selector string) ([]Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	expr, err := queryAllScript(selector)
	if err != nil {
		return nil, err
	}
	result, err := d.page.Evaluate(expr)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return decodeNodes(result)
}

func (d *playwrightDriver) Click(ctx context.Context, selector string) error {
	timeout, err := d.timeoutMS(ctx)
	if err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Click(playwright.LocatorClickOptions{Timeout: timeout}); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (d *playwrightDriver) DoubleClick(ctx context.Context, selector string) error {
	timeout, err := d.timeoutMS(ctx)
	if err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Dblclick(playwright.LocatorDblclickOptions{Timeout: timeout}); err != nil {
		return fmt.Errorf("double-click %s: %w", selector, err)
	}
	return nil
}

func (d *playwrightDriver) Hover(ctx context.Context, selector string) error {
	timeout, err := d.timeoutMS(ctx)
	if err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Hover(playwright.LocatorHoverOptions{Timeout: timeout}); err != nil {
		return fmt.Errorf("hover %s: %w", selector, err)
	}
	return nil
}

func (d *playwrightDriver) SetValue(ctx context.Context, selector, value string) error {
	timeout, err := d.timeoutMS(ctx)
	if err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Fill(value, playwright.LocatorFillOptions{Timeout: timeout}); err != nil {
		return fmt.Errorf("set value of %s: %w", selector, err)
	}
	return nil
}

func (d *playwrightDriver) Press(ctx context.Context, selector string, key Key) error {
	timeout, err := d.timeoutMS(ctx)
	if err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().Press(string(key), playwright.LocatorPressOptions{Timeout: timeout}); err != nil {
		return fmt.Errorf("press %s on %s: %w", key, selector, err)
	}
	return nil
}

func (d *playwrightDriver) Close() error {
	return errors.Join(d.browser.Close(), d.pw.Stop())
}
