package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// chromedpDriver drives one Chrome tab over the DevTools protocol.
type chromedpDriver struct {
	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	timeout     time.Duration
}

func launchChromedp(ctx context.Context, opts Options) (Driver, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
	)
	// The browser outlives ctx, so it hangs off a background context.
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	tab, cancelTab := chromedp.NewContext(allocCtx)

	// The first Run on tab starts the browser; it must run on tab itself,
	// because cancelling the context of that first run closes the browser.
	stop := context.AfterFunc(ctx, cancelTab)
	err := chromedp.Run(tab)
	stop()
	if err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	return &chromedpDriver{
		tab:         tab,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		timeout:     opts.ActionTimeout,
	}, nil
}

// run executes actions on the tab, bounded by the action timeout and ctx.
func (d *chromedpDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(d.tab, actionTimeout(ctx, d.timeout))
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

func (d *chromedpDriver) Navigate(ctx context.Context, url string) error {
	if err := d.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (d *chromedpDriver) Location(ctx context.Context) (string, error) {
	var loc string
	if err := d.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return loc, nil
}

func (d *chromedpDriver) Reload(ctx context.Context) error {
	if err := d.run(ctx, chromedp.Reload()); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

func (d *chromedpDriver) Eval(ctx context.Context, script string) error {
	if err := d.run(ctx, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (d *chromedpDriver) Query(ctx context.Context, selector string) (Node, error) {
	nodes, err := d.QueryAll(ctx, selector)
	if err != nil {
		return Node{}, err
	}
	if len(nodes) == 0 {
		return Node{}, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return nodes[0], nil
}

func (d *chromedpDriver) QueryAll(ctx context.Context, selector string) ([]Node, error) {
	expr, err := queryAllScript(selector)
	if err != nil {
		return nil, err
	}
	nodes := []Node{}
	if err := d.run(ctx, chromedp.Evaluate(expr, &nodes)); err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return nodes, nil
}

func (d *chromedpDriver) Click(ctx context.Context, selector string) error {
	if err := d.run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (d *chromedpDriver) DoubleClick(ctx context.Context, selector string) error {
	if err := d.run(ctx, chromedp.DoubleClick(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("double-click %s: %w", selector, err)
	}
	return nil
}

// Hover moves the mouse to the centre of the element's content box.
func (d *chromedpDriver) Hover(ctx context.Context, selector string) error {
	var box *dom.BoxModel
	err := d.run(ctx,
		chromedp.Dimensions(selector, &box, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			x, y := quadCenter(box.Content)
			return chromedp.MouseEvent(input.MouseMoved, x, y).Do(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("hover %s: %w", selector, err)
	}
	return nil
}

// quadCenter averages the four corners of a quad.
func quadCenter(q dom.Quad) (float64, float64) {
	if len(q) < 8 {
		return 0, 0
	}
	var x, y float64
	for i := 0; i < 8; i += 2 {
		x += q[i]
		y += q[i+1]
	}
	return x / 4, y / 4
}

// SetValue clears the field, then types value so the page sees key events.
func (d *chromedpDriver) SetValue(ctx context.Context, selector, value string) error {
	err := d.run(ctx,
		chromedp.SetValue(selector, "", chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("set value of %s: %w", selector, err)
	}
	return nil
}

func (d *chromedpDriver) Press(ctx context.Context, selector string, key Key) error {
	keys, err := chromedpKey(key)
	if err != nil {
		return err
	}
	if err := d.run(ctx, chromedp.SendKeys(selector, keys, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("press %s on %s: %w", key, selector, err)
	}
	return nil
}

func chromedpKey(key Key) (string, error) {
	switch key {
	case KeyEnter:
		return kb.Enter, nil
	case KeyEscape:
		return kb.Escape, nil
	case KeyTab:
		return kb.Tab, nil
	default:
		return "", fmt.Errorf("unsupported key %q", key)
	}
}

func (d *chromedpDriver) Close() error {
	err := chromedp.Cancel(d.tab)
	d.cancelTab()
	d.cancelAlloc()
	return err
}
