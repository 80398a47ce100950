package todomvc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"

	"github.com/thruflo/todomvc-e2e/internal/browser"
)

// Tasks returns the texts of every task in the list, hidden ones included.
func (p *Page) Tasks(ctx context.Context) ([]string, error) {
	nodes, err := p.drv.QueryAll(ctx, taskItems)
	if err != nil {
		return nil, err
	}
	return texts(nodes, false), nil
}

// VisibleTasks returns the texts of the tasks the current filter shows.
func (p *Page) VisibleTasks(ctx context.Context) ([]string, error) {
	nodes, err := p.drv.QueryAll(ctx, taskItems)
	if err != nil {
		return nil, err
	}
	return texts(nodes, true), nil
}

// ItemsLeft returns the number shown by the active-items counter.
func (p *Page) ItemsLeft(ctx context.Context) (int, error) {
	n, err := p.drv.Query(ctx, itemsLeftLabel)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(n.Text)
	if err != nil {
		return 0, fmt.Errorf("items left counter %q: %w", n.Text, err)
	}
	return count, nil
}

func (p *Page) itemsLeftText(ctx context.Context) (string, error) {
	n, err := p.drv.Query(ctx, itemsLeftLabel)
	if err != nil {
		return "", err
	}
	return n.Text, nil
}

// ExpectTasks waits until the list holds exactly texts, in order, counting
// hidden tasks too.
func (p *Page) ExpectTasks(ctx context.Context, texts ...string) error {
	return p.expectTexts(ctx, "assert tasks", p.Tasks, texts)
}

// ExpectVisibleTasks waits until the visible tasks are exactly texts, in order.
func (p *Page) ExpectVisibleTasks(ctx context.Context, texts ...string) error {
	return p.expectTexts(ctx, "assert visible tasks", p.VisibleTasks, texts)
}

// ExpectNoTasks waits until the list is empty.
func (p *Page) ExpectNoTasks(ctx context.Context) error {
	return p.expectTexts(ctx, "assert no tasks", p.Tasks, nil)
}

// ExpectNoVisibleTasks waits until no task is visible. Hidden tasks may exist.
func (p *Page) ExpectNoVisibleTasks(ctx context.Context) error {
	return p.expectTexts(ctx, "assert no visible tasks", p.VisibleTasks, nil)
}

// ExpectItemsLeft waits until the counter text is exactly the decimal form
// of n.
func (p *Page) ExpectItemsLeft(ctx context.Context, n int) error {
	p.log.Debug("step", "op", "assert items left", "want", n)
	failure, ok := p.eventually(ctx, p.itemsLeftText, gomega.Equal(strconv.Itoa(n)))
	if !ok {
		return assertionError("assert items left", failure)
	}
	return nil
}

func (p *Page) expectTexts(ctx context.Context, op string, get func(context.Context) ([]string, error), want []string) error {
	p.log.Debug("step", "op", op, "want", want)
	var matcher types.GomegaMatcher = gomega.Equal(want)
	if len(want) == 0 {
		matcher = gomega.BeEmpty()
	}
	failure, ok := p.eventually(ctx, get, matcher)
	if !ok {
		return assertionError(op, failure)
	}
	return nil
}

// eventually polls actual until it satisfies matcher, the assert timeout
// passes, or ctx ends. On failure it returns gomega's description of the last
// observed value.
func (p *Page) eventually(ctx context.Context, actual any, matcher types.GomegaMatcher) (string, bool) {
	var failure string
	g := gomega.NewGomega(func(message string, _ ...int) {
		failure = message
	})
	ok := g.Eventually(actual).
		WithContext(ctx).
		WithTimeout(p.opts.AssertTimeout).
		WithPolling(p.opts.PollInterval).
		Should(matcher)
	if !ok && ctx.Err() != nil && failure == "" {
		failure = ctx.Err().Error()
	}
	return failure, ok
}

func assertionError(op, failure string) *Error {
	return &Error{Kind: KindAssertion, Op: op, Message: failure}
}

func texts(nodes []browser.Node, visibleOnly bool) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if visibleOnly && !n.Visible {
			continue
		}
		out = append(out, n.Text)
	}
	return out
}
