package todomvc

import (
	"context"
	"fmt"

	"github.com/onsi/gomega"

	"github.com/thruflo/todomvc-e2e/internal/browser"
)

// Add types each text into the new-todo field and submits it.
func (p *Page) Add(ctx context.Context, texts ...string) error {
	for _, text := range texts {
		p.log.Debug("step", "op", "add", "text", text)
		if err := p.drv.SetValue(ctx, newTodoInput, text); err != nil {
			return interactionError("add", text, err)
		}
		if err := p.drv.Press(ctx, newTodoInput, browser.KeyEnter); err != nil {
			return interactionError("add", text, err)
		}
	}
	return nil
}

// Edit is an edit in progress, started by StartEdit. It ends through exactly
// one of its methods; until then the new text is not committed.
type Edit struct {
	page    *Page
	oldText string
	newText string
}

// StartEdit double-clicks the task showing oldText and replaces the content of
// its edit field with newText, leaving the item in editing state.
func (p *Page) StartEdit(ctx context.Context, oldText, newText string) (*Edit, error) {
	p.log.Debug("step", "op", "start edit", "text", oldText, "new_text", newText)
	item, err := p.findTask(ctx, "start edit", oldText)
	if err != nil {
		return nil, err
	}
	if err := p.drv.DoubleClick(ctx, item); err != nil {
		return nil, interactionError("start edit", oldText, err)
	}
	if err := p.drv.SetValue(ctx, editField, newText); err != nil {
		return nil, interactionError("start edit", oldText, err)
	}
	return &Edit{page: p, oldText: oldText, newText: newText}, nil
}

// PressEnter commits the edit. An empty text deletes the task.
func (e *Edit) PressEnter(ctx context.Context) error {
	return e.press(ctx, "commit edit", browser.KeyEnter)
}

// PressEscape cancels the edit, restoring the original text.
func (e *Edit) PressEscape(ctx context.Context) error {
	return e.press(ctx, "cancel edit", browser.KeyEscape)
}

// PressTab moves focus forward, which commits the edit.
func (e *Edit) PressTab(ctx context.Context) error {
	return e.press(ctx, "tab out of edit", browser.KeyTab)
}

// ClickOutside clicks the page header, and the focus loss commits the edit.
func (e *Edit) ClickOutside(ctx context.Context) error {
	e.page.log.Debug("step", "op", "click outside edit", "text", e.oldText)
	if err := e.page.drv.Click(ctx, headerTitle); err != nil {
		return interactionError("click outside edit", e.oldText, err)
	}
	return nil
}

func (e *Edit) press(ctx context.Context, op string, key browser.Key) error {
	e.page.log.Debug("step", "op", op, "text", e.oldText, "new_text", e.newText)
	if err := e.page.drv.Press(ctx, editField, key); err != nil {
		return interactionError(op, e.oldText, err)
	}
	return nil
}

// Delete hovers the task to reveal its destroy button and clicks it.
func (p *Page) Delete(ctx context.Context, text string) error {
	p.log.Debug("step", "op", "delete", "text", text)
	item, err := p.findTask(ctx, "delete", text)
	if err != nil {
		return err
	}
	if err := p.drv.Hover(ctx, item); err != nil {
		return interactionError("delete", text, err)
	}
	if err := p.drv.Click(ctx, item+" .destroy"); err != nil {
		return interactionError("delete", text, err)
	}
	return nil
}

// Toggle flips the completion state of the task.
func (p *Page) Toggle(ctx context.Context, text string) error {
	p.log.Debug("step", "op", "toggle", "text", text)
	item, err := p.findTask(ctx, "toggle", text)
	if err != nil {
		return err
	}
	if err := p.drv.Click(ctx, item+" .toggle"); err != nil {
		return interactionError("toggle", text, err)
	}
	return nil
}

// ToggleAll clicks the bulk toggle. The app completes every task unless all
// of them already are, in which case it reopens them all.
func (p *Page) ToggleAll(ctx context.Context) error {
	p.log.Debug("step", "op", "toggle all")
	if err := p.drv.Click(ctx, toggleAllBox); err != nil {
		return interactionError("toggle all", "", err)
	}
	return nil
}

// ClearCompleted removes every completed task. The app only shows its
// control while a completed task exists, so with none there is nothing to
// click and the call does nothing.
func (p *Page) ClearCompleted(ctx context.Context) error {
	p.log.Debug("step", "op", "clear completed")
	nodes, err := p.drv.QueryAll(ctx, taskItems)
	if err != nil {
		return interactionError("clear completed", "", err)
	}
	if !anyCompleted(nodes) {
		p.log.Debug("nothing to clear")
		return nil
	}
	if err := p.drv.Click(ctx, clearCompleted); err != nil {
		return interactionError("clear completed", "", err)
	}
	return nil
}

// Filter clicks the footer link of f.
func (p *Page) Filter(ctx context.Context, f Filter) error {
	p.log.Debug("step", "op", "filter", "filter", f.String())
	i, err := p.findByText(ctx, filterItems, f.Label())
	if err != nil {
		return interactionError("filter", f.Label(), err)
	}
	if err := p.drv.Click(ctx, nthFilterLink(i)); err != nil {
		return interactionError("filter", f.Label(), err)
	}
	return nil
}

// FilterAll shows every task.
func (p *Page) FilterAll(ctx context.Context) error { return p.Filter(ctx, ShowAll) }

// FilterActive shows the tasks that are not completed.
func (p *Page) FilterActive(ctx context.Context) error { return p.Filter(ctx, ShowActive) }

// FilterCompleted shows the completed tasks.
func (p *Page) FilterCompleted(ctx context.Context) error { return p.Filter(ctx, ShowCompleted) }

// findTask returns the selector of the first visible task whose text is
// exactly text, waiting for it to appear.
func (p *Page) findTask(ctx context.Context, op, text string) (string, error) {
	i, err := p.findByText(ctx, taskItems, text)
	if err != nil {
		return "", interactionError(op, text, err)
	}
	return nthTask(i), nil
}

// findByText polls collection until a visible element's text equals text and
// returns its zero-based index.
func (p *Page) findByText(ctx context.Context, collection, text string) (int, error) {
	index := -1
	failure, ok := p.eventually(ctx, func(ctx context.Context) (int, error) {
		nodes, err := p.drv.QueryAll(ctx, collection)
		if err != nil {
			return -1, err
		}
		index = indexOfVisibleText(nodes, text)
		return index, nil
	}, gomega.BeNumerically(">=", 0))
	if !ok {
		return -1, fmt.Errorf("no visible element with text %q in %s: %s", text, collection, failure)
	}
	return index, nil
}

func indexOfVisibleText(nodes []browser.Node, text string) int {
	for i, n := range nodes {
		if n.Visible && n.Text == text {
			return i
		}
	}
	return -1
}

func anyCompleted(nodes []browser.Node) bool {
	for _, n := range nodes {
		if n.HasClass("completed") {
			return true
		}
	}
	return false
}
