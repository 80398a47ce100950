package todomvc

import (
	"context"
	"fmt"

	"github.com/thruflo/todomvc-e2e/internal/fixture"
)

// Action is one step of a scenario.
type Action interface {
	Do(ctx context.Context, p *Page) error
}

// ActionFunc adapts a function to Action.
type ActionFunc func(ctx context.Context, p *Page) error

// Do calls f(ctx, p).
func (f ActionFunc) Do(ctx context.Context, p *Page) error {
	return f(ctx, p)
}

// Run performs actions in order and stops at the first failure, which is
// returned wrapped with its 1-based step number.
func Run(ctx context.Context, p *Page, actions ...Action) error {
	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := a.Do(ctx, p); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Given seeds tasks.
func Given(tasks ...fixture.Task) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.Given(ctx, tasks...)
	})
}

// GivenAt seeds tasks and switches to filter.
func GivenAt(filter Filter, tasks ...fixture.Task) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.GivenAt(ctx, filter, tasks...)
	})
}

// GivenAtActive seeds tasks and shows the Active filter.
func GivenAtActive(tasks ...fixture.Task) Action {
	return GivenAt(ShowActive, tasks...)
}

// GivenAtCompleted seeds tasks and shows the Completed filter.
func GivenAtCompleted(tasks ...fixture.Task) Action {
	return GivenAt(ShowCompleted, tasks...)
}

// Add creates tasks through the new-todo field.
func Add(texts ...string) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.Add(ctx, texts...)
	})
}

// StartEditing leaves the task in editing state with newText typed in.
func StartEditing(oldText, newText string) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		_, err := p.StartEdit(ctx, oldText, newText)
		return err
	})
}

// EditAndEnter edits a task and commits with Enter.
func EditAndEnter(oldText, newText string) Action {
	return edit(oldText, newText, (*Edit).PressEnter)
}

// EditAndEscape starts an edit and cancels it with Escape.
func EditAndEscape(oldText, newText string) Action {
	return edit(oldText, newText, (*Edit).PressEscape)
}

// EditAndTab edits a task and commits by tabbing away.
func EditAndTab(oldText, newText string) Action {
	return edit(oldText, newText, (*Edit).PressTab)
}

// EditAndClickOutside edits a task and commits by clicking elsewhere.
func EditAndClickOutside(oldText, newText string) Action {
	return edit(oldText, newText, (*Edit).ClickOutside)
}

func edit(oldText, newText string, finish func(*Edit, context.Context) error) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		e, err := p.StartEdit(ctx, oldText, newText)
		if err != nil {
			return err
		}
		return finish(e, ctx)
	})
}

// Delete removes the task through its destroy button.
func Delete(text string) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.Delete(ctx, text)
	})
}

// Toggle flips the task's completion state.
func Toggle(text string) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.Toggle(ctx, text)
	})
}

// ToggleAll clicks the bulk toggle.
func ToggleAll() Action {
	return method((*Page).ToggleAll)
}

// ClearCompleted removes the completed tasks.
func ClearCompleted() Action {
	return method((*Page).ClearCompleted)
}

// FilterAll switches to the All filter.
func FilterAll() Action {
	return method((*Page).FilterAll)
}

// FilterActive switches to the Active filter.
func FilterActive() Action {
	return method((*Page).FilterActive)
}

// FilterCompleted switches to the Completed filter.
func FilterCompleted() Action {
	return method((*Page).FilterCompleted)
}

func method(f func(*Page, context.Context) error) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return f(p, ctx)
	})
}

// AssertTasks expects exactly texts in the list.
func AssertTasks(texts ...string) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.ExpectTasks(ctx, texts...)
	})
}

// AssertVisibleTasks expects exactly texts to be visible.
func AssertVisibleTasks(texts ...string) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.ExpectVisibleTasks(ctx, texts...)
	})
}

// AssertNoTasks expects an empty list.
func AssertNoTasks() Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.ExpectNoTasks(ctx)
	})
}

// AssertNoVisibleTasks expects no visible task.
func AssertNoVisibleTasks() Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.ExpectNoVisibleTasks(ctx)
	})
}

// AssertItemsLeft expects the counter to show n.
func AssertItemsLeft(n int) Action {
	return ActionFunc(func(ctx context.Context, p *Page) error {
		return p.ExpectItemsLeft(ctx, n)
	})
}
