// Package scenarios holds the TodoMVC regression scenarios and the runner
// that executes them against a page.
package scenarios

import (
	"fmt"
	"strings"

	"github.com/thruflo/todomvc-e2e/internal/fixture"
	"github.com/thruflo/todomvc-e2e/internal/todomvc"
)

// Group names the filter a scenario starts from.
type Group string

const (
	GroupLifecycle Group = "lifecycle"
	GroupAll       Group = "all"
	GroupActive    Group = "active"
	GroupCompleted Group = "completed"
)

// Groups lists every group in catalog order.
var Groups = []Group{GroupLifecycle, GroupAll, GroupActive, GroupCompleted}

// ParseGroup parses a group name.
func ParseGroup(s string) (Group, error) {
	for _, g := range Groups {
		if strings.EqualFold(strings.TrimSpace(s), string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown scenario group %q", s)
}

// Scenario is a named list of steps. Each scenario starts on a freshly opened
// page and leaves storage cleared behind it.
type Scenario struct {
	Name  string
	Group Group
	Steps []todomvc.Action
}

var (
	active    = fixture.Active
	completed = fixture.Completed
	aTask     = fixture.ATask
	uniform   = fixture.Uniform
)

// All returns the catalog in its canonical order. The slice is freshly
// allocated on every call.
func All() []Scenario {
	return []Scenario{
		{
			Name:  "TaskLifeCycle",
			Group: GroupLifecycle,
			Steps: []todomvc.Action{
				todomvc.Add("1"),
				todomvc.EditAndEnter("1", "1 edited"),
				todomvc.AssertTasks("1 edited"),

				todomvc.FilterActive(),
				todomvc.AssertTasks("1 edited"),
				todomvc.ToggleAll(),
				todomvc.Add("2"),
				todomvc.AssertVisibleTasks("2"),

				todomvc.FilterCompleted(),
				todomvc.AssertVisibleTasks("1 edited"),
				todomvc.ClearCompleted(),
				todomvc.AssertNoVisibleTasks(),

				todomvc.FilterAll(),
				todomvc.AssertItemsLeft(1),
				todomvc.AssertTasks("2"),

				todomvc.Delete("2"),
				todomvc.AssertNoTasks(),
			},
		},

		{
			Name:  "CompleteAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(aTask("1", active)),
				todomvc.Toggle("1"),
				todomvc.AssertTasks("1"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "CompleteAllAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(uniform(active, "1", "2")...),
				todomvc.ToggleAll(),
				todomvc.AssertTasks("1", "2"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "ReopenAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(aTask("1", completed), aTask("2", active)),
				todomvc.Toggle("1"),
				todomvc.AssertTasks("1", "2"),
				todomvc.AssertItemsLeft(2),
			},
		},
		{
			Name:  "ReopenAllAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(uniform(completed, "1", "2")...),
				todomvc.ToggleAll(),
				todomvc.AssertTasks("1", "2"),
				todomvc.AssertItemsLeft(2),
			},
		},
		{
			Name:  "EditCancelledAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(aTask("1", active)),
				todomvc.EditAndEscape("1", "1 edited cancelled"),
				todomvc.AssertTasks("1"),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "ClearCompletedAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(uniform(completed, "1", "2")...),
				todomvc.ClearCompleted(),
				todomvc.AssertNoTasks(),
			},
		},
		{
			// Following a filter link is the click outside the edit field.
			Name:  "EditByClickOutsideAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(aTask("1", active)),
				todomvc.StartEditing("1", "1 edited"),
				todomvc.FilterActive(),
				todomvc.AssertVisibleTasks("1 edited"),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "EditByClickTabAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(aTask("1", active)),
				todomvc.EditAndTab("1", "1 edited"),
				todomvc.AssertVisibleTasks("1 edited"),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "EmptyingEditedTextAtAll",
			Group: GroupAll,
			Steps: []todomvc.Action{
				todomvc.Given(aTask("1", active)),
				todomvc.EditAndEnter("1", ""),
				todomvc.AssertNoTasks(),
			},
		},

		{
			Name:  "EditAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(aTask("1", active)),
				todomvc.EditAndEnter("1", "1 edited"),
				todomvc.AssertTasks("1 edited"),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "DeleteAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(aTask("1", active)),
				todomvc.Delete("1"),
				todomvc.AssertNoTasks(),
			},
		},
		{
			Name:  "CompleteAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(aTask("1", active)),
				todomvc.Toggle("1"),
				todomvc.AssertNoVisibleTasks(),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "ReopenAllAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(uniform(completed, "1", "2")...),
				todomvc.ToggleAll(),
				todomvc.AssertVisibleTasks("1", "2"),
				todomvc.AssertItemsLeft(2),
			},
		},
		{
			Name:  "EditCancelledAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(aTask("1", active)),
				todomvc.EditAndEscape("1", "1 edited cancelled"),
				todomvc.AssertTasks("1"),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "ClearCompletedAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(uniform(completed, "1", "2")...),
				todomvc.ClearCompleted(),
				todomvc.AssertNoVisibleTasks(),
			},
		},
		{
			Name:  "EditByClickOutsideAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(aTask("1", active)),
				todomvc.StartEditing("1", "1 edited"),
				todomvc.FilterAll(),
				todomvc.AssertTasks("1 edited"),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "EditByClickTabAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(aTask("1", active)),
				todomvc.EditAndTab("1", "1 edited"),
				todomvc.AssertVisibleTasks("1 edited"),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "EmptyingEditedTextAtActive",
			Group: GroupActive,
			Steps: []todomvc.Action{
				todomvc.GivenAtActive(aTask("1", active)),
				todomvc.EditAndEnter("1", ""),
				todomvc.AssertNoTasks(),
			},
		},

		{
			Name:  "AddAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.AssertTasks("1"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "EditAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.EditAndEnter("1", "1 edited"),
				todomvc.AssertVisibleTasks("1 edited"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "CompleteAllAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(uniform(active, "1", "2")...),
				todomvc.ToggleAll(),
				todomvc.AssertVisibleTasks("1", "2"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "ReopenAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.Toggle("1"),
				todomvc.AssertNoVisibleTasks(),
				todomvc.AssertItemsLeft(1),
			},
		},
		{
			Name:  "ReopenAllAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(uniform(completed, "1", "2")...),
				todomvc.ToggleAll(),
				todomvc.AssertNoVisibleTasks(),
				todomvc.AssertItemsLeft(2),
			},
		},
		{
			Name:  "EditCancelledAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.EditAndEscape("1", "1 edited cancelled"),
				todomvc.AssertTasks("1"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "EditByClickOutsideAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.StartEditing("1", "1 edited"),
				todomvc.FilterAll(),
				todomvc.AssertTasks("1 edited"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "EditByClickTabAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.EditAndTab("1", "1 edited"),
				todomvc.AssertTasks("1 edited"),
				todomvc.AssertItemsLeft(0),
			},
		},
		{
			Name:  "EmptyingEditedTextAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.EditAndEnter("1", ""),
				todomvc.AssertNoTasks(),
			},
		},
		{
			Name:  "DeleteAtCompleted",
			Group: GroupCompleted,
			Steps: []todomvc.Action{
				todomvc.GivenAtCompleted(aTask("1", completed)),
				todomvc.Delete("1"),
				todomvc.AssertNoTasks(),
			},
		},
	}
}

// Lookup returns the scenario called name, compared case-insensitively.
func Lookup(name string) (Scenario, bool) {
	for _, s := range All() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Scenario{}, false
}

// Filter returns the scenarios of group, in catalog order.
func Filter(group Group) []Scenario {
	var out []Scenario
	for _, s := range All() {
		if s.Group == group {
			out = append(out, s)
		}
	}
	return out
}

// Select resolves names to scenarios, keeping the order given. No names
// selects the whole catalog.
func Select(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		return All(), nil
	}
	out := make([]Scenario, 0, len(names))
	var unknown []string
	for _, name := range names {
		s, ok := Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out = append(out, s)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown scenario: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
