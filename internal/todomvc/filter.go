package todomvc

import (
	"fmt"
	"strings"
)

// Filter is the app's list filter, selected through the footer links.
type Filter int

const (
	ShowAll Filter = iota
	ShowActive
	ShowCompleted
)

// Label is the link text of the filter.
func (f Filter) Label() string {
	switch f {
	case ShowActive:
		return "Active"
	case ShowCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Fragment is the URL fragment the app routes the filter on.
func (f Filter) Fragment() string {
	switch f {
	case ShowActive:
		return "#/active"
	case ShowCompleted:
		return "#/completed"
	default:
		return "#/"
	}
}

func (f Filter) String() string {
	return strings.ToLower(f.Label())
}

// ParseFilter parses a filter name (all, active, completed).
func ParseFilter(s string) (Filter, error) {
	for _, f := range []Filter{ShowAll, ShowActive, ShowCompleted} {
		if strings.EqualFold(strings.TrimSpace(s), f.String()) {
			return f, nil
		}
	}
	return ShowAll, fmt.Errorf("unknown filter %q", s)
}
