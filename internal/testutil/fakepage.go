package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/thruflo/todomvc-e2e/internal/browser"
	"github.com/thruflo/todomvc-e2e/internal/fixture"
)

// FakeURL is the address FakePage serves the app from.
const FakeURL = "http://todomvc.test/"

// Fake driver operation names, as recorded by Calls and accepted by FailOn.
const (
	OpNavigate    = "navigate"
	OpLocation    = "location"
	OpReload      = "reload"
	OpEval        = "eval"
	OpQuery       = "query"
	OpClick       = "click"
	OpDoubleClick = "dblclick"
	OpHover       = "hover"
	OpSetValue    = "set_value"
	OpPress       = "press"
)

var (
	errNoOrigin   = errors.New("localStorage is not available on about:blank")
	errClosed     = errors.New("page closed")
	errNotVisible = errors.New("element is not visible")
)

var (
	itemSelector       = regexp.MustCompile(`^#todo-list li:nth-child\((\d+)\)(?: (\.toggle|\.destroy|label))?$`)
	filterLinkSelector = regexp.MustCompile(`^#filters li:nth-child\((\d+)\) a$`)
)

var filterRoutes = []struct {
	label    string
	fragment string
}{
	{"All", "/"},
	{"Active", "/active"},
	{"Completed", "/completed"},
}

type fakeTodo struct {
	title     string
	completed bool
}

// FakePage is an in-memory browser.Driver that renders a troopjs-style
// TodoMVC app. It persists todos to a localStorage map under StorageKey and
// runs evaluated scripts in a goja VM, so storage setup goes through the same
// scripts a real browser would execute.
type FakePage struct {
	mu sync.Mutex

	StorageKey string

	url       string
	storage   map[string]string
	todos     []fakeTodo
	input     string
	editing   int
	editValue string
	hovered   int
	closed    bool

	calls    []string
	failures map[string]error
}

// NewFakePage returns a fake page that has not navigated anywhere yet.
func NewFakePage() *FakePage {
	return &FakePage{
		StorageKey: fixture.DefaultStorageKey,
		storage:    make(map[string]string),
		editing:    -1,
		hovered:    -1,
		failures:   make(map[string]error),
	}
}

var _ browser.Driver = (*FakePage)(nil)

// FailOn makes every later call of op fail with err. A nil err clears it.
func (f *FakePage) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

// Calls returns the operations performed so far, e.g. "click #toggle-all".
func (f *FakePage) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times op was called.
func (f *FakePage) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

// Storage returns the stored value of key.
func (f *FakePage) Storage(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.storage[key]
	return v, ok
}

// SetStorage writes key directly, as another tab of the same origin would.
// The page picks it up on its next load.
func (f *FakePage) SetStorage(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storage[key] = value
}

// Rendered returns the todos the app currently shows, regardless of filter.
func (f *FakePage) Rendered() []fixture.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fixture.Record, len(f.todos))
	for i, t := range f.todos {
		out[i] = fixture.Record{Completed: t.completed, Title: t.title}
	}
	return out
}

// Editing reports whether an item is in editing state.
func (f *FakePage) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editing >= 0
}

func (f *FakePage) begin(op, arg string) error {
	if arg == "" {
		f.calls = append(f.calls, op)
	} else {
		f.calls = append(f.calls, op+" "+arg)
	}
	if f.closed {
		return errClosed
	}
	if err, ok := f.failures[op]; ok {
		return err
	}
	return nil
}

func (f *FakePage) Navigate(ctx context.Context, target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpNavigate, target); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := url.Parse(target); err != nil {
		return err
	}
	f.url = target
	f.load()
	return nil
}

func (f *FakePage) Location(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpLocation, ""); err != nil {
		return "", err
	}
	if f.url == "" {
		return "about:blank", nil
	}
	return f.url, nil
}

func (f *FakePage) Reload(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpReload, ""); err != nil {
		return err
	}
	if f.url == "" {
		return errNoOrigin
	}
	f.load()
	return nil
}

// Eval runs script with a localStorage global bound to the page's storage.
func (f *FakePage) Eval(ctx context.Context, script string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpEval, ""); err != nil {
		return err
	}
	if f.url == "" {
		return errNoOrigin
	}

	vm := goja.New()
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())
	if err := vm.Set("localStorage", &localStorage{items: f.storage}); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()
	if _, err := vm.RunString(script); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (f *FakePage) Query(ctx context.Context, selector string) (browser.Node, error) {
	nodes, err := f.QueryAll(ctx, selector)
	if err != nil {
		return browser.Node{}, err
	}
	if len(nodes) == 0 {
		return browser.Node{}, fmt.Errorf("%s: %w", selector, browser.ErrNotFound)
	}
	return nodes[0], nil
}

func (f *FakePage) QueryAll(ctx context.Context, selector string) ([]browser.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpQuery, selector); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.render(selector)
}

func (f *FakePage) Click(ctx context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpClick, selector); err != nil {
		return err
	}
	if selector != "#todo-list li.editing .edit" {
		f.blur()
	}
	if err := f.requireVisible(selector); err != nil {
		return err
	}

	switch selector {
	case "#toggle-all":
		f.toggleAll()
		return nil
	case "#clear-completed":
		kept := f.todos[:0]
		for _, t := range f.todos {
			if !t.completed {
				kept = append(kept, t)
			}
		}
		f.todos = kept
		f.hovered = -1
		f.persist()
		return nil
	}

	if m := itemSelector.FindStringSubmatch(selector); m != nil {
		i, _ := strconv.Atoi(m[1])
		switch m[2] {
		case ".toggle":
			f.todos[i-1].completed = !f.todos[i-1].completed
			f.persist()
		case ".destroy":
			if f.hovered != i-1 {
				return fmt.Errorf("%s: %w", selector, errNotVisible)
			}
			f.todos = append(f.todos[:i-1], f.todos[i:]...)
			f.hovered = -1
			f.persist()
		}
		return nil
	}
	if m := filterLinkSelector.FindStringSubmatch(selector); m != nil {
		i, _ := strconv.Atoi(m[1])
		f.url = withFragment(f.url, filterRoutes[i-1].fragment)
		return nil
	}
	return nil
}

func (f *FakePage) DoubleClick(ctx context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpDoubleClick, selector); err != nil {
		return err
	}
	f.blur()
	if err := f.requireVisible(selector); err != nil {
		return err
	}
	m := itemSelector.FindStringSubmatch(selector)
	if m == nil || m[2] == ".toggle" || m[2] == ".destroy" {
		return nil
	}
	i, _ := strconv.Atoi(m[1])
	f.editing = i - 1
	f.editValue = f.todos[i-1].title
	return nil
}

func (f *FakePage) Hover(ctx context.Context, selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpHover, selector); err != nil {
		return err
	}
	if err := f.requireVisible(selector); err != nil {
		return err
	}
	f.hovered = -1
	if m := itemSelector.FindStringSubmatch(selector); m != nil && m[2] == "" {
		i, _ := strconv.Atoi(m[1])
		f.hovered = i - 1
	}
	return nil
}

func (f *FakePage) SetValue(ctx context.Context, selector, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpSetValue, selector); err != nil {
		return err
	}
	if err := f.requireVisible(selector); err != nil {
		return err
	}
	switch selector {
	case "#new-todo":
		f.input = value
	case "#todo-list li.editing .edit":
		f.editValue = value
	default:
		return fmt.Errorf("%s is not an input", selector)
	}
	return nil
}

func (f *FakePage) Press(ctx context.Context, selector string, key browser.Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpPress, selector+" "+string(key)); err != nil {
		return err
	}
	if err := f.requireVisible(selector); err != nil {
		return err
	}
	switch selector {
	case "#new-todo":
		if key != browser.KeyEnter {
			return nil
		}
		if title := strings.TrimSpace(f.input); title != "" {
			f.todos = append(f.todos, fakeTodo{title: title})
			f.persist()
		}
		f.input = ""
	case "#todo-list li.editing .edit":
		switch key {
		case browser.KeyEnter, browser.KeyTab:
			f.commit()
		case browser.KeyEscape:
			f.editing = -1
		}
	}
	return nil
}

func (f *FakePage) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// load renders the persisted todos, as the app does on page load. Storage
// that does not parse renders an empty list.
func (f *FakePage) load() {
	f.todos = nil
	f.input = ""
	f.editing = -1
	f.hovered = -1

	raw, ok := f.storage[f.StorageKey]
	if !ok {
		return
	}
	var records []fixture.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return
	}
	for _, r := range records {
		f.todos = append(f.todos, fakeTodo{title: r.Title, completed: r.Completed})
	}
}

func (f *FakePage) persist() {
	records := make([]fixture.Record, len(f.todos))
	for i, t := range f.todos {
		records[i] = fixture.Record{Completed: t.completed, Title: t.title}
	}
	data, err := json.Marshal(records)
	if err != nil {
		panic(err)
	}
	f.storage[f.StorageKey] = string(data)
}

func (f *FakePage) toggleAll() {
	allCompleted := true
	for _, t := range f.todos {
		allCompleted = allCompleted && t.completed
	}
	for i := range f.todos {
		f.todos[i].completed = !allCompleted
	}
	f.persist()
}

// blur ends an edit in progress the way focus loss does: by committing it.
func (f *FakePage) blur() {
	if f.editing >= 0 {
		f.commit()
	}
}

func (f *FakePage) commit() {
	i := f.editing
	f.editing = -1
	if i < 0 || i >= len(f.todos) {
		return
	}
	title := strings.TrimSpace(f.editValue)
	if title == "" {
		f.todos = append(f.todos[:i], f.todos[i+1:]...)
	} else {
		f.todos[i].title = title
	}
	f.hovered = -1
	f.persist()
}

func (f *FakePage) filter() string {
	u, err := url.Parse(f.url)
	if err != nil {
		return "/"
	}
	switch u.Fragment {
	case "/active", "/completed":
		return u.Fragment
	default:
		return "/"
	}
}

func (f *FakePage) shows(t fakeTodo) bool {
	switch f.filter() {
	case "/active":
		return !t.completed
	case "/completed":
		return t.completed
	default:
		return true
	}
}

func (f *FakePage) requireVisible(selector string) error {
	nodes, err := f.render(selector)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%s: %w", selector, browser.ErrNotFound)
	}
	if !nodes[0].Visible {
		return fmt.Errorf("%s: %w", selector, errNotVisible)
	}
	return nil
}

// render snapshots the elements matching selector. Only the selectors the
// app's markup offers are understood.
func (f *FakePage) render(selector string) ([]browser.Node, error) {
	if f.url == "" {
		return []browser.Node{}, nil
	}
	hasTodos := len(f.todos) > 0
	completed := 0
	for _, t := range f.todos {
		if t.completed {
			completed++
		}
	}

	switch selector {
	case "#todo-list li":
		nodes := make([]browser.Node, len(f.todos))
		for i := range f.todos {
			nodes[i] = f.item(i)
		}
		return nodes, nil
	case "#todo-list li.editing .edit":
		if f.editing < 0 {
			return []browser.Node{}, nil
		}
		return []browser.Node{{Visible: true, Class: "edit"}}, nil
	case "#new-todo":
		return []browser.Node{{Visible: true}}, nil
	case "#header h1":
		return []browser.Node{{Text: "todos", Visible: true}}, nil
	case "#toggle-all":
		return []browser.Node{{Visible: hasTodos}}, nil
	case "#clear-completed":
		return []browser.Node{{Text: "Clear completed", Visible: completed > 0}}, nil
	case "#todo-count strong":
		return []browser.Node{{Text: strconv.Itoa(len(f.todos) - completed), Visible: hasTodos}}, nil
	case "#filters li":
		current := f.filter()
		nodes := make([]browser.Node, len(filterRoutes))
		for i, r := range filterRoutes {
			nodes[i] = browser.Node{Text: r.label, Visible: hasTodos}
			if r.fragment == current {
				nodes[i].Class = "selected"
			}
		}
		return nodes, nil
	}

	if m := itemSelector.FindStringSubmatch(selector); m != nil {
		i, _ := strconv.Atoi(m[1])
		if i < 1 || i > len(f.todos) {
			return []browser.Node{}, nil
		}
		n := f.item(i - 1)
		if m[2] != "" && (f.editing == i-1) {
			n.Visible = false
		}
		if m[2] == ".destroy" && f.hovered != i-1 {
			n.Visible = false
		}
		if m[2] != "" && m[2] != "label" {
			n.Text = ""
		}
		return []browser.Node{n}, nil
	}
	if m := filterLinkSelector.FindStringSubmatch(selector); m != nil {
		i, _ := strconv.Atoi(m[1])
		if i < 1 || i > len(filterRoutes) {
			return []browser.Node{}, nil
		}
		return []browser.Node{{Text: filterRoutes[i-1].label, Visible: hasTodos}}, nil
	}
	return nil, fmt.Errorf("unsupported selector %q", selector)
}

func (f *FakePage) item(i int) browser.Node {
	t := f.todos[i]
	var classes []string
	if t.completed {
		classes = append(classes, "completed")
	}
	if f.editing == i {
		classes = append(classes, "editing")
	}
	return browser.Node{
		Text:    t.title,
		Visible: f.shows(t),
		Class:   strings.Join(classes, " "),
	}
}

func withFragment(raw, fragment string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = fragment
	return u.String()
}

// localStorage is the Storage object exposed to evaluated scripts.
type localStorage struct {
	items map[string]string
}

func (s *localStorage) SetItem(key, value string) {
	s.items[key] = value
}

func (s *localStorage) GetItem(key string) any {
	v, ok := s.items[key]
	if !ok {
		return nil
	}
	return v
}

func (s *localStorage) RemoveItem(key string) {
	delete(s.items, key)
}

func (s *localStorage) Clear() {
	clear(s.items)
}
