// Package fixture models the to-do items seeded into the TodoMVC page before
// a scenario runs, and encodes them into the page's persisted storage format.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultStorageKey is the localStorage key read by the troopjs TodoMVC app.
const DefaultStorageKey = "todos-troopjs"

// ClearStorageScript wipes everything the page persisted.
const ClearStorageScript = "localStorage.clear()"

// Status is the completion state of a seeded task.
type Status int

const (
	// Active tasks count towards the items-left indicator.
	Active Status = iota
	// Completed tasks render with the "completed" class.
	Completed
)

// Completed reports the wire value of the status.
func (s Status) Completed() bool {
	return s == Completed
}

func (s Status) String() string {
	if s == Completed {
		return "completed"
	}
	return "active"
}

// ParseStatus parses "active" or "completed" (case-insensitive).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return Active, nil
	case "completed":
		return Completed, nil
	default:
		return Active, fmt.Errorf("invalid status %q: must be active or completed", s)
	}
}

// Task is one item to be pre-loaded into the page. It is immutable once built.
type Task struct {
	text   string
	status Status
}

// ATask builds a task.
func ATask(text string, status Status) Task {
	return Task{text: text, status: status}
}

// Uniform builds one task per text, all sharing the same status.
func Uniform(status Status, texts ...string) []Task {
	tasks := make([]Task, 0, len(texts))
	for _, text := range texts {
		tasks = append(tasks, ATask(text, status))
	}
	return tasks
}

// Text returns the task title.
func (t Task) Text() string { return t.text }

// Status returns the task's completion state.
func (t Task) Status() Status { return t.status }

// Record is the persisted shape of one task. Field order matters: the app's
// storage reader expects "completed" before "title".
type Record struct {
	Completed bool   `json:"completed"`
	Title     string `json:"title"`
}

// Records converts tasks to their persisted form, preserving order.
func Records(tasks []Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, Record{Completed: t.status.Completed(), Title: t.text})
	}
	return records
}

// Marshal encodes tasks as the JSON array stored under the app's storage key.
// An empty task list encodes as "[]".
func Marshal(tasks ...Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Records(tasks)); err != nil {
		return nil, fmt.Errorf("failed to encode fixture: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal decodes a persisted payload back into tasks.
func Unmarshal(payload []byte) ([]Task, error) {
	var records []Record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		status := Active
		if r.Completed {
			status = Completed
		}
		tasks = append(tasks, ATask(r.Title, status))
	}
	return tasks, nil
}

// StorageScript returns the in-page script that writes payload under key.
// Both values are emitted as JSON string literals, which are valid JavaScript
// string literals, so task text needs no further escaping.
func StorageScript(key string, payload []byte) (string, error) {
	quotedKey, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("failed to quote storage key: %w", err)
	}
	quotedPayload, err := json.Marshal(string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to quote payload: %w", err)
	}
	return fmt.Sprintf("localStorage.setItem(%s, %s);", quotedKey, quotedPayload), nil
}

// Parse reads a task from the command-line form "text[:status]". The status
// suffix is optional and defaults to active. Only the last colon separates
// the status, and only when the suffix is a known status, so "a:b" stays a
// single active task titled "a:b".
func Parse(arg string) (Task, error) {
	if idx := strings.LastIndex(arg, ":"); idx >= 0 {
		if status, err := ParseStatus(arg[idx+1:]); err == nil {
			text := arg[:idx]
			if text == "" {
				return Task{}, fmt.Errorf("invalid task %q: empty text", arg)
			}
			return ATask(text, status), nil
		}
	}
	if arg == "" {
		return Task{}, fmt.Errorf("invalid task %q: empty text", arg)
	}
	return ATask(arg, Active), nil
}
