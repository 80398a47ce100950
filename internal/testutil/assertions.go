package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/todomvc-e2e/internal/fixture"
)

// AssertStoredTasks asserts that the fake app persisted exactly expected.
func AssertStoredTasks(t *testing.T, page *FakePage, expected ...fixture.Task) {
	t.Helper()

	raw, ok := page.Storage(page.StorageKey)
	require.True(t, ok, "storage key %q not set", page.StorageKey)

	var got []fixture.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &got), "stored value is not a todo list: %s", raw)
	assert.Equal(t, fixture.Records(expected), got, "stored tasks mismatch")
}

// AssertRendered asserts that the fake app shows exactly expected, in order,
// regardless of the current filter.
func AssertRendered(t *testing.T, page *FakePage, expected ...fixture.Task) {
	t.Helper()
	assert.Equal(t, fixture.Records(expected), page.Rendered(), "rendered tasks mismatch")
}

// AssertStorageEmpty asserts that nothing is stored under the app's key.
func AssertStorageEmpty(t *testing.T, page *FakePage) {
	t.Helper()
	_, ok := page.Storage(page.StorageKey)
	assert.False(t, ok, "storage key %q should be unset", page.StorageKey)
}
