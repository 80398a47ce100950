package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCatalog(t *testing.T) {
	t.Parallel()

	all := All()
	require.Len(t, all, 29)
	assert.Equal(t, "TaskLifeCycle", all[0].Name)
	assert.Equal(t, "DeleteAtCompleted", all[len(all)-1].Name)

	seen := make(map[string]bool)
	for _, s := range all {
		assert.False(t, seen[s.Name], "duplicate scenario %s", s.Name)
		seen[s.Name] = true
		assert.NotEmpty(t, s.Steps, s.Name)
		assert.Contains(t, Groups, s.Group, s.Name)
	}

	all[0].Name = "mutated"
	assert.Equal(t, "TaskLifeCycle", All()[0].Name, "All returns a fresh slice")
}

func TestFilterGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		group Group
		count int
		first string
	}{
		{GroupLifecycle, 1, "TaskLifeCycle"},
		{GroupAll, 9, "CompleteAtAll"},
		{GroupActive, 9, "EditAtActive"},
		{GroupCompleted, 10, "AddAtCompleted"},
	}
	for _, tt := range tests {
		got := Filter(tt.group)
		require.Len(t, got, tt.count, string(tt.group))
		assert.Equal(t, tt.first, got[0].Name)
		for _, s := range got {
			assert.Equal(t, tt.group, s.Group)
		}
	}
	assert.Empty(t, Filter("nope"))
}

func TestParseGroup(t *testing.T) {
	t.Parallel()

	g, err := ParseGroup(" Active ")
	require.NoError(t, err)
	assert.Equal(t, GroupActive, g)

	_, err = ParseGroup("pending")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s, ok := Lookup("reopenallatcompleted")
	require.True(t, ok)
	assert.Equal(t, "ReopenAllAtCompleted", s.Name)
	assert.Equal(t, GroupCompleted, s.Group)

	_, ok = Lookup("Nope")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	all, err := Select()
	require.NoError(t, err)
	assert.Len(t, all, 29)

	got, err := Select("DeleteAtActive", "CompleteAtAll")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "DeleteAtActive", got[0].Name)
	assert.Equal(t, "CompleteAtAll", got[1].Name)

	_, err = Select("CompleteAtAll", "Bogus", "Other")
	require.Error(t, err)
	assert.Equal(t, "unknown scenario: Bogus, Other", err.Error())
}
