package todomvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/todomvc-e2e/internal/fixture"
	"github.com/thruflo/todomvc-e2e/internal/testutil"
)

func TestAdd(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)

	require.NoError(t, page.Add(ctx, "1", "2", "3"))
	testutil.AssertRendered(t, fake, fixture.Uniform(fixture.Active, "1", "2", "3")...)
	require.NoError(t, page.Add(ctx))
	require.NoError(t, page.ExpectTasks(ctx, "1", "2", "3"))
}

func TestEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		finish func(*Edit, context.Context) error
		edited bool
	}{
		{"enter", (*Edit).PressEnter, true},
		{"escape", (*Edit).PressEscape, false},
		{"tab", (*Edit).PressTab, true},
		{"click outside", (*Edit).ClickOutside, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, fake, ctx := openTestPage(t)
			require.NoError(t, page.Given(ctx, fixture.Uniform(fixture.Active, "1", "2")...))

			edit, err := page.StartEdit(ctx, "2", "2 edited")
			require.NoError(t, err)
			assert.True(t, fake.Editing())
			require.NoError(t, tt.finish(edit, ctx))
			assert.False(t, fake.Editing())

			want := "2"
			if tt.edited {
				want = "2 edited"
			}
			require.NoError(t, page.ExpectTasks(ctx, "1", want))
		})
	}
}

func TestEditToEmptyDeletes(t *testing.T) {
	t.Parallel()

	page, _, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, fixture.Uniform(fixture.Active, "1", "2")...))

	edit, err := page.StartEdit(ctx, "1", "")
	require.NoError(t, err)
	require.NoError(t, edit.PressEnter(ctx))
	require.NoError(t, page.ExpectTasks(ctx, "2"))
}

func TestStartEditMissingTask(t *testing.T) {
	t.Parallel()

	page, _, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, fixture.ATask("1", fixture.Active)))

	_, err := page.StartEdit(ctx, "nope", "x")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInteraction))
	assert.Contains(t, err.Error(), `start edit "nope"`)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, testutil.SampleMixedTasks()...))

	require.NoError(t, page.Delete(ctx, "b"))
	testutil.AssertRendered(t, fake, fixture.Uniform(fixture.Active, "a", "c")...)
	assert.Contains(t, fake.Calls(), "hover #todo-list li:nth-child(2)")
}

func TestDeleteHiddenTaskFails(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.GivenAt(ctx, ShowActive, testutil.SampleMixedTasks()...))

	err := page.Delete(ctx, "b")
	require.Error(t, err, "completed tasks are hidden under Active")
	assert.True(t, IsKind(err, KindInteraction))
	testutil.AssertRendered(t, fake, testutil.SampleMixedTasks()...)
}

func TestToggle(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, testutil.SampleMixedTasks()...))

	require.NoError(t, page.Toggle(ctx, "b"))
	require.NoError(t, page.Toggle(ctx, "c"))
	testutil.AssertRendered(t, fake,
		fixture.ATask("a", fixture.Active),
		fixture.ATask("b", fixture.Active),
		fixture.ATask("c", fixture.Completed),
	)
}

func TestToggleAll(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, testutil.SampleMixedTasks()...))

	require.NoError(t, page.ToggleAll(ctx))
	testutil.AssertRendered(t, fake, testutil.SampleCompletedTasks()...)
	require.NoError(t, page.ExpectItemsLeft(ctx, 0))

	require.NoError(t, page.ToggleAll(ctx))
	testutil.AssertRendered(t, fake, testutil.SampleActiveTasks()...)
	require.NoError(t, page.ExpectItemsLeft(ctx, 3))
}

func TestClearCompleted(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, testutil.SampleMixedTasks()...))

	require.NoError(t, page.ClearCompleted(ctx))
	testutil.AssertRendered(t, fake, fixture.Uniform(fixture.Active, "a", "c")...)

	require.NoError(t, page.ClearCompleted(ctx), "nothing completed is a no-op")
	testutil.AssertRendered(t, fake, fixture.Uniform(fixture.Active, "a", "c")...)
}

func TestClearCompletedAllActive(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, fixture.Uniform(fixture.Active, "1", "2")...))
	clicks := fake.CallCount(testutil.OpClick)

	require.NoError(t, page.ClearCompleted(ctx))
	assert.Equal(t, clicks, fake.CallCount(testutil.OpClick), "hidden control is not clicked")
	require.NoError(t, page.ExpectTasks(ctx, "1", "2"))
	require.NoError(t, page.ExpectItemsLeft(ctx, 2))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.Given(ctx, testutil.SampleMixedTasks()...))

	tests := []struct {
		filter  func(context.Context) error
		visible []string
	}{
		{page.FilterActive, []string{"a", "c"}},
		{page.FilterCompleted, []string{"b"}},
		{page.FilterAll, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		require.NoError(t, tt.filter(ctx))
		require.NoError(t, page.ExpectVisibleTasks(ctx, tt.visible...))
		require.NoError(t, page.ExpectTasks(ctx, "a", "b", "c"))
	}

	loc, err := fake.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.FakeURL+"#/", loc)
}

func TestFilterOnEmptyListFails(t *testing.T) {
	t.Parallel()

	page, _, ctx := openTestPage(t)
	err := page.FilterActive(ctx)
	require.Error(t, err, "the footer is hidden without tasks")
	assert.True(t, IsKind(err, KindInteraction))
	assert.Contains(t, err.Error(), `filter "Active"`)
}

func TestFindTaskSkipsHiddenDuplicates(t *testing.T) {
	t.Parallel()

	page, fake, ctx := openTestPage(t)
	require.NoError(t, page.GivenAt(ctx, ShowActive,
		fixture.ATask("x", fixture.Completed),
		fixture.ATask("x", fixture.Active),
	))

	require.NoError(t, page.Toggle(ctx, "x"))
	testutil.AssertRendered(t, fake, fixture.Uniform(fixture.Completed, "x", "x")...)
}
