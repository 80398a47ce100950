package testutil

import (
	"github.com/thruflo/todomvc-e2e/internal/fixture"
)

// SampleActiveTasks returns three active tasks: "a", "b" and "c".
func SampleActiveTasks() []fixture.Task {
	return fixture.Uniform(fixture.Active, "a", "b", "c")
}

// SampleCompletedTasks returns three completed tasks: "a", "b" and "c".
func SampleCompletedTasks() []fixture.Task {
	return fixture.Uniform(fixture.Completed, "a", "b", "c")
}

// SampleMixedTasks returns "a" active, "b" completed and "c" active.
func SampleMixedTasks() []fixture.Task {
	return []fixture.Task{
		fixture.ATask("a", fixture.Active),
		fixture.ATask("b", fixture.Completed),
		fixture.ATask("c", fixture.Active),
	}
}

// SampleTrickyTasks returns texts that need escaping on their way into a
// storage script.
func SampleTrickyTasks() []fixture.Task {
	return []fixture.Task{
		fixture.ATask(`say "hi"`, fixture.Active),
		fixture.ATask(`it's`, fixture.Completed),
		fixture.ATask(`back\slash`, fixture.Active),
		fixture.ATask("</script> & <b>", fixture.Active),
		fixture.ATask("naïve ✓", fixture.Completed),
	}
}

// Texts returns the texts of tasks in order.
func Texts(tasks []fixture.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text()
	}
	return out
}
