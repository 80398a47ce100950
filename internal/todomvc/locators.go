package todomvc

import "fmt"

// CSS selectors of the troopjs TodoMVC page.
const (
	newTodoInput   = "#new-todo"
	taskItems      = "#todo-list li"
	editField      = "#todo-list li.editing .edit"
	toggleAllBox   = "#toggle-all"
	clearCompleted = "#clear-completed"
	itemsLeftLabel = "#todo-count strong"
	filterItems    = "#filters li"
	headerTitle    = "#header h1"
)

// nthTask addresses the item at a zero-based index.
func nthTask(i int) string {
	return fmt.Sprintf("%s:nth-child(%d)", taskItems, i+1)
}

func nthFilterLink(i int) string {
	return fmt.Sprintf("%s:nth-child(%d) a", filterItems, i+1)
}
