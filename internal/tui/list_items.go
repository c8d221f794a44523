package tui

import (
	"taskchat/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type taskItem struct {
	task model.Task
}

func (i taskItem) Title() string { return i.task.Title }

func (i taskItem) Description() string {
	if i.task.Status == "" {
		return i.task.ID
	}
	return i.task.Status + "  " + i.task.ID
}

func (i taskItem) FilterValue() string { return i.task.Title }

func newTasksList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Tasks"
	l.SetShowHelp(false)
	l.SetStatusBarItemName("task", "tasks")
	return l
}

func taskListItems(tasks []model.Task) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	return items
}
