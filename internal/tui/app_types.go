package tui

import (
	"taskchat/internal/model"
)

type view int

const (
	viewTasks view = iota
	viewThread
)

func viewToString(v view) string {
	switch v {
	case viewTasks:
		return "tasks"
	case viewThread:
		return "thread"
	}
	return "?"
}

type focusArea int

const (
	focusCompose focusArea = iota
	focusThread
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// Async results. Every thread-scoped message carries the task id it belongs
// to (the fetch additionally its generation token) so that responses
// arriving after a task switch can be discarded.

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type threadLoadedMsg struct {
	taskID   string
	seq      int
	comments []model.Comment
	err      error
}

type commentAddedMsg struct {
	taskID  string
	comment model.Comment
	err     error
}

type commentSavedMsg struct {
	taskID    string
	commentID string
	comment   model.Comment
	err       error
}

type commentRemovedMsg struct {
	taskID    string
	commentID string
	err       error
}

type threadClearedMsg struct {
	taskID string
	err    error
}

type flashDoneMsg struct{ seq int }
