package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Commands wrap repository calls in tea.Cmds. The event loop acquires the
// matching in-flight latch before issuing one of these and releases it when
// the result message lands; the command itself never touches model state.

const flashDuration = 4 * time.Second

func (m appModel) loadTasksCmd() tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		ts, err := tasks.ListTasks(context.Background())
		return tasksLoadedMsg{tasks: ts, err: err}
	}
}

func (m appModel) fetchThreadCmd(taskID string, seq int) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		comments, err := repo.FetchAll(context.Background(), taskID)
		return threadLoadedMsg{taskID: taskID, seq: seq, comments: comments, err: err}
	}
}

func (m appModel) addCommentCmd(taskID, text string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		c, err := repo.Add(context.Background(), taskID, text)
		return commentAddedMsg{taskID: taskID, comment: c, err: err}
	}
}

func (m appModel) saveEditCmd(taskID, commentID, draft string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		c, err := repo.Edit(context.Background(), taskID, commentID, draft)
		return commentSavedMsg{taskID: taskID, commentID: commentID, comment: c, err: err}
	}
}

func (m appModel) removeCommentCmd(taskID, commentID string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		err := repo.Remove(context.Background(), taskID, commentID)
		return commentRemovedMsg{taskID: taskID, commentID: commentID, err: err}
	}
}

func (m appModel) clearThreadCmd(taskID string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		err := repo.RemoveAll(context.Background(), taskID)
		return threadClearedMsg{taskID: taskID, err: err}
	}
}

func flashCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}
