package tui

import (
	"context"
	"log/slog"
	"strings"

	"taskchat/internal/model"
	"taskchat/internal/thread"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

// taskLister is the slice of the API the task picker needs.
type taskLister interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
}

type appModel struct {
	repo   *thread.Repo
	tasks  taskLister
	sess   *thread.Session
	logger *slog.Logger

	width  int
	height int

	view view

	tasksList list.Model
	taskTitle string

	focus  focusArea
	cursor int

	compose   textinput.Model
	editInput textinput.Model

	watcher *thread.Watcher
	emoji   emojiSurface

	// confirmOpen mirrors sess.Bulk: the modal is visible exactly while the
	// bulk-delete flow is in ConfirmPending.
	confirmOpen  bool
	confirmFocus confirmModalFocus

	loadingThread bool

	flashText string
	flashErr  bool
	flashSeq  int
}

func newAppModel(repo *thread.Repo, tasks taskLister, viewer model.Viewer, logger *slog.Logger) appModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := appModel{
		repo:    repo,
		tasks:   tasks,
		sess:    thread.NewSession(viewer),
		logger:  logger,
		view:    viewTasks,
		watcher: thread.NewWatcher(),
	}

	m.tasksList = newTasksList()

	m.compose = textinput.New()
	m.compose.Placeholder = "Type a message…"
	m.compose.CharLimit = 2000
	m.compose.Focus()

	m.editInput = textinput.New()
	m.editInput.CharLimit = 2000

	return m
}

func (m appModel) viewer() model.Viewer { return m.sess.Viewer() }

// activeBuffer names the compose surface an emoji insertion targets: an open
// edit draft wins over the new-comment box.
func (m appModel) editingActive() bool { return m.sess.Edit.Active() }

func (m *appModel) setFlash(text string, isErr bool) {
	m.flashText = strings.TrimSpace(text)
	m.flashErr = isErr
	m.flashSeq++
}

func (m *appModel) clampCursor() {
	n := m.sess.State.Len()
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m appModel) cursorComment() (model.Comment, bool) {
	cs := m.sess.State.Comments()
	if m.cursor < 0 || m.cursor >= len(cs) {
		return model.Comment{}, false
	}
	return cs[m.cursor], true
}
