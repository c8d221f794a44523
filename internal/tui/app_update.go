package tui

import (
	"errors"
	"strings"

	"taskchat/internal/api"
	"taskchat/internal/thread"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) Init() tea.Cmd {
	return m.loadTasksCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashText = ""
			m.flashErr = false
		}
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("task list failed", "err", msg.err)
			return m.flash(errorFlash(msg.err))
		}
		return m, m.tasksList.SetItems(taskListItems(msg.tasks))

	case threadLoadedMsg:
		return m.handleThreadLoaded(msg)

	case commentAddedMsg:
		m.sess.Inflight.Release(thread.OpAdd)
		if msg.err != nil {
			// Keep the compose text so the author can fix and resubmit.
			m.logger.Warn("add comment failed", "task", msg.taskID, "err", msg.err)
			return m.flash(errorFlash(msg.err))
		}
		if msg.taskID == m.sess.TaskID() {
			m.sess.ApplyAdd(msg.comment)
			m.compose.SetValue("")
			m.cursor = m.sess.State.Len() - 1
			m.clampCursor()
		}
		return m, nil

	case commentSavedMsg:
		m.sess.Inflight.Release(thread.OpEdit)
		if msg.err != nil {
			// The edit session and its draft survive a failed save.
			m.logger.Warn("edit comment failed", "comment", msg.commentID, "err", msg.err)
			return m.flash(errorFlash(msg.err))
		}
		if msg.taskID == m.sess.TaskID() && m.sess.ApplyEdit(msg.comment) {
			if !m.sess.Edit.Active() {
				m.closeEditInput()
			}
		}
		return m, nil

	case commentRemovedMsg:
		m.sess.Inflight.Release(thread.OpDelete)
		if msg.err != nil {
			m.logger.Warn("delete comment failed", "comment", msg.commentID, "err", msg.err)
			return m.flash(errorFlash(msg.err))
		}
		if msg.taskID == m.sess.TaskID() {
			editWasActive := m.sess.Edit.Active()
			m.sess.ApplyDelete(msg.commentID)
			if editWasActive && !m.sess.Edit.Active() {
				m.closeEditInput()
			}
			m.clampCursor()
		}
		return m, nil

	case threadClearedMsg:
		m.sess.Inflight.Release(thread.OpDeleteAll)
		if msg.err != nil {
			m.logger.Warn("clear thread failed", "task", msg.taskID, "err", msg.err)
			return m.flash(errorFlash(msg.err))
		}
		if msg.taskID == m.sess.TaskID() {
			m.sess.ApplyClearAll()
			m.closeEditInput()
			m.cursor = 0
			return m.flash("Thread cleared", false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *appModel) resize() {
	listH := m.height - 4
	if listH < 3 {
		listH = 3
	}
	m.tasksList.SetSize(m.width, listH)
	inputW := m.width - 4
	if inputW < 10 {
		inputW = 10
	}
	m.compose.Width = inputW
	m.editInput.Width = inputW
}

func (m appModel) handleThreadLoaded(msg threadLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.sess.AcceptFetch(msg.taskID, msg.seq) {
		// Superseded by a task switch or a newer fetch; a fresher response
		// owns the thread now.
		m.logger.Debug("stale thread response discarded", "task", msg.taskID, "seq", msg.seq)
		return m, nil
	}
	m.loadingThread = false
	if msg.err != nil {
		m.logger.Warn("thread fetch failed", "task", msg.taskID, "err", msg.err)
		return m.flash(errorFlash(msg.err))
	}
	m.sess.ApplyFetch(msg.comments)
	m.clampCursor()
	return m, nil
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	m.watcher.PointerDown(msg.X, msg.Y)
	// Surfaces whose subscription the press dropped are now dismissed.
	if m.emoji.open && !m.watcher.Subscribed(m.emoji.handle) {
		m.emoji.close(m.watcher)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirmOpen {
		return m.handleConfirmKey(msg)
	}
	if m.emoji.open {
		return m.handleEmojiKey(msg)
	}
	if m.editingActive() {
		return m.handleEditKey(msg)
	}
	switch m.view {
	case viewTasks:
		return m.handleTasksKey(msg)
	case viewThread:
		return m.handleThreadKey(msg)
	}
	return m, nil
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.sess.Bulk.Cancel()
			m.confirmOpen = false
			return m, nil
		}
		m.confirmOpen = false
		if !m.sess.Bulk.Consume() {
			return m, nil
		}
		if !m.sess.Inflight.TryAcquire(thread.OpDeleteAll) {
			return m, nil
		}
		return m, m.clearThreadCmd(m.sess.TaskID())
	case "esc", "ctrl+g":
		m.sess.Bulk.Cancel()
		m.confirmOpen = false
		return m, nil
	}
	return m, nil
}

func (m appModel) handleEmojiKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "ctrl+e":
		m.emoji.close(m.watcher)
		return m, nil
	case "left", "h":
		m.emoji.move(-1, 0)
		return m, nil
	case "right", "l":
		m.emoji.move(1, 0)
		return m, nil
	case "up", "k":
		m.emoji.move(0, -1)
		return m, nil
	case "down", "j":
		m.emoji.move(0, 1)
		return m, nil
	case "enter":
		glyph := m.emoji.selected()
		m.emoji.close(m.watcher)
		if glyph == "" {
			return m, nil
		}
		m.insertGlyph(glyph)
		return m, nil
	}
	return m, nil
}

// insertGlyph appends an emoji to whichever compose surface is active; an
// open edit draft wins over the new-comment box.
func (m *appModel) insertGlyph(glyph string) {
	if m.editingActive() {
		m.editInput.SetValue(m.editInput.Value() + glyph)
		m.editInput.CursorEnd()
		m.sess.Edit.UpdateDraft(m.editInput.Value())
		return
	}
	m.compose.SetValue(m.compose.Value() + glyph)
	m.compose.CursorEnd()
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.sess.Edit.Cancel()
		m.closeEditInput()
		return m, nil
	case "ctrl+e":
		m.openEmoji()
		return m, nil
	case "enter":
		draft := m.editInput.Value()
		if strings.TrimSpace(draft) == "" {
			return m.flash("Comment cannot be empty", true)
		}
		if !m.sess.Inflight.TryAcquire(thread.OpEdit) {
			return m, nil
		}
		m.sess.Edit.UpdateDraft(draft)
		return m, m.saveEditCmd(m.sess.TaskID(), m.sess.Edit.CommentID(), draft)
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.sess.Edit.UpdateDraft(m.editInput.Value())
	return m, cmd
}

func (m appModel) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && !m.tasksList.SettingFilter() {
		it, ok := m.tasksList.SelectedItem().(taskItem)
		if !ok {
			return m, nil
		}
		return m.openThread(it.task.ID, it.task.Title)
	}
	var cmd tea.Cmd
	m.tasksList, cmd = m.tasksList.Update(msg)
	return m, cmd
}

func (m appModel) openThread(taskID, title string) (tea.Model, tea.Cmd) {
	seq := m.sess.SwitchTask(taskID)
	m.closeEditInput()
	m.emoji.close(m.watcher)
	m.confirmOpen = false
	m.view = viewThread
	m.taskTitle = title
	m.focus = focusCompose
	m.cursor = 0
	m.compose.SetValue("")
	m.compose.Focus()
	m.loadingThread = true
	return m, m.fetchThreadCmd(taskID, seq)
}

func (m appModel) handleThreadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewTasks
		return m, nil
	case "tab":
		if m.focus == focusCompose {
			m.focus = focusThread
			m.compose.Blur()
		} else {
			m.focus = focusCompose
			m.compose.Focus()
		}
		return m, nil
	case "ctrl+e":
		m.openEmoji()
		return m, nil
	case "ctrl+r":
		return m.refetchThread()
	case "ctrl+d":
		return m.requestClearThread()
	}

	if m.focus == focusThread {
		return m.handleThreadNavKey(msg)
	}
	return m.handleComposeKey(msg)
}

func (m appModel) refetchThread() (tea.Model, tea.Cmd) {
	if m.loadingThread {
		return m, nil
	}
	seq := m.sess.SwitchTask(m.sess.TaskID())
	m.closeEditInput()
	m.cursor = 0
	m.loadingThread = true
	return m, m.fetchThreadCmd(m.sess.TaskID(), seq)
}

func (m appModel) requestClearThread() (tea.Model, tea.Cmd) {
	if m.sess.State.Len() == 0 {
		return m, nil
	}
	if !m.sess.Bulk.Request() {
		return m.flash("Only admins can clear a thread", true)
	}
	m.confirmOpen = true
	m.confirmFocus = confirmFocusCancel
	return m, nil
}

func (m appModel) handleThreadNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor--
		m.clampCursor()
		return m, nil
	case "down", "j":
		m.cursor++
		m.clampCursor()
		return m, nil
	case "enter", " ":
		if c, ok := m.cursorComment(); ok {
			m.sess.Sel.Toggle(c)
		}
		return m, nil
	case "e":
		return m.beginEdit()
	case "d":
		return m.deleteTarget()
	}
	return m, nil
}

func (m appModel) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := m.compose.Value()
		if strings.TrimSpace(text) == "" {
			return m.flash("Comment cannot be empty", true)
		}
		if !m.sess.Inflight.TryAcquire(thread.OpAdd) {
			return m, nil
		}
		return m, m.addCommentCmd(m.sess.TaskID(), text)
	}
	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

// targetComment is the comment a row action applies to: the selected one if
// a selection is active, otherwise the one under the cursor.
func (m appModel) targetComment() (string, bool) {
	if m.sess.Sel.Active() {
		return m.sess.Sel.ID(), true
	}
	if c, ok := m.cursorComment(); ok {
		return c.ID, true
	}
	return "", false
}

func (m appModel) beginEdit() (tea.Model, tea.Cmd) {
	id, ok := m.targetComment()
	if !ok {
		return m, nil
	}
	if !m.sess.BeginEdit(id) {
		return m.flash("You can only edit your own comments", true)
	}
	m.editInput.SetValue(m.sess.Edit.Draft())
	m.editInput.Focus()
	m.editInput.CursorEnd()
	m.compose.Blur()
	return m, nil
}

func (m appModel) deleteTarget() (tea.Model, tea.Cmd) {
	id, ok := m.targetComment()
	if !ok {
		return m, nil
	}
	c, ok := m.sess.State.Find(id)
	if !ok {
		return m, nil
	}
	if !c.OwnedBy(m.viewer().ID) {
		return m.flash("You can only delete your own comments", true)
	}
	if !m.sess.Inflight.TryAcquire(thread.OpDelete) {
		return m, nil
	}
	return m, m.removeCommentCmd(m.sess.TaskID(), id)
}

func (m *appModel) openEmoji() {
	if m.emoji.open {
		return
	}
	if m.view != viewThread {
		return
	}
	// Anchor above the compose line; the exact box size comes from rendering
	// one frame of the surface.
	box := (&emojiSurface{glyphs: emojiGlyphs()}).render()
	w := lipgloss.Width(box)
	h := lipgloss.Height(box)
	x := 2
	y := m.height - h - 2
	if y < 0 {
		y = 0
	}
	m.emoji.openAt(m.watcher, x, y, w, h)
}

func (m *appModel) closeEditInput() {
	m.editInput.SetValue("")
	m.editInput.Blur()
	if m.focus == focusCompose {
		m.compose.Focus()
	}
}

func (m appModel) flash(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.setFlash(text, isErr)
	return m, flashCmd(m.flashSeq)
}

// errorFlash maps an API error to a short user-facing line.
func errorFlash(err error) (string, bool) {
	switch api.KindOf(err) {
	case api.KindValidation:
		return "Rejected: " + apiMessage(err), true
	case api.KindAuth:
		return "Not allowed: " + apiMessage(err), true
	case api.KindServer:
		return "Server error, try again", true
	default:
		return "Network error, check your connection", true
	}
}

func apiMessage(err error) string {
	var ae *api.Error
	if errors.As(err, &ae) && strings.TrimSpace(ae.Message) != "" {
		return ae.Message
	}
	return err.Error()
}
