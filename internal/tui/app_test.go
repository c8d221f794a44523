package tui

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"taskchat/internal/api"
	"taskchat/internal/model"
	"taskchat/internal/thread"

	tea "github.com/charmbracelet/bubbletea"
)

type scriptedService struct {
	comments []model.Comment

	listCalls int
	addCalls  int
	addErr    error
	editErr   error
}

func (s *scriptedService) ListComments(_ context.Context, taskID string) ([]model.Comment, error) {
	s.listCalls++
	return s.comments, nil
}

func (s *scriptedService) AddComment(_ context.Context, taskID, text string) (model.Comment, error) {
	s.addCalls++
	if s.addErr != nil {
		return model.Comment{}, s.addErr
	}
	return model.Comment{
		ID:        "cmt-new",
		TaskID:    taskID,
		Author:    model.Author{ID: "user-me", Name: "Me"},
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

func (s *scriptedService) EditComment(_ context.Context, taskID, commentID, text string) (model.Comment, error) {
	if s.editErr != nil {
		return model.Comment{}, s.editErr
	}
	return model.Comment{ID: commentID, TaskID: taskID, Text: text, Edited: true}, nil
}

func (s *scriptedService) DeleteComment(_ context.Context, _, _ string) error { return nil }

func (s *scriptedService) DeleteAllComments(_ context.Context, _ string) error { return nil }

func tuiViewer(role model.Role) model.Viewer {
	return model.Viewer{ID: "user-me", Name: "Me", Role: role}
}

func threadComments(base time.Time) []model.Comment {
	return []model.Comment{
		{ID: "cmt-1", TaskID: "task-1", Author: model.Author{ID: "user-me", Name: "Me"}, Text: "mine", CreatedAt: base},
		{ID: "cmt-2", TaskID: "task-1", Author: model.Author{ID: "user-other", Name: "Other"}, Text: "theirs", CreatedAt: base.Add(time.Minute)},
	}
}

type noTasks struct{}

func (noTasks) ListTasks(_ context.Context) ([]model.Task, error) { return nil, nil }

// newThreadModel builds a model sitting in the thread view for task-1 with
// the scripted comments already applied.
func newThreadModel(t *testing.T, svc *scriptedService, role model.Role) appModel {
	t.Helper()
	m := newAppModel(thread.NewRepo(svc), noTasks{}, tuiViewer(role), slog.New(slog.DiscardHandler))
	m.width = 80
	m.height = 24
	m.resize()

	seq := m.sess.SwitchTask("task-1")
	if !m.sess.AcceptFetch("task-1", seq) {
		t.Fatal("fresh fetch token rejected")
	}
	m.sess.ApplyFetch(svc.comments)
	m.view = viewThread
	m.taskTitle = "Task one"
	return m
}

func press(t *testing.T, m appModel, key tea.KeyMsg) (appModel, tea.Cmd) {
	t.Helper()
	mAny, cmd := m.Update(key)
	mm, ok := mAny.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", mAny)
	}
	return mm, cmd
}

func deliver(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	mAny, cmd := m.Update(msg)
	mm, ok := mAny.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", mAny)
	}
	return mm, cmd
}

func TestComposeEnterLatchesUntilResultArrives(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)

	m.compose.SetValue("hello")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}

	// Second enter while the first request is outstanding issues nothing.
	m.compose.SetValue("hello again")
	m, cmd2 := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd2 != nil {
		t.Fatal("double submit slipped past the latch")
	}

	m, _ = deliver(t, m, cmd())
	if svc.addCalls != 1 {
		t.Fatalf("addCalls = %d, want 1", svc.addCalls)
	}
	if m.sess.Inflight.Busy(thread.OpAdd) {
		t.Fatal("latch still held after result")
	}
	// Released latch accepts the next submit.
	m.compose.SetValue("third")
	m, cmd3 := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd3 == nil {
		t.Fatal("latch not released for next submit")
	}
	deliver(t, m, cmd3())
	if svc.addCalls != 2 {
		t.Fatalf("addCalls = %d, want 2", svc.addCalls)
	}
}

func TestFailedAddKeepsComposeText(t *testing.T) {
	svc := &scriptedService{
		comments: threadComments(time.Now()),
		addErr:   &api.Error{Kind: api.KindServer, Message: "boom"},
	}
	m := newThreadModel(t, svc, model.RoleMember)

	m.compose.SetValue("hello")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = deliver(t, m, cmd())

	if m.compose.Value() != "hello" {
		t.Fatalf("compose = %q, want draft preserved", m.compose.Value())
	}
	if m.flashText == "" || !m.flashErr {
		t.Fatal("expected an error flash")
	}
	if m.sess.State.Len() != 2 {
		t.Fatalf("thread mutated on failed add: %d comments", m.sess.State.Len())
	}
}

func TestStaleThreadResponseDiscarded(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)

	oldSeq := m.sess.SwitchTask("task-1") // viewer re-opens, empty thread
	newSeq := m.sess.SwitchTask("task-2")

	// The response for the superseded task-1 fetch lands first.
	m, _ = deliver(t, m, threadLoadedMsg{taskID: "task-1", seq: oldSeq, comments: threadComments(time.Now())})
	if m.sess.State.Len() != 0 {
		t.Fatal("stale response mutated the thread")
	}

	m, _ = deliver(t, m, threadLoadedMsg{taskID: "task-2", seq: newSeq, comments: threadComments(time.Now())[:1]})
	if m.sess.State.Len() != 1 {
		t.Fatalf("current response not applied: %d comments", m.sess.State.Len())
	}
}

func TestEmojiOutsideClickDismissesExactlyOnce(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if !m.emoji.open {
		t.Fatal("emoji surface did not open")
	}
	if m.watcher.Len() != 1 {
		t.Fatalf("watcher subscriptions = %d, want 1", m.watcher.Len())
	}

	outside := tea.MouseMsg{X: m.width - 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = deliver(t, m, outside)
	if m.emoji.open {
		t.Fatal("outside press did not dismiss the surface")
	}
	if m.watcher.Len() != 0 {
		t.Fatalf("subscription leaked: %d", m.watcher.Len())
	}

	// A second press must be a no-op, not a double dismissal.
	m, _ = deliver(t, m, outside)
	if m.watcher.Len() != 0 {
		t.Fatalf("watcher grew after dismissal: %d", m.watcher.Len())
	}
}

func TestEmojiInsidePressKeepsSurfaceOpen(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	inside := tea.MouseMsg{X: m.emoji.x + 1, Y: m.emoji.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = deliver(t, m, inside)
	if !m.emoji.open {
		t.Fatal("inside press dismissed the surface")
	}
}

func TestEmojiInsertTargetsEditDraftOverCompose(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)

	// Begin editing the viewer's own comment.
	m.focus = focusThread
	m.cursor = 0
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if !m.sess.Edit.Active() {
		t.Fatal("edit session did not open")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // insert selected glyph

	if m.emoji.open {
		t.Fatal("surface should close after insert")
	}
	if m.editInput.Value() == "mine" {
		t.Fatal("glyph not appended to edit draft")
	}
	if got := m.sess.Edit.Draft(); got != m.editInput.Value() {
		t.Fatalf("edit draft %q out of sync with input %q", got, m.editInput.Value())
	}
	if m.compose.Value() != "" {
		t.Fatalf("compose mutated: %q", m.compose.Value())
	}
}

func TestSelectionToggleAndActionKeys(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)
	m.focus = focusThread
	m.cursor = 0

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.sess.Sel.ID() != "cmt-1" {
		t.Fatalf("selection = %q, want cmt-1", m.sess.Sel.ID())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.sess.Sel.Active() {
		t.Fatal("second toggle should clear the selection")
	}

	// Toggling a foreign comment is refused.
	m.cursor = 1
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.sess.Sel.Active() {
		t.Fatal("selected a comment the viewer does not own")
	}
}

func TestEditForeignCommentFlashesAndStaysClosed(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)
	m.focus = focusThread
	m.cursor = 1 // other author's comment

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if m.sess.Edit.Active() {
		t.Fatal("edit session opened for a foreign comment")
	}
	if m.flashText == "" {
		t.Fatal("expected a refusal flash")
	}
}

func TestFailedSaveKeepsEditSessionAndDraft(t *testing.T) {
	svc := &scriptedService{
		comments: threadComments(time.Now()),
		editErr:  &api.Error{Kind: api.KindServer, Message: "boom"},
	}
	m := newThreadModel(t, svc, model.RoleMember)
	m.focus = focusThread
	m.cursor = 0
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	m.editInput.SetValue("mine, revised")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	m, _ = deliver(t, m, cmd())

	if !m.sess.Edit.Active() {
		t.Fatal("edit session closed on failed save")
	}
	if m.editInput.Value() != "mine, revised" {
		t.Fatalf("draft lost: %q", m.editInput.Value())
	}
	if c, _ := m.sess.State.Find("cmt-1"); c.Text != "mine" {
		t.Fatalf("thread mutated on failed save: %q", c.Text)
	}
}

func TestClearThreadRequiresAdminAndConfirmation(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}

	member := newThreadModel(t, svc, model.RoleMember)
	member.focus = focusThread
	member, _ = press(t, member, tea.KeyMsg{Type: tea.KeyCtrlD})
	if member.confirmOpen {
		t.Fatal("member opened the bulk delete confirm")
	}
	if member.flashText == "" {
		t.Fatal("expected an admin-only flash")
	}

	admin := newThreadModel(t, svc, model.RoleAdmin)
	admin.focus = focusThread
	admin, _ = press(t, admin, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !admin.confirmOpen {
		t.Fatal("admin confirm modal did not open")
	}
	if admin.confirmFocus != confirmFocusCancel {
		t.Fatal("confirm modal should default to the safe button")
	}

	// Cancel leaves the thread alone.
	admin, _ = press(t, admin, tea.KeyMsg{Type: tea.KeyEsc})
	if admin.confirmOpen || admin.sess.Bulk.Pending() {
		t.Fatal("esc did not cancel the flow")
	}
	if admin.sess.State.Len() != 2 {
		t.Fatal("cancel mutated the thread")
	}

	// Confirm issues the clear and empties the thread on success.
	admin, _ = press(t, admin, tea.KeyMsg{Type: tea.KeyCtrlD})
	admin, _ = press(t, admin, tea.KeyMsg{Type: tea.KeyTab})
	if admin.confirmFocus != confirmFocusConfirm {
		t.Fatal("tab did not move focus to confirm")
	}
	admin, cmd := press(t, admin, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a clear command")
	}
	admin, _ = deliver(t, admin, cmd())
	if admin.sess.State.Len() != 0 {
		t.Fatalf("thread not cleared: %d comments", admin.sess.State.Len())
	}
}

func TestWindowResizeKeepsInputsUsable(t *testing.T) {
	svc := &scriptedService{comments: threadComments(time.Now())}
	m := newThreadModel(t, svc, model.RoleMember)

	m, _ = deliver(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if m.width != 40 || m.height != 12 {
		t.Fatalf("size = %dx%d", m.width, m.height)
	}
	if m.compose.Width <= 0 {
		t.Fatal("compose width collapsed")
	}
	if v := m.View(); v == "" {
		t.Fatal("empty frame after resize")
	}
}
