package thread

import "taskchat/internal/model"

// Session owns every piece of per-task thread state and enforces the rules
// that tie the containers together: starting an edit clears the selection, a
// confirmed delete closes whatever referenced the removed comment, and a
// task switch resets everything and fences off in-flight fetches.
//
// All methods run on the host's single event loop; Session carries no locks.
type Session struct {
	viewer model.Viewer

	taskID   string
	fetchSeq int

	State    *State
	Sel      *Selection
	Edit     *EditSession
	Bulk     *BulkDeleteFlow
	Inflight *Inflight
}

func NewSession(viewer model.Viewer) *Session {
	return &Session{
		viewer:   viewer,
		State:    NewState(),
		Sel:      NewSelection(viewer),
		Edit:     &EditSession{},
		Bulk:     NewBulkDeleteFlow(viewer),
		Inflight: &Inflight{},
	}
}

func (s *Session) Viewer() model.Viewer { return s.viewer }

func (s *Session) TaskID() string { return s.taskID }

// SwitchTask resets thread, selection, and edit state for a new task and
// returns the fetch token for the task's initial load. Any response carrying
// an older token (or another task id) is stale and must be discarded.
func (s *Session) SwitchTask(taskID string) int {
	s.taskID = taskID
	s.fetchSeq++
	s.State.Clear()
	s.Sel.Clear()
	s.Edit.Cancel()
	s.Bulk.Cancel()
	return s.fetchSeq
}

// AcceptFetch reports whether a fetch response may be applied: it must carry
// the current task id and the most recent fetch token issued for it.
func (s *Session) AcceptFetch(taskID string, seq int) bool {
	return taskID == s.taskID && seq == s.fetchSeq
}

func (s *Session) ApplyFetch(comments []model.Comment) {
	s.State.ReplaceAll(comments)
	s.Sel.Prune(s.State)
}

// ApplyAdd reflects a confirmed add. Results for another task are dropped.
func (s *Session) ApplyAdd(c model.Comment) {
	if c.TaskID != "" && c.TaskID != s.taskID {
		return
	}
	s.State.Insert(c)
}

// ApplyEdit reflects a confirmed edit and closes the edit session when it
// targeted the updated comment. It reports whether the id was known.
func (s *Session) ApplyEdit(c model.Comment) bool {
	ok := s.State.UpdateByID(c)
	if s.Edit.Active() && s.Edit.CommentID() == c.ID {
		s.Edit.Close()
	}
	return ok
}

// ApplyDelete reflects a confirmed single delete: the entry goes away and
// any selection or edit session referencing it is closed.
func (s *Session) ApplyDelete(commentID string) bool {
	ok := s.State.RemoveByID(commentID)
	if s.Sel.ID() == commentID {
		s.Sel.Clear()
	}
	if s.Edit.Active() && s.Edit.CommentID() == commentID {
		s.Edit.Cancel()
	}
	return ok
}

// ApplyClearAll reflects a confirmed bulk delete.
func (s *Session) ApplyClearAll() {
	s.State.Clear()
	s.Sel.Clear()
	s.Edit.Cancel()
}

// BeginEdit opens an edit session for an owned comment and clears the
// selection. Foreign or unknown ids are refused.
func (s *Session) BeginEdit(commentID string) bool {
	c, ok := s.State.Find(commentID)
	if !ok || !c.OwnedBy(s.viewer.ID) {
		return false
	}
	s.Edit.Begin(c)
	s.Sel.Clear()
	return true
}
