package thread

import "taskchat/internal/model"

// Selection tracks which single comment (if any) has its action menu open.
// Only comments owned by the viewer are selectable; the triggering control
// should not be reachable for foreign comments, so a foreign toggle is
// treated as a no-op rather than a fault.
type Selection struct {
	viewerID string
	id       string
}

func NewSelection(viewer model.Viewer) *Selection {
	return &Selection{viewerID: viewer.ID}
}

// Toggle selects c, or clears the selection when c is already selected.
func (s *Selection) Toggle(c model.Comment) {
	if !c.OwnedBy(s.viewerID) {
		return
	}
	if s.id == c.ID {
		s.id = ""
		return
	}
	s.id = c.ID
}

func (s *Selection) ID() string { return s.id }

func (s *Selection) Active() bool { return s.id != "" }

func (s *Selection) Clear() { s.id = "" }

// Prune clears a selection that points at a comment which no longer exists
// or is no longer owned (e.g. after a delete confirmed elsewhere).
func (s *Selection) Prune(st *State) {
	if s.id == "" {
		return
	}
	c, ok := st.Find(s.id)
	if !ok || !c.OwnedBy(s.viewerID) {
		s.id = ""
	}
}
