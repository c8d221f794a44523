// Package thread holds the client state machine for one task's comment
// thread: the confirmed comment list, the transient selection / edit /
// confirmation states, and the guards that keep asynchronous results from
// racing past a task switch.
//
// Nothing in this package performs I/O. Mutators are called only with values
// the server already confirmed, so the containers never run ahead of remote
// truth ("commit then reflect").
package thread

import (
	"sort"

	"taskchat/internal/model"
)

// State is the ordered thread for the active task.
//
// Display order is ascending CreatedAt with ties broken by ID. The server's
// wire order is normalized on every ReplaceAll and preserved by Insert, so
// fetch, add, and edit all observe the same ordering invariant.
type State struct {
	comments []model.Comment
}

func NewState() *State { return &State{} }

func less(a, b model.Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// ReplaceAll installs a fetched thread, normalizing order.
func (s *State) ReplaceAll(comments []model.Comment) {
	s.comments = append([]model.Comment(nil), comments...)
	sort.SliceStable(s.comments, func(i, j int) bool { return less(s.comments[i], s.comments[j]) })
}

// Insert places a newly confirmed comment at its ordered position
// (not necessarily the physical tail). IDs are unique in the thread: a
// duplicate turns into an in-place update.
func (s *State) Insert(c model.Comment) {
	if s.UpdateByID(c) {
		return
	}
	i := sort.Search(len(s.comments), func(i int) bool { return less(c, s.comments[i]) })
	s.comments = append(s.comments, model.Comment{})
	copy(s.comments[i+1:], s.comments[i:])
	s.comments[i] = c
}

// UpdateByID replaces the comment with a matching ID in place and reports
// whether a match existed. A miss is a client/server inconsistency the
// caller should log; the thread is left unchanged.
func (s *State) UpdateByID(c model.Comment) bool {
	for i := range s.comments {
		if s.comments[i].ID == c.ID {
			s.comments[i] = c
			return true
		}
	}
	return false
}

func (s *State) RemoveByID(id string) bool {
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) Clear() { s.comments = nil }

func (s *State) Len() int { return len(s.comments) }

func (s *State) Find(id string) (model.Comment, bool) {
	for _, c := range s.comments {
		if c.ID == id {
			return c, true
		}
	}
	return model.Comment{}, false
}

// Comments returns the thread in display order. The slice is shared; callers
// must treat it as read-only.
func (s *State) Comments() []model.Comment { return s.comments }
