package thread

import "taskchat/internal/model"

// EditSession is the optional {comment, draft} pair for an in-progress edit.
// A failed save must leave the session open with the draft intact so the
// user can retry or cancel; only a confirmed save or an explicit cancel
// closes it.
type EditSession struct {
	commentID string
	draft     string
	active    bool
}

// Begin seeds the draft from the comment's current text. Callers clear the
// selection as a side effect (see Session.BeginEdit).
func (e *EditSession) Begin(c model.Comment) {
	e.commentID = c.ID
	e.draft = c.Text
	e.active = true
}

// UpdateDraft is a pure local mutation with no network effect.
func (e *EditSession) UpdateDraft(text string) {
	if !e.active {
		return
	}
	e.draft = text
}

// Cancel discards the session without touching the thread.
func (e *EditSession) Cancel() { *e = EditSession{} }

// Close ends the session after a confirmed save.
func (e *EditSession) Close() { *e = EditSession{} }

func (e *EditSession) Active() bool { return e.active }

func (e *EditSession) CommentID() string { return e.commentID }

func (e *EditSession) Draft() string { return e.draft }
