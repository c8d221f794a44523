package thread

import "taskchat/internal/model"

type BulkDeleteState int

const (
	BulkIdle BulkDeleteState = iota
	BulkConfirmPending
)

// BulkDeleteFlow is the confirmation gate in front of "delete all comments".
// Idle -> ConfirmPending (privileged trigger) -> Idle. The confirmation is
// consumed whether the remote call then succeeds or fails; a retry is a
// fresh pass through the gate.
type BulkDeleteFlow struct {
	viewer model.Viewer
	state  BulkDeleteState
}

func NewBulkDeleteFlow(viewer model.Viewer) *BulkDeleteFlow {
	return &BulkDeleteFlow{viewer: viewer}
}

func (f *BulkDeleteFlow) State() BulkDeleteState { return f.state }

func (f *BulkDeleteFlow) Pending() bool { return f.state == BulkConfirmPending }

// Request opens the confirmation. Only admins may enter the flow.
func (f *BulkDeleteFlow) Request() bool {
	if !f.viewer.IsAdmin() || f.state != BulkIdle {
		return false
	}
	f.state = BulkConfirmPending
	return true
}

// Consume accepts the confirmation and returns to Idle. It reports whether
// there was a pending confirmation to consume; the remote call must only be
// issued when it reports true.
func (f *BulkDeleteFlow) Consume() bool {
	if f.state != BulkConfirmPending {
		return false
	}
	f.state = BulkIdle
	return true
}

// Cancel returns to Idle without any network call or mutation.
func (f *BulkDeleteFlow) Cancel() { f.state = BulkIdle }
