package thread

// Op identifies one kind of Comment Service round trip.
type Op int

const (
	OpFetch Op = iota
	OpAdd
	OpEdit
	OpDelete
	OpDeleteAll
	opCount
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpAdd:
		return "add"
	case OpEdit:
		return "edit"
	case OpDelete:
		return "delete"
	case OpDeleteAll:
		return "delete-all"
	}
	return "unknown"
}

// Inflight is a per-operation-kind latch. The event loop acquires before
// issuing a request and releases when the response message arrives, so a
// rapid repeated gesture (double Enter on the compose box) cannot duplicate
// a round trip. Operations of different kinds stay independent.
type Inflight struct {
	busy [opCount]bool
}

// TryAcquire reports false when an operation of this kind is already
// outstanding.
func (f *Inflight) TryAcquire(op Op) bool {
	if f.busy[op] {
		return false
	}
	f.busy[op] = true
	return true
}

func (f *Inflight) Release(op Op) { f.busy[op] = false }

func (f *Inflight) Busy(op Op) bool { return f.busy[op] }
