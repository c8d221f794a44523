package thread

// Watcher implements "outside interaction closes an open transient surface".
// A surface subscribes with the region it occupies while open and
// unsubscribes when it closes; any pointer-down outside the region fires the
// surface's dismiss callback. The watcher is fed by whatever event source
// the host has (tea.MouseMsg in the TUI, a fake in tests).
type Watcher struct {
	next int
	subs map[Handle]watch
}

type Handle int

type watch struct {
	contains func(x, y int) bool
	dismiss  func()
}

func NewWatcher() *Watcher {
	return &Watcher{subs: map[Handle]watch{}}
}

// Subscribe registers an open surface. contains reports whether a point lies
// inside the surface; dismiss is called on any pointer-down outside it.
func (w *Watcher) Subscribe(contains func(x, y int) bool, dismiss func()) Handle {
	w.next++
	h := Handle(w.next)
	w.subs[h] = watch{contains: contains, dismiss: dismiss}
	return h
}

// Unsubscribe removes a subscription. Safe to call more than once; the
// observation is released exactly once.
func (w *Watcher) Unsubscribe(h Handle) {
	delete(w.subs, h)
}

func (w *Watcher) Subscribed(h Handle) bool {
	_, ok := w.subs[h]
	return ok
}

func (w *Watcher) Len() int { return len(w.subs) }

// PointerDown reports an interaction at (x, y). Subscribers whose region
// excludes the point are dismissed and removed.
func (w *Watcher) PointerDown(x, y int) {
	for h, s := range w.subs {
		if s.contains != nil && s.contains(x, y) {
			continue
		}
		delete(w.subs, h)
		if s.dismiss != nil {
			s.dismiss()
		}
	}
}
