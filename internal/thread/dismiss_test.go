package thread

import "testing"

func rect(x0, y0, x1, y1 int) func(x, y int) bool {
	return func(x, y int) bool {
		return x >= x0 && x <= x1 && y >= y0 && y <= y1
	}
}

func TestWatcherDismissesOnOutsidePointerDown(t *testing.T) {
	w := NewWatcher()

	dismissed := 0
	h := w.Subscribe(rect(10, 10, 20, 20), func() { dismissed++ })

	// Inside the region: surface stays open.
	w.PointerDown(15, 15)
	if dismissed != 0 || !w.Subscribed(h) {
		t.Fatalf("inside pointer-down dismissed the surface")
	}

	// Outside: dismissed and unsubscribed in the same step.
	w.PointerDown(0, 0)
	if dismissed != 1 {
		t.Fatalf("dismiss count = %d, want 1", dismissed)
	}
	if w.Subscribed(h) {
		t.Fatalf("subscription leaked after dismissal")
	}

	// Further interactions must not re-fire the callback.
	w.PointerDown(0, 0)
	if dismissed != 1 {
		t.Fatalf("dismiss fired after unsubscribe: %d", dismissed)
	}
}

func TestWatcherUnsubscribeIsIdempotent(t *testing.T) {
	w := NewWatcher()
	dismissed := 0
	h := w.Subscribe(rect(0, 0, 1, 1), func() { dismissed++ })

	w.Unsubscribe(h)
	w.Unsubscribe(h)
	if w.Len() != 0 {
		t.Fatalf("subscriptions remain after unsubscribe: %d", w.Len())
	}

	w.PointerDown(5, 5)
	if dismissed != 0 {
		t.Fatalf("closed surface was dismissed")
	}
}

func TestWatcherMultipleSurfaces(t *testing.T) {
	w := NewWatcher()
	var a, b int
	w.Subscribe(rect(0, 0, 5, 5), func() { a++ })
	w.Subscribe(rect(10, 0, 15, 5), func() { b++ })

	// A point inside the first region but outside the second dismisses only
	// the second.
	w.PointerDown(2, 2)
	if a != 0 || b != 1 {
		t.Fatalf("dismiss counts a=%d b=%d, want 0,1", a, b)
	}
}
