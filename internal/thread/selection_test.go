package thread

import (
	"testing"
	"time"

	"taskchat/internal/model"
)

func TestSelectionToggleTwiceReturnsToEmpty(t *testing.T) {
	viewer := model.Viewer{ID: "user-a"}
	own := model.Comment{ID: "5", Author: model.Author{ID: "user-a"}}

	sel := NewSelection(viewer)
	if sel.Active() {
		t.Fatalf("fresh selection is active")
	}

	sel.Toggle(own)
	if sel.ID() != "5" {
		t.Fatalf("selected = %q, want 5", sel.ID())
	}
	sel.Toggle(own)
	if sel.Active() {
		t.Fatalf("second toggle did not clear selection")
	}
}

func TestSelectionToggleSwitchesBetweenOwnComments(t *testing.T) {
	viewer := model.Viewer{ID: "user-a"}
	sel := NewSelection(viewer)

	sel.Toggle(model.Comment{ID: "1", Author: model.Author{ID: "user-a"}})
	sel.Toggle(model.Comment{ID: "2", Author: model.Author{ID: "user-a"}})
	if sel.ID() != "2" {
		t.Fatalf("selected = %q, want 2", sel.ID())
	}
}

func TestSelectionIgnoresForeignComments(t *testing.T) {
	viewer := model.Viewer{ID: "user-a"}
	sel := NewSelection(viewer)

	sel.Toggle(model.Comment{ID: "9", Author: model.Author{ID: "user-b"}})
	if sel.Active() {
		t.Fatalf("foreign comment became selected")
	}

	// A foreign toggle must not clear an existing own selection either.
	sel.Toggle(model.Comment{ID: "1", Author: model.Author{ID: "user-a"}})
	sel.Toggle(model.Comment{ID: "9", Author: model.Author{ID: "user-b"}})
	if sel.ID() != "1" {
		t.Fatalf("selected = %q, want 1", sel.ID())
	}
}

func TestSelectionPruneClearsDanglingID(t *testing.T) {
	viewer := model.Viewer{ID: "user-a"}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	st := NewState()
	st.ReplaceAll([]model.Comment{{
		ID: "1", Author: model.Author{ID: "user-a"}, CreatedAt: at,
	}})

	sel := NewSelection(viewer)
	sel.Toggle(st.Comments()[0])

	st.RemoveByID("1")
	sel.Prune(st)
	if sel.Active() {
		t.Fatalf("selection survived deletion of its comment")
	}
}
