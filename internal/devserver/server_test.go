package devserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"taskchat/internal/api"
	"taskchat/internal/model"
)

// startServer seeds a fresh in-memory server and returns clients for both
// demo accounts.
func startServer(t *testing.T) (adminClient, memberClient *api.Client, taskID string) {
	t.Helper()
	ctx := context.Background()

	st, err := OpenStore(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	seed, err := Seed(ctx, st)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv := httptest.NewServer(New(st, nil).Handler())
	t.Cleanup(srv.Close)

	login := func(email string) *api.Client {
		c := api.New(srv.URL)
		sess, err := c.Login(ctx, email, seed.Password)
		if err != nil {
			t.Fatalf("login %s: %v", email, err)
		}
		c.SetToken(sess.Token)
		return c
	}
	return login(seed.AdminEmail), login(seed.MemberEmail), seed.TaskIDs[0]
}

func TestAddThenFetchContainsComment(t *testing.T) {
	ctx := context.Background()
	_, member, taskID := startServer(t)

	added, err := member.AddComment(ctx, taskID, "does this reproduce on iOS?")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	viewer, err := member.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if added.Author.ID != viewer.ID {
		t.Fatalf("author = %s, want viewer %s", added.Author.ID, viewer.ID)
	}

	all, err := member.ListComments(ctx, taskID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	found := false
	for _, c := range all {
		if c.ID == added.ID && c.Text == "does this reproduce on iOS?" {
			found = true
		}
	}
	if !found {
		t.Fatalf("added comment missing from fetch: %+v", all)
	}
}

func TestEditMarksCommentEdited(t *testing.T) {
	ctx := context.Background()
	_, member, taskID := startServer(t)

	added, err := member.AddComment(ctx, taskID, "first draft")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	upd, err := member.EditComment(ctx, taskID, added.ID, "hello")
	if err != nil {
		t.Fatalf("EditComment: %v", err)
	}
	if upd.Text != "hello" || !upd.Edited {
		t.Fatalf("updated = %+v", upd)
	}
	if !upd.CreatedAt.Equal(added.CreatedAt) {
		t.Fatalf("edit moved CreatedAt: %v -> %v", added.CreatedAt, upd.CreatedAt)
	}
}

func TestEditForeignCommentIsForbidden(t *testing.T) {
	ctx := context.Background()
	admin, member, taskID := startServer(t)

	theirs, err := admin.AddComment(ctx, taskID, "admin note")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	_, err = member.EditComment(ctx, taskID, theirs.ID, "hijacked")
	if !api.IsAuth(err) {
		t.Fatalf("editing foreign comment error = %v, want auth kind", err)
	}
}

func TestDeleteMissingCommentFails(t *testing.T) {
	ctx := context.Background()
	_, member, taskID := startServer(t)

	err := member.DeleteComment(ctx, taskID, "cmt-nope")
	if err == nil {
		t.Fatalf("deleting missing comment succeeded")
	}
	if api.KindOf(err) != api.KindValidation {
		t.Fatalf("error kind = %s, want validation (404)", api.KindOf(err))
	}
}

func TestDeleteAllRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	admin, member, taskID := startServer(t)

	if err := member.DeleteAllComments(ctx, taskID); !api.IsAuth(err) {
		t.Fatalf("member delete-all error = %v, want auth kind", err)
	}

	if err := admin.DeleteAllComments(ctx, taskID); err != nil {
		t.Fatalf("admin delete-all: %v", err)
	}
	left, err := admin.ListComments(ctx, taskID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("%d comments survived delete-all", len(left))
	}
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	ctx := context.Background()

	st, err := OpenStore(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	if _, err := Seed(ctx, st); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv := httptest.NewServer(New(st, nil).Handler())
	defer srv.Close()

	c := api.New(srv.URL) // no token
	if _, err := c.ListTasks(ctx); !api.IsAuth(err) {
		t.Fatalf("unauthenticated error = %v, want auth kind", err)
	}
}

func TestWireOrderIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	_, member, taskID := startServer(t)

	var last model.Comment
	for _, text := range []string{"one", "two", "three"} {
		c, err := member.AddComment(ctx, taskID, text)
		if err != nil {
			t.Fatalf("AddComment: %v", err)
		}
		last = c
	}

	all, err := member.ListComments(ctx, taskID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(all) < 3 || all[0].ID != last.ID {
		t.Fatalf("wire order head = %v, want newest comment %s", all[0].ID, last.ID)
	}
}
