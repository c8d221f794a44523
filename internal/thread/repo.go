package thread

import (
	"context"
	"strings"

	"taskchat/internal/api"
	"taskchat/internal/model"
)

// Service is the slice of the remote API the thread core needs. *api.Client
// satisfies it; tests substitute a scripted fake.
type Service interface {
	ListComments(ctx context.Context, taskID string) ([]model.Comment, error)
	AddComment(ctx context.Context, taskID, text string) (model.Comment, error)
	EditComment(ctx context.Context, taskID, commentID, text string) (model.Comment, error)
	DeleteComment(ctx context.Context, taskID, commentID string) error
	DeleteAllComments(ctx context.Context, taskID string) error
}

// Repo fronts the Comment Service for one client. It holds no thread state;
// client-side validation happens here so that bad input never becomes a
// request, and every remote failure is returned to the caller untouched.
type Repo struct {
	svc Service
}

func NewRepo(svc Service) *Repo { return &Repo{svc: svc} }

func (r *Repo) FetchAll(ctx context.Context, taskID string) ([]model.Comment, error) {
	return r.svc.ListComments(ctx, taskID)
}

// Add rejects blank text before any request is issued.
func (r *Repo) Add(ctx context.Context, taskID, text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, &api.Error{
			Kind:    api.KindValidation,
			Op:      "comments.add",
			Message: "comment text is empty",
		}
	}
	return r.svc.AddComment(ctx, taskID, text)
}

func (r *Repo) Edit(ctx context.Context, taskID, commentID, text string) (model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return model.Comment{}, &api.Error{
			Kind:    api.KindValidation,
			Op:      "comments.edit",
			Message: "comment text is empty",
		}
	}
	return r.svc.EditComment(ctx, taskID, commentID, text)
}

func (r *Repo) Remove(ctx context.Context, taskID, commentID string) error {
	return r.svc.DeleteComment(ctx, taskID, commentID)
}

func (r *Repo) RemoveAll(ctx context.Context, taskID string) error {
	return r.svc.DeleteAllComments(ctx, taskID)
}
