package api

import (
	"context"
	"net/http"
	"net/url"

	"taskchat/internal/model"
)

func commentsPath(taskID string) string {
	return "/api/comments/" + url.PathEscape(taskID) + "/comments"
}

func commentPath(taskID, commentID string) string {
	return commentsPath(taskID) + "/" + url.PathEscape(commentID)
}

// ListComments returns the thread for one task in server order.
// Callers decide display order; see thread.State.
func (c *Client) ListComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	if taskID == "" {
		return nil, errValidation("comments.list", "task id is required")
	}
	var out []model.Comment
	if err := c.do(ctx, "comments.list", http.MethodGet, commentsPath(taskID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type commentBody struct {
	Text string `json:"text"`
}

func (c *Client) AddComment(ctx context.Context, taskID, text string) (model.Comment, error) {
	var out model.Comment
	if taskID == "" {
		return out, errValidation("comments.add", "task id is required")
	}
	err := c.do(ctx, "comments.add", http.MethodPost, commentsPath(taskID), commentBody{Text: text}, &out)
	return out, err
}

func (c *Client) EditComment(ctx context.Context, taskID, commentID, text string) (model.Comment, error) {
	var out model.Comment
	if taskID == "" || commentID == "" {
		return out, errValidation("comments.edit", "task id and comment id are required")
	}
	err := c.do(ctx, "comments.edit", http.MethodPut, commentPath(taskID, commentID), commentBody{Text: text}, &out)
	return out, err
}

func (c *Client) DeleteComment(ctx context.Context, taskID, commentID string) error {
	if taskID == "" || commentID == "" {
		return errValidation("comments.delete", "task id and comment id are required")
	}
	return c.do(ctx, "comments.delete", http.MethodDelete, commentPath(taskID, commentID), nil, nil)
}

// DeleteAllComments removes every comment in the task's thread. The server
// enforces the admin-role requirement; clients gate the gesture as well.
func (c *Client) DeleteAllComments(ctx context.Context, taskID string) error {
	if taskID == "" {
		return errValidation("comments.deleteAll", "task id is required")
	}
	return c.do(ctx, "comments.deleteAll", http.MethodDelete, commentsPath(taskID), nil, nil)
}
