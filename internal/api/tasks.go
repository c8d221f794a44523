package api

import (
	"context"
	"net/http"
	"net/url"

	"taskchat/internal/model"
)

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, "tasks.list", http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, taskID string) (model.Task, error) {
	var out model.Task
	if taskID == "" {
		return out, errValidation("tasks.get", "task id is required")
	}
	err := c.do(ctx, "tasks.get", http.MethodGet, "/api/tasks/"+url.PathEscape(taskID), nil, &out)
	return out, err
}
