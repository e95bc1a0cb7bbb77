package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Task is an account-wide task that can be assigned to projects.
type Task struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	BillableByDefault bool      `json:"billable_by_default"`
	DefaultHourlyRate *float64  `json:"default_hourly_rate,omitempty"`
	IsDefault         bool      `json:"is_default"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TaskList is a page of tasks.
type TaskList struct {
	Tasks []Task `json:"tasks"`
	Pagination
}

// TaskListParams filters ListTasks.
type TaskListParams struct {
	ListParams
	IsActive     *bool
	UpdatedSince string
}

// TaskCreateParams creates a task. Name is required.
type TaskCreateParams struct {
	Name              string   `json:"name"`
	BillableByDefault *bool    `json:"billable_by_default,omitempty"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty"`
	IsDefault         *bool    `json:"is_default,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

// TaskUpdateParams updates a task. Nil fields are left unchanged.
type TaskUpdateParams struct {
	Name              *string  `json:"name,omitempty"`
	BillableByDefault *bool    `json:"billable_by_default,omitempty"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty"`
	IsDefault         *bool    `json:"is_default,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

// ListTasks returns a page of tasks.
func (c *Client) ListTasks(ctx context.Context, params TaskListParams) (*TaskList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addBool(query, "is_active", params.IsActive)
	addString(query, "updated_since", params.UpdatedSince)

	var list TaskList
	if err := c.get(ctx, "/tasks", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetTask retrieves a single task by ID.
func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := c.get(ctx, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, params TaskCreateParams) (*Task, error) {
	var task Task
	if err := c.post(ctx, "/tasks", params, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask updates an existing task.
func (c *Client) UpdateTask(ctx context.Context, id int64, params TaskUpdateParams) (*Task, error) {
	var task Task
	if err := c.patch(ctx, fmt.Sprintf("/tasks/%d", id), params, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task. Harvest refuses when the task has tracked
// time against it; that surfaces as a 422 APIError.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/tasks/%d", id))
}
