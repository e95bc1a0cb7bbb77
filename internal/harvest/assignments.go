package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// TaskAssignment links a task to a project so time can be tracked
// against it.
type TaskAssignment struct {
	ID         int64     `json:"id"`
	Project    Ref       `json:"project"`
	Task       Ref       `json:"task"`
	IsActive   bool      `json:"is_active"`
	Billable   bool      `json:"billable"`
	HourlyRate *float64  `json:"hourly_rate,omitempty"`
	Budget     *float64  `json:"budget,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TaskAssignmentList is a page of task assignments.
type TaskAssignmentList struct {
	TaskAssignments []TaskAssignment `json:"task_assignments"`
	Pagination
}

// UserAssignment links a user to a project.
type UserAssignment struct {
	ID               int64     `json:"id"`
	Project          Ref       `json:"project"`
	User             Ref       `json:"user"`
	IsActive         bool      `json:"is_active"`
	IsProjectManager bool      `json:"is_project_manager"`
	UseDefaultRates  bool      `json:"use_default_rates"`
	HourlyRate       *float64  `json:"hourly_rate,omitempty"`
	Budget           *float64  `json:"budget,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserAssignmentList is a page of user assignments.
type UserAssignmentList struct {
	UserAssignments []UserAssignment `json:"user_assignments"`
	Pagination
}

// AssignmentListParams filters assignment list calls.
type AssignmentListParams struct {
	ListParams
	IsActive     *bool
	UpdatedSince string
}

// TaskAssignmentCreateParams creates a task assignment. TaskID is
// required.
type TaskAssignmentCreateParams struct {
	TaskID     int64    `json:"task_id"`
	IsActive   *bool    `json:"is_active,omitempty"`
	Billable   *bool    `json:"billable,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Budget     *float64 `json:"budget,omitempty"`
}

// TaskAssignmentUpdateParams updates a task assignment.
type TaskAssignmentUpdateParams struct {
	IsActive   *bool    `json:"is_active,omitempty"`
	Billable   *bool    `json:"billable,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Budget     *float64 `json:"budget,omitempty"`
}

// UserAssignmentCreateParams creates a user assignment. UserID is
// required.
type UserAssignmentCreateParams struct {
	UserID           int64    `json:"user_id"`
	IsActive         *bool    `json:"is_active,omitempty"`
	IsProjectManager *bool    `json:"is_project_manager,omitempty"`
	UseDefaultRates  *bool    `json:"use_default_rates,omitempty"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty"`
	Budget           *float64 `json:"budget,omitempty"`
}

// UserAssignmentUpdateParams updates a user assignment.
type UserAssignmentUpdateParams struct {
	IsActive         *bool    `json:"is_active,omitempty"`
	IsProjectManager *bool    `json:"is_project_manager,omitempty"`
	UseDefaultRates  *bool    `json:"use_default_rates,omitempty"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty"`
	Budget           *float64 `json:"budget,omitempty"`
}

func (p AssignmentListParams) query() url.Values {
	q := url.Values{}
	p.ListParams.apply(q)
	addBool(q, "is_active", p.IsActive)
	addString(q, "updated_since", p.UpdatedSince)
	return q
}

// ListTaskAssignments returns a page of task assignments for a project.
func (c *Client) ListTaskAssignments(ctx context.Context, projectID int64, params AssignmentListParams) (*TaskAssignmentList, error) {
	var list TaskAssignmentList
	path := fmt.Sprintf("/projects/%d/task_assignments", projectID)
	if err := c.get(ctx, path, params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateTaskAssignment assigns a task to a project.
func (c *Client) CreateTaskAssignment(ctx context.Context, projectID int64, params TaskAssignmentCreateParams) (*TaskAssignment, error) {
	var assignment TaskAssignment
	path := fmt.Sprintf("/projects/%d/task_assignments", projectID)
	if err := c.post(ctx, path, params, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpdateTaskAssignment updates a task assignment on a project.
func (c *Client) UpdateTaskAssignment(ctx context.Context, projectID, id int64, params TaskAssignmentUpdateParams) (*TaskAssignment, error) {
	var assignment TaskAssignment
	path := fmt.Sprintf("/projects/%d/task_assignments/%d", projectID, id)
	if err := c.patch(ctx, path, params, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteTaskAssignment removes a task from a project.
func (c *Client) DeleteTaskAssignment(ctx context.Context, projectID, id int64) error {
	return c.del(ctx, fmt.Sprintf("/projects/%d/task_assignments/%d", projectID, id))
}

// ListUserAssignments returns a page of user assignments for a project.
func (c *Client) ListUserAssignments(ctx context.Context, projectID int64, params AssignmentListParams) (*UserAssignmentList, error) {
	var list UserAssignmentList
	path := fmt.Sprintf("/projects/%d/user_assignments", projectID)
	if err := c.get(ctx, path, params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateUserAssignment assigns a user to a project.
func (c *Client) CreateUserAssignment(ctx context.Context, projectID int64, params UserAssignmentCreateParams) (*UserAssignment, error) {
	var assignment UserAssignment
	path := fmt.Sprintf("/projects/%d/user_assignments", projectID)
	if err := c.post(ctx, path, params, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpdateUserAssignment updates a user assignment on a project.
func (c *Client) UpdateUserAssignment(ctx context.Context, projectID, id int64, params UserAssignmentUpdateParams) (*UserAssignment, error) {
	var assignment UserAssignment
	path := fmt.Sprintf("/projects/%d/user_assignments/%d", projectID, id)
	if err := c.patch(ctx, path, params, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteUserAssignment removes a user from a project.
func (c *Client) DeleteUserAssignment(ctx context.Context, projectID, id int64) error {
	return c.del(ctx, fmt.Sprintf("/projects/%d/user_assignments/%d", projectID, id))
}
