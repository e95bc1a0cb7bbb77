package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// TimeEntry is a tracked block of time against a project task.
// SpentDate and the started/ended times are strings in the account's
// local formats, passed through unmodified.
type TimeEntry struct {
	ID             int64      `json:"id"`
	SpentDate      string     `json:"spent_date"`
	User           Ref        `json:"user"`
	Client         Ref        `json:"client"`
	Project        Ref        `json:"project"`
	Task           Ref        `json:"task"`
	Hours          float64    `json:"hours"`
	RoundedHours   float64    `json:"rounded_hours"`
	Notes          string     `json:"notes,omitempty"`
	IsRunning      bool       `json:"is_running"`
	IsLocked       bool       `json:"is_locked"`
	LockedReason   string     `json:"locked_reason,omitempty"`
	IsBilled       bool       `json:"is_billed"`
	Billable       bool       `json:"billable"`
	BillableRate   *float64   `json:"billable_rate,omitempty"`
	CostRate       *float64   `json:"cost_rate,omitempty"`
	StartedTime    string     `json:"started_time,omitempty"`
	EndedTime      string     `json:"ended_time,omitempty"`
	TimerStartedAt *time.Time `json:"timer_started_at,omitempty"`
	Invoice        *Ref       `json:"invoice,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TimeEntryList is a page of time entries.
type TimeEntryList struct {
	TimeEntries []TimeEntry `json:"time_entries"`
	Pagination
}

// TimeEntryListParams filters ListTimeEntries.
type TimeEntryListParams struct {
	ListParams
	UserID       int64
	ClientID     int64
	ProjectID    int64
	TaskID       int64
	IsBilled     *bool
	IsRunning    *bool
	From         string
	To           string
	UpdatedSince string
}

// TimeEntryCreateParams creates a time entry. ProjectID, TaskID and
// SpentDate are required. Provide Hours for duration-based accounts,
// or StartedTime (and optionally EndedTime) for timestamp-based ones;
// omitting both starts a running timer.
type TimeEntryCreateParams struct {
	ProjectID   int64    `json:"project_id"`
	TaskID      int64    `json:"task_id"`
	SpentDate   string   `json:"spent_date"`
	UserID      *int64   `json:"user_id,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	StartedTime string   `json:"started_time,omitempty"`
	EndedTime   string   `json:"ended_time,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// TimeEntryUpdateParams updates a time entry. Nil fields are left
// unchanged.
type TimeEntryUpdateParams struct {
	ProjectID   *int64   `json:"project_id,omitempty"`
	TaskID      *int64   `json:"task_id,omitempty"`
	SpentDate   *string  `json:"spent_date,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	StartedTime *string  `json:"started_time,omitempty"`
	EndedTime   *string  `json:"ended_time,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// ListTimeEntries returns a page of time entries, newest first.
func (c *Client) ListTimeEntries(ctx context.Context, params TimeEntryListParams) (*TimeEntryList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addInt(query, "user_id", params.UserID)
	addInt(query, "client_id", params.ClientID)
	addInt(query, "project_id", params.ProjectID)
	addInt(query, "task_id", params.TaskID)
	addBool(query, "is_billed", params.IsBilled)
	addBool(query, "is_running", params.IsRunning)
	addString(query, "from", params.From)
	addString(query, "to", params.To)
	addString(query, "updated_since", params.UpdatedSince)

	var list TimeEntryList
	if err := c.get(ctx, "/time_entries", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetTimeEntry retrieves a single time entry by ID.
func (c *Client) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	var entry TimeEntry
	if err := c.get(ctx, fmt.Sprintf("/time_entries/%d", id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateTimeEntry creates a new time entry.
func (c *Client) CreateTimeEntry(ctx context.Context, params TimeEntryCreateParams) (*TimeEntry, error) {
	var entry TimeEntry
	if err := c.post(ctx, "/time_entries", params, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateTimeEntry updates an existing time entry.
func (c *Client) UpdateTimeEntry(ctx context.Context, id int64, params TimeEntryUpdateParams) (*TimeEntry, error) {
	var entry TimeEntry
	if err := c.patch(ctx, fmt.Sprintf("/time_entries/%d", id), params, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteTimeEntry deletes a time entry. Fails with 422 when the entry
// is approved or locked.
func (c *Client) DeleteTimeEntry(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/time_entries/%d", id))
}

// RestartTimeEntry restarts the timer on a stopped time entry.
func (c *Client) RestartTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	var entry TimeEntry
	if err := c.patch(ctx, fmt.Sprintf("/time_entries/%d/restart", id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StopTimeEntry stops the timer on a running time entry.
func (c *Client) StopTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	var entry TimeEntry
	if err := c.patch(ctx, fmt.Sprintf("/time_entries/%d/stop", id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
