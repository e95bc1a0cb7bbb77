package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Project is a Harvest project.
type Project struct {
	ID              int64     `json:"id"`
	Client          Ref       `json:"client"`
	Name            string    `json:"name"`
	Code            string    `json:"code,omitempty"`
	IsActive        bool      `json:"is_active"`
	IsBillable      bool      `json:"is_billable"`
	IsFixedFee      bool      `json:"is_fixed_fee"`
	BillBy          string    `json:"bill_by"`
	HourlyRate      *float64  `json:"hourly_rate,omitempty"`
	Budget          *float64  `json:"budget,omitempty"`
	BudgetBy        string    `json:"budget_by,omitempty"`
	BudgetIsMonthly bool      `json:"budget_is_monthly"`
	Fee             *float64  `json:"fee,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	StartsOn        string    `json:"starts_on,omitempty"`
	EndsOn          string    `json:"ends_on,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProjectList is a page of projects.
type ProjectList struct {
	Projects []Project `json:"projects"`
	Pagination
}

// ProjectListParams filters ListProjects.
type ProjectListParams struct {
	ListParams
	IsActive     *bool
	ClientID     int64
	UpdatedSince string
}

// ProjectCreateParams creates a project. ClientID, Name, IsBillable
// and BillBy are required by the API.
type ProjectCreateParams struct {
	ClientID   int64    `json:"client_id"`
	Name       string   `json:"name"`
	Code       string   `json:"code,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
	IsBillable bool     `json:"is_billable"`
	IsFixedFee *bool    `json:"is_fixed_fee,omitempty"`
	BillBy     string   `json:"bill_by"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Budget     *float64 `json:"budget,omitempty"`
	BudgetBy   string   `json:"budget_by,omitempty"`
	Fee        *float64 `json:"fee,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	StartsOn   string   `json:"starts_on,omitempty"`
	EndsOn     string   `json:"ends_on,omitempty"`
}

// ProjectUpdateParams updates a project. Nil fields are left unchanged.
type ProjectUpdateParams struct {
	ClientID   *int64   `json:"client_id,omitempty"`
	Name       *string  `json:"name,omitempty"`
	Code       *string  `json:"code,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
	IsBillable *bool    `json:"is_billable,omitempty"`
	IsFixedFee *bool    `json:"is_fixed_fee,omitempty"`
	BillBy     *string  `json:"bill_by,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Budget     *float64 `json:"budget,omitempty"`
	BudgetBy   *string  `json:"budget_by,omitempty"`
	Fee        *float64 `json:"fee,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	StartsOn   *string  `json:"starts_on,omitempty"`
	EndsOn     *string  `json:"ends_on,omitempty"`
}

// ListProjects returns a page of projects.
func (c *Client) ListProjects(ctx context.Context, params ProjectListParams) (*ProjectList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addBool(query, "is_active", params.IsActive)
	addInt(query, "client_id", params.ClientID)
	addString(query, "updated_since", params.UpdatedSince)

	var list ProjectList
	if err := c.get(ctx, "/projects", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetProject retrieves a single project by ID.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var project Project
	if err := c.get(ctx, fmt.Sprintf("/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, params ProjectCreateParams) (*Project, error) {
	var project Project
	if err := c.post(ctx, "/projects", params, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject updates an existing project.
func (c *Client) UpdateProject(ctx context.Context, id int64, params ProjectUpdateParams) (*Project, error) {
	var project Project
	if err := c.patch(ctx, fmt.Sprintf("/projects/%d", id), params, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project and any time entries or expenses
// tracked against it.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/projects/%d", id))
}
