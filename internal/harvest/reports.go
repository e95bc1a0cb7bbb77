package harvest

import (
	"context"
	"net/url"
)

// TimeReportResult is one row of a time report. The identity fields
// that are set depend on the grouping (client, project, task, team);
// the API returns exactly this union shape.
type TimeReportResult struct {
	ClientID       int64   `json:"client_id,omitempty"`
	ClientName     string  `json:"client_name,omitempty"`
	ProjectID      int64   `json:"project_id,omitempty"`
	ProjectName    string  `json:"project_name,omitempty"`
	TaskID         int64   `json:"task_id,omitempty"`
	TaskName       string  `json:"task_name,omitempty"`
	UserID         int64   `json:"user_id,omitempty"`
	UserName       string  `json:"user_name,omitempty"`
	IsContractor   bool    `json:"is_contractor,omitempty"`
	WeeklyCapacity int     `json:"weekly_capacity,omitempty"`
	TotalHours     float64 `json:"total_hours"`
	BillableHours  float64 `json:"billable_hours"`
	Currency       string  `json:"currency,omitempty"`
	BillableAmount float64 `json:"billable_amount"`
}

// TimeReport is a page of time report rows.
type TimeReport struct {
	Results []TimeReportResult `json:"results"`
	Pagination
}

// ExpenseReportResult is one row of a category expense report.
type ExpenseReportResult struct {
	ExpenseCategoryID   int64   `json:"expense_category_id,omitempty"`
	ExpenseCategoryName string  `json:"expense_category_name,omitempty"`
	ClientID            int64   `json:"client_id,omitempty"`
	ClientName          string  `json:"client_name,omitempty"`
	TotalAmount         float64 `json:"total_amount"`
	BillableAmount      float64 `json:"billable_amount"`
	Currency            string  `json:"currency,omitempty"`
}

// ExpenseReport is a page of expense report rows.
type ExpenseReport struct {
	Results []ExpenseReportResult `json:"results"`
	Pagination
}

// UninvoicedResult is one row of the uninvoiced amounts report.
type UninvoicedResult struct {
	ClientID           int64   `json:"client_id"`
	ClientName         string  `json:"client_name"`
	ProjectID          int64   `json:"project_id"`
	ProjectName        string  `json:"project_name"`
	Currency           string  `json:"currency"`
	TotalHours         float64 `json:"total_hours"`
	UninvoicedHours    float64 `json:"uninvoiced_hours"`
	UninvoicedExpenses float64 `json:"uninvoiced_expenses"`
	UninvoicedAmount   float64 `json:"uninvoiced_amount"`
}

// UninvoicedReport is a page of uninvoiced report rows.
type UninvoicedReport struct {
	Results []UninvoicedResult `json:"results"`
	Pagination
}

// ReportParams scopes a report. From and To are required by the API.
type ReportParams struct {
	ListParams
	From string
	To   string
}

func (p ReportParams) query() url.Values {
	q := url.Values{}
	p.ListParams.apply(q)
	addString(q, "from", p.From)
	addString(q, "to", p.To)
	return q
}

// timeReport fetches one of the /reports/time groupings.
func (c *Client) timeReport(ctx context.Context, grouping string, params ReportParams) (*TimeReport, error) {
	var report TimeReport
	if err := c.get(ctx, "/reports/time/"+grouping, params.query(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// TimeReportByClient returns tracked hours grouped by client.
func (c *Client) TimeReportByClient(ctx context.Context, params ReportParams) (*TimeReport, error) {
	return c.timeReport(ctx, "clients", params)
}

// TimeReportByProject returns tracked hours grouped by project.
func (c *Client) TimeReportByProject(ctx context.Context, params ReportParams) (*TimeReport, error) {
	return c.timeReport(ctx, "projects", params)
}

// TimeReportByTask returns tracked hours grouped by task.
func (c *Client) TimeReportByTask(ctx context.Context, params ReportParams) (*TimeReport, error) {
	return c.timeReport(ctx, "tasks", params)
}

// TimeReportByTeam returns tracked hours grouped by user.
func (c *Client) TimeReportByTeam(ctx context.Context, params ReportParams) (*TimeReport, error) {
	return c.timeReport(ctx, "team", params)
}

// ExpenseReportByCategory returns expense totals grouped by category.
func (c *Client) ExpenseReportByCategory(ctx context.Context, params ReportParams) (*ExpenseReport, error) {
	var report ExpenseReport
	if err := c.get(ctx, "/reports/expenses/categories", params.query(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetUninvoicedReport returns uninvoiced hours and amounts per
// client/project pair.
func (c *Client) GetUninvoicedReport(ctx context.Context, params ReportParams) (*UninvoicedReport, error) {
	var report UninvoicedReport
	if err := c.get(ctx, "/reports/uninvoiced", params.query(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
