package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Expense is a cost tracked against a project.
type Expense struct {
	ID              int64     `json:"id"`
	Client          Ref       `json:"client"`
	Project         Ref       `json:"project"`
	ExpenseCategory Ref       `json:"expense_category"`
	User            Ref       `json:"user"`
	Notes           string    `json:"notes,omitempty"`
	TotalCost       float64   `json:"total_cost"`
	Units           *float64  `json:"units,omitempty"`
	Billable        bool      `json:"billable"`
	IsBilled        bool      `json:"is_billed"`
	IsClosed        bool      `json:"is_closed"`
	IsLocked        bool      `json:"is_locked"`
	LockedReason    string    `json:"locked_reason,omitempty"`
	SpentDate       string    `json:"spent_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ExpenseList is a page of expenses.
type ExpenseList struct {
	Expenses []Expense `json:"expenses"`
	Pagination
}

// ExpenseCategory classifies expenses account-wide.
type ExpenseCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UnitName  string    `json:"unit_name,omitempty"`
	UnitPrice *float64  `json:"unit_price,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExpenseCategoryList is a page of expense categories.
type ExpenseCategoryList struct {
	ExpenseCategories []ExpenseCategory `json:"expense_categories"`
	Pagination
}

// ExpenseListParams filters ListExpenses.
type ExpenseListParams struct {
	ListParams
	UserID       int64
	ClientID     int64
	ProjectID    int64
	IsBilled     *bool
	From         string
	To           string
	UpdatedSince string
}

// ExpenseCreateParams creates an expense. ProjectID,
// ExpenseCategoryID and SpentDate are required. Provide TotalCost or
// Units depending on whether the category is unit-priced.
type ExpenseCreateParams struct {
	ProjectID         int64    `json:"project_id"`
	ExpenseCategoryID int64    `json:"expense_category_id"`
	SpentDate         string   `json:"spent_date"`
	UserID            *int64   `json:"user_id,omitempty"`
	TotalCost         *float64 `json:"total_cost,omitempty"`
	Units             *float64 `json:"units,omitempty"`
	Billable          *bool    `json:"billable,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// ExpenseUpdateParams updates an expense. Nil fields are left
// unchanged.
type ExpenseUpdateParams struct {
	ProjectID         *int64   `json:"project_id,omitempty"`
	ExpenseCategoryID *int64   `json:"expense_category_id,omitempty"`
	SpentDate         *string  `json:"spent_date,omitempty"`
	TotalCost         *float64 `json:"total_cost,omitempty"`
	Units             *float64 `json:"units,omitempty"`
	Billable          *bool    `json:"billable,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// ExpenseCategoryListParams filters ListExpenseCategories.
type ExpenseCategoryListParams struct {
	ListParams
	IsActive     *bool
	UpdatedSince string
}

// ListExpenses returns a page of expenses, newest first.
func (c *Client) ListExpenses(ctx context.Context, params ExpenseListParams) (*ExpenseList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addInt(query, "user_id", params.UserID)
	addInt(query, "client_id", params.ClientID)
	addInt(query, "project_id", params.ProjectID)
	addBool(query, "is_billed", params.IsBilled)
	addString(query, "from", params.From)
	addString(query, "to", params.To)
	addString(query, "updated_since", params.UpdatedSince)

	var list ExpenseList
	if err := c.get(ctx, "/expenses", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetExpense retrieves a single expense by ID.
func (c *Client) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	var expense Expense
	if err := c.get(ctx, fmt.Sprintf("/expenses/%d", id), nil, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// CreateExpense creates a new expense.
func (c *Client) CreateExpense(ctx context.Context, params ExpenseCreateParams) (*Expense, error) {
	var expense Expense
	if err := c.post(ctx, "/expenses", params, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense updates an existing expense.
func (c *Client) UpdateExpense(ctx context.Context, id int64, params ExpenseUpdateParams) (*Expense, error) {
	var expense Expense
	if err := c.patch(ctx, fmt.Sprintf("/expenses/%d", id), params, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense deletes an expense. Fails with 422 when the expense
// is approved or closed.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/expenses/%d", id))
}

// ListExpenseCategories returns a page of expense categories.
func (c *Client) ListExpenseCategories(ctx context.Context, params ExpenseCategoryListParams) (*ExpenseCategoryList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addBool(query, "is_active", params.IsActive)
	addString(query, "updated_since", params.UpdatedSince)

	var list ExpenseCategoryList
	if err := c.get(ctx, "/expense_categories", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
