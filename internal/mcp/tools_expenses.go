package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// --- list_expenses ---

// ListExpensesInput is the input for the list_expenses tool.
type ListExpensesInput struct {
	PageInput
	UserID       int64  `json:"user_id,omitempty"       jsonschema:"only expenses belonging to this user"`
	ClientID     int64  `json:"client_id,omitempty"     jsonschema:"only expenses for this client"`
	ProjectID    int64  `json:"project_id,omitempty"    jsonschema:"only expenses for this project"`
	IsBilled     *bool  `json:"is_billed,omitempty"     jsonschema:"filter by whether the expense has been invoiced"`
	From         string `json:"from,omitempty"          jsonschema:"only expenses on or after this date (YYYY-MM-DD)"`
	To           string `json:"to,omitempty"            jsonschema:"only expenses on or before this date (YYYY-MM-DD)"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only expenses updated since this date or ISO 8601 timestamp"`
}

// ListExpensesOutput is the output for the list_expenses tool.
type ListExpensesOutput struct {
	harvest.ExpenseList
}

func handleListExpenses(client *harvest.Client) mcp.ToolHandlerFor[ListExpensesInput, ListExpensesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListExpensesInput) (*mcp.CallToolResult, ListExpensesOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListExpensesOutput{}, err
		}
		if err := checkDate("from", input.From); err != nil {
			return nil, ListExpensesOutput{}, err
		}
		if err := checkDate("to", input.To); err != nil {
			return nil, ListExpensesOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListExpensesOutput{}, err
		}

		list, err := client.ListExpenses(ctx, harvest.ExpenseListParams{
			ListParams:   input.listParams(),
			UserID:       input.UserID,
			ClientID:     input.ClientID,
			ProjectID:    input.ProjectID,
			IsBilled:     input.IsBilled,
			From:         input.From,
			To:           input.To,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListExpensesOutput{}, fmt.Errorf("listing expenses: %w", err)
		}
		return nil, ListExpensesOutput{ExpenseList: *list}, nil
	}
}

// --- get_expense ---

// GetExpenseInput is the input for the get_expense tool.
type GetExpenseInput struct {
	ExpenseID int64 `json:"expense_id" jsonschema:"ID of the expense to retrieve"`
}

// GetExpenseOutput is the output for the get_expense tool.
type GetExpenseOutput struct {
	Expense *harvest.Expense `json:"expense" jsonschema:"the requested expense"`
}

func handleGetExpense(client *harvest.Client) mcp.ToolHandlerFor[GetExpenseInput, GetExpenseOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetExpenseInput) (*mcp.CallToolResult, GetExpenseOutput, error) {
		if err := requireID("expense_id", input.ExpenseID); err != nil {
			return nil, GetExpenseOutput{}, err
		}
		expense, err := client.GetExpense(ctx, input.ExpenseID)
		if err != nil {
			return nil, GetExpenseOutput{}, fmt.Errorf("getting expense %d: %w", input.ExpenseID, err)
		}
		return nil, GetExpenseOutput{Expense: expense}, nil
	}
}

// --- create_expense ---

// CreateExpenseInput is the input for the create_expense tool.
type CreateExpenseInput struct {
	ProjectID         int64    `json:"project_id"           jsonschema:"ID of the project the expense belongs to (required)"`
	ExpenseCategoryID int64    `json:"expense_category_id"  jsonschema:"ID of the expense category (required)"`
	SpentDate         string   `json:"spent_date"           jsonschema:"date of the expense in YYYY-MM-DD format (required)"`
	UserID            *int64   `json:"user_id,omitempty"    jsonschema:"record the expense for this user instead of the authenticated one"`
	TotalCost         *float64 `json:"total_cost,omitempty" jsonschema:"total amount; mutually exclusive with units"`
	Units             *float64 `json:"units,omitempty"      jsonschema:"unit count for unit-priced categories; mutually exclusive with total_cost"`
	Billable          *bool    `json:"billable,omitempty"   jsonschema:"whether the expense is billable (default true)"`
	Notes             string   `json:"notes,omitempty"      jsonschema:"notes attached to the expense"`
}

// CreateExpenseOutput is the output for the create_expense tool.
type CreateExpenseOutput struct {
	Expense *harvest.Expense `json:"expense" jsonschema:"the created expense"`
}

func validateCreateExpense(input CreateExpenseInput) error {
	if err := requireID("project_id", input.ProjectID); err != nil {
		return err
	}
	if err := requireID("expense_category_id", input.ExpenseCategoryID); err != nil {
		return err
	}
	if err := requireDate("spent_date", input.SpentDate); err != nil {
		return err
	}
	if input.TotalCost != nil && input.Units != nil {
		return errors.New("provide either total_cost or units, not both")
	}
	if input.TotalCost == nil && input.Units == nil {
		return errors.New("provide either total_cost or units")
	}
	return nil
}

func handleCreateExpense(client *harvest.Client) mcp.ToolHandlerFor[CreateExpenseInput, CreateExpenseOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateExpenseInput) (*mcp.CallToolResult, CreateExpenseOutput, error) {
		if err := validateCreateExpense(input); err != nil {
			return nil, CreateExpenseOutput{}, err
		}

		expense, err := client.CreateExpense(ctx, harvest.ExpenseCreateParams{
			ProjectID:         input.ProjectID,
			ExpenseCategoryID: input.ExpenseCategoryID,
			SpentDate:         input.SpentDate,
			UserID:            input.UserID,
			TotalCost:         input.TotalCost,
			Units:             input.Units,
			Billable:          input.Billable,
			Notes:             input.Notes,
		})
		if err != nil {
			return nil, CreateExpenseOutput{}, fmt.Errorf("creating expense: %w", err)
		}
		return nil, CreateExpenseOutput{Expense: expense}, nil
	}
}

// --- update_expense ---

// UpdateExpenseInput is the input for the update_expense tool.
// Omitted fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID         int64    `json:"expense_id"                    jsonschema:"ID of the expense to update"`
	ProjectID         *int64   `json:"project_id,omitempty"          jsonschema:"move the expense to another project"`
	ExpenseCategoryID *int64   `json:"expense_category_id,omitempty" jsonschema:"move the expense to another category"`
	SpentDate         *string  `json:"spent_date,omitempty"          jsonschema:"new date in YYYY-MM-DD format"`
	TotalCost         *float64 `json:"total_cost,omitempty"          jsonschema:"new total amount"`
	Units             *float64 `json:"units,omitempty"               jsonschema:"new unit count"`
	Billable          *bool    `json:"billable,omitempty"            jsonschema:"change the billable flag"`
	Notes             *string  `json:"notes,omitempty"               jsonschema:"replacement notes"`
}

// UpdateExpenseOutput is the output for the update_expense tool.
type UpdateExpenseOutput struct {
	Expense *harvest.Expense `json:"expense" jsonschema:"the updated expense"`
}

func handleUpdateExpense(client *harvest.Client) mcp.ToolHandlerFor[UpdateExpenseInput, UpdateExpenseOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateExpenseInput) (*mcp.CallToolResult, UpdateExpenseOutput, error) {
		if err := requireID("expense_id", input.ExpenseID); err != nil {
			return nil, UpdateExpenseOutput{}, err
		}
		if input.SpentDate != nil {
			if err := requireDate("spent_date", *input.SpentDate); err != nil {
				return nil, UpdateExpenseOutput{}, err
			}
		}
		if input.TotalCost != nil && input.Units != nil {
			return nil, UpdateExpenseOutput{}, errors.New("provide either total_cost or units, not both")
		}

		expense, err := client.UpdateExpense(ctx, input.ExpenseID, harvest.ExpenseUpdateParams{
			ProjectID:         input.ProjectID,
			ExpenseCategoryID: input.ExpenseCategoryID,
			SpentDate:         input.SpentDate,
			TotalCost:         input.TotalCost,
			Units:             input.Units,
			Billable:          input.Billable,
			Notes:             input.Notes,
		})
		if err != nil {
			return nil, UpdateExpenseOutput{}, fmt.Errorf("updating expense %d: %w", input.ExpenseID, err)
		}
		return nil, UpdateExpenseOutput{Expense: expense}, nil
	}
}

// --- delete_expense ---

// DeleteExpenseInput is the input for the delete_expense tool.
type DeleteExpenseInput struct {
	ExpenseID int64 `json:"expense_id" jsonschema:"ID of the expense to delete"`
}

func handleDeleteExpense(client *harvest.Client) mcp.ToolHandlerFor[DeleteExpenseInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteExpenseInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("expense_id", input.ExpenseID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteExpense(ctx, input.ExpenseID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting expense %d: %w", input.ExpenseID, err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.ExpenseID}, nil
	}
}

// --- list_expense_categories ---

// ListExpenseCategoriesInput is the input for the
// list_expense_categories tool.
type ListExpenseCategoriesInput struct {
	PageInput
	IsActive     *bool  `json:"is_active,omitempty"     jsonschema:"pass true for active categories only"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only categories updated since this date or ISO 8601 timestamp"`
}

// ListExpenseCategoriesOutput is the output for the
// list_expense_categories tool.
type ListExpenseCategoriesOutput struct {
	harvest.ExpenseCategoryList
}

func handleListExpenseCategories(client *harvest.Client) mcp.ToolHandlerFor[ListExpenseCategoriesInput, ListExpenseCategoriesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListExpenseCategoriesInput) (*mcp.CallToolResult, ListExpenseCategoriesOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListExpenseCategoriesOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListExpenseCategoriesOutput{}, err
		}

		list, err := client.ListExpenseCategories(ctx, harvest.ExpenseCategoryListParams{
			ListParams:   input.listParams(),
			IsActive:     input.IsActive,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListExpenseCategoriesOutput{}, fmt.Errorf("listing expense categories: %w", err)
		}
		return nil, ListExpenseCategoriesOutput{ExpenseCategoryList: *list}, nil
	}
}

func registerExpenseTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_expenses",
		Description: "List expenses, newest first. Filter by user, client, project, billed state or date range. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListExpenses(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_expense",
		Description: "Retrieve a single expense by ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetExpense(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_expense",
		Description: "Record an expense against a project. Provide total_cost for a flat amount, or units for unit-priced categories.",
		Annotations: writeAnnotations(),
	}, handleCreateExpense(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_expense",
		Description: "Update an existing expense. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateExpense(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_expense",
		Description: "Delete an expense. Approved or closed expenses cannot be deleted.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteExpense(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_expense_categories",
		Description: "List the expense categories on the account. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListExpenseCategories(client))
}
