package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// validBillBy are the values Harvest accepts for a project's bill_by.
var validBillBy = map[string]bool{
	"Project": true,
	"Tasks":   true,
	"People":  true,
	"none":    true,
}

// validBudgetBy are the values Harvest accepts for a project's
// budget_by.
var validBudgetBy = map[string]bool{
	"project":          true,
	"project_cost":     true,
	"task":             true,
	"task_fees":        true,
	"person":           true,
	"none":             true,
}

// --- list_projects ---

// ListProjectsInput is the input for the list_projects tool.
type ListProjectsInput struct {
	PageInput
	IsActive     *bool  `json:"is_active,omitempty"     jsonschema:"pass true for active projects only, false for archived only"`
	ClientID     int64  `json:"client_id,omitempty"     jsonschema:"only projects belonging to this client"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only projects updated since this date or ISO 8601 timestamp"`
}

// ListProjectsOutput is the output for the list_projects tool.
type ListProjectsOutput struct {
	harvest.ProjectList
}

func handleListProjects(client *harvest.Client) mcp.ToolHandlerFor[ListProjectsInput, ListProjectsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListProjectsOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListProjectsOutput{}, err
		}

		list, err := client.ListProjects(ctx, harvest.ProjectListParams{
			ListParams:   input.listParams(),
			IsActive:     input.IsActive,
			ClientID:     input.ClientID,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListProjectsOutput{}, fmt.Errorf("listing projects: %w", err)
		}
		return nil, ListProjectsOutput{ProjectList: *list}, nil
	}
}

// --- get_project ---

// GetProjectInput is the input for the get_project tool.
type GetProjectInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"ID of the project to retrieve"`
}

// GetProjectOutput is the output for the get_project tool.
type GetProjectOutput struct {
	Project *harvest.Project `json:"project" jsonschema:"the project record"`
}

func handleGetProject(client *harvest.Client) mcp.ToolHandlerFor[GetProjectInput, GetProjectOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetProjectInput) (*mcp.CallToolResult, GetProjectOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, GetProjectOutput{}, err
		}

		project, err := client.GetProject(ctx, input.ProjectID)
		if err != nil {
			return nil, GetProjectOutput{}, fmt.Errorf("getting project: %w", err)
		}
		return nil, GetProjectOutput{Project: project}, nil
	}
}

// --- create_project ---

// CreateProjectInput is the input for the create_project tool.
type CreateProjectInput struct {
	ClientID   int64    `json:"client_id"             jsonschema:"ID of the client the project belongs to (required)"`
	Name       string   `json:"name"                  jsonschema:"project name (required)"`
	IsBillable bool     `json:"is_billable"           jsonschema:"whether the project is billable (required)"`
	BillBy     string   `json:"bill_by"               jsonschema:"how the project is billed: Project, Tasks, People, or none (required)"`
	Code       string   `json:"code,omitempty"        jsonschema:"project code"`
	IsActive   *bool    `json:"is_active,omitempty"   jsonschema:"whether the project is active (default true)"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" jsonschema:"rate for projects billed by Project"`
	Budget     *float64 `json:"budget,omitempty"      jsonschema:"budget in hours or money depending on budget_by"`
	BudgetBy   string   `json:"budget_by,omitempty"   jsonschema:"how the budget is tracked: project, project_cost, task, task_fees, person, or none"`
	Notes      string   `json:"notes,omitempty"       jsonschema:"project notes"`
	StartsOn   string   `json:"starts_on,omitempty"   jsonschema:"start date YYYY-MM-DD"`
	EndsOn     string   `json:"ends_on,omitempty"     jsonschema:"end date YYYY-MM-DD"`
}

// CreateProjectOutput is the output for the create_project tool.
type CreateProjectOutput struct {
	Project *harvest.Project `json:"project" jsonschema:"the created project"`
}

func handleCreateProject(client *harvest.Client) mcp.ToolHandlerFor[CreateProjectInput, CreateProjectOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, CreateProjectOutput, error) {
		if err := validateCreateProject(input); err != nil {
			return nil, CreateProjectOutput{}, err
		}

		project, err := client.CreateProject(ctx, harvest.ProjectCreateParams{
			ClientID:   input.ClientID,
			Name:       input.Name,
			IsBillable: input.IsBillable,
			BillBy:     input.BillBy,
			Code:       input.Code,
			IsActive:   input.IsActive,
			HourlyRate: input.HourlyRate,
			Budget:     input.Budget,
			BudgetBy:   input.BudgetBy,
			Notes:      input.Notes,
			StartsOn:   input.StartsOn,
			EndsOn:     input.EndsOn,
		})
		if err != nil {
			return nil, CreateProjectOutput{}, fmt.Errorf("creating project: %w", err)
		}
		return nil, CreateProjectOutput{Project: project}, nil
	}
}

// validateCreateProject checks required fields and enum values.
func validateCreateProject(input CreateProjectInput) error {
	if err := requireID("client_id", input.ClientID); err != nil {
		return err
	}
	if err := requireString("name", input.Name); err != nil {
		return err
	}
	if !validBillBy[input.BillBy] {
		return fmt.Errorf("bill_by must be one of Project, Tasks, People, none; got %q", input.BillBy)
	}
	if input.BudgetBy != "" && !validBudgetBy[input.BudgetBy] {
		return fmt.Errorf("budget_by must be one of project, project_cost, task, task_fees, person, none; got %q", input.BudgetBy)
	}
	if err := checkDate("starts_on", input.StartsOn); err != nil {
		return err
	}
	return checkDate("ends_on", input.EndsOn)
}

// --- update_project ---

// UpdateProjectInput is the input for the update_project tool.
// Omitted fields are left unchanged.
type UpdateProjectInput struct {
	ProjectID  int64    `json:"project_id"            jsonschema:"ID of the project to update"`
	ClientID   *int64   `json:"client_id,omitempty"   jsonschema:"move the project to another client"`
	Name       *string  `json:"name,omitempty"        jsonschema:"new project name"`
	Code       *string  `json:"code,omitempty"        jsonschema:"new project code"`
	IsActive   *bool    `json:"is_active,omitempty"   jsonschema:"activate or archive the project"`
	IsBillable *bool    `json:"is_billable,omitempty" jsonschema:"change whether the project is billable"`
	BillBy     *string  `json:"bill_by,omitempty"     jsonschema:"new bill_by: Project, Tasks, People, or none"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" jsonschema:"new hourly rate"`
	Budget     *float64 `json:"budget,omitempty"      jsonschema:"new budget"`
	BudgetBy   *string  `json:"budget_by,omitempty"   jsonschema:"new budget_by value"`
	Notes      *string  `json:"notes,omitempty"       jsonschema:"new notes"`
	StartsOn   *string  `json:"starts_on,omitempty"   jsonschema:"new start date YYYY-MM-DD"`
	EndsOn     *string  `json:"ends_on,omitempty"     jsonschema:"new end date YYYY-MM-DD"`
}

// UpdateProjectOutput is the output for the update_project tool.
type UpdateProjectOutput struct {
	Project *harvest.Project `json:"project" jsonschema:"the updated project"`
}

func handleUpdateProject(client *harvest.Client) mcp.ToolHandlerFor[UpdateProjectInput, UpdateProjectOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateProjectInput) (*mcp.CallToolResult, UpdateProjectOutput, error) {
		if err := validateUpdateProject(input); err != nil {
			return nil, UpdateProjectOutput{}, err
		}

		project, err := client.UpdateProject(ctx, input.ProjectID, harvest.ProjectUpdateParams{
			ClientID:   input.ClientID,
			Name:       input.Name,
			Code:       input.Code,
			IsActive:   input.IsActive,
			IsBillable: input.IsBillable,
			BillBy:     input.BillBy,
			HourlyRate: input.HourlyRate,
			Budget:     input.Budget,
			BudgetBy:   input.BudgetBy,
			Notes:      input.Notes,
			StartsOn:   input.StartsOn,
			EndsOn:     input.EndsOn,
		})
		if err != nil {
			return nil, UpdateProjectOutput{}, fmt.Errorf("updating project: %w", err)
		}
		return nil, UpdateProjectOutput{Project: project}, nil
	}
}

// validateUpdateProject checks the ID, enums, and date formats.
func validateUpdateProject(input UpdateProjectInput) error {
	if err := requireID("project_id", input.ProjectID); err != nil {
		return err
	}
	if input.BillBy != nil && !validBillBy[*input.BillBy] {
		return fmt.Errorf("bill_by must be one of Project, Tasks, People, none; got %q", *input.BillBy)
	}
	if input.BudgetBy != nil && !validBudgetBy[*input.BudgetBy] {
		return fmt.Errorf("budget_by must be one of project, project_cost, task, task_fees, person, none; got %q", *input.BudgetBy)
	}
	if input.StartsOn != nil {
		if err := requireDate("starts_on", *input.StartsOn); err != nil {
			return err
		}
	}
	if input.EndsOn != nil {
		if err := requireDate("ends_on", *input.EndsOn); err != nil {
			return err
		}
	}
	return nil
}

// --- delete_project ---

// DeleteProjectInput is the input for the delete_project tool.
type DeleteProjectInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"ID of the project to delete"`
}

func handleDeleteProject(client *harvest.Client) mcp.ToolHandlerFor[DeleteProjectInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteProjectInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteProject(ctx, input.ProjectID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting project: %w", err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.ProjectID}, nil
	}
}

func registerProjectTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List projects, with optional client, active-state, and updated-since filters. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListProjects(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_project",
		Description: "Get a single project by ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetProject(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a project under a client. Requires client_id, name, is_billable, and bill_by.",
		Annotations: writeAnnotations(),
	}, handleCreateProject(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_project",
		Description: "Update a project. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateProject(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project along with any time entries and expenses tracked against it.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteProject(client))
}
