package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// --- list_task_assignments ---

// ListTaskAssignmentsInput is the input for the list_task_assignments
// tool.
type ListTaskAssignmentsInput struct {
	PageInput
	ProjectID    int64  `json:"project_id"              jsonschema:"ID of the project whose task assignments to list"`
	IsActive     *bool  `json:"is_active,omitempty"     jsonschema:"pass true for active assignments only"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only assignments updated since this date or ISO 8601 timestamp"`
}

// ListTaskAssignmentsOutput is the output for the
// list_task_assignments tool.
type ListTaskAssignmentsOutput struct {
	harvest.TaskAssignmentList
}

func handleListTaskAssignments(client *harvest.Client) mcp.ToolHandlerFor[ListTaskAssignmentsInput, ListTaskAssignmentsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTaskAssignmentsInput) (*mcp.CallToolResult, ListTaskAssignmentsOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, ListTaskAssignmentsOutput{}, err
		}
		if err := input.PageInput.validate(); err != nil {
			return nil, ListTaskAssignmentsOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListTaskAssignmentsOutput{}, err
		}

		list, err := client.ListTaskAssignments(ctx, input.ProjectID, harvest.AssignmentListParams{
			ListParams:   input.listParams(),
			IsActive:     input.IsActive,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListTaskAssignmentsOutput{}, fmt.Errorf("listing task assignments: %w", err)
		}
		return nil, ListTaskAssignmentsOutput{TaskAssignmentList: *list}, nil
	}
}

// --- create_task_assignment ---

// CreateTaskAssignmentInput is the input for the
// create_task_assignment tool.
type CreateTaskAssignmentInput struct {
	ProjectID  int64    `json:"project_id"            jsonschema:"ID of the project (required)"`
	TaskID     int64    `json:"task_id"               jsonschema:"ID of the task to assign (required)"`
	IsActive   *bool    `json:"is_active,omitempty"   jsonschema:"whether the assignment is active (default true)"`
	Billable   *bool    `json:"billable,omitempty"    jsonschema:"whether time on this assignment is billable"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" jsonschema:"rate for projects billed by Tasks"`
	Budget     *float64 `json:"budget,omitempty"      jsonschema:"budget for projects budgeted by task"`
}

// CreateTaskAssignmentOutput is the output for the
// create_task_assignment tool.
type CreateTaskAssignmentOutput struct {
	TaskAssignment *harvest.TaskAssignment `json:"task_assignment" jsonschema:"the created task assignment"`
}

func handleCreateTaskAssignment(client *harvest.Client) mcp.ToolHandlerFor[CreateTaskAssignmentInput, CreateTaskAssignmentOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTaskAssignmentInput) (*mcp.CallToolResult, CreateTaskAssignmentOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, CreateTaskAssignmentOutput{}, err
		}
		if err := requireID("task_id", input.TaskID); err != nil {
			return nil, CreateTaskAssignmentOutput{}, err
		}

		assignment, err := client.CreateTaskAssignment(ctx, input.ProjectID, harvest.TaskAssignmentCreateParams{
			TaskID:     input.TaskID,
			IsActive:   input.IsActive,
			Billable:   input.Billable,
			HourlyRate: input.HourlyRate,
			Budget:     input.Budget,
		})
		if err != nil {
			return nil, CreateTaskAssignmentOutput{}, fmt.Errorf("creating task assignment: %w", err)
		}
		return nil, CreateTaskAssignmentOutput{TaskAssignment: assignment}, nil
	}
}

// --- update_task_assignment ---

// UpdateTaskAssignmentInput is the input for the
// update_task_assignment tool. Omitted fields are left unchanged.
type UpdateTaskAssignmentInput struct {
	ProjectID        int64    `json:"project_id"            jsonschema:"ID of the project"`
	TaskAssignmentID int64    `json:"task_assignment_id"    jsonschema:"ID of the task assignment to update"`
	IsActive         *bool    `json:"is_active,omitempty"   jsonschema:"activate or deactivate the assignment"`
	Billable         *bool    `json:"billable,omitempty"    jsonschema:"change the billable flag"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty" jsonschema:"new hourly rate"`
	Budget           *float64 `json:"budget,omitempty"      jsonschema:"new budget"`
}

// UpdateTaskAssignmentOutput is the output for the
// update_task_assignment tool.
type UpdateTaskAssignmentOutput struct {
	TaskAssignment *harvest.TaskAssignment `json:"task_assignment" jsonschema:"the updated task assignment"`
}

func handleUpdateTaskAssignment(client *harvest.Client) mcp.ToolHandlerFor[UpdateTaskAssignmentInput, UpdateTaskAssignmentOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateTaskAssignmentInput) (*mcp.CallToolResult, UpdateTaskAssignmentOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, UpdateTaskAssignmentOutput{}, err
		}
		if err := requireID("task_assignment_id", input.TaskAssignmentID); err != nil {
			return nil, UpdateTaskAssignmentOutput{}, err
		}

		assignment, err := client.UpdateTaskAssignment(ctx, input.ProjectID, input.TaskAssignmentID, harvest.TaskAssignmentUpdateParams{
			IsActive:   input.IsActive,
			Billable:   input.Billable,
			HourlyRate: input.HourlyRate,
			Budget:     input.Budget,
		})
		if err != nil {
			return nil, UpdateTaskAssignmentOutput{}, fmt.Errorf("updating task assignment: %w", err)
		}
		return nil, UpdateTaskAssignmentOutput{TaskAssignment: assignment}, nil
	}
}

// --- delete_task_assignment ---

// DeleteTaskAssignmentInput is the input for the
// delete_task_assignment tool.
type DeleteTaskAssignmentInput struct {
	ProjectID        int64 `json:"project_id"         jsonschema:"ID of the project"`
	TaskAssignmentID int64 `json:"task_assignment_id" jsonschema:"ID of the task assignment to delete"`
}

func handleDeleteTaskAssignment(client *harvest.Client) mcp.ToolHandlerFor[DeleteTaskAssignmentInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteTaskAssignmentInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := requireID("task_assignment_id", input.TaskAssignmentID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteTaskAssignment(ctx, input.ProjectID, input.TaskAssignmentID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting task assignment: %w", err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.TaskAssignmentID}, nil
	}
}

// --- list_user_assignments ---

// ListUserAssignmentsInput is the input for the list_user_assignments
// tool.
type ListUserAssignmentsInput struct {
	PageInput
	ProjectID    int64  `json:"project_id"              jsonschema:"ID of the project whose user assignments to list"`
	IsActive     *bool  `json:"is_active,omitempty"     jsonschema:"pass true for active assignments only"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only assignments updated since this date or ISO 8601 timestamp"`
}

// ListUserAssignmentsOutput is the output for the
// list_user_assignments tool.
type ListUserAssignmentsOutput struct {
	harvest.UserAssignmentList
}

func handleListUserAssignments(client *harvest.Client) mcp.ToolHandlerFor[ListUserAssignmentsInput, ListUserAssignmentsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListUserAssignmentsInput) (*mcp.CallToolResult, ListUserAssignmentsOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, ListUserAssignmentsOutput{}, err
		}
		if err := input.PageInput.validate(); err != nil {
			return nil, ListUserAssignmentsOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListUserAssignmentsOutput{}, err
		}

		list, err := client.ListUserAssignments(ctx, input.ProjectID, harvest.AssignmentListParams{
			ListParams:   input.listParams(),
			IsActive:     input.IsActive,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListUserAssignmentsOutput{}, fmt.Errorf("listing user assignments: %w", err)
		}
		return nil, ListUserAssignmentsOutput{UserAssignmentList: *list}, nil
	}
}

// --- create_user_assignment ---

// CreateUserAssignmentInput is the input for the
// create_user_assignment tool.
type CreateUserAssignmentInput struct {
	ProjectID        int64    `json:"project_id"                   jsonschema:"ID of the project (required)"`
	UserID           int64    `json:"user_id"                      jsonschema:"ID of the user to assign (required)"`
	IsActive         *bool    `json:"is_active,omitempty"          jsonschema:"whether the assignment is active (default true)"`
	IsProjectManager *bool    `json:"is_project_manager,omitempty" jsonschema:"make the user a project manager"`
	UseDefaultRates  *bool    `json:"use_default_rates,omitempty"  jsonschema:"bill using the user's default rates"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty"        jsonschema:"rate for projects billed by People"`
	Budget           *float64 `json:"budget,omitempty"             jsonschema:"budget for projects budgeted by person"`
}

// CreateUserAssignmentOutput is the output for the
// create_user_assignment tool.
type CreateUserAssignmentOutput struct {
	UserAssignment *harvest.UserAssignment `json:"user_assignment" jsonschema:"the created user assignment"`
}

func handleCreateUserAssignment(client *harvest.Client) mcp.ToolHandlerFor[CreateUserAssignmentInput, CreateUserAssignmentOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateUserAssignmentInput) (*mcp.CallToolResult, CreateUserAssignmentOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, CreateUserAssignmentOutput{}, err
		}
		if err := requireID("user_id", input.UserID); err != nil {
			return nil, CreateUserAssignmentOutput{}, err
		}

		assignment, err := client.CreateUserAssignment(ctx, input.ProjectID, harvest.UserAssignmentCreateParams{
			UserID:           input.UserID,
			IsActive:         input.IsActive,
			IsProjectManager: input.IsProjectManager,
			UseDefaultRates:  input.UseDefaultRates,
			HourlyRate:       input.HourlyRate,
			Budget:           input.Budget,
		})
		if err != nil {
			return nil, CreateUserAssignmentOutput{}, fmt.Errorf("creating user assignment: %w", err)
		}
		return nil, CreateUserAssignmentOutput{UserAssignment: assignment}, nil
	}
}

// --- update_user_assignment ---

// UpdateUserAssignmentInput is the input for the
// update_user_assignment tool. Omitted fields are left unchanged.
type UpdateUserAssignmentInput struct {
	ProjectID        int64    `json:"project_id"                   jsonschema:"ID of the project"`
	UserAssignmentID int64    `json:"user_assignment_id"           jsonschema:"ID of the user assignment to update"`
	IsActive         *bool    `json:"is_active,omitempty"          jsonschema:"activate or deactivate the assignment"`
	IsProjectManager *bool    `json:"is_project_manager,omitempty" jsonschema:"grant or revoke project manager"`
	UseDefaultRates  *bool    `json:"use_default_rates,omitempty"  jsonschema:"toggle default-rate billing"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty"        jsonschema:"new hourly rate"`
	Budget           *float64 `json:"budget,omitempty"             jsonschema:"new budget"`
}

// UpdateUserAssignmentOutput is the output for the
// update_user_assignment tool.
type UpdateUserAssignmentOutput struct {
	UserAssignment *harvest.UserAssignment `json:"user_assignment" jsonschema:"the updated user assignment"`
}

func handleUpdateUserAssignment(client *harvest.Client) mcp.ToolHandlerFor[UpdateUserAssignmentInput, UpdateUserAssignmentOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateUserAssignmentInput) (*mcp.CallToolResult, UpdateUserAssignmentOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, UpdateUserAssignmentOutput{}, err
		}
		if err := requireID("user_assignment_id", input.UserAssignmentID); err != nil {
			return nil, UpdateUserAssignmentOutput{}, err
		}

		assignment, err := client.UpdateUserAssignment(ctx, input.ProjectID, input.UserAssignmentID, harvest.UserAssignmentUpdateParams{
			IsActive:         input.IsActive,
			IsProjectManager: input.IsProjectManager,
			UseDefaultRates:  input.UseDefaultRates,
			HourlyRate:       input.HourlyRate,
			Budget:           input.Budget,
		})
		if err != nil {
			return nil, UpdateUserAssignmentOutput{}, fmt.Errorf("updating user assignment: %w", err)
		}
		return nil, UpdateUserAssignmentOutput{UserAssignment: assignment}, nil
	}
}

// --- delete_user_assignment ---

// DeleteUserAssignmentInput is the input for the
// delete_user_assignment tool.
type DeleteUserAssignmentInput struct {
	ProjectID        int64 `json:"project_id"         jsonschema:"ID of the project"`
	UserAssignmentID int64 `json:"user_assignment_id" jsonschema:"ID of the user assignment to delete"`
}

func handleDeleteUserAssignment(client *harvest.Client) mcp.ToolHandlerFor[DeleteUserAssignmentInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteUserAssignmentInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("project_id", input.ProjectID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := requireID("user_assignment_id", input.UserAssignmentID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteUserAssignment(ctx, input.ProjectID, input.UserAssignmentID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting user assignment: %w", err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.UserAssignmentID}, nil
	}
}

func registerAssignmentTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_task_assignments",
		Description: "List the task assignments on a project. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListTaskAssignments(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task_assignment",
		Description: "Assign a task to a project so time can be tracked against it.",
		Annotations: writeAnnotations(),
	}, handleCreateTaskAssignment(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task_assignment",
		Description: "Update a task assignment on a project. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateTaskAssignment(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task_assignment",
		Description: "Remove a task from a project.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteTaskAssignment(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_user_assignments",
		Description: "List the user assignments on a project. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListUserAssignments(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_user_assignment",
		Description: "Assign a user to a project.",
		Annotations: writeAnnotations(),
	}, handleCreateUserAssignment(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_user_assignment",
		Description: "Update a user assignment on a project. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateUserAssignment(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_user_assignment",
		Description: "Remove a user from a project.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteUserAssignment(client))
}
