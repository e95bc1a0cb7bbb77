package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// --- list_tasks ---

// ListTasksInput is the input for the list_tasks tool.
type ListTasksInput struct {
	PageInput
	IsActive     *bool  `json:"is_active,omitempty"     jsonschema:"pass true for active tasks only, false for archived only"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only tasks updated since this date or ISO 8601 timestamp"`
}

// ListTasksOutput is the output for the list_tasks tool.
type ListTasksOutput struct {
	harvest.TaskList
}

func handleListTasks(client *harvest.Client) mcp.ToolHandlerFor[ListTasksInput, ListTasksOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListTasksOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListTasksOutput{}, err
		}

		list, err := client.ListTasks(ctx, harvest.TaskListParams{
			ListParams:   input.listParams(),
			IsActive:     input.IsActive,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListTasksOutput{}, fmt.Errorf("listing tasks: %w", err)
		}
		return nil, ListTasksOutput{TaskList: *list}, nil
	}
}

// --- get_task ---

// GetTaskInput is the input for the get_task tool.
type GetTaskInput struct {
	TaskID int64 `json:"task_id" jsonschema:"ID of the task to retrieve"`
}

// GetTaskOutput is the output for the get_task tool.
type GetTaskOutput struct {
	Task *harvest.Task `json:"task" jsonschema:"the task record"`
}

func handleGetTask(client *harvest.Client) mcp.ToolHandlerFor[GetTaskInput, GetTaskOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetTaskInput) (*mcp.CallToolResult, GetTaskOutput, error) {
		if err := requireID("task_id", input.TaskID); err != nil {
			return nil, GetTaskOutput{}, err
		}

		task, err := client.GetTask(ctx, input.TaskID)
		if err != nil {
			return nil, GetTaskOutput{}, fmt.Errorf("getting task: %w", err)
		}
		return nil, GetTaskOutput{Task: task}, nil
	}
}

// --- create_task ---

// CreateTaskInput is the input for the create_task tool.
type CreateTaskInput struct {
	Name              string   `json:"name"                          jsonschema:"task name (required)"`
	BillableByDefault *bool    `json:"billable_by_default,omitempty" jsonschema:"whether the task is billable when added to a project (default true)"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty" jsonschema:"default hourly rate for the task"`
	IsDefault         *bool    `json:"is_default,omitempty"          jsonschema:"automatically add this task to future projects (default false)"`
	IsActive          *bool    `json:"is_active,omitempty"           jsonschema:"whether the task is active (default true)"`
}

// CreateTaskOutput is the output for the create_task tool.
type CreateTaskOutput struct {
	Task *harvest.Task `json:"task" jsonschema:"the created task"`
}

func handleCreateTask(client *harvest.Client) mcp.ToolHandlerFor[CreateTaskInput, CreateTaskOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, CreateTaskOutput, error) {
		if err := requireString("name", input.Name); err != nil {
			return nil, CreateTaskOutput{}, err
		}

		task, err := client.CreateTask(ctx, harvest.TaskCreateParams{
			Name:              input.Name,
			BillableByDefault: input.BillableByDefault,
			DefaultHourlyRate: input.DefaultHourlyRate,
			IsDefault:         input.IsDefault,
			IsActive:          input.IsActive,
		})
		if err != nil {
			return nil, CreateTaskOutput{}, fmt.Errorf("creating task: %w", err)
		}
		return nil, CreateTaskOutput{Task: task}, nil
	}
}

// --- update_task ---

// UpdateTaskInput is the input for the update_task tool. Omitted
// fields are left unchanged.
type UpdateTaskInput struct {
	TaskID            int64    `json:"task_id"                       jsonschema:"ID of the task to update"`
	Name              *string  `json:"name,omitempty"                jsonschema:"new task name"`
	BillableByDefault *bool    `json:"billable_by_default,omitempty" jsonschema:"change the default billable flag"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty" jsonschema:"new default hourly rate"`
	IsDefault         *bool    `json:"is_default,omitempty"          jsonschema:"change whether the task is added to future projects"`
	IsActive          *bool    `json:"is_active,omitempty"           jsonschema:"activate or archive the task"`
}

// UpdateTaskOutput is the output for the update_task tool.
type UpdateTaskOutput struct {
	Task *harvest.Task `json:"task" jsonschema:"the updated task"`
}

func handleUpdateTask(client *harvest.Client) mcp.ToolHandlerFor[UpdateTaskInput, UpdateTaskOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, UpdateTaskOutput, error) {
		if err := requireID("task_id", input.TaskID); err != nil {
			return nil, UpdateTaskOutput{}, err
		}

		task, err := client.UpdateTask(ctx, input.TaskID, harvest.TaskUpdateParams{
			Name:              input.Name,
			BillableByDefault: input.BillableByDefault,
			DefaultHourlyRate: input.DefaultHourlyRate,
			IsDefault:         input.IsDefault,
			IsActive:          input.IsActive,
		})
		if err != nil {
			return nil, UpdateTaskOutput{}, fmt.Errorf("updating task: %w", err)
		}
		return nil, UpdateTaskOutput{Task: task}, nil
	}
}

// --- delete_task ---

// DeleteTaskInput is the input for the delete_task tool.
type DeleteTaskInput struct {
	TaskID int64 `json:"task_id" jsonschema:"ID of the task to delete"`
}

func handleDeleteTask(client *harvest.Client) mcp.ToolHandlerFor[DeleteTaskInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteTaskInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("task_id", input.TaskID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteTask(ctx, input.TaskID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting task: %w", err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.TaskID}, nil
	}
}

func registerTaskTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List account-wide tasks, with optional active-state and updated-since filters. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListTasks(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_task",
		Description: "Get a single task by ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetTask(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a new task.",
		Annotations: writeAnnotations(),
	}, handleCreateTask(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task",
		Description: "Update a task. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateTask(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task. Fails if the task has tracked time against it.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteTask(client))
}
