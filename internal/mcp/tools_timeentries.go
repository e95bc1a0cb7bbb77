package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// --- list_time_entries ---

// ListTimeEntriesInput is the input for the list_time_entries tool.
type ListTimeEntriesInput struct {
	PageInput
	UserID       int64  `json:"user_id,omitempty"       jsonschema:"only entries belonging to this user"`
	ClientID     int64  `json:"client_id,omitempty"     jsonschema:"only entries for this client"`
	ProjectID    int64  `json:"project_id,omitempty"    jsonschema:"only entries for this project"`
	TaskID       int64  `json:"task_id,omitempty"       jsonschema:"only entries for this task"`
	IsBilled     *bool  `json:"is_billed,omitempty"     jsonschema:"filter by whether the entry has been invoiced"`
	IsRunning    *bool  `json:"is_running,omitempty"    jsonschema:"pass true for running timers only"`
	From         string `json:"from,omitempty"          jsonschema:"only entries on or after this date (YYYY-MM-DD)"`
	To           string `json:"to,omitempty"            jsonschema:"only entries on or before this date (YYYY-MM-DD)"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only entries updated since this date or ISO 8601 timestamp"`
}

// ListTimeEntriesOutput is the output for the list_time_entries tool.
type ListTimeEntriesOutput struct {
	harvest.TimeEntryList
}

func handleListTimeEntries(client *harvest.Client) mcp.ToolHandlerFor[ListTimeEntriesInput, ListTimeEntriesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTimeEntriesInput) (*mcp.CallToolResult, ListTimeEntriesOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListTimeEntriesOutput{}, err
		}
		if err := checkDate("from", input.From); err != nil {
			return nil, ListTimeEntriesOutput{}, err
		}
		if err := checkDate("to", input.To); err != nil {
			return nil, ListTimeEntriesOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListTimeEntriesOutput{}, err
		}

		list, err := client.ListTimeEntries(ctx, harvest.TimeEntryListParams{
			ListParams:   input.listParams(),
			UserID:       input.UserID,
			ClientID:     input.ClientID,
			ProjectID:    input.ProjectID,
			TaskID:       input.TaskID,
			IsBilled:     input.IsBilled,
			IsRunning:    input.IsRunning,
			From:         input.From,
			To:           input.To,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListTimeEntriesOutput{}, fmt.Errorf("listing time entries: %w", err)
		}
		return nil, ListTimeEntriesOutput{TimeEntryList: *list}, nil
	}
}

// --- get_time_entry ---

// GetTimeEntryInput is the input for the get_time_entry tool.
type GetTimeEntryInput struct {
	TimeEntryID int64 `json:"time_entry_id" jsonschema:"ID of the time entry to retrieve"`
}

// GetTimeEntryOutput is the output for the get_time_entry tool.
type GetTimeEntryOutput struct {
	TimeEntry *harvest.TimeEntry `json:"time_entry" jsonschema:"the requested time entry"`
}

func handleGetTimeEntry(client *harvest.Client) mcp.ToolHandlerFor[GetTimeEntryInput, GetTimeEntryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetTimeEntryInput) (*mcp.CallToolResult, GetTimeEntryOutput, error) {
		if err := requireID("time_entry_id", input.TimeEntryID); err != nil {
			return nil, GetTimeEntryOutput{}, err
		}
		entry, err := client.GetTimeEntry(ctx, input.TimeEntryID)
		if err != nil {
			return nil, GetTimeEntryOutput{}, fmt.Errorf("getting time entry %d: %w", input.TimeEntryID, err)
		}
		return nil, GetTimeEntryOutput{TimeEntry: entry}, nil
	}
}

// --- create_time_entry ---

// CreateTimeEntryInput is the input for the create_time_entry tool.
type CreateTimeEntryInput struct {
	ProjectID   int64    `json:"project_id"             jsonschema:"ID of the project to log time against (required)"`
	TaskID      int64    `json:"task_id"                jsonschema:"ID of the task to log time against (required)"`
	SpentDate   string   `json:"spent_date"             jsonschema:"date of the entry in YYYY-MM-DD format (required)"`
	UserID      *int64   `json:"user_id,omitempty"      jsonschema:"log time for this user instead of the authenticated one"`
	Hours       *float64 `json:"hours,omitempty"        jsonschema:"duration in decimal hours; mutually exclusive with started_time"`
	StartedTime string   `json:"started_time,omitempty" jsonschema:"start time such as 9:15am; omit ended_time to leave the timer running"`
	EndedTime   string   `json:"ended_time,omitempty"   jsonschema:"end time; only valid together with started_time"`
	Notes       string   `json:"notes,omitempty"        jsonschema:"notes attached to the entry"`
}

// CreateTimeEntryOutput is the output for the create_time_entry tool.
type CreateTimeEntryOutput struct {
	TimeEntry *harvest.TimeEntry `json:"time_entry" jsonschema:"the created time entry"`
}

func validateCreateTimeEntry(input CreateTimeEntryInput) error {
	if err := requireID("project_id", input.ProjectID); err != nil {
		return err
	}
	if err := requireID("task_id", input.TaskID); err != nil {
		return err
	}
	if err := requireDate("spent_date", input.SpentDate); err != nil {
		return err
	}
	if input.Hours != nil && input.StartedTime != "" {
		return errors.New("provide either hours or started_time, not both")
	}
	if input.Hours == nil && input.StartedTime == "" {
		return errors.New("provide either hours or started_time")
	}
	if input.EndedTime != "" && input.StartedTime == "" {
		return errors.New("ended_time requires started_time")
	}
	return nil
}

func handleCreateTimeEntry(client *harvest.Client) mcp.ToolHandlerFor[CreateTimeEntryInput, CreateTimeEntryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTimeEntryInput) (*mcp.CallToolResult, CreateTimeEntryOutput, error) {
		if err := validateCreateTimeEntry(input); err != nil {
			return nil, CreateTimeEntryOutput{}, err
		}

		entry, err := client.CreateTimeEntry(ctx, harvest.TimeEntryCreateParams{
			ProjectID:   input.ProjectID,
			TaskID:      input.TaskID,
			SpentDate:   input.SpentDate,
			UserID:      input.UserID,
			Hours:       input.Hours,
			StartedTime: input.StartedTime,
			EndedTime:   input.EndedTime,
			Notes:       input.Notes,
		})
		if err != nil {
			return nil, CreateTimeEntryOutput{}, fmt.Errorf("creating time entry: %w", err)
		}
		return nil, CreateTimeEntryOutput{TimeEntry: entry}, nil
	}
}

// --- update_time_entry ---

// UpdateTimeEntryInput is the input for the update_time_entry tool.
// Omitted fields are left unchanged.
type UpdateTimeEntryInput struct {
	TimeEntryID int64    `json:"time_entry_id"          jsonschema:"ID of the time entry to update"`
	ProjectID   *int64   `json:"project_id,omitempty"   jsonschema:"move the entry to another project"`
	TaskID      *int64   `json:"task_id,omitempty"      jsonschema:"move the entry to another task"`
	SpentDate   *string  `json:"spent_date,omitempty"   jsonschema:"new date in YYYY-MM-DD format"`
	Hours       *float64 `json:"hours,omitempty"        jsonschema:"new duration in decimal hours"`
	StartedTime *string  `json:"started_time,omitempty" jsonschema:"new start time"`
	EndedTime   *string  `json:"ended_time,omitempty"   jsonschema:"new end time"`
	Notes       *string  `json:"notes,omitempty"        jsonschema:"replacement notes"`
}

// UpdateTimeEntryOutput is the output for the update_time_entry tool.
type UpdateTimeEntryOutput struct {
	TimeEntry *harvest.TimeEntry `json:"time_entry" jsonschema:"the updated time entry"`
}

func handleUpdateTimeEntry(client *harvest.Client) mcp.ToolHandlerFor[UpdateTimeEntryInput, UpdateTimeEntryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateTimeEntryInput) (*mcp.CallToolResult, UpdateTimeEntryOutput, error) {
		if err := requireID("time_entry_id", input.TimeEntryID); err != nil {
			return nil, UpdateTimeEntryOutput{}, err
		}
		if input.SpentDate != nil {
			if err := requireDate("spent_date", *input.SpentDate); err != nil {
				return nil, UpdateTimeEntryOutput{}, err
			}
		}

		entry, err := client.UpdateTimeEntry(ctx, input.TimeEntryID, harvest.TimeEntryUpdateParams{
			ProjectID:   input.ProjectID,
			TaskID:      input.TaskID,
			SpentDate:   input.SpentDate,
			Hours:       input.Hours,
			StartedTime: input.StartedTime,
			EndedTime:   input.EndedTime,
			Notes:       input.Notes,
		})
		if err != nil {
			return nil, UpdateTimeEntryOutput{}, fmt.Errorf("updating time entry %d: %w", input.TimeEntryID, err)
		}
		return nil, UpdateTimeEntryOutput{TimeEntry: entry}, nil
	}
}

// --- delete_time_entry ---

// DeleteTimeEntryInput is the input for the delete_time_entry tool.
type DeleteTimeEntryInput struct {
	TimeEntryID int64 `json:"time_entry_id" jsonschema:"ID of the time entry to delete"`
}

func handleDeleteTimeEntry(client *harvest.Client) mcp.ToolHandlerFor[DeleteTimeEntryInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteTimeEntryInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("time_entry_id", input.TimeEntryID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteTimeEntry(ctx, input.TimeEntryID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting time entry %d: %w", input.TimeEntryID, err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.TimeEntryID}, nil
	}
}

// --- restart_timer ---

// RestartTimeEntryInput is the input for the restart_time_entry tool.
type RestartTimeEntryInput struct {
	TimeEntryID int64 `json:"time_entry_id" jsonschema:"ID of the stopped time entry to restart"`
}

// RestartTimeEntryOutput is the output for the restart_time_entry tool.
type RestartTimeEntryOutput struct {
	TimeEntry *harvest.TimeEntry `json:"time_entry" jsonschema:"the restarted time entry"`
}

func handleRestartTimeEntry(client *harvest.Client) mcp.ToolHandlerFor[RestartTimeEntryInput, RestartTimeEntryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RestartTimeEntryInput) (*mcp.CallToolResult, RestartTimeEntryOutput, error) {
		if err := requireID("time_entry_id", input.TimeEntryID); err != nil {
			return nil, RestartTimeEntryOutput{}, err
		}
		entry, err := client.RestartTimeEntry(ctx, input.TimeEntryID)
		if err != nil {
			return nil, RestartTimeEntryOutput{}, fmt.Errorf("restarting time entry %d: %w", input.TimeEntryID, err)
		}
		return nil, RestartTimeEntryOutput{TimeEntry: entry}, nil
	}
}

// --- stop_timer ---

// StopTimeEntryInput is the input for the stop_time_entry tool.
type StopTimeEntryInput struct {
	TimeEntryID int64 `json:"time_entry_id" jsonschema:"ID of the running time entry to stop"`
}

// StopTimeEntryOutput is the output for the stop_time_entry tool.
type StopTimeEntryOutput struct {
	TimeEntry *harvest.TimeEntry `json:"time_entry" jsonschema:"the stopped time entry"`
}

func handleStopTimeEntry(client *harvest.Client) mcp.ToolHandlerFor[StopTimeEntryInput, StopTimeEntryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StopTimeEntryInput) (*mcp.CallToolResult, StopTimeEntryOutput, error) {
		if err := requireID("time_entry_id", input.TimeEntryID); err != nil {
			return nil, StopTimeEntryOutput{}, err
		}
		entry, err := client.StopTimeEntry(ctx, input.TimeEntryID)
		if err != nil {
			return nil, StopTimeEntryOutput{}, fmt.Errorf("stopping time entry %d: %w", input.TimeEntryID, err)
		}
		return nil, StopTimeEntryOutput{TimeEntry: entry}, nil
	}
}

func registerTimeEntryTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_time_entries",
		Description: "List time entries, newest first. Filter by user, client, project, task, billed state, running state or date range. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListTimeEntries(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_time_entry",
		Description: "Retrieve a single time entry by ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetTimeEntry(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_time_entry",
		Description: "Log time against a project task. Provide hours for a fixed duration, or started_time to track by start and end; leaving ended_time off starts a running timer.",
		Annotations: writeAnnotations(),
	}, handleCreateTimeEntry(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_time_entry",
		Description: "Update an existing time entry. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateTimeEntry(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_time_entry",
		Description: "Delete a time entry. Entries on approved timesheets or locked periods cannot be deleted.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteTimeEntry(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "restart_time_entry",
		Description: "Restart the timer on a stopped time entry.",
		Annotations: writeAnnotations(),
	}, handleRestartTimeEntry(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stop_time_entry",
		Description: "Stop the timer on a running time entry.",
		Annotations: writeAnnotations(),
	}, handleStopTimeEntry(client))
}
