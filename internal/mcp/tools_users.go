package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// --- list_users ---

// ListUsersInput is the input for the list_users tool.
type ListUsersInput struct {
	PageInput
	IsActive     *bool  `json:"is_active,omitempty"     jsonschema:"pass true for active users only"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only users updated since this date or ISO 8601 timestamp"`
}

// ListUsersOutput is the output for the list_users tool.
type ListUsersOutput struct {
	harvest.UserList
}

func handleListUsers(client *harvest.Client) mcp.ToolHandlerFor[ListUsersInput, ListUsersOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListUsersInput) (*mcp.CallToolResult, ListUsersOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListUsersOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListUsersOutput{}, err
		}

		list, err := client.ListUsers(ctx, harvest.UserListParams{
			ListParams:   input.listParams(),
			IsActive:     input.IsActive,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListUsersOutput{}, fmt.Errorf("listing users: %w", err)
		}
		return nil, ListUsersOutput{UserList: *list}, nil
	}
}

// --- get_user ---

// GetUserInput is the input for the get_user tool.
type GetUserInput struct {
	UserID int64 `json:"user_id" jsonschema:"ID of the user to retrieve"`
}

// GetUserOutput is the output for the get_user tool.
type GetUserOutput struct {
	User *harvest.User `json:"user" jsonschema:"the requested user"`
}

func handleGetUser(client *harvest.Client) mcp.ToolHandlerFor[GetUserInput, GetUserOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetUserInput) (*mcp.CallToolResult, GetUserOutput, error) {
		if err := requireID("user_id", input.UserID); err != nil {
			return nil, GetUserOutput{}, err
		}
		user, err := client.GetUser(ctx, input.UserID)
		if err != nil {
			return nil, GetUserOutput{}, fmt.Errorf("getting user %d: %w", input.UserID, err)
		}
		return nil, GetUserOutput{User: user}, nil
	}
}

// --- get_current_user ---

// GetCurrentUserInput is the input for the get_current_user tool,
// which takes no arguments.
type GetCurrentUserInput struct{}

// GetCurrentUserOutput is the output for the get_current_user tool.
type GetCurrentUserOutput struct {
	User *harvest.User `json:"user" jsonschema:"the user the access token belongs to"`
}

func handleGetCurrentUser(client *harvest.Client) mcp.ToolHandlerFor[GetCurrentUserInput, GetCurrentUserOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetCurrentUserInput) (*mcp.CallToolResult, GetCurrentUserOutput, error) {
		user, err := client.GetCurrentUser(ctx)
		if err != nil {
			return nil, GetCurrentUserOutput{}, fmt.Errorf("getting current user: %w", err)
		}
		return nil, GetCurrentUserOutput{User: user}, nil
	}
}

// --- create_user ---

// CreateUserInput is the input for the create_user tool.
type CreateUserInput struct {
	FirstName         string   `json:"first_name"                    jsonschema:"first name of the user (required)"`
	LastName          string   `json:"last_name"                     jsonschema:"last name of the user (required)"`
	Email             string   `json:"email"                         jsonschema:"email address of the user (required)"`
	Telephone         string   `json:"telephone,omitempty"           jsonschema:"telephone number"`
	Timezone          string   `json:"timezone,omitempty"            jsonschema:"time zone, defaults to the company time zone"`
	IsContractor      *bool    `json:"is_contractor,omitempty"       jsonschema:"mark the user as a contractor"`
	IsActive          *bool    `json:"is_active,omitempty"           jsonschema:"whether the user is active (default true)"`
	WeeklyCapacity    *int     `json:"weekly_capacity,omitempty"     jsonschema:"working capacity in seconds per week"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty" jsonschema:"default billable rate"`
	CostRate          *float64 `json:"cost_rate,omitempty"           jsonschema:"internal cost rate"`
	Roles             []string `json:"roles,omitempty"               jsonschema:"descriptive role names"`
	AccessRoles       []string `json:"access_roles,omitempty"        jsonschema:"permission roles such as administrator or manager"`
}

// CreateUserOutput is the output for the create_user tool.
type CreateUserOutput struct {
	User *harvest.User `json:"user" jsonschema:"the created user"`
}

func handleCreateUser(client *harvest.Client) mcp.ToolHandlerFor[CreateUserInput, CreateUserOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateUserInput) (*mcp.CallToolResult, CreateUserOutput, error) {
		if err := requireString("first_name", input.FirstName); err != nil {
			return nil, CreateUserOutput{}, err
		}
		if err := requireString("last_name", input.LastName); err != nil {
			return nil, CreateUserOutput{}, err
		}
		if err := requireString("email", input.Email); err != nil {
			return nil, CreateUserOutput{}, err
		}

		user, err := client.CreateUser(ctx, harvest.UserCreateParams{
			FirstName:         input.FirstName,
			LastName:          input.LastName,
			Email:             input.Email,
			Telephone:         input.Telephone,
			Timezone:          input.Timezone,
			IsContractor:      input.IsContractor,
			IsActive:          input.IsActive,
			WeeklyCapacity:    input.WeeklyCapacity,
			DefaultHourlyRate: input.DefaultHourlyRate,
			CostRate:          input.CostRate,
			Roles:             input.Roles,
			AccessRoles:       input.AccessRoles,
		})
		if err != nil {
			return nil, CreateUserOutput{}, fmt.Errorf("creating user: %w", err)
		}
		return nil, CreateUserOutput{User: user}, nil
	}
}

// --- update_user ---

// UpdateUserInput is the input for the update_user tool. Omitted
// fields are left unchanged.
type UpdateUserInput struct {
	UserID            int64    `json:"user_id"                       jsonschema:"ID of the user to update"`
	FirstName         *string  `json:"first_name,omitempty"          jsonschema:"new first name"`
	LastName          *string  `json:"last_name,omitempty"           jsonschema:"new last name"`
	Email             *string  `json:"email,omitempty"               jsonschema:"new email address"`
	Telephone         *string  `json:"telephone,omitempty"           jsonschema:"new telephone number"`
	Timezone          *string  `json:"timezone,omitempty"            jsonschema:"new time zone"`
	IsContractor      *bool    `json:"is_contractor,omitempty"       jsonschema:"change the contractor flag"`
	IsActive          *bool    `json:"is_active,omitempty"           jsonschema:"activate or archive the user"`
	WeeklyCapacity    *int     `json:"weekly_capacity,omitempty"     jsonschema:"new weekly capacity in seconds"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty" jsonschema:"new default billable rate"`
	CostRate          *float64 `json:"cost_rate,omitempty"           jsonschema:"new internal cost rate"`
	Roles             []string `json:"roles,omitempty"               jsonschema:"replacement role names"`
	AccessRoles       []string `json:"access_roles,omitempty"        jsonschema:"replacement permission roles"`
}

// UpdateUserOutput is the output for the update_user tool.
type UpdateUserOutput struct {
	User *harvest.User `json:"user" jsonschema:"the updated user"`
}

func handleUpdateUser(client *harvest.Client) mcp.ToolHandlerFor[UpdateUserInput, UpdateUserOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateUserInput) (*mcp.CallToolResult, UpdateUserOutput, error) {
		if err := requireID("user_id", input.UserID); err != nil {
			return nil, UpdateUserOutput{}, err
		}

		user, err := client.UpdateUser(ctx, input.UserID, harvest.UserUpdateParams{
			FirstName:         input.FirstName,
			LastName:          input.LastName,
			Email:             input.Email,
			Telephone:         input.Telephone,
			Timezone:          input.Timezone,
			IsContractor:      input.IsContractor,
			IsActive:          input.IsActive,
			WeeklyCapacity:    input.WeeklyCapacity,
			DefaultHourlyRate: input.DefaultHourlyRate,
			CostRate:          input.CostRate,
			Roles:             input.Roles,
			AccessRoles:       input.AccessRoles,
		})
		if err != nil {
			return nil, UpdateUserOutput{}, fmt.Errorf("updating user %d: %w", input.UserID, err)
		}
		return nil, UpdateUserOutput{User: user}, nil
	}
}

// --- delete_user ---

// DeleteUserInput is the input for the delete_user tool.
type DeleteUserInput struct {
	UserID int64 `json:"user_id" jsonschema:"ID of the user to delete"`
}

func handleDeleteUser(client *harvest.Client) mcp.ToolHandlerFor[DeleteUserInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteUserInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("user_id", input.UserID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteUser(ctx, input.UserID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting user %d: %w", input.UserID, err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.UserID}, nil
	}
}

func registerUserTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_users",
		Description: "List the users on the account. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListUsers(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_user",
		Description: "Retrieve a single user by ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetUser(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_current_user",
		Description: "Retrieve the user the configured access token belongs to. Useful for finding your own user ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetCurrentUser(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_user",
		Description: "Invite a new user to the account.",
		Annotations: writeAnnotations(),
	}, handleCreateUser(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_user",
		Description: "Update an existing user. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateUser(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_user",
		Description: "Delete a user. Fails when the user has time entries or expenses; archive the user instead.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteUser(client))
}
