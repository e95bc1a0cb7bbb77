package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// --- list_clients ---

// ListClientsInput is the input for the list_clients tool.
type ListClientsInput struct {
	PageInput
	IsActive     *bool  `json:"is_active,omitempty"     jsonschema:"pass true for active clients only, false for archived only"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only clients updated since this date or ISO 8601 timestamp"`
}

// ListClientsOutput is the output for the list_clients tool.
type ListClientsOutput struct {
	harvest.ClientList
}

func handleListClients(client *harvest.Client) mcp.ToolHandlerFor[ListClientsInput, ListClientsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListClientsInput) (*mcp.CallToolResult, ListClientsOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListClientsOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListClientsOutput{}, err
		}

		list, err := client.ListClients(ctx, harvest.ClientListParams{
			ListParams:   input.listParams(),
			IsActive:     input.IsActive,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListClientsOutput{}, fmt.Errorf("listing clients: %w", err)
		}
		return nil, ListClientsOutput{ClientList: *list}, nil
	}
}

// --- get_client ---

// GetClientInput is the input for the get_client tool.
type GetClientInput struct {
	ClientID int64 `json:"client_id" jsonschema:"ID of the client to retrieve"`
}

// GetClientOutput is the output for the get_client tool.
type GetClientOutput struct {
	Client *harvest.ClientAccount `json:"client" jsonschema:"the client record"`
}

func handleGetClient(client *harvest.Client) mcp.ToolHandlerFor[GetClientInput, GetClientOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetClientInput) (*mcp.CallToolResult, GetClientOutput, error) {
		if err := requireID("client_id", input.ClientID); err != nil {
			return nil, GetClientOutput{}, err
		}

		record, err := client.GetClient(ctx, input.ClientID)
		if err != nil {
			return nil, GetClientOutput{}, fmt.Errorf("getting client: %w", err)
		}
		return nil, GetClientOutput{Client: record}, nil
	}
}

// --- create_client ---

// CreateClientInput is the input for the create_client tool.
type CreateClientInput struct {
	Name     string `json:"name"               jsonschema:"client name (required)"`
	IsActive *bool  `json:"is_active,omitempty" jsonschema:"whether the client is active (default true)"`
	Address  string `json:"address,omitempty"   jsonschema:"physical address of the client"`
	Currency string `json:"currency,omitempty"  jsonschema:"ISO 4217 currency code, e.g. USD or EUR"`
}

// CreateClientOutput is the output for the create_client tool.
type CreateClientOutput struct {
	Client *harvest.ClientAccount `json:"client" jsonschema:"the created client"`
}

func handleCreateClient(client *harvest.Client) mcp.ToolHandlerFor[CreateClientInput, CreateClientOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateClientInput) (*mcp.CallToolResult, CreateClientOutput, error) {
		if err := requireString("name", input.Name); err != nil {
			return nil, CreateClientOutput{}, err
		}

		record, err := client.CreateClient(ctx, harvest.ClientCreateParams{
			Name:     input.Name,
			IsActive: input.IsActive,
			Address:  input.Address,
			Currency: input.Currency,
		})
		if err != nil {
			return nil, CreateClientOutput{}, fmt.Errorf("creating client: %w", err)
		}
		return nil, CreateClientOutput{Client: record}, nil
	}
}

// --- update_client ---

// UpdateClientInput is the input for the update_client tool. Omitted
// fields are left unchanged.
type UpdateClientInput struct {
	ClientID int64   `json:"client_id"           jsonschema:"ID of the client to update"`
	Name     *string `json:"name,omitempty"      jsonschema:"new client name"`
	IsActive *bool   `json:"is_active,omitempty" jsonschema:"activate or archive the client"`
	Address  *string `json:"address,omitempty"   jsonschema:"new address"`
	Currency *string `json:"currency,omitempty"  jsonschema:"new ISO 4217 currency code"`
}

// UpdateClientOutput is the output for the update_client tool.
type UpdateClientOutput struct {
	Client *harvest.ClientAccount `json:"client" jsonschema:"the updated client"`
}

func handleUpdateClient(client *harvest.Client) mcp.ToolHandlerFor[UpdateClientInput, UpdateClientOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateClientInput) (*mcp.CallToolResult, UpdateClientOutput, error) {
		if err := requireID("client_id", input.ClientID); err != nil {
			return nil, UpdateClientOutput{}, err
		}

		record, err := client.UpdateClient(ctx, input.ClientID, harvest.ClientUpdateParams{
			Name:     input.Name,
			IsActive: input.IsActive,
			Address:  input.Address,
			Currency: input.Currency,
		})
		if err != nil {
			return nil, UpdateClientOutput{}, fmt.Errorf("updating client: %w", err)
		}
		return nil, UpdateClientOutput{Client: record}, nil
	}
}

// --- delete_client ---

// DeleteClientInput is the input for the delete_client tool.
type DeleteClientInput struct {
	ClientID int64 `json:"client_id" jsonschema:"ID of the client to delete"`
}

func handleDeleteClient(client *harvest.Client) mcp.ToolHandlerFor[DeleteClientInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteClientInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("client_id", input.ClientID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteClient(ctx, input.ClientID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting client: %w", err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.ClientID}, nil
	}
}

func registerClientTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_clients",
		Description: "List clients on the Harvest account, with optional active-state and updated-since filters. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListClients(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_client",
		Description: "Get a single client by ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetClient(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_client",
		Description: "Create a new client.",
		Annotations: writeAnnotations(),
	}, handleCreateClient(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_client",
		Description: "Update a client. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateClient(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client. Fails if the client has projects or invoices.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteClient(client))
}
