package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// --- list_contacts ---

// ListContactsInput is the input for the list_contacts tool.
type ListContactsInput struct {
	PageInput
	ClientID     int64  `json:"client_id,omitempty"     jsonschema:"only contacts belonging to this client"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only contacts updated since this date or ISO 8601 timestamp"`
}

// ListContactsOutput is the output for the list_contacts tool.
type ListContactsOutput struct {
	harvest.ContactList
}

func handleListContacts(client *harvest.Client) mcp.ToolHandlerFor[ListContactsInput, ListContactsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, ListContactsOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListContactsOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListContactsOutput{}, err
		}

		list, err := client.ListContacts(ctx, harvest.ContactListParams{
			ListParams:   input.listParams(),
			ClientID:     input.ClientID,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListContactsOutput{}, fmt.Errorf("listing contacts: %w", err)
		}
		return nil, ListContactsOutput{ContactList: *list}, nil
	}
}

// --- get_contact ---

// GetContactInput is the input for the get_contact tool.
type GetContactInput struct {
	ContactID int64 `json:"contact_id" jsonschema:"ID of the contact to retrieve"`
}

// GetContactOutput is the output for the get_contact tool.
type GetContactOutput struct {
	Contact *harvest.Contact `json:"contact" jsonschema:"the contact record"`
}

func handleGetContact(client *harvest.Client) mcp.ToolHandlerFor[GetContactInput, GetContactOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, GetContactOutput, error) {
		if err := requireID("contact_id", input.ContactID); err != nil {
			return nil, GetContactOutput{}, err
		}

		contact, err := client.GetContact(ctx, input.ContactID)
		if err != nil {
			return nil, GetContactOutput{}, fmt.Errorf("getting contact: %w", err)
		}
		return nil, GetContactOutput{Contact: contact}, nil
	}
}

// --- create_contact ---

// CreateContactInput is the input for the create_contact tool.
type CreateContactInput struct {
	ClientID    int64  `json:"client_id"              jsonschema:"ID of the client this contact belongs to (required)"`
	FirstName   string `json:"first_name"             jsonschema:"first name (required)"`
	LastName    string `json:"last_name,omitempty"    jsonschema:"last name"`
	Title       string `json:"title,omitempty"        jsonschema:"title, e.g. Owner or CFO"`
	Email       string `json:"email,omitempty"        jsonschema:"email address"`
	PhoneOffice string `json:"phone_office,omitempty" jsonschema:"office phone number"`
	PhoneMobile string `json:"phone_mobile,omitempty" jsonschema:"mobile phone number"`
	Fax         string `json:"fax,omitempty"          jsonschema:"fax number"`
}

// CreateContactOutput is the output for the create_contact tool.
type CreateContactOutput struct {
	Contact *harvest.Contact `json:"contact" jsonschema:"the created contact"`
}

func handleCreateContact(client *harvest.Client) mcp.ToolHandlerFor[CreateContactInput, CreateContactOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateContactInput) (*mcp.CallToolResult, CreateContactOutput, error) {
		if err := requireID("client_id", input.ClientID); err != nil {
			return nil, CreateContactOutput{}, err
		}
		if err := requireString("first_name", input.FirstName); err != nil {
			return nil, CreateContactOutput{}, err
		}

		contact, err := client.CreateContact(ctx, harvest.ContactCreateParams{
			ClientID:    input.ClientID,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Title:       input.Title,
			Email:       input.Email,
			PhoneOffice: input.PhoneOffice,
			PhoneMobile: input.PhoneMobile,
			Fax:         input.Fax,
		})
		if err != nil {
			return nil, CreateContactOutput{}, fmt.Errorf("creating contact: %w", err)
		}
		return nil, CreateContactOutput{Contact: contact}, nil
	}
}

// --- update_contact ---

// UpdateContactInput is the input for the update_contact tool.
// Omitted fields are left unchanged.
type UpdateContactInput struct {
	ContactID   int64   `json:"contact_id"             jsonschema:"ID of the contact to update"`
	ClientID    *int64  `json:"client_id,omitempty"    jsonschema:"move the contact to another client"`
	FirstName   *string `json:"first_name,omitempty"   jsonschema:"new first name"`
	LastName    *string `json:"last_name,omitempty"    jsonschema:"new last name"`
	Title       *string `json:"title,omitempty"        jsonschema:"new title"`
	Email       *string `json:"email,omitempty"        jsonschema:"new email address"`
	PhoneOffice *string `json:"phone_office,omitempty" jsonschema:"new office phone number"`
	PhoneMobile *string `json:"phone_mobile,omitempty" jsonschema:"new mobile phone number"`
	Fax         *string `json:"fax,omitempty"          jsonschema:"new fax number"`
}

// UpdateContactOutput is the output for the update_contact tool.
type UpdateContactOutput struct {
	Contact *harvest.Contact `json:"contact" jsonschema:"the updated contact"`
}

func handleUpdateContact(client *harvest.Client) mcp.ToolHandlerFor[UpdateContactInput, UpdateContactOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, UpdateContactOutput, error) {
		if err := requireID("contact_id", input.ContactID); err != nil {
			return nil, UpdateContactOutput{}, err
		}

		contact, err := client.UpdateContact(ctx, input.ContactID, harvest.ContactUpdateParams{
			ClientID:    input.ClientID,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Title:       input.Title,
			Email:       input.Email,
			PhoneOffice: input.PhoneOffice,
			PhoneMobile: input.PhoneMobile,
			Fax:         input.Fax,
		})
		if err != nil {
			return nil, UpdateContactOutput{}, fmt.Errorf("updating contact: %w", err)
		}
		return nil, UpdateContactOutput{Contact: contact}, nil
	}
}

// --- delete_contact ---

// DeleteContactInput is the input for the delete_contact tool.
type DeleteContactInput struct {
	ContactID int64 `json:"contact_id" jsonschema:"ID of the contact to delete"`
}

func handleDeleteContact(client *harvest.Client) mcp.ToolHandlerFor[DeleteContactInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("contact_id", input.ContactID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteContact(ctx, input.ContactID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting contact: %w", err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.ContactID}, nil
	}
}

func registerContactTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List client contacts, optionally scoped to one client. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListContacts(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a single contact by ID.",
		Annotations: readOnlyAnnotations(),
	}, handleGetContact(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_contact",
		Description: "Create a contact under a client.",
		Annotations: writeAnnotations(),
	}, handleCreateContact(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update a contact. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateContact(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteContact(client))
}
