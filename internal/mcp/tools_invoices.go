package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// validInvoiceState lists the invoice lifecycle states accepted by the
// list filter.
var validInvoiceState = map[string]bool{
	"draft":   true,
	"open":    true,
	"paid":    true,
	"closed":  true,
	"partial": true,
}

// --- list_invoices ---

// ListInvoicesInput is the input for the list_invoices tool.
type ListInvoicesInput struct {
	PageInput
	ClientID     int64  `json:"client_id,omitempty"     jsonschema:"only invoices for this client"`
	ProjectID    int64  `json:"project_id,omitempty"    jsonschema:"only invoices containing this project"`
	State        string `json:"state,omitempty"         jsonschema:"only invoices in this state: draft, open, paid, closed or partial"`
	From         string `json:"from,omitempty"          jsonschema:"only invoices issued on or after this date (YYYY-MM-DD)"`
	To           string `json:"to,omitempty"            jsonschema:"only invoices issued on or before this date (YYYY-MM-DD)"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only invoices updated since this date or ISO 8601 timestamp"`
}

// ListInvoicesOutput is the output for the list_invoices tool.
type ListInvoicesOutput struct {
	harvest.InvoiceList
}

func handleListInvoices(client *harvest.Client) mcp.ToolHandlerFor[ListInvoicesInput, ListInvoicesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListInvoicesInput) (*mcp.CallToolResult, ListInvoicesOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListInvoicesOutput{}, err
		}
		if input.State != "" && !validInvoiceState[input.State] {
			return nil, ListInvoicesOutput{}, fmt.Errorf("state must be one of draft, open, paid, closed or partial, got %q", input.State)
		}
		if err := checkDate("from", input.From); err != nil {
			return nil, ListInvoicesOutput{}, err
		}
		if err := checkDate("to", input.To); err != nil {
			return nil, ListInvoicesOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListInvoicesOutput{}, err
		}

		list, err := client.ListInvoices(ctx, harvest.InvoiceListParams{
			ListParams:   input.listParams(),
			ClientID:     input.ClientID,
			ProjectID:    input.ProjectID,
			State:        input.State,
			From:         input.From,
			To:           input.To,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListInvoicesOutput{}, fmt.Errorf("listing invoices: %w", err)
		}
		return nil, ListInvoicesOutput{InvoiceList: *list}, nil
	}
}

// --- get_invoice ---

// GetInvoiceInput is the input for the get_invoice tool.
type GetInvoiceInput struct {
	InvoiceID int64 `json:"invoice_id" jsonschema:"ID of the invoice to retrieve"`
}

// GetInvoiceOutput is the output for the get_invoice tool.
type GetInvoiceOutput struct {
	Invoice *harvest.Invoice `json:"invoice" jsonschema:"the requested invoice"`
}

func handleGetInvoice(client *harvest.Client) mcp.ToolHandlerFor[GetInvoiceInput, GetInvoiceOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetInvoiceInput) (*mcp.CallToolResult, GetInvoiceOutput, error) {
		if err := requireID("invoice_id", input.InvoiceID); err != nil {
			return nil, GetInvoiceOutput{}, err
		}
		invoice, err := client.GetInvoice(ctx, input.InvoiceID)
		if err != nil {
			return nil, GetInvoiceOutput{}, fmt.Errorf("getting invoice %d: %w", input.InvoiceID, err)
		}
		return nil, GetInvoiceOutput{Invoice: invoice}, nil
	}
}

// --- create_invoice ---

// InvoiceLineItemInput is one line on a new invoice.
type InvoiceLineItemInput struct {
	ProjectID   *int64  `json:"project_id,omitempty"  jsonschema:"ID of the project this line relates to"`
	Kind        string  `json:"kind"                  jsonschema:"line item type such as Service or Product (required)"`
	Description string  `json:"description,omitempty" jsonschema:"line item description"`
	Quantity    float64 `json:"quantity"              jsonschema:"unit quantity (required)"`
	UnitPrice   float64 `json:"unit_price"            jsonschema:"price per unit (required)"`
	Taxed       *bool   `json:"taxed,omitempty"       jsonschema:"whether invoice tax applies to this line"`
}

// CreateInvoiceInput is the input for the create_invoice tool.
type CreateInvoiceInput struct {
	ClientID      int64                  `json:"client_id"                jsonschema:"ID of the client to invoice (required)"`
	Subject       string                 `json:"subject,omitempty"        jsonschema:"invoice subject line"`
	Notes         string                 `json:"notes,omitempty"          jsonschema:"notes shown on the invoice"`
	Number        string                 `json:"number,omitempty"         jsonschema:"invoice number, auto-assigned when omitted"`
	PurchaseOrder string                 `json:"purchase_order,omitempty" jsonschema:"client purchase order number"`
	Currency      string                 `json:"currency,omitempty"       jsonschema:"ISO 4217 currency code, defaults to the client currency"`
	IssueDate     string                 `json:"issue_date,omitempty"     jsonschema:"issue date in YYYY-MM-DD format, defaults to today"`
	DueDate       string                 `json:"due_date,omitempty"       jsonschema:"due date in YYYY-MM-DD format"`
	PaymentTerm   string                 `json:"payment_term,omitempty"   jsonschema:"payment term such as net 30; ignored when due_date is set"`
	Tax           *float64               `json:"tax,omitempty"            jsonschema:"tax percentage applied to taxed lines"`
	Discount      *float64               `json:"discount,omitempty"       jsonschema:"discount percentage applied to the subtotal"`
	LineItems     []InvoiceLineItemInput `json:"line_items,omitempty"     jsonschema:"line items on the invoice"`
}

// CreateInvoiceOutput is the output for the create_invoice tool.
type CreateInvoiceOutput struct {
	Invoice *harvest.Invoice `json:"invoice" jsonschema:"the created invoice"`
}

func validateCreateInvoice(input CreateInvoiceInput) error {
	if err := requireID("client_id", input.ClientID); err != nil {
		return err
	}
	if err := checkDate("issue_date", input.IssueDate); err != nil {
		return err
	}
	if err := checkDate("due_date", input.DueDate); err != nil {
		return err
	}
	for i, item := range input.LineItems {
		if item.Kind == "" {
			return fmt.Errorf("line_items[%d]: kind is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("line_items[%d]: quantity must be positive", i)
		}
	}
	return nil
}

func handleCreateInvoice(client *harvest.Client) mcp.ToolHandlerFor[CreateInvoiceInput, CreateInvoiceOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateInvoiceInput) (*mcp.CallToolResult, CreateInvoiceOutput, error) {
		if err := validateCreateInvoice(input); err != nil {
			return nil, CreateInvoiceOutput{}, err
		}

		items := make([]harvest.InvoiceLineItemParams, 0, len(input.LineItems))
		for _, item := range input.LineItems {
			items = append(items, harvest.InvoiceLineItemParams{
				ProjectID:   item.ProjectID,
				Kind:        item.Kind,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Taxed:       item.Taxed,
			})
		}

		invoice, err := client.CreateInvoice(ctx, harvest.InvoiceCreateParams{
			ClientID:      input.ClientID,
			Subject:       input.Subject,
			Notes:         input.Notes,
			Number:        input.Number,
			PurchaseOrder: input.PurchaseOrder,
			Currency:      input.Currency,
			IssueDate:     input.IssueDate,
			DueDate:       input.DueDate,
			PaymentTerm:   input.PaymentTerm,
			Tax:           input.Tax,
			Discount:      input.Discount,
			LineItems:     items,
		})
		if err != nil {
			return nil, CreateInvoiceOutput{}, fmt.Errorf("creating invoice: %w", err)
		}
		return nil, CreateInvoiceOutput{Invoice: invoice}, nil
	}
}

// --- update_invoice ---

// UpdateInvoiceInput is the input for the update_invoice tool.
// Omitted fields are left unchanged.
type UpdateInvoiceInput struct {
	InvoiceID     int64    `json:"invoice_id"               jsonschema:"ID of the invoice to update"`
	ClientID      *int64   `json:"client_id,omitempty"      jsonschema:"move the invoice to another client"`
	Subject       *string  `json:"subject,omitempty"        jsonschema:"new subject line"`
	Notes         *string  `json:"notes,omitempty"          jsonschema:"replacement notes"`
	Number        *string  `json:"number,omitempty"         jsonschema:"new invoice number"`
	PurchaseOrder *string  `json:"purchase_order,omitempty" jsonschema:"new purchase order number"`
	Currency      *string  `json:"currency,omitempty"       jsonschema:"new ISO 4217 currency code"`
	IssueDate     *string  `json:"issue_date,omitempty"     jsonschema:"new issue date in YYYY-MM-DD format"`
	DueDate       *string  `json:"due_date,omitempty"       jsonschema:"new due date in YYYY-MM-DD format"`
	PaymentTerm   *string  `json:"payment_term,omitempty"   jsonschema:"new payment term"`
	Tax           *float64 `json:"tax,omitempty"            jsonschema:"new tax percentage"`
	Discount      *float64 `json:"discount,omitempty"       jsonschema:"new discount percentage"`
}

// UpdateInvoiceOutput is the output for the update_invoice tool.
type UpdateInvoiceOutput struct {
	Invoice *harvest.Invoice `json:"invoice" jsonschema:"the updated invoice"`
}

func handleUpdateInvoice(client *harvest.Client) mcp.ToolHandlerFor[UpdateInvoiceInput, UpdateInvoiceOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateInvoiceInput) (*mcp.CallToolResult, UpdateInvoiceOutput, error) {
		if err := requireID("invoice_id", input.InvoiceID); err != nil {
			return nil, UpdateInvoiceOutput{}, err
		}
		if input.IssueDate != nil {
			if err := requireDate("issue_date", *input.IssueDate); err != nil {
				return nil, UpdateInvoiceOutput{}, err
			}
		}
		if input.DueDate != nil {
			if err := requireDate("due_date", *input.DueDate); err != nil {
				return nil, UpdateInvoiceOutput{}, err
			}
		}

		invoice, err := client.UpdateInvoice(ctx, input.InvoiceID, harvest.InvoiceUpdateParams{
			ClientID:      input.ClientID,
			Subject:       input.Subject,
			Notes:         input.Notes,
			Number:        input.Number,
			PurchaseOrder: input.PurchaseOrder,
			Currency:      input.Currency,
			IssueDate:     input.IssueDate,
			DueDate:       input.DueDate,
			PaymentTerm:   input.PaymentTerm,
			Tax:           input.Tax,
			Discount:      input.Discount,
		})
		if err != nil {
			return nil, UpdateInvoiceOutput{}, fmt.Errorf("updating invoice %d: %w", input.InvoiceID, err)
		}
		return nil, UpdateInvoiceOutput{Invoice: invoice}, nil
	}
}

// --- delete_invoice ---

// DeleteInvoiceInput is the input for the delete_invoice tool.
type DeleteInvoiceInput struct {
	InvoiceID int64 `json:"invoice_id" jsonschema:"ID of the invoice to delete"`
}

func handleDeleteInvoice(client *harvest.Client) mcp.ToolHandlerFor[DeleteInvoiceInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInvoiceInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("invoice_id", input.InvoiceID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteInvoice(ctx, input.InvoiceID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting invoice %d: %w", input.InvoiceID, err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.InvoiceID}, nil
	}
}

func registerInvoiceTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_invoices",
		Description: "List invoices, newest first. Filter by client, project, state or issue date range. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListInvoices(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_invoice",
		Description: "Retrieve a single invoice by ID, including its line items.",
		Annotations: readOnlyAnnotations(),
	}, handleGetInvoice(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_invoice",
		Description: "Create a free-form invoice for a client, optionally with line items.",
		Annotations: writeAnnotations(),
	}, handleCreateInvoice(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_invoice",
		Description: "Update an existing invoice. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateInvoice(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_invoice",
		Description: "Delete an invoice.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteInvoice(client))
}
