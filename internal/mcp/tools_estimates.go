package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// validEstimateState lists the estimate lifecycle states accepted by
// the list filter.
var validEstimateState = map[string]bool{
	"draft":    true,
	"sent":     true,
	"accepted": true,
	"declined": true,
}

// --- list_estimates ---

// ListEstimatesInput is the input for the list_estimates tool.
type ListEstimatesInput struct {
	PageInput
	ClientID     int64  `json:"client_id,omitempty"     jsonschema:"only estimates for this client"`
	State        string `json:"state,omitempty"         jsonschema:"only estimates in this state: draft, sent, accepted or declined"`
	From         string `json:"from,omitempty"          jsonschema:"only estimates issued on or after this date (YYYY-MM-DD)"`
	To           string `json:"to,omitempty"            jsonschema:"only estimates issued on or before this date (YYYY-MM-DD)"`
	UpdatedSince string `json:"updated_since,omitempty" jsonschema:"only estimates updated since this date or ISO 8601 timestamp"`
}

// ListEstimatesOutput is the output for the list_estimates tool.
type ListEstimatesOutput struct {
	harvest.EstimateList
}

func handleListEstimates(client *harvest.Client) mcp.ToolHandlerFor[ListEstimatesInput, ListEstimatesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListEstimatesInput) (*mcp.CallToolResult, ListEstimatesOutput, error) {
		if err := input.PageInput.validate(); err != nil {
			return nil, ListEstimatesOutput{}, err
		}
		if input.State != "" && !validEstimateState[input.State] {
			return nil, ListEstimatesOutput{}, fmt.Errorf("state must be one of draft, sent, accepted or declined, got %q", input.State)
		}
		if err := checkDate("from", input.From); err != nil {
			return nil, ListEstimatesOutput{}, err
		}
		if err := checkDate("to", input.To); err != nil {
			return nil, ListEstimatesOutput{}, err
		}
		if err := checkUpdatedSince(input.UpdatedSince); err != nil {
			return nil, ListEstimatesOutput{}, err
		}

		list, err := client.ListEstimates(ctx, harvest.EstimateListParams{
			ListParams:   input.listParams(),
			ClientID:     input.ClientID,
			State:        input.State,
			From:         input.From,
			To:           input.To,
			UpdatedSince: input.UpdatedSince,
		})
		if err != nil {
			return nil, ListEstimatesOutput{}, fmt.Errorf("listing estimates: %w", err)
		}
		return nil, ListEstimatesOutput{EstimateList: *list}, nil
	}
}

// --- get_estimate ---

// GetEstimateInput is the input for the get_estimate tool.
type GetEstimateInput struct {
	EstimateID int64 `json:"estimate_id" jsonschema:"ID of the estimate to retrieve"`
}

// GetEstimateOutput is the output for the get_estimate tool.
type GetEstimateOutput struct {
	Estimate *harvest.Estimate `json:"estimate" jsonschema:"the requested estimate"`
}

func handleGetEstimate(client *harvest.Client) mcp.ToolHandlerFor[GetEstimateInput, GetEstimateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetEstimateInput) (*mcp.CallToolResult, GetEstimateOutput, error) {
		if err := requireID("estimate_id", input.EstimateID); err != nil {
			return nil, GetEstimateOutput{}, err
		}
		estimate, err := client.GetEstimate(ctx, input.EstimateID)
		if err != nil {
			return nil, GetEstimateOutput{}, fmt.Errorf("getting estimate %d: %w", input.EstimateID, err)
		}
		return nil, GetEstimateOutput{Estimate: estimate}, nil
	}
}

// --- create_estimate ---

// EstimateLineItemInput is one line on a new estimate.
type EstimateLineItemInput struct {
	Kind        string  `json:"kind"                  jsonschema:"line item type such as Service or Product (required)"`
	Description string  `json:"description,omitempty" jsonschema:"line item description"`
	Quantity    float64 `json:"quantity"              jsonschema:"unit quantity (required)"`
	UnitPrice   float64 `json:"unit_price"            jsonschema:"price per unit (required)"`
	Taxed       *bool   `json:"taxed,omitempty"       jsonschema:"whether estimate tax applies to this line"`
}

// CreateEstimateInput is the input for the create_estimate tool.
type CreateEstimateInput struct {
	ClientID      int64                   `json:"client_id"                jsonschema:"ID of the client the estimate is for (required)"`
	Subject       string                  `json:"subject,omitempty"        jsonschema:"estimate subject line"`
	Notes         string                  `json:"notes,omitempty"          jsonschema:"notes shown on the estimate"`
	Number        string                  `json:"number,omitempty"         jsonschema:"estimate number, auto-assigned when omitted"`
	PurchaseOrder string                  `json:"purchase_order,omitempty" jsonschema:"client purchase order number"`
	Currency      string                  `json:"currency,omitempty"       jsonschema:"ISO 4217 currency code, defaults to the client currency"`
	IssueDate     string                  `json:"issue_date,omitempty"     jsonschema:"issue date in YYYY-MM-DD format, defaults to today"`
	Tax           *float64                `json:"tax,omitempty"            jsonschema:"tax percentage applied to taxed lines"`
	Discount      *float64                `json:"discount,omitempty"       jsonschema:"discount percentage applied to the subtotal"`
	LineItems     []EstimateLineItemInput `json:"line_items,omitempty"     jsonschema:"line items on the estimate"`
}

// CreateEstimateOutput is the output for the create_estimate tool.
type CreateEstimateOutput struct {
	Estimate *harvest.Estimate `json:"estimate" jsonschema:"the created estimate"`
}

func validateCreateEstimate(input CreateEstimateInput) error {
	if err := requireID("client_id", input.ClientID); err != nil {
		return err
	}
	if err := checkDate("issue_date", input.IssueDate); err != nil {
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

func handleCreateEstimate(client *harvest.Client) mcp.ToolHandlerFor[CreateEstimateInput, CreateEstimateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateEstimateInput) (*mcp.CallToolResult, CreateEstimateOutput, error) {
		if err := validateCreateEstimate(input); err != nil {
			return nil, CreateEstimateOutput{}, err
		}

		items := make([]harvest.EstimateLineItemParams, 0, len(input.LineItems))
		for _, item := range input.LineItems {
			items = append(items, harvest.EstimateLineItemParams{
				Kind:        item.Kind,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Taxed:       item.Taxed,
			})
		}

		estimate, err := client.CreateEstimate(ctx, harvest.EstimateCreateParams{
			ClientID:      input.ClientID,
			Subject:       input.Subject,
			Notes:         input.Notes,
			Number:        input.Number,
			PurchaseOrder: input.PurchaseOrder,
			Currency:      input.Currency,
			IssueDate:     input.IssueDate,
			Tax:           input.Tax,
			Discount:      input.Discount,
			LineItems:     items,
		})
		if err != nil {
			return nil, CreateEstimateOutput{}, fmt.Errorf("creating estimate: %w", err)
		}
		return nil, CreateEstimateOutput{Estimate: estimate}, nil
	}
}

// --- update_estimate ---

// UpdateEstimateInput is the input for the update_estimate tool.
// Omitted fields are left unchanged.
type UpdateEstimateInput struct {
	EstimateID    int64    `json:"estimate_id"              jsonschema:"ID of the estimate to update"`
	ClientID      *int64   `json:"client_id,omitempty"      jsonschema:"move the estimate to another client"`
	Subject       *string  `json:"subject,omitempty"        jsonschema:"new subject line"`
	Notes         *string  `json:"notes,omitempty"          jsonschema:"replacement notes"`
	Number        *string  `json:"number,omitempty"         jsonschema:"new estimate number"`
	PurchaseOrder *string  `json:"purchase_order,omitempty" jsonschema:"new purchase order number"`
	Currency      *string  `json:"currency,omitempty"       jsonschema:"new ISO 4217 currency code"`
	IssueDate     *string  `json:"issue_date,omitempty"     jsonschema:"new issue date in YYYY-MM-DD format"`
	Tax           *float64 `json:"tax,omitempty"            jsonschema:"new tax percentage"`
	Discount      *float64 `json:"discount,omitempty"       jsonschema:"new discount percentage"`
}

// UpdateEstimateOutput is the output for the update_estimate tool.
type UpdateEstimateOutput struct {
	Estimate *harvest.Estimate `json:"estimate" jsonschema:"the updated estimate"`
}

func handleUpdateEstimate(client *harvest.Client) mcp.ToolHandlerFor[UpdateEstimateInput, UpdateEstimateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateEstimateInput) (*mcp.CallToolResult, UpdateEstimateOutput, error) {
		if err := requireID("estimate_id", input.EstimateID); err != nil {
			return nil, UpdateEstimateOutput{}, err
		}
		if input.IssueDate != nil {
			if err := requireDate("issue_date", *input.IssueDate); err != nil {
				return nil, UpdateEstimateOutput{}, err
			}
		}

		estimate, err := client.UpdateEstimate(ctx, input.EstimateID, harvest.EstimateUpdateParams{
			ClientID:      input.ClientID,
			Subject:       input.Subject,
			Notes:         input.Notes,
			Number:        input.Number,
			PurchaseOrder: input.PurchaseOrder,
			Currency:      input.Currency,
			IssueDate:     input.IssueDate,
			Tax:           input.Tax,
			Discount:      input.Discount,
		})
		if err != nil {
			return nil, UpdateEstimateOutput{}, fmt.Errorf("updating estimate %d: %w", input.EstimateID, err)
		}
		return nil, UpdateEstimateOutput{Estimate: estimate}, nil
	}
}

// --- delete_estimate ---

// DeleteEstimateInput is the input for the delete_estimate tool.
type DeleteEstimateInput struct {
	EstimateID int64 `json:"estimate_id" jsonschema:"ID of the estimate to delete"`
}

func handleDeleteEstimate(client *harvest.Client) mcp.ToolHandlerFor[DeleteEstimateInput, DeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteEstimateInput) (*mcp.CallToolResult, DeleteOutput, error) {
		if err := requireID("estimate_id", input.EstimateID); err != nil {
			return nil, DeleteOutput{}, err
		}
		if err := client.DeleteEstimate(ctx, input.EstimateID); err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("deleting estimate %d: %w", input.EstimateID, err)
		}
		return nil, DeleteOutput{Deleted: true, ID: input.EstimateID}, nil
	}
}

func registerEstimateTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_estimates",
		Description: "List estimates, newest first. Filter by client, state or issue date range. Paginated.",
		Annotations: readOnlyAnnotations(),
	}, handleListEstimates(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_estimate",
		Description: "Retrieve a single estimate by ID, including its line items.",
		Annotations: readOnlyAnnotations(),
	}, handleGetEstimate(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_estimate",
		Description: "Create an estimate for a client, optionally with line items.",
		Annotations: writeAnnotations(),
	}, handleCreateEstimate(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_estimate",
		Description: "Update an existing estimate. Only the provided fields are changed.",
		Annotations: writeAnnotations(),
	}, handleUpdateEstimate(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_estimate",
		Description: "Delete an estimate.",
		Annotations: destructiveAnnotations(),
	}, handleDeleteEstimate(client))
}
