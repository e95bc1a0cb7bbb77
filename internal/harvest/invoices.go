package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Invoice is a client invoice.
type Invoice struct {
	ID            int64             `json:"id"`
	Client        Ref               `json:"client"`
	Number        string            `json:"number"`
	PurchaseOrder string            `json:"purchase_order,omitempty"`
	Amount        float64           `json:"amount"`
	DueAmount     float64           `json:"due_amount"`
	Tax           *float64          `json:"tax,omitempty"`
	TaxAmount     float64           `json:"tax_amount"`
	Discount      *float64          `json:"discount,omitempty"`
	Subject       string            `json:"subject,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Currency      string            `json:"currency"`
	State         string            `json:"state"`
	PeriodStart   string            `json:"period_start,omitempty"`
	PeriodEnd     string            `json:"period_end,omitempty"`
	IssueDate     string            `json:"issue_date,omitempty"`
	DueDate       string            `json:"due_date,omitempty"`
	PaymentTerm   string            `json:"payment_term,omitempty"`
	SentAt        *time.Time        `json:"sent_at,omitempty"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
	ClosedAt      *time.Time        `json:"closed_at,omitempty"`
	LineItems     []InvoiceLineItem `json:"line_items,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// InvoiceLineItem is one line on an invoice.
type InvoiceLineItem struct {
	ID          int64   `json:"id,omitempty"`
	Project     *Ref    `json:"project,omitempty"`
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount,omitempty"`
	Taxed       bool    `json:"taxed"`
}

// InvoiceList is a page of invoices.
type InvoiceList struct {
	Invoices []Invoice `json:"invoices"`
	Pagination
}

// InvoiceListParams filters ListInvoices.
type InvoiceListParams struct {
	ListParams
	ClientID     int64
	ProjectID    int64
	State        string
	From         string
	To           string
	UpdatedSince string
}

// InvoiceLineItemParams is one line on a new invoice. Kind, Quantity
// and UnitPrice are required.
type InvoiceLineItemParams struct {
	ProjectID   *int64  `json:"project_id,omitempty"`
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Taxed       *bool   `json:"taxed,omitempty"`
}

// InvoiceCreateParams creates a free-form invoice. ClientID is
// required.
type InvoiceCreateParams struct {
	ClientID      int64                   `json:"client_id"`
	Subject       string                  `json:"subject,omitempty"`
	Notes         string                  `json:"notes,omitempty"`
	Number        string                  `json:"number,omitempty"`
	PurchaseOrder string                  `json:"purchase_order,omitempty"`
	Currency      string                  `json:"currency,omitempty"`
	IssueDate     string                  `json:"issue_date,omitempty"`
	DueDate       string                  `json:"due_date,omitempty"`
	PaymentTerm   string                  `json:"payment_term,omitempty"`
	Tax           *float64                `json:"tax,omitempty"`
	Discount      *float64                `json:"discount,omitempty"`
	LineItems     []InvoiceLineItemParams `json:"line_items,omitempty"`
}

// InvoiceUpdateParams updates an invoice. Nil fields are left
// unchanged.
type InvoiceUpdateParams struct {
	ClientID      *int64   `json:"client_id,omitempty"`
	Subject       *string  `json:"subject,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Number        *string  `json:"number,omitempty"`
	PurchaseOrder *string  `json:"purchase_order,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	IssueDate     *string  `json:"issue_date,omitempty"`
	DueDate       *string  `json:"due_date,omitempty"`
	PaymentTerm   *string  `json:"payment_term,omitempty"`
	Tax           *float64 `json:"tax,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
}

// ListInvoices returns a page of invoices, newest first.
func (c *Client) ListInvoices(ctx context.Context, params InvoiceListParams) (*InvoiceList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addInt(query, "client_id", params.ClientID)
	addInt(query, "project_id", params.ProjectID)
	addString(query, "state", params.State)
	addString(query, "from", params.From)
	addString(query, "to", params.To)
	addString(query, "updated_since", params.UpdatedSince)

	var list InvoiceList
	if err := c.get(ctx, "/invoices", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetInvoice retrieves a single invoice by ID.
func (c *Client) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	var invoice Invoice
	if err := c.get(ctx, fmt.Sprintf("/invoices/%d", id), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreateInvoice creates a new free-form invoice.
func (c *Client) CreateInvoice(ctx context.Context, params InvoiceCreateParams) (*Invoice, error) {
	var invoice Invoice
	if err := c.post(ctx, "/invoices", params, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoice updates an existing invoice.
func (c *Client) UpdateInvoice(ctx context.Context, id int64, params InvoiceUpdateParams) (*Invoice, error) {
	var invoice Invoice
	if err := c.patch(ctx, fmt.Sprintf("/invoices/%d", id), params, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// DeleteInvoice deletes an invoice.
func (c *Client) DeleteInvoice(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/invoices/%d", id))
}
