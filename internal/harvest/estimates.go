package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Estimate is a client estimate.
type Estimate struct {
	ID            int64              `json:"id"`
	Client        Ref                `json:"client"`
	Number        string             `json:"number"`
	PurchaseOrder string             `json:"purchase_order,omitempty"`
	Amount        float64            `json:"amount"`
	Tax           *float64           `json:"tax,omitempty"`
	TaxAmount     float64            `json:"tax_amount"`
	Discount      *float64           `json:"discount,omitempty"`
	Subject       string             `json:"subject,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Currency      string             `json:"currency"`
	State         string             `json:"state"`
	IssueDate     string             `json:"issue_date,omitempty"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	AcceptedAt    *time.Time         `json:"accepted_at,omitempty"`
	DeclinedAt    *time.Time         `json:"declined_at,omitempty"`
	LineItems     []EstimateLineItem `json:"line_items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// EstimateLineItem is one line on an estimate.
type EstimateLineItem struct {
	ID          int64   `json:"id,omitempty"`
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount,omitempty"`
	Taxed       bool    `json:"taxed"`
}

// EstimateList is a page of estimates.
type EstimateList struct {
	Estimates []Estimate `json:"estimates"`
	Pagination
}

// EstimateListParams filters ListEstimates.
type EstimateListParams struct {
	ListParams
	ClientID     int64
	State        string
	From         string
	To           string
	UpdatedSince string
}

// EstimateLineItemParams is one line on a new estimate.
type EstimateLineItemParams struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Taxed       *bool   `json:"taxed,omitempty"`
}

// EstimateCreateParams creates an estimate. ClientID is required.
type EstimateCreateParams struct {
	ClientID      int64                    `json:"client_id"`
	Subject       string                   `json:"subject,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	Number        string                   `json:"number,omitempty"`
	PurchaseOrder string                   `json:"purchase_order,omitempty"`
	Currency      string                   `json:"currency,omitempty"`
	IssueDate     string                   `json:"issue_date,omitempty"`
	Tax           *float64                 `json:"tax,omitempty"`
	Discount      *float64                 `json:"discount,omitempty"`
	LineItems     []EstimateLineItemParams `json:"line_items,omitempty"`
}

// EstimateUpdateParams updates an estimate. Nil fields are left
// unchanged.
type EstimateUpdateParams struct {
	ClientID      *int64   `json:"client_id,omitempty"`
	Subject       *string  `json:"subject,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	Number        *string  `json:"number,omitempty"`
	PurchaseOrder *string  `json:"purchase_order,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	IssueDate     *string  `json:"issue_date,omitempty"`
	Tax           *float64 `json:"tax,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
}

// ListEstimates returns a page of estimates, newest first.
func (c *Client) ListEstimates(ctx context.Context, params EstimateListParams) (*EstimateList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addInt(query, "client_id", params.ClientID)
	addString(query, "state", params.State)
	addString(query, "from", params.From)
	addString(query, "to", params.To)
	addString(query, "updated_since", params.UpdatedSince)

	var list EstimateList
	if err := c.get(ctx, "/estimates", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetEstimate retrieves a single estimate by ID.
func (c *Client) GetEstimate(ctx context.Context, id int64) (*Estimate, error) {
	var estimate Estimate
	if err := c.get(ctx, fmt.Sprintf("/estimates/%d", id), nil, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// CreateEstimate creates a new estimate.
func (c *Client) CreateEstimate(ctx context.Context, params EstimateCreateParams) (*Estimate, error) {
	var estimate Estimate
	if err := c.post(ctx, "/estimates", params, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// UpdateEstimate updates an existing estimate.
func (c *Client) UpdateEstimate(ctx context.Context, id int64, params EstimateUpdateParams) (*Estimate, error) {
	var estimate Estimate
	if err := c.patch(ctx, fmt.Sprintf("/estimates/%d", id), params, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// DeleteEstimate deletes an estimate.
func (c *Client) DeleteEstimate(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/estimates/%d", id))
}
