package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Ref is a nested reference to another resource, as Harvest embeds
// them ({"id": 123, "name": "..."}).
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ClientAccount is a Harvest client: the billable entity projects are
// created under. Named ClientAccount because Client is the API client.
type ClientAccount struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	Address      string    `json:"address,omitempty"`
	StatementKey string    `json:"statement_key,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientList is a page of clients.
type ClientList struct {
	Clients []ClientAccount `json:"clients"`
	Pagination
}

// ClientListParams filters ListClients.
type ClientListParams struct {
	ListParams
	IsActive     *bool
	UpdatedSince string
}

// ClientCreateParams creates a client. Name is required.
type ClientCreateParams struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active,omitempty"`
	Address  string `json:"address,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// ClientUpdateParams updates a client. Nil fields are left unchanged.
type ClientUpdateParams struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Address  *string `json:"address,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

// ListClients returns a page of clients, newest first.
func (c *Client) ListClients(ctx context.Context, params ClientListParams) (*ClientList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addBool(query, "is_active", params.IsActive)
	addString(query, "updated_since", params.UpdatedSince)

	var list ClientList
	if err := c.get(ctx, "/clients", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetClient retrieves a single client by ID.
func (c *Client) GetClient(ctx context.Context, id int64) (*ClientAccount, error) {
	var client ClientAccount
	if err := c.get(ctx, fmt.Sprintf("/clients/%d", id), nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// CreateClient creates a new client.
func (c *Client) CreateClient(ctx context.Context, params ClientCreateParams) (*ClientAccount, error) {
	var client ClientAccount
	if err := c.post(ctx, "/clients", params, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClient updates an existing client.
func (c *Client) UpdateClient(ctx context.Context, id int64, params ClientUpdateParams) (*ClientAccount, error) {
	var client ClientAccount
	if err := c.patch(ctx, fmt.Sprintf("/clients/%d", id), params, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient deletes a client. Harvest refuses when the client has
// projects or invoices; that surfaces as a 422 APIError.
func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/clients/%d", id))
}
