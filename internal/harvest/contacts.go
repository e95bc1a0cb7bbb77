package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Contact is a person attached to a client for invoicing purposes.
type Contact struct {
	ID          int64     `json:"id"`
	Client      Ref       `json:"client"`
	Title       string    `json:"title,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneOffice string    `json:"phone_office,omitempty"`
	PhoneMobile string    `json:"phone_mobile,omitempty"`
	Fax         string    `json:"fax,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContactList is a page of contacts.
type ContactList struct {
	Contacts []Contact `json:"contacts"`
	Pagination
}

// ContactListParams filters ListContacts.
type ContactListParams struct {
	ListParams
	ClientID     int64
	UpdatedSince string
}

// ContactCreateParams creates a contact. ClientID and FirstName are
// required.
type ContactCreateParams struct {
	ClientID    int64  `json:"client_id"`
	Title       string `json:"title,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneOffice string `json:"phone_office,omitempty"`
	PhoneMobile string `json:"phone_mobile,omitempty"`
	Fax         string `json:"fax,omitempty"`
}

// ContactUpdateParams updates a contact. Nil fields are left unchanged.
type ContactUpdateParams struct {
	ClientID    *int64  `json:"client_id,omitempty"`
	Title       *string `json:"title,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneOffice *string `json:"phone_office,omitempty"`
	PhoneMobile *string `json:"phone_mobile,omitempty"`
	Fax         *string `json:"fax,omitempty"`
}

// ListContacts returns a page of contacts.
func (c *Client) ListContacts(ctx context.Context, params ContactListParams) (*ContactList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addInt(query, "client_id", params.ClientID)
	addString(query, "updated_since", params.UpdatedSince)

	var list ContactList
	if err := c.get(ctx, "/contacts", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetContact retrieves a single contact by ID.
func (c *Client) GetContact(ctx context.Context, id int64) (*Contact, error) {
	var contact Contact
	if err := c.get(ctx, fmt.Sprintf("/contacts/%d", id), nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// CreateContact creates a new contact under a client.
func (c *Client) CreateContact(ctx context.Context, params ContactCreateParams) (*Contact, error) {
	var contact Contact
	if err := c.post(ctx, "/contacts", params, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact updates an existing contact.
func (c *Client) UpdateContact(ctx context.Context, id int64, params ContactUpdateParams) (*Contact, error) {
	var contact Contact
	if err := c.patch(ctx, fmt.Sprintf("/contacts/%d", id), params, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// DeleteContact deletes a contact.
func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/contacts/%d", id))
}
