package harvest

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// User is a person on the Harvest account.
type User struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Telephone         string    `json:"telephone,omitempty"`
	Timezone          string    `json:"timezone,omitempty"`
	IsContractor      bool      `json:"is_contractor"`
	IsActive          bool      `json:"is_active"`
	WeeklyCapacity    int       `json:"weekly_capacity"`
	DefaultHourlyRate *float64  `json:"default_hourly_rate,omitempty"`
	CostRate          *float64  `json:"cost_rate,omitempty"`
	Roles             []string  `json:"roles,omitempty"`
	AccessRoles       []string  `json:"access_roles,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserList is a page of users.
type UserList struct {
	Users []User `json:"users"`
	Pagination
}

// UserListParams filters ListUsers.
type UserListParams struct {
	ListParams
	IsActive     *bool
	UpdatedSince string
}

// UserCreateParams creates a user. FirstName, LastName and Email are
// required.
type UserCreateParams struct {
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Email             string   `json:"email"`
	Telephone         string   `json:"telephone,omitempty"`
	Timezone          string   `json:"timezone,omitempty"`
	IsContractor      *bool    `json:"is_contractor,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
	WeeklyCapacity    *int     `json:"weekly_capacity,omitempty"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty"`
	CostRate          *float64 `json:"cost_rate,omitempty"`
	Roles             []string `json:"roles,omitempty"`
	AccessRoles       []string `json:"access_roles,omitempty"`
}

// UserUpdateParams updates a user. Nil fields are left unchanged.
type UserUpdateParams struct {
	FirstName         *string  `json:"first_name,omitempty"`
	LastName          *string  `json:"last_name,omitempty"`
	Email             *string  `json:"email,omitempty"`
	Telephone         *string  `json:"telephone,omitempty"`
	Timezone          *string  `json:"timezone,omitempty"`
	IsContractor      *bool    `json:"is_contractor,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
	WeeklyCapacity    *int     `json:"weekly_capacity,omitempty"`
	DefaultHourlyRate *float64 `json:"default_hourly_rate,omitempty"`
	CostRate          *float64 `json:"cost_rate,omitempty"`
	Roles             []string `json:"roles,omitempty"`
	AccessRoles       []string `json:"access_roles,omitempty"`
}

// ListUsers returns a page of users.
func (c *Client) ListUsers(ctx context.Context, params UserListParams) (*UserList, error) {
	query := url.Values{}
	params.ListParams.apply(query)
	addBool(query, "is_active", params.IsActive)
	addString(query, "updated_since", params.UpdatedSince)

	var list UserList
	if err := c.get(ctx, "/users", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetUser retrieves a single user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCurrentUser retrieves the user the access token belongs to.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser invites a new user to the account.
func (c *Client) CreateUser(ctx context.Context, params UserCreateParams) (*User, error) {
	var user User
	if err := c.post(ctx, "/users", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user.
func (c *Client) UpdateUser(ctx context.Context, id int64, params UserUpdateParams) (*User, error) {
	var user User
	if err := c.patch(ctx, fmt.Sprintf("/users/%d", id), params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user. Harvest refuses when the user has time
// entries or expenses; archive instead in that case.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/users/%d", id))
}
