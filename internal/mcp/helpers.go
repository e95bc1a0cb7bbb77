package mcp

import (
	"errors"
	"fmt"
	"time"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// dateLayout is the YYYY-MM-DD format Harvest uses for date fields.
const dateLayout = "2006-01-02"

// maxPerPage is Harvest's per_page upper bound.
const maxPerPage = 2000

// PageInput carries the paging arguments shared by every list tool.
type PageInput struct {
	Page    int `json:"page,omitempty"     jsonschema:"page number to return (default 1)"`
	PerPage int `json:"per_page,omitempty" jsonschema:"results per page, 1-2000 (default 2000)"`
}

func (p PageInput) validate() error {
	if p.Page < 0 {
		return errors.New("page must be positive")
	}
	if p.PerPage < 0 || p.PerPage > maxPerPage {
		return fmt.Errorf("per_page must be between 1 and %d", maxPerPage)
	}
	return nil
}

func (p PageInput) listParams() harvest.ListParams {
	return harvest.ListParams{Page: p.Page, PerPage: p.PerPage}
}

// DeleteOutput confirms a deletion. Harvest returns an empty 200 body
// on delete, so the confirmation is synthesized here.
type DeleteOutput struct {
	Deleted bool  `json:"deleted" jsonschema:"true when the resource was deleted"`
	ID      int64 `json:"id"      jsonschema:"ID of the deleted resource"`
}

// requireID checks that a numeric ID argument was provided.
func requireID(field string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// requireString checks that a string argument was provided.
func requireString(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// checkDate validates an optional YYYY-MM-DD argument. Bad dates are
// rejected here so they never reach the API.
func checkDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return fmt.Errorf("%s must be a date in YYYY-MM-DD format, got %q", field, value)
	}
	return nil
}

// requireDate validates a required YYYY-MM-DD argument.
func requireDate(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required (YYYY-MM-DD)", field)
	}
	return checkDate(field, value)
}

// checkUpdatedSince validates an optional updated_since argument,
// which Harvest accepts as either a date or an ISO 8601 timestamp.
func checkUpdatedSince(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return nil
	}
	return fmt.Errorf("updated_since must be a YYYY-MM-DD date or ISO 8601 timestamp, got %q", value)
}
