package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   PageInput
		wantErr string
	}{
		{name: "zero values", input: PageInput{}},
		{name: "valid", input: PageInput{Page: 3, PerPage: 100}},
		{name: "max per_page", input: PageInput{PerPage: 2000}},
		{name: "negative page", input: PageInput{Page: -1}, wantErr: "page must be positive"},
		{name: "per_page too large", input: PageInput{PerPage: 2001}, wantErr: "per_page must be between 1 and 2000"},
		{name: "negative per_page", input: PageInput{PerPage: -5}, wantErr: "per_page must be between 1 and 2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestRequireID(t *testing.T) {
	assert.NoError(t, requireID("client_id", 42))
	assert.EqualError(t, requireID("client_id", 0), "client_id is required")
	assert.EqualError(t, requireID("client_id", -1), "client_id is required")
}

func TestRequireString(t *testing.T) {
	assert.NoError(t, requireString("name", "Acme"))
	assert.EqualError(t, requireString("name", ""), "name is required")
}

func TestCheckDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{name: "empty is fine", value: "", ok: true},
		{name: "valid date", value: "2026-03-14", ok: true},
		{name: "wrong order", value: "14-03-2026", ok: false},
		{name: "slashes", value: "2026/03/14", ok: false},
		{name: "not a date", value: "tomorrow", ok: false},
		{name: "timestamp rejected", value: "2026-03-14T09:00:00Z", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDate("from", tt.value)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, "from must be a date in YYYY-MM-DD format")
			}
		})
	}
}

func TestRequireDate(t *testing.T) {
	assert.NoError(t, requireDate("spent_date", "2026-01-02"))
	assert.EqualError(t, requireDate("spent_date", ""), "spent_date is required (YYYY-MM-DD)")
	assert.ErrorContains(t, requireDate("spent_date", "nope"), "spent_date must be a date")
}

func TestCheckUpdatedSince(t *testing.T) {
	assert.NoError(t, checkUpdatedSince(""))
	assert.NoError(t, checkUpdatedSince("2026-03-14"))
	assert.NoError(t, checkUpdatedSince("2026-03-14T09:30:00Z"))
	assert.NoError(t, checkUpdatedSince("2026-03-14T09:30:00+02:00"))
	assert.ErrorContains(t, checkUpdatedSince("last week"), "updated_since must be a YYYY-MM-DD date or ISO 8601 timestamp")
}
