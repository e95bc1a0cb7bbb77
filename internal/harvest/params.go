package harvest

import (
	"net/url"
	"strconv"
)

// Pagination is the envelope Harvest attaches to every list response.
type Pagination struct {
	PerPage      int  `json:"per_page"`
	TotalPages   int  `json:"total_pages"`
	TotalEntries int  `json:"total_entries"`
	NextPage     *int `json:"next_page"`
	PreviousPage *int `json:"previous_page"`
	Page         int  `json:"page"`
}

// ListParams are the paging parameters shared by all list endpoints.
// Harvest accepts per_page values from 1 to 2000.
type ListParams struct {
	Page    int
	PerPage int
}

func (p ListParams) apply(q url.Values) {
	addInt(q, "page", int64(p.Page))
	addInt(q, "per_page", int64(p.PerPage))
}

// addString sets key when value is non-empty.
func addString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// addInt sets key when value is positive.
func addInt(q url.Values, key string, value int64) {
	if value > 0 {
		q.Set(key, strconv.FormatInt(value, 10))
	}
}

// addBool sets key when the pointer is non-nil, so false can be sent
// explicitly (is_active=false is a meaningful filter).
func addBool(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}

// Bool returns a pointer to b, for filling optional filter fields.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f, for optional numeric request fields.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i, for optional numeric request fields.
func Int(i int64) *int64 { return &i }

// String returns a pointer to s, for optional string request fields.
func String(s string) *string { return &s }
