package harvest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a Client against an httptest server. The sleep
// function is stubbed so rate-limit retries don't slow the suite down.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New("test-token", "12345", WithBaseURL(srv.URL))
	require.NoError(t, err)
	client.sleep = func(context.Context, time.Duration) error { return nil }
	return client, srv
}

func TestNew_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		accountID string
	}{
		{"missing token", "", "12345"},
		{"missing account", "tok", ""},
		{"missing both", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.token, tt.accountID)
			assert.Error(t, err)
		})
	}
}

func TestClient_SetsAuthHeaders(t *testing.T) {
	var gotAuth, gotAccount, gotAccept string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccount = r.Header.Get("Harvest-Account-Id")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode(Company{Name: "Acme"})
	}))

	_, err := client.GetCompany(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "12345", gotAccount)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_DecodesAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"message shape", 422, `{"message":"Name can't be blank"}`, "Name can't be blank"},
		{"oauth shape", 401, `{"error":"invalid_token","error_description":"The access token is invalid"}`, "The access token is invalid"},
		{"error code only", 401, `{"error":"invalid_token"}`, "invalid_token"},
		{"non-json body", 502, "Bad Gateway", "Bad Gateway"},
		{"empty body", 500, "", "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.GetCompany(context.Background())
			require.Error(t, err)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClient_TruncatesLongErrorBody(t *testing.T) {
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(500)
		_, _ = w.Write(long)
	}))

	_, err := client.GetCompany(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, apiErr.Message, 500)
}

func TestClient_TruncationKeepsRunesWhole(t *testing.T) {
	// 499 ASCII bytes followed by multi-byte runes puts the 500-byte
	// cut inside a rune.
	body := strings.Repeat("x", 499) + strings.Repeat("é", 10)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(500)
		_, _ = w.Write([]byte(body))
	}))

	_, err := client.GetCompany(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, utf8.ValidString(apiErr.Message))
	assert.Len(t, apiErr.Message, 499)
}

func TestClient_RetriesOnceOn429(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(Company{Name: "Acme"})
	}))

	company, err := client.GetCompany(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "Acme", company.Name)
}

func TestClient_RetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		cancel()
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	client.sleep = sleepContext

	_, err := client.GetCompany(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestClient_SecondRateLimitIsAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"Rate limit exceeded"}`))
	}))

	_, err := client.GetCompany(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"normal", "3", 3 * time.Second},
		{"clamped", "120", maxRetryAfter},
		{"missing", "", time.Second},
		{"garbage", "soon", time.Second},
		{"negative", "-5", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.value != "" {
				header.Set("Retry-After", tt.value)
			}
			assert.Equal(t, tt.want, retryAfter(header))
		})
	}
}

func TestListClients_QueryAndPagination(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		assert.Equal(t, "true", r.URL.Query().Get("is_active"))
		next := 3
		_ = json.NewEncoder(w).Encode(ClientList{
			Clients: []ClientAccount{{ID: 1, Name: "Acme"}},
			Pagination: Pagination{
				Page: 2, PerPage: 50, TotalPages: 3, TotalEntries: 101, NextPage: &next,
			},
		})
	}))

	list, err := client.ListClients(context.Background(), ClientListParams{
		ListParams: ListParams{Page: 2, PerPage: 50},
		IsActive:   Bool(true),
	})
	require.NoError(t, err)
	require.Len(t, list.Clients, 1)
	assert.Equal(t, "Acme", list.Clients[0].Name)
	assert.Equal(t, 101, list.TotalEntries)
	require.NotNil(t, list.NextPage)
	assert.Equal(t, 3, *list.NextPage)
}

func TestListClients_FalseFilterIsSent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("is_active"))
		_ = json.NewEncoder(w).Encode(ClientList{})
	}))

	_, err := client.ListClients(context.Background(), ClientListParams{IsActive: Bool(false)})
	require.NoError(t, err)
}

func TestCreateTimeEntry_SendsBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var params TimeEntryCreateParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, int64(14), params.ProjectID)
		assert.Equal(t, int64(8), params.TaskID)
		assert.Equal(t, "2026-08-28", params.SpentDate)
		require.NotNil(t, params.Hours)
		assert.Equal(t, 1.5, *params.Hours)

		_ = json.NewEncoder(w).Encode(TimeEntry{ID: 99, SpentDate: params.SpentDate, Hours: *params.Hours})
	}))

	entry, err := client.CreateTimeEntry(context.Background(), TimeEntryCreateParams{
		ProjectID: 14,
		TaskID:    8,
		SpentDate: "2026-08-28",
		Hours:     Float(1.5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), entry.ID)
}

func TestUpdateClient_OmitsNilFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]any{"name": "Renamed"}, raw)
		_ = json.NewEncoder(w).Encode(ClientAccount{ID: 7, Name: "Renamed"})
	}))

	updated, err := client.UpdateClient(context.Background(), 7, ClientUpdateParams{Name: String("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteTimeEntry_EmptyBodyIsOK(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/time_entries/42", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.DeleteTimeEntry(context.Background(), 42))
}

func TestStopAndRestartPaths(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPatch, r.Method)
		_ = json.NewEncoder(w).Encode(TimeEntry{ID: 42})
	}))

	_, err := client.StopTimeEntry(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/time_entries/42/stop", gotPath)

	_, err = client.RestartTimeEntry(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/time_entries/42/restart", gotPath)
}

func TestTimeReportGroupings(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "2026-08-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("to"))
		_ = json.NewEncoder(w).Encode(TimeReport{Results: []TimeReportResult{{TotalHours: 12}}})
	}))

	params := ReportParams{From: "2026-08-01", To: "2026-08-31"}
	ctx := context.Background()

	tests := []struct {
		call     func() (*TimeReport, error)
		wantPath string
	}{
		{func() (*TimeReport, error) { return client.TimeReportByClient(ctx, params) }, "/reports/time/clients"},
		{func() (*TimeReport, error) { return client.TimeReportByProject(ctx, params) }, "/reports/time/projects"},
		{func() (*TimeReport, error) { return client.TimeReportByTask(ctx, params) }, "/reports/time/tasks"},
		{func() (*TimeReport, error) { return client.TimeReportByTeam(ctx, params) }, "/reports/time/team"},
	}
	for _, tt := range tests {
		report, err := tt.call()
		require.NoError(t, err)
		assert.Equal(t, tt.wantPath, gotPath)
		require.Len(t, report.Results, 1)
	}
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: 404}))
	assert.False(t, IsNotFound(&APIError{StatusCode: 422}))
	assert.True(t, IsAuth(&APIError{StatusCode: 401}))
	assert.True(t, IsAuth(&APIError{StatusCode: 403}))
	assert.False(t, IsAuth(&APIError{StatusCode: 404}))
	assert.False(t, IsAuth(context.DeadlineExceeded))
}

func TestListTaskAssignments_Path(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/14/task_assignments", r.URL.Path)
		_ = json.NewEncoder(w).Encode(TaskAssignmentList{
			TaskAssignments: []TaskAssignment{{ID: 1, Task: Ref{ID: 8, Name: "Programming"}}},
		})
	}))

	list, err := client.ListTaskAssignments(context.Background(), 14, AssignmentListParams{})
	require.NoError(t, err)
	require.Len(t, list.TaskAssignments, 1)
	assert.Equal(t, "Programming", list.TaskAssignments[0].Task.Name)
}
