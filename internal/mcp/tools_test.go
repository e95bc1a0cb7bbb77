package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// newTestClient returns a harvest client pointed at a stub server
// that answers every request with the given status and body.
func newTestClient(t *testing.T, handler http.HandlerFunc) *harvest.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := harvest.New("token", "12345", harvest.WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func jsonResponse(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestHandleListClients(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		jsonResponse(t, w, http.StatusOK, map[string]any{
			"clients":       []map[string]any{{"id": 1, "name": "Acme"}},
			"per_page":      100,
			"total_pages":   3,
			"total_entries": 250,
			"page":          2,
		})
	})

	_, out, err := handleListClients(client)(t.Context(), nil, ListClientsInput{
		PageInput: PageInput{Page: 2, PerPage: 100},
	})
	require.NoError(t, err)
	require.Len(t, out.Clients, 1)
	assert.Equal(t, "Acme", out.Clients[0].Name)
	assert.Equal(t, 3, out.TotalPages)
}

func TestHandleListClients_RejectsBadPaging(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, _, err := handleListClients(client)(t.Context(), nil, ListClientsInput{
		PageInput: PageInput{PerPage: 5000},
	})
	assert.ErrorContains(t, err, "per_page")
}

func TestHandleGetClient_RequiresID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, _, err := handleGetClient(client)(t.Context(), nil, GetClientInput{})
	assert.EqualError(t, err, "client_id is required")
}

func TestHandleCreateClient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme", body["name"])

		jsonResponse(t, w, http.StatusCreated, map[string]any{"id": 7, "name": "Acme"})
	})

	_, out, err := handleCreateClient(client)(t.Context(), nil, CreateClientInput{Name: "Acme"})
	require.NoError(t, err)
	require.NotNil(t, out.Client)
	assert.Equal(t, int64(7), out.Client.ID)
}

func TestHandleDeleteClient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/clients/7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	_, out, err := handleDeleteClient(client)(t.Context(), nil, DeleteClientInput{ClientID: 7})
	require.NoError(t, err)
	assert.True(t, out.Deleted)
	assert.Equal(t, int64(7), out.ID)
}

func TestHandleGetClient_PropagatesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusNotFound, map[string]any{"message": "Client not found"})
	})

	_, _, err := handleGetClient(client)(t.Context(), nil, GetClientInput{ClientID: 99})
	require.Error(t, err)
	assert.ErrorContains(t, err, "Client not found")
	assert.True(t, harvest.IsNotFound(err))
}

func TestValidateCreateTimeEntry(t *testing.T) {
	base := CreateTimeEntryInput{ProjectID: 1, TaskID: 2, SpentDate: "2026-03-14"}

	tests := []struct {
		name    string
		mutate  func(*CreateTimeEntryInput)
		wantErr string
	}{
		{
			name:   "hours only",
			mutate: func(in *CreateTimeEntryInput) { in.Hours = harvest.Float(1.5) },
		},
		{
			name:   "started_time only",
			mutate: func(in *CreateTimeEntryInput) { in.StartedTime = "9:00am" },
		},
		{
			name: "started and ended",
			mutate: func(in *CreateTimeEntryInput) {
				in.StartedTime = "9:00am"
				in.EndedTime = "11:30am"
			},
		},
		{
			name:    "neither",
			mutate:  func(in *CreateTimeEntryInput) {},
			wantErr: "provide either hours or started_time",
		},
		{
			name: "both",
			mutate: func(in *CreateTimeEntryInput) {
				in.Hours = harvest.Float(1.5)
				in.StartedTime = "9:00am"
			},
			wantErr: "provide either hours or started_time, not both",
		},
		{
			name: "ended without started",
			mutate: func(in *CreateTimeEntryInput) {
				in.Hours = harvest.Float(1.5)
				in.EndedTime = "11:30am"
			},
			wantErr: "ended_time requires started_time",
		},
		{
			name: "missing project",
			mutate: func(in *CreateTimeEntryInput) {
				in.ProjectID = 0
				in.Hours = harvest.Float(1)
			},
			wantErr: "project_id is required",
		},
		{
			name: "bad spent_date",
			mutate: func(in *CreateTimeEntryInput) {
				in.SpentDate = "14/03/2026"
				in.Hours = harvest.Float(1)
			},
			wantErr: "spent_date must be a date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			err := validateCreateTimeEntry(input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestHandleCreateTimeEntry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/time_entries", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(10), body["project_id"])
		assert.Equal(t, float64(20), body["task_id"])
		assert.Equal(t, "2026-03-14", body["spent_date"])
		assert.Equal(t, 1.5, body["hours"])

		jsonResponse(t, w, http.StatusCreated, map[string]any{
			"id":         100,
			"spent_date": "2026-03-14",
			"hours":      1.5,
		})
	})

	_, out, err := handleCreateTimeEntry(client)(t.Context(), nil, CreateTimeEntryInput{
		ProjectID: 10,
		TaskID:    20,
		SpentDate: "2026-03-14",
		Hours:     harvest.Float(1.5),
	})
	require.NoError(t, err)
	require.NotNil(t, out.TimeEntry)
	assert.Equal(t, int64(100), out.TimeEntry.ID)
	assert.InDelta(t, 1.5, out.TimeEntry.Hours, 0.001)
}

func TestHandleStopTimeEntry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/time_entries/100/stop", r.URL.Path)
		jsonResponse(t, w, http.StatusOK, map[string]any{"id": 100, "is_running": false})
	})

	_, out, err := handleStopTimeEntry(client)(t.Context(), nil, StopTimeEntryInput{TimeEntryID: 100})
	require.NoError(t, err)
	require.NotNil(t, out.TimeEntry)
	assert.False(t, out.TimeEntry.IsRunning)
}

func TestHandleUpdateTimeEntry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/time_entries/100", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(7), body["project_id"])
		assert.Equal(t, 2.5, body["hours"])
		assert.Equal(t, "standup notes", body["notes"])
		assert.NotContains(t, body, "task_id")

		jsonResponse(t, w, http.StatusOK, map[string]any{"id": 100, "hours": 2.5})
	})

	_, out, err := handleUpdateTimeEntry(client)(t.Context(), nil, UpdateTimeEntryInput{
		TimeEntryID: 100,
		ProjectID:   harvest.Int(7),
		Hours:       harvest.Float(2.5),
		Notes:       harvest.String("standup notes"),
	})
	require.NoError(t, err)
	require.NotNil(t, out.TimeEntry)
	assert.Equal(t, 2.5, out.TimeEntry.Hours)
}

func TestHandleUpdateTimeEntry_RejectsBadDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, _, err := handleUpdateTimeEntry(client)(t.Context(), nil, UpdateTimeEntryInput{
		TimeEntryID: 100,
		SpentDate:   harvest.String("14/03/2026"),
	})
	assert.ErrorContains(t, err, "spent_date")
}

func TestValidateCreateExpense(t *testing.T) {
	base := CreateExpenseInput{ProjectID: 1, ExpenseCategoryID: 2, SpentDate: "2026-03-14"}

	tests := []struct {
		name    string
		mutate  func(*CreateExpenseInput)
		wantErr string
	}{
		{name: "total_cost", mutate: func(in *CreateExpenseInput) { in.TotalCost = harvest.Float(42.50) }},
		{name: "units", mutate: func(in *CreateExpenseInput) { in.Units = harvest.Float(3) }},
		{
			name:    "neither",
			mutate:  func(in *CreateExpenseInput) {},
			wantErr: "provide either total_cost or units",
		},
		{
			name: "both",
			mutate: func(in *CreateExpenseInput) {
				in.TotalCost = harvest.Float(42.50)
				in.Units = harvest.Float(3)
			},
			wantErr: "provide either total_cost or units, not both",
		},
		{
			name: "missing category",
			mutate: func(in *CreateExpenseInput) {
				in.ExpenseCategoryID = 0
				in.TotalCost = harvest.Float(1)
			},
			wantErr: "expense_category_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			err := validateCreateExpense(input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestHandleListInvoices_RejectsBadState(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, _, err := handleListInvoices(client)(t.Context(), nil, ListInvoicesInput{State: "overdue"})
	assert.ErrorContains(t, err, "state must be one of")
}

func TestValidateCreateInvoice_LineItems(t *testing.T) {
	err := validateCreateInvoice(CreateInvoiceInput{
		ClientID: 1,
		LineItems: []InvoiceLineItemInput{
			{Kind: "Service", Quantity: 1, UnitPrice: 100},
			{Quantity: 1, UnitPrice: 50},
		},
	})
	assert.EqualError(t, err, "line_items[1]: kind is required")

	err = validateCreateInvoice(CreateInvoiceInput{
		ClientID: 1,
		LineItems: []InvoiceLineItemInput{
			{Kind: "Service", Quantity: 0, UnitPrice: 100},
		},
	})
	assert.EqualError(t, err, "line_items[0]: quantity must be positive")
}

func TestHandleTimeReport_RequiresRange(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, _, err := handleTimeReport(client.TimeReportByClient, "client")(t.Context(), nil, ReportInput{From: "2026-01-01"})
	assert.EqualError(t, err, "to is required (YYYY-MM-DD)")

	_, _, err = handleTimeReport(client.TimeReportByClient, "client")(t.Context(), nil, ReportInput{To: "2026-01-31"})
	assert.EqualError(t, err, "from is required (YYYY-MM-DD)")
}

func TestHandleTimeReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/time/projects", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("to"))
		jsonResponse(t, w, http.StatusOK, map[string]any{
			"results": []map[string]any{
				{"project_id": 5, "project_name": "Rollout", "total_hours": 80.5, "billable_hours": 72},
			},
		})
	})

	_, out, err := handleTimeReport(client.TimeReportByProject, "project")(t.Context(), nil, ReportInput{
		From: "2026-01-01",
		To:   "2026-01-31",
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "Rollout", out.Results[0].ProjectName)
	assert.InDelta(t, 80.5, out.Results[0].TotalHours, 0.001)
}

func TestHandleUninvoicedReport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/uninvoiced", r.URL.Path)
		jsonResponse(t, w, http.StatusOK, map[string]any{
			"results": []map[string]any{
				{"client_id": 1, "client_name": "Acme", "uninvoiced_amount": 1200},
			},
		})
	})

	_, out, err := handleUninvoicedReport(client)(t.Context(), nil, ReportInput{
		From: "2026-01-01",
		To:   "2026-01-31",
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.InDelta(t, 1200, out.Results[0].UninvoicedAmount, 0.001)
}

func TestHandleListTaskAssignments_RequiresProject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, _, err := handleListTaskAssignments(client)(t.Context(), nil, ListTaskAssignmentsInput{})
	assert.EqualError(t, err, "project_id is required")
}

func TestHandleGetCurrentUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		jsonResponse(t, w, http.StatusOK, map[string]any{
			"id": 55, "first_name": "Robin", "last_name": "Hale", "email": "robin@example.com",
		})
	})

	_, out, err := handleGetCurrentUser(client)(t.Context(), nil, GetCurrentUserInput{})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, int64(55), out.User.ID)
	assert.Equal(t, "robin@example.com", out.User.Email)
}

func TestNewServer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server := NewServer("1.2.3", client)
	require.NotNil(t, server)
}
