package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// setupTestEnv points the CLI at a stub Harvest API and isolates the
// config directory so tests never read a developer's real config.
func setupTestEnv(t *testing.T, handler http.Handler) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("HARVEST_MCP_CONFIG_HOME", t.TempDir())
	t.Setenv("HARVEST_ACCESS_TOKEN", "test-token")
	t.Setenv("HARVEST_ACCOUNT_ID", "12345")
	t.Setenv("HARVEST_BASE_URL", server.URL)
}

func writeJSONBody(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("writing response: %v", err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestClientsCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("is_active") != "true" {
			t.Errorf("default listing should filter to active clients, got query %q", r.URL.RawQuery)
		}
		writeJSONBody(t, w, `{
			"clients": [
				{"id": 1, "name": "Acme", "currency": "USD", "is_active": true},
				{"id": 2, "name": "Globex", "currency": "EUR", "is_active": false}
			],
			"per_page": 2000, "total_pages": 1, "total_entries": 2, "page": 1
		}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "clients")
	if err != nil {
		t.Fatalf("Execute() error = %v\nOutput: %s", err, out)
	}

	for _, expected := range []string{"Acme", "Globex", "USD", "archived"} {
		if !strings.Contains(out, expected) {
			t.Errorf("output should contain %q: %q", expected, out)
		}
	}
}

func TestClientsCommand_JSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/clients", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, `{"clients": [{"id": 1, "name": "Acme"}], "total_entries": 1, "total_pages": 1}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "clients", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\nOutput: %s", err, out)
	}

	var result struct {
		Clients []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"clients"`
	}
	if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
		t.Fatalf("output should be JSON: %v\nOutput: %s", jsonErr, out)
	}
	if len(result.Clients) != 1 || result.Clients[0].Name != "Acme" {
		t.Errorf("unexpected JSON payload: %s", out)
	}
}

func TestMeCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, `{"id": 7, "first_name": "Sam", "last_name": "Rivers", "email": "sam@example.com", "timezone": "Eastern Time (US & Canada)"}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "me")
	if err != nil {
		t.Fatalf("Execute() error = %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, "Sam Rivers") {
		t.Errorf("output should contain the user name: %q", out)
	}
	if !strings.Contains(out, "sam@example.com") {
		t.Errorf("output should contain the email: %q", out)
	}
}

func TestTimeLogCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/time_entries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if body["project_id"] != float64(123) {
			t.Errorf("project_id = %v, want 123", body["project_id"])
		}
		if body["hours"] != 1.5 {
			t.Errorf("hours = %v, want 1.5", body["hours"])
		}
		writeJSONBody(t, w, `{
			"id": 900, "hours": 1.5, "spent_date": "2026-08-30",
			"project": {"id": 123, "name": "Website"},
			"task": {"id": 456, "name": "Development"}
		}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "time", "log", "--project", "123", "--task", "456", "--hours", "1.5", "--date", "2026-08-30")
	if err != nil {
		t.Fatalf("Execute() error = %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, "Logged 1.50 hours") {
		t.Errorf("output should confirm the logged hours: %q", out)
	}
	if !strings.Contains(out, "Website") {
		t.Errorf("output should name the project: %q", out)
	}
}

func TestTimeLogCommand_MissingFlags(t *testing.T) {
	setupTestEnv(t, http.NewServeMux())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no project", args: []string{"time", "log", "--task", "456", "--hours", "1"}, want: "--project"},
		{name: "no task", args: []string{"time", "log", "--project", "123", "--hours", "1"}, want: "--task"},
		{name: "no hours", args: []string{"time", "log", "--project", "123", "--task", "456"}, want: "--hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() should fail when a required flag is missing")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %s: %v", tt.want, err)
			}
			_ = out
		})
	}
}

func TestTimeStopCommand_NoRunningTimer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, `{"id": 7, "first_name": "Sam", "last_name": "Rivers"}`)
	})
	mux.HandleFunc("/time_entries", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("is_running") != "true" {
			t.Errorf("stop should look for running entries, got query %q", r.URL.RawQuery)
		}
		writeJSONBody(t, w, `{"time_entries": [], "total_entries": 0, "total_pages": 1}`)
	})
	setupTestEnv(t, mux)

	_, err := execute(t, "time", "stop")
	if err == nil {
		t.Fatal("Execute() should fail when nothing is running")
	}
	if !strings.Contains(err.Error(), "no running timer") {
		t.Errorf("error = %v, want mention of no running timer", err)
	}
}

func TestTimeStopCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/time_entries/900/stop", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		writeJSONBody(t, w, `{
			"id": 900, "hours": 2.25, "is_running": false,
			"project": {"id": 123, "name": "Website"},
			"task": {"id": 456, "name": "Development"}
		}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "time", "stop", "--id", "900")
	if err != nil {
		t.Fatalf("Execute() error = %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, "Timer stopped at 2.25 hours") {
		t.Errorf("output should confirm the stop: %q", out)
	}
}

func TestDoctorCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, `{"id": 7, "first_name": "Sam", "last_name": "Rivers", "email": "sam@example.com"}`)
	})
	mux.HandleFunc("/company", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, `{"name": "Acme Co", "is_active": true}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "doctor")
	if err != nil {
		t.Fatalf("Execute() error = %v\nOutput: %s", err, out)
	}
	if !strings.Contains(out, "credentials") {
		t.Errorf("output should report the credentials check: %q", out)
	}
	if !strings.Contains(out, "Acme Co") {
		t.Errorf("output should report the connected company: %q", out)
	}
}

func TestDoctorCommand_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSONBody(t, w, `{"error": "invalid_token", "error_description": "The access token provided is expired"}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "doctor")
	if err == nil {
		t.Fatalf("Execute() should fail when connectivity check fails\nOutput: %s", out)
	}
	if !strings.Contains(out, "FAIL") {
		t.Errorf("output should mark the failing check: %q", out)
	}
	if !strings.Contains(out, "Getting connected") {
		t.Errorf("output should show the setup instructions: %q", out)
	}
}

func TestDoctorCommand_JSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, `{"id": 7, "first_name": "Sam", "last_name": "Rivers"}`)
	})
	mux.HandleFunc("/company", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, `{"name": "Acme Co"}`)
	})
	setupTestEnv(t, mux)

	out, err := execute(t, "doctor", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\nOutput: %s", err, out)
	}

	var result struct {
		Healthy bool `json:"healthy"`
		Checks  []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
	}
	if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
		t.Fatalf("output should be JSON: %v\nOutput: %s", jsonErr, out)
	}
	if !result.Healthy {
		t.Errorf("doctor should report healthy, got %s", out)
	}
	if len(result.Checks) == 0 {
		t.Error("doctor should report at least one check")
	}
}
