package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRootCommand_Version(t *testing.T) {
	// Set version for testing
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "1.2.3") {
		t.Errorf("--version output should contain version: %q", output)
	}
	if !strings.Contains(output, "harvest-mcp") {
		t.Errorf("--version output should contain 'harvest-mcp': %q", output)
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()

	expectations := []string{
		"harvest-mcp",
		"Usage:",
		"--json",
		"serve",
		"time",
		"doctor",
	}

	for _, expected := range expectations {
		if !strings.Contains(output, expected) {
			t.Errorf("--help output should contain %q: %q", expected, output)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--json"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("Execute() should return an error when no subcommand is given")
	}

	var result map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &result); jsonErr != nil {
		t.Fatalf("output should be JSON: %v\nOutput: %s", jsonErr, buf.String())
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain an error key: %v", result)
	}
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{name: "dev defaults", version: "dev", commit: "none", date: "unknown", want: "dev"},
		{name: "release", version: "1.0.0", commit: "abcdef1234", date: "2026-01-01", want: "1.0.0 (abcdef1, 2026-01-01)"},
		{name: "short commit kept", version: "1.0.0", commit: "abc", date: "2026-01-01", want: "1.0.0 (abc, 2026-01-01)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, commit, date = tt.version, tt.commit, tt.date
			if got := buildVersion(); got != tt.want {
				t.Errorf("buildVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCommand_ColorFlag(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "--color") {
		t.Errorf("--help output should list the --color flag: %q", buf.String())
	}

	if got := colorMode(cmd); got != "auto" {
		t.Errorf("colorMode() default = %q, want %q", got, "auto")
	}
}

func TestCommandGroups(t *testing.T) {
	cmd := newRootCmd()

	wanted := []string{"serve", "doctor", "me", "clients", "projects", "tasks", "time"}
	for _, name := range wanted {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command should have subcommand %q", name)
		}
	}
}
