// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/config"
	"github.com/barnloft/harvest-mcp/internal/harvest"
	"github.com/barnloft/harvest-mcp/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the harvest-mcp CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest-mcp",
		Short: "Harvest time tracking for terminals and agents",
		Long: `harvest-mcp connects the Harvest time-tracking API to MCP-capable agents
and to your terminal.

Run 'harvest-mcp serve' to expose every Harvest operation (time entries,
projects, clients, invoices, estimates, reports) as MCP tools over stdio,
or use the subcommands directly for day-to-day tracking:

  harvest-mcp time log --project 123 --task 456 --hours 1.5
  harvest-mcp time start --project 123 --task 456
  harvest-mcp time stop

Credentials come from HARVEST_ACCESS_TOKEN and HARVEST_ACCOUNT_ID, a
.env file, or ~/.config/harvest-mcp/config.yaml.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'harvest-mcp --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	// Load .env.local then .env for tokens that can't live in the
	// environment. Real environment variables always win.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		config.LoadEnvFiles()
		return nil
	}

	// Add persistent --json flag (available to all subcommands)
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "track", Title: "Tracking Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "browse", Title: "Browse Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newTimeCmd(), "track")

	addGroupedCommand(cmd, newMeCmd(), "browse")
	addGroupedCommand(cmd, newClientsCmd(), "browse")
	addGroupedCommand(cmd, newProjectsCmd(), "browse")
	addGroupedCommand(cmd, newTasksCmd(), "browse")

	addGroupedCommand(cmd, newServeCmd(), "admin")
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// colorMode reads the --color persistent flag.
func colorMode(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	if flag == nil {
		return "auto"
	}
	return flag.Value.String()
}

// newPrinter builds the printer for a command respecting --json,
// --color and TTY detection.
func newPrinter(cmd *cobra.Command) *output.Printer {
	isTTY := output.ResolveColorMode(colorMode(cmd), output.IsTTY(cmd.OutOrStdout()))
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).
		WithStderr(cmd.ErrOrStderr())
}

// apiClient loads the configuration and builds the Harvest client.
// Credential problems come back as auth errors so the process exits
// with code 3.
func apiClient(opts ...harvest.Option) (*harvest.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}
	client, err := cfg.Client(opts...)
	if err != nil {
		return nil, output.NewAuthError(err.Error())
	}
	return client, nil
}
