// Package output provides structured output handling for the harvest-mcp CLI.
//
// This package handles both human-readable and JSON output formats, so every
// command works equally well for human users and automated agents.
//
// # Printer
//
// The Printer is the primary interface for command output. It automatically
// handles format switching based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	// For success output
//	printer.Success(map[string]any{"message": "Timer started", "id": entry.ID})
//
//	// For error output
//	printer.Error(err)
//
//	// For raw output
//	printer.Println("Some text")
//	printer.Print("Formatted: %s\n", value)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", "id": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Styling
//
// For human-readable output, the package provides lipgloss-based styling
// that automatically disables when output is piped.
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, missing fields)
//	output.ExitSystemError // 2: System error (API failure, I/O error)
//	output.ExitAuthError   // 3: Auth error (missing or rejected credentials)
//
// # Error Types
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("missing required flag: --project")
//	output.NewSystemError("request failed")
//	output.NewAuthError("access token rejected")
//
// FromAPIError classifies Harvest API failures into these codes. The codes
// are used for both JSON error output and process exit codes.
package output
