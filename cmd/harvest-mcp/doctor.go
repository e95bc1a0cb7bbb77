// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/config"
	"github.com/barnloft/harvest-mcp/internal/harvest"
	"github.com/barnloft/harvest-mcp/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results.
type doctorResult struct {
	Version string        `json:"version"`
	Checks  []checkResult `json:"checks"`
	Healthy bool          `json:"healthy"`
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check credentials and connectivity",
		Long: `Check harvest-mcp configuration health.

Verifies that credentials are configured, that the API accepts them,
and reports the account the token is attached to.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			result := runDoctorChecks(cmd)

			if printer.IsJSON() {
				if err := printer.WriteJSON(result); err != nil {
					return err
				}
			} else {
				printDoctorHuman(printer, result)
			}

			if !result.Healthy {
				return output.NewSystemError("doctor found problems")
			}
			return nil
		},
	}
}

// runDoctorChecks runs every check in order. Later checks are skipped
// when the credentials are missing since they cannot succeed.
func runDoctorChecks(cmd *cobra.Command) *doctorResult {
	result := &doctorResult{Version: buildVersion(), Healthy: true}

	add := func(check checkResult) {
		if check.Status == checkFail {
			result.Healthy = false
		}
		result.Checks = append(result.Checks, check)
	}

	add(checkConfigFile())

	cfg, err := config.Load()
	if err != nil {
		add(checkResult{Name: "config", Status: checkFail, Message: err.Error()})
		return result
	}

	credentials := checkCredentials(cfg)
	add(credentials)
	if credentials.Status == checkFail {
		return result
	}

	add(checkConnectivity(cmd, cfg))
	return result
}

// checkConfigFile reports whether a config file exists. Absence is
// fine when the environment carries the credentials.
func checkConfigFile() checkResult {
	path := filepath.Join(config.Dir(), config.FileName)
	if _, err := os.Stat(path); err != nil {
		return checkResult{
			Name:    "config file",
			Status:  checkWarn,
			Message: fmt.Sprintf("no config file at %s", path),
			Hint:    "fine if HARVEST_ACCESS_TOKEN and HARVEST_ACCOUNT_ID are set",
		}
	}
	return checkResult{Name: "config file", Status: checkPass, Message: path}
}

// checkCredentials verifies both credentials are present.
func checkCredentials(cfg *config.Config) checkResult {
	if err := cfg.Validate(); err != nil {
		return checkResult{
			Name:    "credentials",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "create a personal access token at https://id.getharvest.com/developers",
		}
	}
	return checkResult{Name: "credentials", Status: checkPass, Message: "access token and account ID configured"}
}

// checkConnectivity calls /users/me and /company to prove the
// credentials work.
func checkConnectivity(cmd *cobra.Command, cfg *config.Config) checkResult {
	client, err := cfg.Client()
	if err != nil {
		return checkResult{Name: "connectivity", Status: checkFail, Message: err.Error()}
	}

	user, err := client.GetCurrentUser(cmd.Context())
	if err != nil {
		check := checkResult{Name: "connectivity", Status: checkFail, Message: err.Error()}
		if harvest.IsAuth(err) {
			check.Hint = "the API rejected the credentials; regenerate the token or recheck the account ID"
		}
		return check
	}

	message := fmt.Sprintf("authenticated as %s", strings.TrimSpace(user.FirstName+" "+user.LastName))
	if company, err := client.GetCompany(cmd.Context()); err == nil {
		message += fmt.Sprintf(" (%s)", company.Name)
	}
	return checkResult{Name: "connectivity", Status: checkPass, Message: message}
}

// printDoctorHuman renders the checks for a terminal.
func printDoctorHuman(printer *output.Printer, result *doctorResult) {
	printer.Section("harvest-mcp doctor")
	for _, check := range result.Checks {
		marker := "ok  "
		switch check.Status {
		case checkWarn:
			marker = "warn"
		case checkFail:
			marker = "FAIL"
		}
		printer.Print("[%s] %s: %s\n", marker, check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("       hint: %s\n", check.Hint)
		}
	}
	printer.Println()
	if result.Healthy {
		_ = printer.Success(map[string]any{"message": "All checks passed"})
		return
	}
	printer.Box("Getting connected", strings.Join([]string{
		"1. Create a personal access token at https://id.getharvest.com/developers",
		"2. export HARVEST_ACCESS_TOKEN=<token> and HARVEST_ACCOUNT_ID=<id>,",
		"   or put them in " + filepath.Join(config.Dir(), config.FileName),
		"3. Re-run harvest-mcp doctor",
	}, "\n"))
}
