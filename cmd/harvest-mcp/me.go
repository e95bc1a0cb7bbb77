// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/output"
)

// newMeCmd creates the me command.
func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Long:  `Show the Harvest user the configured access token belongs to.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			user, err := client.GetCurrentUser(cmd.Context())
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(user)
			}

			printer.KeyValue("ID", fmt.Sprintf("%d", user.ID))
			printer.KeyValue("Name", strings.TrimSpace(user.FirstName+" "+user.LastName))
			printer.KeyValue("Email", user.Email)
			if user.Timezone != "" {
				printer.KeyValue("Timezone", user.Timezone)
			}
			if len(user.AccessRoles) > 0 {
				printer.KeyValue("Roles", strings.Join(user.AccessRoles, ", "))
			}
			return nil
		},
	}
}
