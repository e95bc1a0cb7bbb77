// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/harvest"
	"github.com/barnloft/harvest-mcp/internal/output"
)

// newProjectsCmd creates the projects command.
func newProjectsCmd() *cobra.Command {
	var all bool
	var clientID int64

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Long:  `List the projects on the Harvest account. Active projects only unless --all is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			params := harvest.ProjectListParams{ClientID: clientID}
			if !all {
				params.IsActive = harvest.Bool(true)
			}

			list, err := client.ListProjects(cmd.Context(), params)
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(list)
			}

			rows := make([][]string, 0, len(list.Projects))
			for _, p := range list.Projects {
				billable := "no"
				if p.IsBillable {
					billable = "yes"
				}
				rows = append(rows, []string{fmt.Sprintf("%d", p.ID), p.Name, p.Client.Name, p.Code, billable})
			}
			printer.Table([]string{"ID", "NAME", "CLIENT", "CODE", "BILLABLE"}, rows)
			if list.TotalPages > 1 {
				printer.Stderr("showing page 1 of %d (%d projects total)\n", list.TotalPages, list.TotalEntries)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	cmd.Flags().Int64Var(&clientID, "client", 0, "Only projects for this client ID")

	return cmd
}
