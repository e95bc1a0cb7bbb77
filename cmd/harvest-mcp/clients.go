// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/harvest"
	"github.com/barnloft/harvest-mcp/internal/output"
)

// newClientsCmd creates the clients command.
func newClientsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients",
		Long:  `List the clients on the Harvest account. Active clients only unless --all is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			params := harvest.ClientListParams{}
			if !all {
				params.IsActive = harvest.Bool(true)
			}

			list, err := client.ListClients(cmd.Context(), params)
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(list)
			}

			rows := make([][]string, 0, len(list.Clients))
			for _, c := range list.Clients {
				state := "active"
				if !c.IsActive {
					state = "archived"
				}
				rows = append(rows, []string{fmt.Sprintf("%d", c.ID), c.Name, c.Currency, state})
			}
			printer.Table([]string{"ID", "NAME", "CURRENCY", "STATE"}, rows)
			if list.TotalPages > 1 {
				printer.Stderr("showing page 1 of %d (%d clients total)\n", list.TotalPages, list.TotalEntries)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived clients")

	return cmd
}
