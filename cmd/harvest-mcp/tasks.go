// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/harvest"
	"github.com/barnloft/harvest-mcp/internal/output"
)

// newTasksCmd creates the tasks command.
func newTasksCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks",
		Long:  `List the tasks on the Harvest account. Active tasks only unless --all is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			params := harvest.TaskListParams{}
			if !all {
				params.IsActive = harvest.Bool(true)
			}

			list, err := client.ListTasks(cmd.Context(), params)
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(list)
			}

			rows := make([][]string, 0, len(list.Tasks))
			for _, task := range list.Tasks {
				billable := "no"
				if task.BillableByDefault {
					billable = "yes"
				}
				rows = append(rows, []string{fmt.Sprintf("%d", task.ID), task.Name, billable})
			}
			printer.Table([]string{"ID", "NAME", "BILLABLE"}, rows)
			if list.TotalPages > 1 {
				printer.Stderr("showing page 1 of %d (%d tasks total)\n", list.TotalPages, list.TotalEntries)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived tasks")

	return cmd
}
