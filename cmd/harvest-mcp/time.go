// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/harvest"
	"github.com/barnloft/harvest-mcp/internal/output"
)

// dateLayout is the YYYY-MM-DD format Harvest uses for date flags.
const dateLayout = "2006-01-02"

// newTimeCmd creates the time command group.
func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Track time from the terminal",
		Long:  `List, log, start and stop time entries.`,
	}

	cmd.AddCommand(newTimeListCmd())
	cmd.AddCommand(newTimeLogCmd())
	cmd.AddCommand(newTimeStartCmd())
	cmd.AddCommand(newTimeStopCmd())

	return cmd
}

// checkDateFlag validates an optional YYYY-MM-DD flag value.
func checkDateFlag(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return output.NewUserError(fmt.Sprintf("--%s must be a date in YYYY-MM-DD format, got %q", name, value))
	}
	return nil
}

// newTimeListCmd creates the time list command.
func newTimeListCmd() *cobra.Command {
	var from, to string
	var projectID int64
	var running bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		Long:  `List time entries. Defaults to today; use --from/--to for a range.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			for _, check := range []error{checkDateFlag("from", from), checkDateFlag("to", to)} {
				if check != nil {
					printer.Error(check)
					return check
				}
			}

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			params := harvest.TimeEntryListParams{
				ProjectID: projectID,
				From:      from,
				To:        to,
			}
			if from == "" && to == "" {
				today := time.Now().Format(dateLayout)
				params.From = today
				params.To = today
			}
			if running {
				params.IsRunning = harvest.Bool(true)
			}

			list, err := client.ListTimeEntries(cmd.Context(), params)
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(list)
			}

			var total float64
			rows := make([][]string, 0, len(list.TimeEntries))
			for _, entry := range list.TimeEntries {
				state := ""
				if entry.IsRunning {
					state = "running"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", entry.ID),
					entry.SpentDate,
					entry.Project.Name,
					entry.Task.Name,
					fmt.Sprintf("%.2f", entry.Hours),
					state,
				})
				total += entry.Hours
			}
			printer.Table([]string{"ID", "DATE", "PROJECT", "TASK", "HOURS", ""}, rows)
			printer.Println()
			printer.KeyValue("Total", fmt.Sprintf("%.2f hours", total))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End of the range (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&projectID, "project", 0, "Only entries for this project ID")
	cmd.Flags().BoolVar(&running, "running", false, "Only running timers")

	return cmd
}

// newTimeLogCmd creates the time log command.
func newTimeLogCmd() *cobra.Command {
	var projectID, taskID int64
	var hours float64
	var date, notes string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed time entry",
		Long:  `Log a fixed number of hours against a project task.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			switch {
			case projectID <= 0:
				err := output.NewUserError("missing required flag: --project")
				printer.Error(err)
				return err
			case taskID <= 0:
				err := output.NewUserError("missing required flag: --task")
				printer.Error(err)
				return err
			case hours <= 0:
				err := output.NewUserError("missing required flag: --hours")
				printer.Error(err)
				return err
			}
			if err := checkDateFlag("date", date); err != nil {
				printer.Error(err)
				return err
			}
			if date == "" {
				date = time.Now().Format(dateLayout)
			}

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			entry, err := client.CreateTimeEntry(cmd.Context(), harvest.TimeEntryCreateParams{
				ProjectID: projectID,
				TaskID:    taskID,
				SpentDate: date,
				Hours:     harvest.Float(hours),
				Notes:     notes,
			})
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(entry)
			}
			return printer.Success(map[string]any{
				"message": fmt.Sprintf("Logged %.2f hours on %s (%s / %s), entry %d", entry.Hours, entry.SpentDate, entry.Project.Name, entry.Task.Name, entry.ID),
			})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project ID (required)")
	cmd.Flags().Int64Var(&taskID, "task", 0, "Task ID (required)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours to log (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date to log against (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the entry")

	return cmd
}

// newTimeStartCmd creates the time start command.
func newTimeStartCmd() *cobra.Command {
	var projectID, taskID int64
	var notes string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a running timer",
		Long:  `Start a running timer against a project task for today.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			switch {
			case projectID <= 0:
				err := output.NewUserError("missing required flag: --project")
				printer.Error(err)
				return err
			case taskID <= 0:
				err := output.NewUserError("missing required flag: --task")
				printer.Error(err)
				return err
			}

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			// An entry with neither hours nor an end time starts running.
			entry, err := client.CreateTimeEntry(cmd.Context(), harvest.TimeEntryCreateParams{
				ProjectID: projectID,
				TaskID:    taskID,
				SpentDate: time.Now().Format(dateLayout),
				Notes:     notes,
			})
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(entry)
			}
			return printer.Success(map[string]any{
				"message": fmt.Sprintf("Timer started on %s / %s, entry %d", entry.Project.Name, entry.Task.Name, entry.ID),
			})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project ID (required)")
	cmd.Flags().Int64Var(&taskID, "task", 0, "Task ID (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the entry")

	return cmd
}

// newTimeStopCmd creates the time stop command.
func newTimeStopCmd() *cobra.Command {
	var entryID int64

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Long:  `Stop a running timer. Without --id, stops your single running entry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			client, err := apiClient()
			if err != nil {
				printer.Error(err)
				return err
			}

			if entryID == 0 {
				me, err := client.GetCurrentUser(cmd.Context())
				if err != nil {
					exitErr := output.FromAPIError(err)
					printer.Error(exitErr)
					return exitErr
				}
				list, err := client.ListTimeEntries(cmd.Context(), harvest.TimeEntryListParams{
					UserID:    me.ID,
					IsRunning: harvest.Bool(true),
				})
				if err != nil {
					exitErr := output.FromAPIError(err)
					printer.Error(exitErr)
					return exitErr
				}
				if len(list.TimeEntries) == 0 {
					userErr := output.NewUserError("no running timer")
					printer.Error(userErr)
					return userErr
				}
				entryID = list.TimeEntries[0].ID
			}

			entry, err := client.StopTimeEntry(cmd.Context(), entryID)
			if err != nil {
				exitErr := output.FromAPIError(err)
				printer.Error(exitErr)
				return exitErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(entry)
			}
			return printer.Success(map[string]any{
				"message": fmt.Sprintf("Timer stopped at %.2f hours (%s / %s), entry %d", entry.Hours, entry.Project.Name, entry.Task.Name, entry.ID),
			})
		},
	}

	cmd.Flags().Int64Var(&entryID, "id", 0, "Time entry ID to stop (default: your running entry)")

	return cmd
}
