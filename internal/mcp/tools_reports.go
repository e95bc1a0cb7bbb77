package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// ReportInput carries the date range and paging shared by every
// report tool. From and To are both required.
type ReportInput struct {
	PageInput
	From string `json:"from" jsonschema:"start of the report period (YYYY-MM-DD, required)"`
	To   string `json:"to"   jsonschema:"end of the report period (YYYY-MM-DD, required)"`
}

func (r ReportInput) validate() error {
	if err := r.PageInput.validate(); err != nil {
		return err
	}
	if err := requireDate("from", r.From); err != nil {
		return err
	}
	if err := requireDate("to", r.To); err != nil {
		return err
	}
	return nil
}

func (r ReportInput) reportParams() harvest.ReportParams {
	return harvest.ReportParams{
		ListParams: r.listParams(),
		From:       r.From,
		To:         r.To,
	}
}

// TimeReportOutput is the output shared by the four time report
// tools.
type TimeReportOutput struct {
	harvest.TimeReport
}

// timeReportFunc is one of the grouping methods on harvest.Client.
type timeReportFunc func(context.Context, harvest.ReportParams) (*harvest.TimeReport, error)

func handleTimeReport(run timeReportFunc, grouping string) mcp.ToolHandlerFor[ReportInput, TimeReportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, TimeReportOutput, error) {
		if err := input.validate(); err != nil {
			return nil, TimeReportOutput{}, err
		}
		report, err := run(ctx, input.reportParams())
		if err != nil {
			return nil, TimeReportOutput{}, fmt.Errorf("time report by %s: %w", grouping, err)
		}
		return nil, TimeReportOutput{TimeReport: *report}, nil
	}
}

// --- expense_report_categories ---

// ExpenseReportOutput is the output for the expense_report_categories
// tool.
type ExpenseReportOutput struct {
	harvest.ExpenseReport
}

func handleExpenseReport(client *harvest.Client) mcp.ToolHandlerFor[ReportInput, ExpenseReportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, ExpenseReportOutput, error) {
		if err := input.validate(); err != nil {
			return nil, ExpenseReportOutput{}, err
		}
		report, err := client.ExpenseReportByCategory(ctx, input.reportParams())
		if err != nil {
			return nil, ExpenseReportOutput{}, fmt.Errorf("expense report by category: %w", err)
		}
		return nil, ExpenseReportOutput{ExpenseReport: *report}, nil
	}
}

// --- uninvoiced_report ---

// UninvoicedReportOutput is the output for the uninvoiced_report
// tool.
type UninvoicedReportOutput struct {
	harvest.UninvoicedReport
}

func handleUninvoicedReport(client *harvest.Client) mcp.ToolHandlerFor[ReportInput, UninvoicedReportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, UninvoicedReportOutput, error) {
		if err := input.validate(); err != nil {
			return nil, UninvoicedReportOutput{}, err
		}
		report, err := client.GetUninvoicedReport(ctx, input.reportParams())
		if err != nil {
			return nil, UninvoicedReportOutput{}, fmt.Errorf("uninvoiced report: %w", err)
		}
		return nil, UninvoicedReportOutput{UninvoicedReport: *report}, nil
	}
}

func registerReportTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "time_report_clients",
		Description: "Report tracked hours grouped by client for a date range.",
		Annotations: readOnlyAnnotations(),
	}, handleTimeReport(client.TimeReportByClient, "client"))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "time_report_projects",
		Description: "Report tracked hours grouped by project for a date range.",
		Annotations: readOnlyAnnotations(),
	}, handleTimeReport(client.TimeReportByProject, "project"))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "time_report_tasks",
		Description: "Report tracked hours grouped by task for a date range.",
		Annotations: readOnlyAnnotations(),
	}, handleTimeReport(client.TimeReportByTask, "task"))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "time_report_team",
		Description: "Report tracked hours grouped by team member for a date range.",
		Annotations: readOnlyAnnotations(),
	}, handleTimeReport(client.TimeReportByTeam, "team member"))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "expense_report_categories",
		Description: "Report expense totals grouped by category for a date range.",
		Annotations: readOnlyAnnotations(),
	}, handleExpenseReport(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "uninvoiced_report",
		Description: "Report uninvoiced hours, expenses and amounts per client and project for a date range.",
		Annotations: readOnlyAnnotations(),
	}, handleUninvoicedReport(client))
}
