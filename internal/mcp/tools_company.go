package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// GetCompanyInput is the input for the get_company tool (no
// parameters needed).
type GetCompanyInput struct{}

// GetCompanyOutput is the output for the get_company tool.
type GetCompanyOutput struct {
	Company *harvest.Company `json:"company" jsonschema:"the company settings record"`
}

func handleGetCompany(client *harvest.Client) mcp.ToolHandlerFor[GetCompanyInput, GetCompanyOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GetCompanyInput) (*mcp.CallToolResult, GetCompanyOutput, error) {
		company, err := client.GetCompany(ctx)
		if err != nil {
			return nil, GetCompanyOutput{}, fmt.Errorf("getting company: %w", err)
		}
		return nil, GetCompanyOutput{Company: company}, nil
	}
}

func registerCompanyTools(server *mcp.Server, client *harvest.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "get_company",
		Description: "Get the Harvest company settings for the authenticated account: " +
			"name, week start day, time/date formats, clock style, and enabled features.",
		Annotations: readOnlyAnnotations(),
	}, handleGetCompany(client))
}
