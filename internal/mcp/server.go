// Package mcp provides the Model Context Protocol server for
// harvest-mcp. It registers every Harvest operation as an MCP tool an
// LLM-driven client can call: each tool validates its arguments,
// performs one Harvest API request, and returns the typed response.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/barnloft/harvest-mcp/internal/harvest"
)

// NewServer creates an MCP server with all Harvest tools registered.
func NewServer(version string, client *harvest.Client) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "harvest",
		Version: version,
	}, nil)
	registerTools(server, client)
	return server
}

// registerTools adds every tool category to the server.
func registerTools(server *mcp.Server, client *harvest.Client) {
	registerCompanyTools(server, client)
	registerClientTools(server, client)
	registerContactTools(server, client)
	registerProjectTools(server, client)
	registerTaskTools(server, client)
	registerAssignmentTools(server, client)
	registerTimeEntryTools(server, client)
	registerUserTools(server, client)
	registerExpenseTools(server, client)
	registerInvoiceTools(server, client)
	registerEstimateTools(server, client)
	registerReportTools(server, client)
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations marks tools that only read from the API.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// writeAnnotations marks create/update tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// destructiveAnnotations marks delete tools.
func destructiveAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(true),
	}
}
