// Package main provides the entry point for the harvest-mcp CLI.
package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/barnloft/harvest-mcp/internal/config"
	"github.com/barnloft/harvest-mcp/internal/harvest"
	harvestmcp "github.com/barnloft/harvest-mcp/internal/mcp"
	"github.com/barnloft/harvest-mcp/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run harvest-mcp as a Model Context Protocol (MCP) server over stdio.

This exposes the full Harvest API surface as MCP tools that any
MCP-capable agent environment can use (Claude Code, Cursor, Windsurf,
Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "harvest": {
        "command": "harvest-mcp",
        "args": ["serve"],
        "env": {
          "HARVEST_ACCESS_TOKEN": "...",
          "HARVEST_ACCOUNT_ID": "..."
        }
      }
    }
  }

stdout carries the MCP framing; diagnostics go to stderr. Pass --debug
(or set HARVEST_MCP_DEBUG=1) to log every API request to stderr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return output.NewSystemErrorWithCause(err.Error(), err)
			}
			// Fail on missing credentials now, not on the first tool call.
			if err := cfg.Validate(); err != nil {
				return output.NewAuthError(err.Error())
			}

			logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				ReportTimestamp: true,
				Prefix:          "harvest-mcp",
			})
			if debug || cfg.Debug {
				logger.SetLevel(charmlog.DebugLevel)
			} else {
				logger.SetLevel(charmlog.WarnLevel)
			}

			client, err := cfg.Client(harvest.WithLogger(logger))
			if err != nil {
				return output.NewAuthError(err.Error())
			}

			server := harvestmcp.NewServer(buildVersion(), client)
			logger.Debug("serving MCP over stdio", "tools", "harvest")
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Log API requests to stderr")

	return cmd
}
