package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	quillmcp "github.com/gorewood/quill/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run quill as a Model Context Protocol (MCP) server over stdio.

This lets an MCP-capable agent read and write diary entries.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "quill": {
        "command": "quill",
        "args": ["serve"]
      }
    }
  }

Available tools: find_entries, list_partitions, list_moods, write_entry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			server := quillmcp.NewServer(buildVersion(), quillmcp.Deps{
				Store:  a.store,
				Search: a.search,
				Now:    a.now,
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
