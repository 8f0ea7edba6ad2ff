package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blastwatch/blastdiff/internal/adapters/driving/mcp"
)

var (
	mcpEmail    string
	mcpAPIKey   string
	mcpDatabase string
	mcpNoCache  bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants. It
exposes compare_blast and lookup_status as tools.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  blastdiff mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  blastdiff mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "blastdiff": {
        "command": "/path/to/blastdiff",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpEmail, "email", "", "contact email for directory lookups (overrides config)")
	mcpServeCmd.Flags().StringVar(&mcpAPIKey, "api-key", "", "directory API key (overrides config)")
	mcpServeCmd.Flags().StringVar(&mcpDatabase, "database", "", "directory database (overrides config)")
	mcpServeCmd.Flags().BoolVar(&mcpNoCache, "no-cache", false, "bypass the directory lookup cache")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	opts := directoryOptions{
		email:    mcpEmail,
		apiKey:   mcpAPIKey,
		database: mcpDatabase,
		noCache:  mcpNoCache,
	}

	compare, cleanupCompare, err := ensureCompareService(opts)
	if err != nil {
		return err
	}
	defer cleanupCompare()

	lookup, cleanupLookup, err := ensureLookupService(opts)
	if err != nil {
		return err
	}
	defer cleanupLookup()

	server, err := mcp.NewServer(&mcp.Ports{
		Compare: compare,
		Lookup:  lookup,
		Hits:    hitSource,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
