package cmd

import (
	"context"

	"github.com/chris-regnier/mindary/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes diary tools
over stdio transport.

Available tools:
  - get_diary: Memos and records of a day
  - get_record: One record by ID
  - create_record: Create a categorized record
  - add_memo: Add a chat-style memo

Example usage in an MCP client config:
  {
    "mcpServers": {
      "mindary": {
        "command": "/path/to/mindary",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Annotations: map[string]string{logsToStderr: "true"},
	RunE:        runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	server := mcptools.CreateMCPServer(s, location)

	// Logs go to stderr; stdout is reserved for the MCP protocol.
	logger.Info("starting MCP server (stdio transport)",
		zap.String("storage", appConfig.Storage),
		zap.String("data_dir", appConfig.DataDir))

	return server.Run(context.Background(), &mcp.StdioTransport{})
}
