package cmd

import (
	"github.com/luuuc/launchgen/internal/mcp"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI assistants",
	Long: `Starts a local MCP server over stdio so an AI assistant can inspect
projects and generate launch configurations.

Configure in your assistant's MCP settings:

{
  "mcpServers": {
    "launchgen": {
      "command": "launchgen",
      "args": ["mcp"]
    }
  }
}

The server exposes:
- Tools: detect_projects, generate_launch
- Resources: launchgen://launch.json for the working directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(scanDir, version)
		return server.ServeStdio()
	},
}
