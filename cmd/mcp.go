package cmd

import (
	"github.com/gitpulse/gitpulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the GitPulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to summarize and compare GitHub activity via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The mcp command takes no subjects; setup still needs to run for
		// token, window and cache wiring.
		return sharedSetup(rootCtx, cmd, nil)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, dataSource)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
