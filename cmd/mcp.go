package cmd

import (
	"github.com/failsight/failsight/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Failsight MCP server",
	Long:  `Launch an MCP server that allows AI agents to run log analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol, so the per-error debug echo is
		// disabled after setup.
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		cfg.DebugErrorLimit = 0
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
