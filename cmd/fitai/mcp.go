// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and update your workout sets
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "fitai": {
        "command": "fitai",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_sets          List the sets for a date and exercise
  log_weight        Record the weight for one set
  start_upload      Lock a set and build its video upload key
  daily_summary     Per-exercise logged/analyzed counts for a date
  refresh_feedback  Pull the latest analysis results from the server

AVAILABLE RESOURCES:

  fitai://today     Today's sets for the active exercise
  fitai://history   Recent cached workout days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(resolver, sess, store, apiClient)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
