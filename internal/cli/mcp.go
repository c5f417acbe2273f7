package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pantrymcp/pantry-mcp/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server on stdio",
	Long: `Starts the Model Context Protocol (MCP) server on stdio.

This command is used by MCP clients (Claude Desktop, etc.) to communicate
with pantry-mcp. It should not be run directly by users.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting MCP server", "version", GetVersion(), "base_url", cfg.BaseURL)

	if err := mcp.Serve(ctx, cfg, logger); err != nil {
		// Shutdown by signal is not a failure.
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to start Pantry MCP server: %w", err)
	}
	return nil
}
