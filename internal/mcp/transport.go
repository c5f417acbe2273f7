package mcp

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

// listen runs the mcp-go stdio transport on the process's stdin/stdout.
// Transport-level errors go to the logger so stdout stays reserved for
// protocol frames.
func listen(ctx context.Context, s *server.MCPServer, logger *slog.Logger) error {
	return listenOn(ctx, s, logger, os.Stdin, os.Stdout)
}

func listenOn(ctx context.Context, s *server.MCPServer, logger *slog.Logger, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}
