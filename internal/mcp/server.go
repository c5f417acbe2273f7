package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pantrymcp/pantry-mcp/internal/core"
	"github.com/pantrymcp/pantry-mcp/internal/errors"
	"github.com/pantrymcp/pantry-mcp/internal/pantry"
)

const (
	serverName = "pantry-mcp"
	// ServerVersion is reported during the MCP handshake.
	ServerVersion = "1.0.0"
)

// Baskets is the set of remote operations the tools dispatch to.
// *pantry.Client implements it.
type Baskets interface {
	Get(ctx context.Context, t core.Target) (json.RawMessage, error)
	Replace(ctx context.Context, t core.Target, contents pantry.Contents) (json.RawMessage, error)
	Merge(ctx context.Context, t core.Target, update pantry.Contents) (json.RawMessage, error)
	Delete(ctx context.Context, t core.Target) (json.RawMessage, error)
}

// Server wraps the MCP server with pantry-specific state.
type Server struct {
	mcp     *server.MCPServer
	cfg     *core.Config
	baskets Baskets
	logger  *slog.Logger
}

// NewServer creates the MCP server with all basket tools registered.
// cfg supplies the fallback pantry id and basket name and is never modified.
func NewServer(cfg *core.Config, baskets Baskets, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if baskets == nil {
		return nil, fmt.Errorf("basket client is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:     cfg,
		baskets: baskets,
		logger:  logger,
	}

	s.mcp = server.NewMCPServer(serverName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()

	return s, nil
}

// registerTools registers the four basket tools.
func (s *Server) registerTools() {
	identity := []mcp.ToolOption{
		mcp.WithString("pantryId",
			mcp.Description("Pantry ID (defaults to --pantry-id or PANTRY_ID)")),
		mcp.WithString("basketName",
			mcp.Description("Basket name (defaults to --basket-name or BASKET_NAME)")),
	}
	value := mcp.WithObject("value",
		mcp.Required(),
		mcp.Description("Basket contents as a JSON object"))

	// getBasket
	s.mcp.AddTool(mcp.NewTool("getBasket",
		append([]mcp.ToolOption{
			mcp.WithDescription("Returns the contents of a Pantry basket"),
		}, identity...)...,
	), s.instrument("getBasket", s.handleGet))

	// postBasket
	s.mcp.AddTool(mcp.NewTool("postBasket",
		append([]mcp.ToolOption{
			mcp.WithDescription("Creates a basket or replaces its contents entirely"),
			value,
		}, identity...)...,
	), s.instrument("postBasket", s.handlePost))

	// putBasket
	s.mcp.AddTool(mcp.NewTool("putBasket",
		append([]mcp.ToolOption{
			mcp.WithDescription("Merges top-level keys into a basket, creating it if missing"),
			value,
		}, identity...)...,
	), s.instrument("putBasket", s.handlePut))

	// deleteBasket
	s.mcp.AddTool(mcp.NewTool("deleteBasket",
		append([]mcp.ToolOption{
			mcp.WithDescription("Deletes a basket from the pantry"),
		}, identity...)...,
	), s.instrument("deleteBasket", s.handleDelete))
}

// instrument tags each invocation with a call id for debug logging.
func (s *Server) instrument(tool string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		logger := s.logger.With("tool", tool, "call_id", callID)
		logger.DebugContext(ctx, "tool call started")

		start := time.Now()
		result, err := h(ctx, request)

		attrs := []any{"duration", time.Since(start)}
		if result != nil && result.IsError {
			attrs = append(attrs, "failed", true)
		}
		logger.DebugContext(ctx, "tool call finished", attrs...)
		return result, err
	}
}

// Serve listens for MCP messages on stdin and writes responses to stdout
// until ctx is cancelled or the input closes.
func (s *Server) Serve(ctx context.Context) error {
	if err := listen(ctx, s.mcp, s.logger); err != nil {
		return fmt.Errorf("failed to serve MCP: %w", err)
	}
	return nil
}

// Serve builds a pantry client from cfg and serves MCP on stdio.
func Serve(ctx context.Context, cfg *core.Config, logger *slog.Logger) error {
	client := pantry.New(cfg.BaseURL,
		pantry.WithTimeout(cfg.Timeout),
		pantry.WithLogger(logger),
		pantry.WithUserAgent(serverName+"/"+ServerVersion),
	)

	srv, err := NewServer(cfg, client, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// errorCode maps an error to the code reported to MCP clients.
func errorCode(err error) string {
	if code := errors.Code(err); code != "" {
		return code
	}
	return "INTERNAL_ERROR"
}
