package mcp

import (
	"testing"

	"github.com/pantrymcp/pantry-mcp/internal/core"
	"github.com/pantrymcp/pantry-mcp/internal/pantry"
	"github.com/pantrymcp/pantry-mcp/internal/pantry/pantrytest"
)

// setupTestServer starts a fake Pantry service and an MCP server pointed at it.
// cfg may be nil for a configuration without default identifiers.
func setupTestServer(t *testing.T, cfg *core.Config) (*Server, *pantrytest.Server) {
	t.Helper()

	fake := pantrytest.New(t)
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	cfg.BaseURL = fake.BaseURL()

	srv, err := NewServer(cfg, pantry.New(cfg.BaseURL), nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	return srv, fake
}
