package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pantrymcp/pantry-mcp/internal/core"
	"github.com/pantrymcp/pantry-mcp/internal/errors"
	"github.com/pantrymcp/pantry-mcp/internal/pantry"
)

// handleGet implements getBasket: returns the basket contents.
func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := s.resolve(request)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	data, err := s.baskets.Get(ctx, target)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	return rawResult(data), nil
}

// handlePost implements postBasket: replaces the basket with value.
func (s *Server) handlePost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := requireObject(request, "value")
	if err != nil {
		return mcpErrorResult(err), nil
	}

	target, err := s.resolve(request)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	data, err := s.baskets.Replace(ctx, target, value)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	return rawResult(data), nil
}

// handlePut implements putBasket: shallow-merges value into the basket.
func (s *Server) handlePut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := requireObject(request, "value")
	if err != nil {
		return mcpErrorResult(err), nil
	}

	target, err := s.resolve(request)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	data, err := s.baskets.Merge(ctx, target, value)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	return rawResult(data), nil
}

// handleDelete implements deleteBasket: removes the basket.
func (s *Server) handleDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := s.resolve(request)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	data, err := s.baskets.Delete(ctx, target)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	return rawResult(data), nil
}

// Helper functions

// resolve validates the identity arguments and falls back to server config.
func (s *Server) resolve(request mcp.CallToolRequest) (core.Target, error) {
	pantryID, err := optionalString(request, "pantryId")
	if err != nil {
		return core.Target{}, err
	}
	basketName, err := optionalString(request, "basketName")
	if err != nil {
		return core.Target{}, err
	}
	return core.Resolve(s.cfg, pantryID, basketName)
}

// optionalString returns the named argument, "" when absent or null, and an
// INVALID_PARAMS error when it is present with another type.
func optionalString(request mcp.CallToolRequest, key string) (string, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return "", nil
	}
	str, ok := raw.(string)
	if !ok {
		return "", errors.InvalidParams(fmt.Sprintf("%s must be a string", key))
	}
	return str, nil
}

// requireObject returns the named argument as basket contents.
func requireObject(request mcp.CallToolRequest, key string) (pantry.Contents, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return nil, errors.InvalidParams(fmt.Sprintf("%s is required", key))
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.InvalidParams(fmt.Sprintf("%s must be an object", key))
	}
	return obj, nil
}

// mcpErrorResult converts an error to an MCP error result.
func mcpErrorResult(err error) *mcp.CallToolResult {
	return errorResult(errorCode(err), err.Error())
}

// errorResult creates an MCP error result carrying a JSON error envelope.
func errorResult(code, message string) *mcp.CallToolResult {
	errorData := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}

	var result *mcp.CallToolResult
	jsonBytes, err := json.Marshal(errorData)
	if err != nil {
		// Fallback to simple text
		result = mcp.NewToolResultText(fmt.Sprintf("Error: %s - %s", code, message))
	} else {
		result = mcp.NewToolResultText(string(jsonBytes))
	}
	result.IsError = true

	return result
}

// rawResult wraps an already-serialized payload in a text result.
func rawResult(data json.RawMessage) *mcp.CallToolResult {
	return mcp.NewToolResultText(string(data))
}
