package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools adds every registry tool to the given MCP server.
// Each tool's handler delegates to the dispatch gateway, so MCP clients and
// plain HTTP clients go through the exact same policy and normalization path.
func (g *Gateway) RegisterMCPTools(srv *server.MCPServer) error {
	for _, t := range g.registry.Tools() {
		schema, err := json.Marshal(t.InputSchema)
		if err != nil {
			return fmt.Errorf("failed to marshal input schema for tool %s: %w", t.Name, err)
		}

		tool := mcp.Tool{
			Name:           t.Name,
			Description:    t.Description,
			RawInputSchema: schema,
		}
		srv.AddTool(tool, g.mcpToolCallHandler(t.Name))
	}
	return nil
}

// mcpToolCallHandler returns an mcp-go handler for one registry tool.
// Dispatch errors are reported as tool results, never as protocol faults,
// matching the envelope contract of the HTTP invocation endpoint.
func (g *Gateway) mcpToolCallHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := g.Invoke(ctx, name, request.GetArguments())
		if result.Error != "" {
			return mcp.NewToolResultError(result.Error), nil
		}

		switch payload := result.Result.(type) {
		case []string:
			contents := make([]mcp.Content, len(payload))
			for i, text := range payload {
				contents[i] = mcp.NewTextContent(text)
			}
			return &mcp.CallToolResult{Content: contents}, nil
		case string:
			return mcp.NewToolResultText(payload), nil
		default:
			return mcp.NewToolResultText(fmt.Sprint(payload)), nil
		}
	}
}
