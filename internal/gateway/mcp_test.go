package gateway

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMCPTools(t *testing.T) {
	g := newTestGateway(t, &Config{})
	srv := server.NewMCPServer("snowgate test", "0.0.1", server.WithToolCapabilities(true))
	require.NoError(t, g.RegisterMCPTools(srv))
}

func TestMCPToolCallHandler(t *testing.T) {
	g := newTestGateway(t, &Config{})

	t.Run("successful call returns text contents", func(t *testing.T) {
		handler := g.mcpToolCallHandler("read_query")

		req := mcp.CallToolRequest{}
		req.Params.Name = "read_query"
		req.Params.Arguments = map[string]any{"query": "SELECT kind FROM events ORDER BY id"}

		res, err := handler(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, res.IsError)
		require.Len(t, res.Content, 1)

		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "signup")
	})

	t.Run("dispatch error becomes tool error result", func(t *testing.T) {
		handler := g.mcpToolCallHandler("no_such_tool")

		req := mcp.CallToolRequest{}
		req.Params.Name = "no_such_tool"

		res, err := handler(context.Background(), req)
		require.NoError(t, err, "dispatch errors must not surface as protocol faults")
		assert.True(t, res.IsError)
	})
}
