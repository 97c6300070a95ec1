package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/failsight/failsight/internal/contract"
	mcp_internal "github.com/failsight/failsight/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		MessageColumn:        "Message",
		ServiceColumn:        "Service",
		TimestampColumn:      "Date",
		ErrorCode:            "503",
		OrderDisplayLimit:    contract.DefaultOrderLimit,
		CustomerDisplayLimit: contract.DefaultCustomerLimit,
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())

	t.Run("analyze_logs missing csv_paths", func(t *testing.T) {
		res := callTool(t, s, "analyze_logs", map[string]any{"csv_paths": ""})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "csv_paths must name at least one CSV file")
	})

	t.Run("validate_logs missing csv_paths", func(t *testing.T) {
		res := callTool(t, s, "validate_logs", map[string]any{"csv_paths": " , "})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "csv_paths must name at least one CSV file")
	})

	t.Run("analyze_logs missing file", func(t *testing.T) {
		res := callTool(t, s, "analyze_logs", map[string]any{
			"csv_paths": filepath.Join(t.TempDir(), "nope.csv"),
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}

func TestMCPServerHandlers_AnalyzeLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	content := "Date,Service,Message\n" +
		`2025-06-18T21:20:48.1Z,order-service,"Order created {\""orderId\"": \""ORD-1\""}"` + "\n" +
		"2025-06-18T21:20:48.9Z,order-service,503 Service Unavailable\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := mcp_internal.NewMCPServer(baseConfig())
	res := callTool(t, s, "analyze_logs", map[string]any{"csv_paths": path})

	require.False(t, res.IsError)
	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "Rows processed: 2")
	assert.Contains(t, text, "503 errors: 1")
	assert.Contains(t, text, "order ORD-1: 1 errors")
}

func TestMCPServerHandlers_ValidateLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	content := "Date,Service,Message\n" +
		"2025-06-18T21:20:48Z,order-service,healthy row\n" +
		"2025-06-18T21:20:49Z,order-service,HTTP Error 503\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := mcp_internal.NewMCPServer(baseConfig())
	res := callTool(t, s, "validate_logs", map[string]any{"csv_paths": path})

	require.False(t, res.IsError)
	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, `"total_rows": 2`)
	assert.Contains(t, text, `"error_503_count": 1`)
}
