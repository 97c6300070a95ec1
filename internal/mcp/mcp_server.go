// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/failsight/failsight/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the failsight MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Failsight Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: analyze_logs ---
	s.AddTool(mcp.NewTool("analyze_logs",
		mcp.WithDescription("Analyze CSV log exports for 503 Service Unavailable errors, correlating them to orders, stores and customers."),
		mcp.WithString("csv_paths", mcp.Description("Comma-separated paths to the CSV log export files."), mcp.Required()),
		mcp.WithString("store_data", mcp.Description("Optional path to a store directory CSV (posStoreId,name).")),
		mcp.WithString("error_code", mcp.Description("Error code substring to detect. Defaults to '503'.")),
	), h.handleAnalyzeLogs)

	// --- 2. Tool: validate_logs ---
	s.AddTool(mcp.NewTool("validate_logs",
		mcp.WithDescription("Cross-check CSV log exports with independent tallies of rows, errors, orders and customers."),
		mcp.WithString("csv_paths", mcp.Description("Comma-separated paths to the CSV log export files."), mcp.Required()),
	), h.handleValidateLogs)

	// --- 3. Tool: get_run_history ---
	s.AddTool(mcp.NewTool("get_run_history",
		mcp.WithDescription("List previously recorded analysis runs from the history store."),
	), h.handleGetRunHistory)

	return s
}

// StartMCPServer starts the failsight MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
