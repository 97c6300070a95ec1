package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/failsight/failsight/core"
	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/internal/csvsource"
	"github.com/failsight/failsight/internal/history"
	"github.com/failsight/failsight/internal/outwriter"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// splitPaths parses a comma-separated path list, dropping empty entries.
func splitPaths(raw string) []string {
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

func (h *toolHandler) handleAnalyzeLogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.CSVPaths = splitPaths(request.GetString("csv_paths", ""))
	if len(cfg.CSVPaths) == 0 {
		return mcp.NewToolResultError("csv_paths must name at least one CSV file"), nil
	}
	if p := request.GetString("store_data", ""); p != "" {
		cfg.StoreDataPath = p
	}
	if c := request.GetString("error_code", ""); c != "" {
		cfg.ErrorCode = c
	}
	// Protocol traffic owns stdio; never echo errors mid-analysis.
	cfg.DebugErrorLimit = 0

	data, err := core.Run(ctx, cfg, csvsource.NewStoreDataFile(cfg.StoreDataPath), csvsource.Sources(cfg.CSVPaths))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	summary := outwriter.SummaryReport(data, cfg.OrderDisplayLimit, cfg.CustomerDisplayLimit)
	return mcp.NewToolResultText(summary), nil
}

func (h *toolHandler) handleValidateLogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.CSVPaths = splitPaths(request.GetString("csv_paths", ""))
	if len(cfg.CSVPaths) == 0 {
		return mcp.NewToolResultError("csv_paths must name at least one CSV file"), nil
	}

	report, err := core.Validate(ctx, cfg, csvsource.Sources(cfg.CSVPaths))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunHistory(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, err := history.NewStore(h.baseCfg.HistoryBackend, h.baseCfg.HistoryDBConnect)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history store unavailable: %v", err)), nil
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
