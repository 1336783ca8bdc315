package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.ActivityDataSource
}

func (h *toolHandler) handleGetActivitySummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	username := request.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}
	if err := applyWindowArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if r := request.GetString("repository", ""); r != "" {
		cfg.Repository = r
	}

	summary, err := core.BuildUserSummary(ctx, cfg, h.src, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	username := request.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}
	if err := applyWindowArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if cfg.Scheme == "" {
		// Trends need buckets even when the server default has none.
		cfg.Scheme, _ = contract.ResolveScheme("week", "")
	}

	summary, err := core.BuildUserSummary(ctx, cfg, h.src, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary.Trends, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	usernames := splitUsernames(request.GetString("usernames", ""))
	if len(usernames) == 0 {
		return mcp.NewToolResultError("usernames is required"), nil
	}
	cfg.Subjects = usernames
	if err := applyWindowArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	comparison, err := core.BuildComparison(ctx, cfg, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(comparison, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyWindowArgs applies the shared days/aggregation arguments to a cloned
// config.
func applyWindowArgs(cfg *contract.Config, request mcp.CallToolRequest) error {
	if d := request.GetInt("days", 0); d > 0 {
		cfg.Until = time.Now().UTC()
		cfg.Since = cfg.Until.AddDate(0, 0, -d)
	}
	if a := request.GetString("aggregation", ""); a != "" {
		scheme, err := contract.ResolveScheme(a, "")
		if err != nil {
			return fmt.Errorf("invalid aggregation: %v", err)
		}
		cfg.Scheme = scheme
	}
	return nil
}

// splitUsernames parses a comma-separated username list, dropping blanks.
func splitUsernames(raw string) []string {
	var usernames []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			usernames = append(usernames, name)
		}
	}
	return usernames
}
