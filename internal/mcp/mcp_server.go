// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the GitPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.ActivityDataSource) *server.MCPServer {
	s := server.NewMCPServer(
		"GitPulse Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
	}

	// --- 1. Tool: get_activity_summary ---
	s.AddTool(mcp.NewTool("get_activity_summary",
		mcp.WithDescription("Summarize a GitHub user's activity: commits, pull requests, issues, reviews and code changes over a time window."),
		mcp.WithString("username", mcp.Description("GitHub username to summarize."), mcp.Required()),
		mcp.WithNumber("days", mcp.Description("Lookback window in days. Defaults to the server's configured window.")),
		mcp.WithString("aggregation", mcp.Description("Bucket activity per period (week or month)."), mcp.Enum("week", "month")),
		mcp.WithString("repository", mcp.Description("Restrict to one repository in owner/name form.")),
	), h.handleGetActivitySummary)

	// --- 2. Tool: get_trends ---
	s.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Analyze per-metric activity trends for a GitHub user: direction, change ratio and peak period."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze."), mcp.Required()),
		mcp.WithString("aggregation", mcp.Description("Bucketing scheme (week or month). Defaults to week."), mcp.Enum("week", "month")),
		mcp.WithNumber("days", mcp.Description("Lookback window in days.")),
	), h.handleGetTrends)

	// --- 3. Tool: compare_users ---
	s.AddTool(mcp.NewTool("compare_users",
		mcp.WithDescription("Compare multiple GitHub users' activity on a shared period axis and rank them."),
		mcp.WithString("usernames", mcp.Description("Comma-separated GitHub usernames (at least one)."), mcp.Required()),
		mcp.WithString("aggregation", mcp.Description("Bucketing scheme (week or month). Defaults to week."), mcp.Enum("week", "month")),
		mcp.WithNumber("days", mcp.Description("Lookback window in days.")),
	), h.handleCompareUsers)

	return s
}

// StartMCPServer starts the GitPulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.ActivityDataSource) error {
	s := NewMCPServer(baseCfg, src)
	return server.ServeStdio(s)
}
