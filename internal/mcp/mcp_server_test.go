package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDataSource is a mock implementation of contract.ActivityDataSource.
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) User(ctx context.Context, username string) (schema.UserProfile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(schema.UserProfile), args.Error(1)
}

func (m *MockDataSource) Records(ctx context.Context, username string, kind schema.EventKind, opts contract.QueryOptions) ([]schema.RawRecord, error) {
	args := m.Called(ctx, username, kind, opts)
	var records []schema.RawRecord
	if v := args.Get(0); v != nil {
		records = v.([]schema.RawRecord)
	}
	return records, args.Error(1)
}

func baseConfig() *contract.Config {
	return &contract.Config{
		Since:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Until:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Workers: 2,
	}
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewMCPServer(t *testing.T) {
	s := NewMCPServer(baseConfig(), new(MockDataSource))
	assert.NotNil(t, s)
}

func TestHandleGetActivitySummary(t *testing.T) {
	src := new(MockDataSource)
	src.On("User", mock.Anything, "octocat").Return(schema.UserProfile{Login: "octocat"}, nil)
	src.On("Records", mock.Anything, "octocat", mock.Anything, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-01-10T10:00:00Z", Repository: "octocat/hello-world"},
	}, nil)

	h := &toolHandler{baseCfg: baseConfig(), src: src}
	result, err := h.handleGetActivitySummary(context.Background(), toolRequest(map[string]any{"username": "octocat"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var summary schema.UserSummary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &summary))
	assert.Equal(t, "octocat", summary.User.Login)
	assert.Equal(t, 4, summary.Counts[schema.MetricTotalContributions])
}

func TestHandleGetActivitySummaryRequiresUsername(t *testing.T) {
	h := &toolHandler{baseCfg: baseConfig(), src: new(MockDataSource)}
	result, err := h.handleGetActivitySummary(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetActivitySummaryRejectsBadAggregation(t *testing.T) {
	h := &toolHandler{baseCfg: baseConfig(), src: new(MockDataSource)}
	result, err := h.handleGetActivitySummary(context.Background(), toolRequest(map[string]any{
		"username":    "octocat",
		"aggregation": "daily",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetTrendsDefaultsToWeekly(t *testing.T) {
	src := new(MockDataSource)
	src.On("User", mock.Anything, "octocat").Return(schema.UserProfile{Login: "octocat"}, nil)
	src.On("Records", mock.Anything, "octocat", mock.Anything, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-01-10T10:00:00Z", Repository: "octocat/hello-world"},
		{Timestamp: "2025-02-10T10:00:00Z", Repository: "octocat/hello-world"},
	}, nil)

	h := &toolHandler{baseCfg: baseConfig(), src: src}
	result, err := h.handleGetTrends(context.Background(), toolRequest(map[string]any{"username": "octocat"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var trends map[schema.Metric]schema.TrendReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &trends))
	require.Contains(t, trends, schema.MetricTotalContributions)
	// The default weekly buckets show in the peak period label.
	assert.Equal(t, schema.WeekISOScheme, trends[schema.MetricTotalContributions].PeakPeriod.Scheme)
}

func TestHandleCompareUsers(t *testing.T) {
	src := new(MockDataSource)
	src.On("Records", mock.Anything, "alice", mock.Anything, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-01-10T10:00:00Z", Repository: "alice/app"},
	}, nil)
	src.On("Records", mock.Anything, "bob", mock.Anything, mock.Anything).Return(nil, nil)

	h := &toolHandler{baseCfg: baseConfig(), src: src}
	result, err := h.handleCompareUsers(context.Background(), toolRequest(map[string]any{
		"usernames":   "alice, bob",
		"aggregation": "month",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var comparison schema.ComparisonReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &comparison))
	assert.Equal(t, schema.MonthScheme, comparison.Scheme)
	assert.Contains(t, comparison.PerSubject, "alice")
	assert.Contains(t, comparison.PerSubject, "bob")
}

func TestHandleCompareUsersRequiresUsernames(t *testing.T) {
	h := &toolHandler{baseCfg: baseConfig(), src: new(MockDataSource)}
	result, err := h.handleCompareUsers(context.Background(), toolRequest(map[string]any{"usernames": " , "}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestSplitUsernames(t *testing.T) {
	assert.Equal(t, []string{"alice", "bob"}, splitUsernames("alice, bob"))
	assert.Equal(t, []string{"alice"}, splitUsernames("alice"))
	assert.Nil(t, splitUsernames(" , ,"))
	assert.Nil(t, splitUsernames(""))
}
