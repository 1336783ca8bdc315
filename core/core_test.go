package core

import (
	"context"
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
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

func summaryConfig() *contract.Config {
	return &contract.Config{
		Since:       time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Until:       time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Scheme:      schema.MonthScheme,
		RecentLimit: 2,
		Workers:     2,
		Subjects:    []string{"octocat"},
	}
}

func TestBuildUserSummary(t *testing.T) {
	src := new(MockDataSource)
	src.On("User", mock.Anything, "octocat").Return(schema.UserProfile{Login: "octocat", Name: "The Octocat"}, nil)
	src.On("Records", mock.Anything, "octocat", schema.CommitEvent, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-01-05T10:00:00Z", Repository: "octocat/hello-world", Title: "initial import", Additions: 10, Deletions: 2},
		{Timestamp: "2025-01-20T10:00:00Z", Repository: "octocat/hello-world", Title: "fix readme", Additions: 3, Deletions: 1},
		{Timestamp: "garbage", Repository: "octocat/hello-world"},
		{Timestamp: "2025-01-12T10:00:00Z", Repository: "octocat/hello-world", Title: "add tests"},
	}, nil)
	src.On("Records", mock.Anything, "octocat", schema.PullRequestEvent, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-02-08T10:00:00Z", Repository: "octocat/hello-world", Title: "feature", State: "open"},
	}, nil)
	src.On("Records", mock.Anything, "octocat", schema.IssueEvent, mock.Anything).Return(nil, nil)
	src.On("Records", mock.Anything, "octocat", schema.ReviewEvent, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-03-15T10:00:00Z", Repository: "octocat/hello-world", Title: "feature"},
	}, nil)

	summary, err := BuildUserSummary(context.Background(), summaryConfig(), src, "octocat")
	require.NoError(t, err)
	src.AssertExpectations(t)

	assert.Equal(t, "octocat", summary.User.Login)
	assert.Equal(t, 90, summary.ActivityPeriod.Days)
	assert.Equal(t, 1, summary.MalformedCount)

	assert.Equal(t, 3, summary.Counts[schema.MetricCommits])
	assert.Equal(t, 1, summary.Counts[schema.MetricPullRequests])
	assert.Zero(t, summary.Counts[schema.MetricIssues])
	assert.Equal(t, 1, summary.Counts[schema.MetricReviews])
	assert.Equal(t, 5, summary.Counts[schema.MetricTotalContributions])

	assert.Equal(t, 13, summary.CodeChanges.Additions)
	assert.Equal(t, 3, summary.CodeChanges.Deletions)
	assert.Equal(t, 16, summary.Counts[schema.MetricCodeChanges])

	// Recent rows are newest first and capped at the configured limit.
	recent := summary.Recent[schema.CommitEvent]
	require.Len(t, recent, 2)
	assert.Equal(t, "fix readme", recent[0].Title)
	assert.Equal(t, "add tests", recent[1].Title)

	// The configured scheme produces aggregation and trends.
	require.Contains(t, summary.Aggregated, schema.MetricTotalContributions)
	total := summary.Aggregated[schema.MetricTotalContributions]
	assert.Equal(t, "2025-01", total.Periods[0].Label)
	assert.Equal(t, []int{3, 1, 1}, total.Values)
	assert.Equal(t, schema.DirectionDecreasing, summary.Trends[schema.MetricTotalContributions].Direction)
}

func TestBuildUserSummaryWithoutScheme(t *testing.T) {
	src := new(MockDataSource)
	src.On("User", mock.Anything, "octocat").Return(schema.UserProfile{Login: "octocat"}, nil)
	src.On("Records", mock.Anything, "octocat", mock.Anything, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-01-05T10:00:00Z", Repository: "octocat/hello-world"},
	}, nil)

	cfg := summaryConfig()
	cfg.Scheme = ""
	cfg.RecentLimit = 0

	summary, err := BuildUserSummary(context.Background(), cfg, src, "octocat")
	require.NoError(t, err)

	assert.Nil(t, summary.Aggregated)
	assert.Nil(t, summary.Trends)
	assert.Nil(t, summary.Recent)
	assert.Equal(t, 4, summary.Counts[schema.MetricTotalContributions])
}

func TestBuildUserSummaryProfileError(t *testing.T) {
	src := new(MockDataSource)
	src.On("User", mock.Anything, "ghost").Return(schema.UserProfile{}, assert.AnError)

	_, err := BuildUserSummary(context.Background(), summaryConfig(), src, "ghost")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuildComparison(t *testing.T) {
	src := new(MockDataSource)
	src.On("Records", mock.Anything, "alice", schema.CommitEvent, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-01-10T10:00:00Z", Repository: "alice/app"},
		{Timestamp: "2025-01-11T10:00:00Z", Repository: "alice/app"},
	}, nil)
	src.On("Records", mock.Anything, "alice", mock.Anything, mock.Anything).Return(nil, nil)
	src.On("Records", mock.Anything, "bob", schema.CommitEvent, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-03-10T10:00:00Z", Repository: "bob/app"},
	}, nil)
	src.On("Records", mock.Anything, "bob", mock.Anything, mock.Anything).Return(nil, nil)

	cfg := summaryConfig()
	cfg.Scheme = schema.MonthScheme
	cfg.Subjects = []string{"alice", "bob"}

	report, err := BuildComparison(context.Background(), cfg, src)
	require.NoError(t, err)

	require.Len(t, report.UnionPeriods, 3)
	assert.Equal(t, schema.MonthScheme, report.Scheme)

	var total schema.Ranking
	for _, r := range report.Rankings {
		if r.Measure == schema.RankTotalActivity {
			total = r
		}
	}
	require.Len(t, total.Entries, 2)
	assert.Equal(t, "alice", total.Entries[0].Subject)
	assert.Equal(t, float64(2), total.Entries[0].Value)
	assert.Equal(t, "bob", total.Entries[1].Subject)
}

func TestBuildComparisonDefaultsToWeeklyScheme(t *testing.T) {
	src := new(MockDataSource)
	src.On("Records", mock.Anything, "alice", schema.CommitEvent, mock.Anything).Return([]schema.RawRecord{
		{Timestamp: "2025-01-10T10:00:00Z", Repository: "alice/app"},
	}, nil)
	src.On("Records", mock.Anything, "alice", mock.Anything, mock.Anything).Return(nil, nil)

	cfg := summaryConfig()
	cfg.Scheme = ""
	cfg.Subjects = []string{"alice"}

	report, err := BuildComparison(context.Background(), cfg, src)
	require.NoError(t, err)
	assert.Equal(t, schema.WeekISOScheme, report.Scheme)
}

func TestBuildComparisonFetchError(t *testing.T) {
	src := new(MockDataSource)
	src.On("Records", mock.Anything, "alice", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	cfg := summaryConfig()
	cfg.Subjects = []string{"alice"}

	_, err := BuildComparison(context.Background(), cfg, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alice")
}
