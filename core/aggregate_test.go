package core

import (
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitAt(ts time.Time, added, removed int) schema.ActivityEvent {
	delta := schema.CodeDelta{Added: added, Removed: removed}
	return schema.ActivityEvent{
		Kind:      schema.CommitEvent,
		Timestamp: ts,
		Magnitude: delta.Total(),
		CodeDelta: &delta,
	}
}

func eventAt(kind schema.EventKind, ts time.Time) schema.ActivityEvent {
	return schema.ActivityEvent{Kind: kind, Timestamp: ts}
}

func TestAggregateSharesOneGapFilledAxis(t *testing.T) {
	// Commits in W03 and W07, one issue in W05; weeks W04 and W06 are empty.
	events := []schema.ActivityEvent{
		commitAt(time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC), 5, 2),
		eventAt(schema.IssueEvent, time.Date(2025, time.January, 29, 10, 0, 0, 0, time.UTC)),
		commitAt(time.Date(2025, time.February, 12, 10, 0, 0, 0, time.UTC), 3, 0),
	}

	result := Aggregate(events, schema.WeekISOScheme, schema.AllMetrics)
	require.Len(t, result, len(schema.AllMetrics))

	commits := result[schema.MetricCommits]
	require.Len(t, commits.Periods, 5)
	assert.Equal(t, "2025-W03", commits.Periods[0].Label)
	assert.Equal(t, "2025-W07", commits.Periods[4].Label)
	assert.Equal(t, []int{1, 0, 0, 0, 1}, commits.Values)

	// Every series spans the same axis, including metrics with narrower
	// activity.
	issues := result[schema.MetricIssues]
	assert.Equal(t, commits.Periods, issues.Periods)
	assert.Equal(t, []int{0, 0, 1, 0, 0}, issues.Values)

	changes := result[schema.MetricCodeChanges]
	assert.Equal(t, []int{7, 0, 0, 0, 3}, changes.Values)
}

func TestAggregateTotalExcludesCodeChanges(t *testing.T) {
	ts := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	events := []schema.ActivityEvent{
		commitAt(ts, 500, 200),
		eventAt(schema.PullRequestEvent, ts),
		eventAt(schema.ReviewEvent, ts),
	}

	result := Aggregate(events, schema.MonthScheme, schema.AllMetrics)

	// Three events, not 703.
	assert.Equal(t, 3, result[schema.MetricTotalContributions].Total())
	assert.Equal(t, 700, result[schema.MetricCodeChanges].Total())
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	a := commitAt(time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), 1, 0)
	b := eventAt(schema.IssueEvent, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC))
	c := commitAt(time.Date(2025, time.January, 28, 0, 0, 0, 0, time.UTC), 2, 2)

	forward := Aggregate([]schema.ActivityEvent{a, b, c}, schema.MonthScheme, schema.AllMetrics)
	backward := Aggregate([]schema.ActivityEvent{c, b, a}, schema.MonthScheme, schema.AllMetrics)

	assert.Equal(t, forward, backward)
}

func TestAggregateSingleEvent(t *testing.T) {
	events := []schema.ActivityEvent{
		eventAt(schema.ReviewEvent, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)),
	}

	result := Aggregate(events, schema.MonthScheme, []schema.Metric{schema.MetricReviews})
	require.Len(t, result, 1)

	reviews := result[schema.MetricReviews]
	require.Len(t, reviews.Periods, 1)
	assert.Equal(t, "2025-06", reviews.Periods[0].Label)
	assert.Equal(t, []int{1}, reviews.Values)
}

func TestAggregateEmptyInput(t *testing.T) {
	result := Aggregate(nil, schema.WeekISOScheme, schema.AllMetrics)
	assert.Empty(t, result)
}

func TestAggregateIgnoresUnknownMetrics(t *testing.T) {
	events := []schema.ActivityEvent{
		eventAt(schema.CommitEvent, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)),
	}

	result := Aggregate(events, schema.MonthScheme, []schema.Metric{schema.MetricCommits, "bogus"})
	assert.Len(t, result, 1)
	assert.Contains(t, result, schema.MetricCommits)
}
