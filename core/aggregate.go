package core

import (
	"github.com/gitpulse/gitpulse/schema"
)

// metricRule computes one event's contribution to a metric's bucket.
// Every metric has exactly one rule; adding a metric means adding one
// entry here, not touching the aggregation loop.
type metricRule func(ev schema.ActivityEvent) int

// countKind builds a rule that counts events of a single kind.
func countKind(kind schema.EventKind) metricRule {
	return func(ev schema.ActivityEvent) int {
		if ev.Kind == kind {
			return 1
		}
		return 0
	}
}

var metricRules = map[schema.Metric]metricRule{
	schema.MetricCommits:      countKind(schema.CommitEvent),
	schema.MetricPullRequests: countKind(schema.PullRequestEvent),
	schema.MetricIssues:       countKind(schema.IssueEvent),
	schema.MetricReviews:      countKind(schema.ReviewEvent),
	schema.MetricCodeChanges: func(ev schema.ActivityEvent) int {
		if ev.Kind == schema.CommitEvent && ev.CodeDelta != nil {
			return ev.CodeDelta.Total()
		}
		return 0
	},
	// code_changes is excluded from the total so line counts don't drown
	// out the event counts.
	schema.MetricTotalContributions: func(_ schema.ActivityEvent) int {
		return 1
	},
}

// Aggregate buckets events into calendar periods under the given scheme and
// produces one gap-filled series per requested metric. The period axis is
// computed once, from the earliest to the latest event across all metrics,
// so every returned series shares an identical Periods sequence; trend
// analysis and comparison both rely on that index alignment.
//
// Aggregation is a single pass over the events and is independent of input
// order. An empty event set yields an empty mapping.
func Aggregate(events []schema.ActivityEvent, scheme schema.PeriodScheme, metrics []schema.Metric) map[schema.Metric]schema.AggregatedSeries {
	result := make(map[schema.Metric]schema.AggregatedSeries)
	if len(events) == 0 {
		return result
	}

	// 1. Find the overall time span across all events.
	earliest, latest := events[0].Timestamp, events[0].Timestamp
	for _, ev := range events[1:] {
		if ev.Timestamp.Before(earliest) {
			earliest = ev.Timestamp
		}
		if ev.Timestamp.After(latest) {
			latest = ev.Timestamp
		}
	}

	// 2. Build the shared contiguous axis and a label index into it.
	axis := SequenceBetween(PeriodFor(earliest, scheme), PeriodFor(latest, scheme), scheme)
	index := make(map[string]int, len(axis))
	for i, p := range axis {
		index[p.Label] = i
	}

	// 3. Allocate zero-filled value rows so zero-activity periods stay
	// explicit.
	values := make(map[schema.Metric][]int, len(metrics))
	for _, m := range metrics {
		if _, ok := metricRules[m]; !ok {
			continue // unknown metric names are ignored, not fatal
		}
		values[m] = make([]int, len(axis))
	}

	// 4. Fold every event into every requested metric's bucket.
	for _, ev := range events {
		i := index[PeriodFor(ev.Timestamp, scheme).Label]
		for m, row := range values {
			row[i] += metricRules[m](ev)
		}
	}

	for m, row := range values {
		result[m] = schema.AggregatedSeries{Metric: m, Periods: axis, Values: row}
	}
	return result
}
