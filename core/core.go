// Package core has core logic for normalization, aggregation, trend
// analysis and comparison of developer activity.
package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/report"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/sourcegraph/conc/pool"
)

// ExecutorFunc defines the function signature for executing different
// commands against a data source.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.ActivityDataSource) error

// ExecuteSummary builds the activity summary for one subject and prints it.
// It serves as the main entry point for the 'summary' command.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, src contract.ActivityDataSource) error {
	start := time.Now()
	summary, err := BuildUserSummary(ctx, cfg, src, cfg.Subjects[0])
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return report.PrintSummary(summary, cfg, duration)
}

// ExecuteCompare builds aggregated series for every subject concurrently,
// aligns them on a shared period axis and prints the rankings. It serves as
// the main entry point for the 'compare' command.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, src contract.ActivityDataSource) error {
	start := time.Now()
	comparison, err := BuildComparison(ctx, cfg, src)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return report.PrintComparison(comparison, cfg, duration)
}

// BuildComparison fetches and aggregates every subject concurrently, bounded
// by the configured worker count, then aligns the results on a shared period
// axis.
func BuildComparison(ctx context.Context, cfg *contract.Config, src contract.ActivityDataSource) (schema.ComparisonReport, error) {
	// Comparison always needs a period axis; fall back to ISO weeks when
	// the user did not ask for a specific aggregation.
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = schema.WeekISOScheme
	}

	type subjectSeries struct {
		subject string
		series  map[schema.Metric]schema.AggregatedSeries
	}

	p := pool.NewWithResults[subjectSeries]().
		WithContext(ctx).
		WithMaxGoroutines(cfg.Workers).
		WithCancelOnError()
	for _, subject := range cfg.Subjects {
		p.Go(func(ctx context.Context) (subjectSeries, error) {
			events, _, err := fetchAndNormalize(ctx, cfg, src, subject)
			if err != nil {
				return subjectSeries{}, fmt.Errorf("subject %s: %w", subject, err)
			}
			return subjectSeries{
				subject: subject,
				series:  Aggregate(events, scheme, schema.AllMetrics),
			}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return schema.ComparisonReport{}, err
	}

	seriesBySubject := make(map[string]map[schema.Metric]schema.AggregatedSeries, len(results))
	for _, r := range results {
		seriesBySubject[r.subject] = r.series
	}

	return Compare(seriesBySubject)
}

// ExecuteExport builds the activity summary for one subject and writes it to
// the configured output file in the configured format. It serves as the main
// entry point for the 'export' command.
func ExecuteExport(ctx context.Context, cfg *contract.Config, src contract.ActivityDataSource) error {
	summary, err := BuildUserSummary(ctx, cfg, src, cfg.Subjects[0])
	if err != nil {
		return err
	}
	if err := report.ExportSummary(summary, cfg); err != nil {
		return err
	}
	if cfg.TrendsFile != "" {
		return report.WriteTrendsParquet(summary, cfg.TrendsFile)
	}
	return nil
}

// BuildUserSummary runs the full per-subject pipeline: fetch, normalize,
// count, aggregate and analyze. Aggregated series and trends are only
// produced when a bucketing scheme is configured.
func BuildUserSummary(ctx context.Context, cfg *contract.Config, src contract.ActivityDataSource, subject string) (*schema.UserSummary, error) {
	profile, err := src.User(ctx, subject)
	if err != nil {
		return nil, err
	}

	opts := contract.QueryOptions{
		Since:           cfg.Since,
		Until:           cfg.Until,
		Repository:      cfg.Repository,
		ExcludePersonal: cfg.ExcludePersonal,
	}

	summary := &schema.UserSummary{
		User: profile,
		ActivityPeriod: schema.ActivityPeriod{
			Since: cfg.Since,
			Until: cfg.Until,
			Days:  int(cfg.Until.Sub(cfg.Since).Hours() / 24),
		},
		Counts: make(map[schema.Metric]int, len(schema.AllMetrics)),
		Scheme: cfg.Scheme,
	}

	var events []schema.ActivityEvent
	for _, kind := range schema.AllEventKinds {
		records, err := src.Records(ctx, subject, kind, opts)
		if err != nil {
			return nil, err
		}
		kindEvents, malformed := Normalize(records, kind)
		events = append(events, kindEvents...)
		summary.MalformedCount += malformed

		if cfg.RecentLimit > 0 {
			if summary.Recent == nil {
				summary.Recent = make(map[schema.EventKind][]schema.RecentItem, len(schema.AllEventKinds))
			}
			summary.Recent[kind] = recentItems(records, cfg.RecentLimit)
		}
	}

	for metric, kind := range schema.KindForMetric {
		summary.Counts[metric] = countEvents(events, kind)
	}
	for _, ev := range events {
		summary.Counts[schema.MetricTotalContributions]++
		if ev.Kind == schema.CommitEvent && ev.CodeDelta != nil {
			summary.CodeChanges.Additions += ev.CodeDelta.Added
			summary.CodeChanges.Deletions += ev.CodeDelta.Removed
		}
	}
	summary.CodeChanges.Total = summary.CodeChanges.Additions + summary.CodeChanges.Deletions
	summary.Counts[schema.MetricCodeChanges] = summary.CodeChanges.Total

	if cfg.Scheme != "" && len(events) > 0 {
		summary.Aggregated = Aggregate(events, cfg.Scheme, schema.AllMetrics)
		summary.Trends = make(map[schema.Metric]schema.TrendReport, len(summary.Aggregated))
		for metric, series := range summary.Aggregated {
			trend, err := AnalyzeTrend(series)
			if err != nil {
				return nil, fmt.Errorf("analyzing %s trend: %w", metric, err)
			}
			summary.Trends[metric] = trend
		}
	}

	return summary, nil
}

// fetchAndNormalize pulls every event kind for a subject and normalizes the
// records into a single event slice.
func fetchAndNormalize(ctx context.Context, cfg *contract.Config, src contract.ActivityDataSource, subject string) ([]schema.ActivityEvent, int, error) {
	opts := contract.QueryOptions{
		Since:           cfg.Since,
		Until:           cfg.Until,
		Repository:      cfg.Repository,
		ExcludePersonal: cfg.ExcludePersonal,
	}

	var events []schema.ActivityEvent
	malformed := 0
	for _, kind := range schema.AllEventKinds {
		records, err := src.Records(ctx, subject, kind, opts)
		if err != nil {
			return nil, 0, err
		}
		kindEvents, bad := Normalize(records, kind)
		events = append(events, kindEvents...)
		malformed += bad
	}
	return events, malformed, nil
}

// countEvents counts the events of one kind.
func countEvents(events []schema.ActivityEvent, kind schema.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// recentItems picks the most recent records for display, newest first.
// Records without a parseable timestamp are skipped here the same way the
// normalizer skips them.
func recentItems(records []schema.RawRecord, limit int) []schema.RecentItem {
	items := make([]schema.RecentItem, 0, len(records))
	for _, r := range records {
		ts, ok := parseRawTime(r.Timestamp)
		if !ok {
			continue
		}
		items = append(items, schema.RecentItem{
			Date:       ts,
			Repository: r.Repository,
			Title:      r.Title,
			State:      r.State,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
