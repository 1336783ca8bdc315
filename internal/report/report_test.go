package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthPeriod(year int, month time.Month) schema.Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return schema.Period{
		Scheme: schema.MonthScheme,
		Label:  start.Format("2006-01"),
		Start:  start,
		End:    start.AddDate(0, 1, 0),
	}
}

func sampleSummary() *schema.UserSummary {
	periods := []schema.Period{monthPeriod(2025, time.January), monthPeriod(2025, time.February)}

	aggregated := make(map[schema.Metric]schema.AggregatedSeries, len(schema.AllMetrics))
	for _, metric := range schema.AllMetrics {
		aggregated[metric] = schema.AggregatedSeries{Metric: metric, Periods: periods, Values: []int{0, 0}}
	}
	aggregated[schema.MetricCommits] = schema.AggregatedSeries{
		Metric: schema.MetricCommits, Periods: periods, Values: []int{4, 6},
	}
	aggregated[schema.MetricTotalContributions] = schema.AggregatedSeries{
		Metric: schema.MetricTotalContributions, Periods: periods, Values: []int{5, 7},
	}

	return &schema.UserSummary{
		User: schema.UserProfile{Login: "octocat", Name: "The Octocat"},
		ActivityPeriod: schema.ActivityPeriod{
			Since: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			Until: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			Days:  59,
		},
		Counts: map[schema.Metric]int{
			schema.MetricCommits:            10,
			schema.MetricPullRequests:       2,
			schema.MetricTotalContributions: 12,
		},
		Scheme:     schema.MonthScheme,
		Aggregated: aggregated,
		Trends: map[schema.Metric]schema.TrendReport{
			schema.MetricCommits: {
				Metric:      schema.MetricCommits,
				Total:       10,
				Direction:   schema.DirectionIncreasing,
				ChangeRatio: 0.5,
				PeakPeriod:  periods[1],
				PeakValue:   6,
			},
		},
		Recent: map[schema.EventKind][]schema.RecentItem{
			schema.CommitEvent: {
				{Date: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), Repository: "octocat/hello-world", Title: "fix parser"},
			},
		},
	}
}

func sampleComparison() schema.ComparisonReport {
	periods := []schema.Period{monthPeriod(2025, time.January), monthPeriod(2025, time.February)}

	subject := func(name string, totals int) schema.SubjectComparison {
		values := make(map[schema.Metric][]int, len(schema.AllMetrics))
		totalMap := make(map[schema.Metric]int, len(schema.AllMetrics))
		avg := make(map[schema.Metric]float64, len(schema.AllMetrics))
		for _, metric := range schema.AllMetrics {
			values[metric] = []int{totals, 0}
			totalMap[metric] = totals
			avg[metric] = float64(totals) / 59
		}
		return schema.SubjectComparison{Subject: name, Values: values, Totals: totalMap, DailyAverages: avg}
	}

	return schema.ComparisonReport{
		Scheme:       schema.MonthScheme,
		UnionPeriods: periods,
		ElapsedDays:  59,
		PerSubject: map[string]schema.SubjectComparison{
			"alice": subject("alice", 8),
			"bob":   subject("bob", 3),
		},
		Rankings: []schema.Ranking{
			{
				Measure: schema.RankTotalActivity,
				Entries: []schema.RankEntry{
					{Rank: 1, Subject: "alice", Value: 8},
					{Rank: 2, Subject: "bob", Value: 3},
				},
			},
		},
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeSummaryCSV(w, sampleSummary(), &contract.Config{Precision: 1}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"section", "metric", "period", "value"}, rows[0])

	// One counts row per metric, then the per-period series, then trends.
	// Every metric has a two-period series in the fixture.
	assert.Len(t, rows, 1+len(schema.AllMetrics)+len(schema.AllMetrics)*2+1)

	assert.Equal(t, []string{"counts", "commits", "", "10"}, rows[1])
	assert.Contains(t, rows, []string{"series", "commits", "2025-02", "6"})
	assert.Contains(t, rows, []string{"trend", "commits", "2025-02", "Increasing 50.0"})
}

func TestWriteComparisonCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeComparisonCSV(w, sampleComparison(), &contract.Config{Precision: 1}))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"section", "measure", "rank", "subject", "value"}, rows[0])
	assert.Equal(t, []string{"ranking", "total_activity", "1", "alice", "8.0"}, rows[1])
	assert.Equal(t, []string{"ranking", "total_activity", "2", "bob", "3.0"}, rows[2])
}

func TestSummaryTemplateRenders(t *testing.T) {
	var buf bytes.Buffer
	page := summaryPage{
		Summary: sampleSummary(),
		Metrics: schema.AllMetrics,
		Kinds:   schema.AllEventKinds,
		Titles:  kindTitles,
	}
	require.NoError(t, reportTemplates.ExecuteTemplate(&buf, "summary.html.tmpl", page))

	html := buf.String()
	assert.Contains(t, html, "Activity report for octocat (The Octocat)")
	assert.Contains(t, html, "2025-01-01")
	assert.Contains(t, html, "+50.0%")
	assert.Contains(t, html, "fix parser")
}

func TestCompareTemplateRenders(t *testing.T) {
	comparison := sampleComparison()
	page := comparisonPage{
		Comparison: comparison,
		Metrics:    schema.AllMetrics,
		Subjects:   []string{"alice", "bob"},
		SpanStart:  comparison.UnionPeriods[0].Start,
		SpanEnd:    comparison.UnionPeriods[1].End,
	}

	var buf bytes.Buffer
	require.NoError(t, reportTemplates.ExecuteTemplate(&buf, "compare.html.tmpl", page))

	html := buf.String()
	assert.Contains(t, html, "over 59 days and 2 periods")
	assert.Contains(t, html, "Ranking by total_activity")
	assert.Contains(t, html, "alice")
}

func TestWriteSummaryParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.parquet")
	require.NoError(t, writeSummaryParquet(sampleSummary(), path))

	rows, err := parquet.ReadFile[SeriesRow](path)
	require.NoError(t, err)
	assert.Len(t, rows, len(schema.AllMetrics)*2)

	// Long-form rows keep the subject on every observation.
	assert.Equal(t, "octocat", rows[0].Subject)
}

func TestWriteSummaryParquetRequiresAggregation(t *testing.T) {
	summary := sampleSummary()
	summary.Aggregated = nil

	err := writeSummaryParquet(summary, filepath.Join(t.TempDir(), "summary.parquet"))
	assert.Error(t, err)
}

func TestWriteComparisonParquetRequiresOutputFile(t *testing.T) {
	assert.Error(t, writeComparisonParquet(sampleComparison(), ""))
}

func TestWriteTrendsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.parquet")
	require.NoError(t, WriteTrendsParquet(sampleSummary(), path))

	rows, err := parquet.ReadFile[TrendRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "commits", rows[0].Metric)
	assert.Equal(t, "increasing", rows[0].Direction)
	assert.Equal(t, int64(6), rows[0].PeakValue)
}

func TestExportSummaryParquetRequiresOutputFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}
	err := ExportSummary(sampleSummary(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}
