package report

import (
	"fmt"
	"os"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesRow is one (subject, metric, period) observation in long form.
// Long form keeps the file schema stable when metrics are added.
type SeriesRow struct {
	// Subject is the username the observation belongs to
	Subject string `parquet:"subject,snappy"`

	// Metric names the measure, e.g. "commits" or "total_contributions"
	Metric string `parquet:"metric,snappy"`

	// PeriodLabel is the canonical bucket label, e.g. "2025-W07" or "2025-02"
	PeriodLabel string `parquet:"period_label,snappy"`

	// PeriodStart is the inclusive start of the bucket (UTC)
	PeriodStart time.Time `parquet:"period_start,snappy"`

	// PeriodEnd is the exclusive end of the bucket (UTC)
	PeriodEnd time.Time `parquet:"period_end,snappy"`

	// Value is the bucket's aggregated value
	Value int64 `parquet:"value,snappy"`
}

// TrendRow is one metric's trend facts for a subject.
type TrendRow struct {
	// Subject is the username the trend belongs to
	Subject string `parquet:"subject,snappy"`

	// Metric names the analyzed measure
	Metric string `parquet:"metric,snappy"`

	// Direction is "increasing", "decreasing" or "stable"
	Direction string `parquet:"direction,snappy"`

	// ChangeRatio is the relative change between the series halves
	ChangeRatio float64 `parquet:"change_ratio,snappy"`

	// EmergedFromZero marks a series whose first half was entirely zero
	EmergedFromZero bool `parquet:"emerged_from_zero,snappy"`

	// PeakLabel is the label of the peak period
	PeakLabel string `parquet:"peak_label,snappy"`

	// PeakValue is the value of the peak period
	PeakValue int64 `parquet:"peak_value,snappy"`

	// Total is the sum over the whole series
	Total int64 `parquet:"total,snappy"`
}

// writeSummaryParquet writes a subject's aggregated series to a Parquet file.
func writeSummaryParquet(summary *schema.UserSummary, outputPath string) error {
	if len(summary.Aggregated) == 0 {
		return fmt.Errorf("parquet export requires an aggregation; set --aggregation week or month")
	}

	var rows []SeriesRow
	for _, metric := range schema.AllMetrics {
		series, ok := summary.Aggregated[metric]
		if !ok {
			continue
		}
		for i, p := range series.Periods {
			rows = append(rows, SeriesRow{
				Subject:     summary.User.Login,
				Metric:      string(metric),
				PeriodLabel: p.Label,
				PeriodStart: p.Start,
				PeriodEnd:   p.End,
				Value:       int64(series.Values[i]),
			})
		}
	}
	return writeParquetRows(rows, outputPath)
}

// writeComparisonParquet writes every subject's union-aligned series to a
// Parquet file.
func writeComparisonParquet(comparison schema.ComparisonReport, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	var rows []SeriesRow
	for subject, sc := range comparison.PerSubject {
		for _, metric := range schema.AllMetrics {
			values, ok := sc.Values[metric]
			if !ok {
				continue
			}
			for i, p := range comparison.UnionPeriods {
				rows = append(rows, SeriesRow{
					Subject:     subject,
					Metric:      string(metric),
					PeriodLabel: p.Label,
					PeriodStart: p.Start,
					PeriodEnd:   p.End,
					Value:       int64(values[i]),
				})
			}
		}
	}
	return writeParquetRows(rows, outputPath)
}

// writeParquetRows writes a slice of SeriesRow structs to a Parquet file.
func writeParquetRows(rows []SeriesRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the SeriesRow struct tags
	writer := parquet.NewGenericWriter[SeriesRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteTrendsParquet writes per-metric trend facts to a Parquet file.
func WriteTrendsParquet(summary *schema.UserSummary, outputPath string) error {
	var rows []TrendRow
	for _, metric := range schema.AllMetrics {
		trend, ok := summary.Trends[metric]
		if !ok {
			continue
		}
		rows = append(rows, TrendRow{
			Subject:         summary.User.Login,
			Metric:          string(metric),
			Direction:       string(trend.Direction),
			ChangeRatio:     trend.ChangeRatio,
			EmergedFromZero: trend.EmergedFromZero,
			PeakLabel:       trend.PeakPeriod.Label,
			PeakValue:       int64(trend.PeakValue),
			Total:           int64(trend.Total),
		})
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[TrendRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
