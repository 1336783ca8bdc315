package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// printJSON writes any report value as indented JSON.
func printJSON(v any, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote JSON to %s\n", cfg.OutputFile)
	}
	return nil
}

// writeSummaryCSV writes the summary as long-form rows. The count section
// comes first; when an aggregation is configured, per-period rows follow so
// the series can be consumed without re-parsing labels.
func writeSummaryCSV(w *csv.Writer, summary *schema.UserSummary, cfg *contract.Config) error {
	if err := w.Write([]string{"section", "metric", "period", "value"}); err != nil {
		return err
	}

	for _, metric := range schema.AllMetrics {
		row := []string{"counts", string(metric), "", strconv.Itoa(summary.Counts[metric])}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, metric := range schema.AllMetrics {
		series, ok := summary.Aggregated[metric]
		if !ok {
			continue
		}
		for i, p := range series.Periods {
			row := []string{"series", string(metric), p.Label, strconv.Itoa(series.Values[i])}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	for _, metric := range schema.AllMetrics {
		trend, ok := summary.Trends[metric]
		if !ok {
			continue
		}
		direction := contract.GetPlainDirectionLabel(trend.Direction)
		row := []string{"trend", string(metric), trend.PeakPeriod.Label,
			fmt.Sprintf("%s %.*f", direction, cfg.Precision, trend.ChangeRatio*100)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// writeComparisonCSV writes per-subject totals and rankings as rows.
func writeComparisonCSV(w *csv.Writer, comparison schema.ComparisonReport, cfg *contract.Config) error {
	if err := w.Write([]string{"section", "measure", "rank", "subject", "value"}); err != nil {
		return err
	}

	for _, ranking := range comparison.Rankings {
		for _, entry := range ranking.Entries {
			row := []string{
				"ranking",
				string(ranking.Measure),
				strconv.Itoa(entry.Rank),
				entry.Subject,
				fmt.Sprintf("%.*f", cfg.Precision, entry.Value),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}
