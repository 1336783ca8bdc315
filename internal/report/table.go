package report

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// kindTitles maps event kinds to section headings for recent activity.
var kindTitles = map[schema.EventKind]string{
	schema.CommitEvent:      "Recent Commits",
	schema.PullRequestEvent: "Recent Pull Requests",
	schema.IssueEvent:       "Recent Issues",
	schema.ReviewEvent:      "Recent Reviews",
}

// maxRepoWidth calculates the maximum width for repository names in table
// output based on terminal width.
func maxRepoWidth() int {
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		detectedWidth = 80
	}

	// Reserve space for the date column, borders and padding
	available := detectedWidth - 40
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}

// printSummaryTable generates and prints the human-readable summary.
func printSummaryTable(summary *schema.UserSummary, cfg *contract.Config, duration time.Duration) error {
	name := summary.User.Login
	if summary.User.Name != "" {
		name = fmt.Sprintf("%s (%s)", summary.User.Login, summary.User.Name)
	}
	fmt.Printf("Activity for %s\n", name)
	fmt.Printf("Window: %s to %s (%d days)\n\n",
		summary.ActivityPeriod.Since.Format("2006-01-02"),
		summary.ActivityPeriod.Until.Format("2006-01-02"),
		summary.ActivityPeriod.Days)

	if err := renderCountsTable(summary); err != nil {
		return err
	}

	if len(summary.Aggregated) > 0 {
		fmt.Println()
		if err := renderSeriesTable(summary.Aggregated); err != nil {
			return err
		}
		fmt.Println()
		renderTrends(summary.Trends, cfg)
	}

	for _, kind := range schema.AllEventKinds {
		items := summary.Recent[kind]
		if len(items) == 0 {
			continue
		}
		fmt.Printf("\n%s\n", kindTitles[kind])
		if err := renderRecentTable(items); err != nil {
			return err
		}
	}

	if summary.MalformedCount > 0 {
		fmt.Printf("\nSkipped %d records with unparseable timestamps.\n", summary.MalformedCount)
	}
	fmt.Printf("\nSummary completed in %v.\n", duration)
	return nil
}

// renderCountsTable prints the per-metric totals.
func renderCountsTable(summary *schema.UserSummary) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Metric", "Total"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, metric := range schema.AllMetrics {
		data = append(data, []string{string(metric), strconv.Itoa(summary.Counts[metric])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderSeriesTable prints one row per period with a column per metric.
// Every series shares the same period axis, so any series provides the rows.
func renderSeriesTable(aggregated map[schema.Metric]schema.AggregatedSeries) error {
	var axis []schema.Period
	for _, series := range aggregated {
		axis = series.Periods
		break
	}
	if len(axis) == 0 {
		return nil
	}

	headers := []string{"Period"}
	var columns []schema.Metric
	for _, metric := range schema.AllMetrics {
		if _, ok := aggregated[metric]; ok {
			headers = append(headers, string(metric))
			columns = append(columns, metric)
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, p := range axis {
		row := []string{p.Label}
		for _, metric := range columns {
			row = append(row, strconv.Itoa(aggregated[metric].Values[i]))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderTrends prints one trend line per metric.
func renderTrends(trends map[schema.Metric]schema.TrendReport, cfg *contract.Config) {
	for _, metric := range schema.AllMetrics {
		trend, ok := trends[metric]
		if !ok {
			continue
		}
		label := contract.GetPlainDirectionLabel(trend.Direction)
		if cfg.Color {
			label = contract.GetColorDirectionLabel(trend.Direction)
		}

		change := fmt.Sprintf("%+.*f%%", cfg.Precision, trend.ChangeRatio*100)
		if trend.EmergedFromZero {
			change = "from zero"
		}
		fmt.Printf("%-20s %s (%s), peak %s with %d\n",
			metric, label, change, trend.PeakPeriod.Label, trend.PeakValue)
	}
}

// renderRecentTable prints one section of recent activity items.
func renderRecentTable(items []schema.RecentItem) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Date", "Repository", "Title", "State"})

	repoWidth := maxRepoWidth()
	var data [][]string
	for _, item := range items {
		data = append(data, []string{
			item.Date.Format("2006-01-02"),
			contract.TruncateLabel(item.Repository, repoWidth),
			contract.TruncateLabel(item.Title, 60),
			item.State,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// printComparisonTable generates and prints the human-readable comparison.
func printComparisonTable(comparison schema.ComparisonReport, cfg *contract.Config, duration time.Duration) error {
	if len(comparison.UnionPeriods) > 0 {
		fmt.Printf("Comparing %d subjects over %s to %s (%d days, %d periods)\n\n",
			len(comparison.PerSubject),
			comparison.UnionPeriods[0].Start.Format("2006-01-02"),
			comparison.UnionPeriods[len(comparison.UnionPeriods)-1].End.Format("2006-01-02"),
			comparison.ElapsedDays,
			len(comparison.UnionPeriods))
	}

	if err := renderTotalsTable(comparison, cfg); err != nil {
		return err
	}

	for _, ranking := range comparison.Rankings {
		fmt.Printf("\nRanking by %s\n", ranking.Measure)
		if err := renderRankingTable(ranking, cfg); err != nil {
			return err
		}
	}

	fmt.Printf("\nComparison completed in %v using %d workers.\n", duration, cfg.Workers)
	return nil
}

// renderTotalsTable prints one row per subject with totals per metric.
func renderTotalsTable(comparison schema.ComparisonReport, cfg *contract.Config) error {
	headers := []string{"Subject"}
	for _, metric := range schema.AllMetrics {
		headers = append(headers, string(metric))
	}
	headers = append(headers, "daily avg")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(headers)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, ranking := range comparison.Rankings {
		if ranking.Measure != schema.RankTotalActivity {
			continue
		}
		// Walk subjects in ranked order so the busiest row comes first.
		for _, entry := range ranking.Entries {
			sc := comparison.PerSubject[entry.Subject]
			row := []string{entry.Subject}
			for _, metric := range schema.AllMetrics {
				row = append(row, strconv.Itoa(sc.Totals[metric]))
			}
			row = append(row, fmt.Sprintf("%.*f", cfg.Precision, sc.DailyAverages[schema.MetricTotalContributions]))
			data = append(data, row)
		}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderRankingTable prints one ranked measure.
func renderRankingTable(ranking schema.Ranking, cfg *contract.Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Subject", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, entry := range ranking.Entries {
		data = append(data, []string{
			strconv.Itoa(entry.Rank),
			entry.Subject,
			fmt.Sprintf("%.*f", cfg.Precision, entry.Value),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
