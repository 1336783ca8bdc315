package cmd

import (
	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd exports a user's activity data to a file.
var exportCmd = &cobra.Command{
	Use:   "export <username>",
	Short: "Export a user's activity data to JSON, CSV, HTML or Parquet.",
	Long: `Build a user's activity summary and write it to a file for downstream
analysis instead of the terminal.

Parquet output writes the aggregated series in long form (one row per
subject, metric and period) and requires --aggregation; pass --trends-file
to also write the per-metric trend facts as a second Parquet file.

Examples:
  # JSON dump of the full summary
  gitpulse export octocat -o json --output-file octocat.json

  # Weekly series as Parquet, plus trend facts
  gitpulse export octocat -a week -o parquet --output-file series.parquet --trends-file trends.parquet

  # Self-contained HTML report
  gitpulse export octocat -a month -o html --output-file report.html`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, dataSource); err != nil {
			contract.LogFatal("Cannot run export", err)
		}
	},
}
