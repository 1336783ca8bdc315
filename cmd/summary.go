package cmd

import (
	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd summarizes one user's activity.
var summaryCmd = &cobra.Command{
	Use:   "summary <username>",
	Short: "Summarize a user's GitHub activity.",
	Long: `Fetch and summarize a GitHub user's activity over a time window.

Counts commits, pull requests, issues and reviews, sums line changes across
commits, and lists the most recent items of each kind. With --aggregation,
activity is also bucketed into weekly or monthly series and each metric gets
a trend: direction, relative change between the window halves, and the peak
period.

Examples:
  # Summarize the last year of activity
  gitpulse summary octocat

  # Weekly buckets and trends for the last 90 days
  gitpulse summary octocat --days 90 --aggregation week

  # Monthly buckets, JSON output
  gitpulse summary octocat -a month -o json

  # Only activity in one repository
  gitpulse summary octocat -r octocat/hello-world`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, dataSource); err != nil {
			contract.LogFatal("Cannot run summary", err)
		}
	},
}
