package cmd

import (
	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd compares multiple users' activity.
var compareCmd = &cobra.Command{
	Use:   "compare <username>...",
	Short: "Compare multiple users' activity and rank them.",
	Long: `Fetch multiple users' activity concurrently, align their per-period series
on a shared calendar axis and rank them.

All subjects are compared over the union of their active spans, and daily
averages divide by the same elapsed-day count for every subject, so rates
stay comparable when histories differ in length. Rankings cover total and
daily-average activity, overall and for pull requests.

Examples:
  # Rank three users over the last year
  gitpulse compare alice bob carol

  # Monthly axis over the last 180 days, CSV output
  gitpulse compare alice bob -d 180 -a month -o csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, dataSource); err != nil {
			contract.LogFatal("Cannot run comparison", err)
		}
	},
}
