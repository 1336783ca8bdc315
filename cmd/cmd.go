// Package cmd defines the command-line interface for gitpulse.
package cmd

import (
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("token", "t", "", "GitHub API token (or GITPULSE_TOKEN)")
	rootCmd.PersistentFlags().String("api-url", contract.DefaultAPIURL, "Base API URL, for GitHub Enterprise instances")
	rootCmd.PersistentFlags().IntP("days", "d", contract.DefaultLookbackDays, "Number of days to look back from now")
	rootCmd.PersistentFlags().String("since", "", "Window start in ISO8601 or YYYY-MM-DD (overrides --days)")
	rootCmd.PersistentFlags().String("until", "", "Window end in ISO8601 or YYYY-MM-DD")
	rootCmd.PersistentFlags().StringP("repository", "r", "", "Restrict to one repository in owner/name form")
	rootCmd.PersistentFlags().Bool("exclude-personal", false, "Exclude activity in the subject's own repositories")
	rootCmd.PersistentFlags().StringP("aggregation", "a", "", "Bucket activity per period: week or month")
	rootCmd.PersistentFlags().String("week-label", "iso", "Week label style: iso (2025-W07) or date (week start date)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text, json, csv, html or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("recent", contract.DefaultRecentLimit, "Number of recent items to show per event kind (0 hides them)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().IntP("workers", "w", contract.DefaultWorkers, "Number of concurrent per-subject fetch pipelines")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite, mysql, postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Int("cache-ttl-hours", 0, "Fetch cache entry lifetime in hours (0 = default 24h)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("trends-file", "", "Optional path for a Parquet file with per-metric trend facts")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
