package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/ghclient"
	"github.com/gitpulse/gitpulse/internal/iocache"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// dataSource is the activity source used by all commands. Set during shared
// setup; overridable in tests.
var dataSource contract.ActivityDataSource

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "gitpulse",
	Short:              "Summarize and compare GitHub developer activity.",
	Long:               `GitPulse aggregates a developer's commits, pull requests, issues and reviews into per-period series, trends and cross-user rankings.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".gitpulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("GITPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Accept the conventional GITHUB_TOKEN alongside GITPULSE_TOKEN.
	_ = viper.BindEnv("token", "GITPULSE_TOKEN", "GITHUB_TOKEN")

	// Set defaults in Viper
	viper.SetDefault("api-url", contract.DefaultAPIURL)
	viper.SetDefault("days", contract.DefaultLookbackDays)
	viper.SetDefault("recent", contract.DefaultRecentLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation and wires the data source.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	cfg.Subjects = args

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input, time.Now()); err != nil {
		return err
	}

	// 5. Initialize the fetch cache with validated config.
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	// 6. Wire the GitHub data source through the cache.
	if dataSource == nil {
		dataSource = ghclient.New(cfg.Token, cfg.APIURL, cfg.UserAgent,
			ghclient.WithCache(iocache.Manager.GetActivityStore(), cfg.CacheTTL))
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gitpulse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
