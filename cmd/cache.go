package cmd

import (
	"fmt"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/iocache"
	"github.com/gitpulse/gitpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config
	if err := iocache.InitCaching(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by activity commands. This avoids token checks
// and window parsing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the API fetch cache (improves performance)",
	Long: `Manage the fetch cache that speeds up repeated runs.

GitPulse caches raw API responses per user, event kind and window so that
re-running a summary or comparison does not re-fetch from GitHub until the
entries expire.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Apply or roll back cache schema migrations

Examples:
  # Check cache status
  gitpulse cache status

  # Clear cache to force fresh fetches
  gitpulse cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached API responses",
	Long: `Delete all cached API responses from the configured backend.

Use this when:
- Cached windows are stale after a burst of new activity
- Cache may be corrupted
- Testing fetch behavior without cache

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  gitpulse cache clear

  # Clear MySQL cache (set connection string via env variable)
  GITPULSE_CACHE_BACKEND=mysql GITPULSE_CACHE_DB_CONNECT="..." gitpulse cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the fetch cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  gitpulse cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetActivityStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}

// cacheMigrateCmd applies cache schema migrations.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back cache schema migrations",
	Long: `Run versioned schema migrations for the fetch cache.

By default migrates to the latest version. Use --target-version to pin a
specific version, or 0 to roll back all migrations.

Examples:
  # Migrate to the latest schema
  gitpulse cache migrate

  # Roll back everything
  gitpulse cache migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
		connStr := viper.GetString("cache-db-connect")
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateCache(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
	},
}
