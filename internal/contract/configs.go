package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays = 365
	DefaultRecentLimit  = 5
	MaxRecentLimit      = 100
	DefaultWorkers      = 4
	DefaultPrecision    = 1
	DefaultCacheTTL     = 24 * time.Hour
	DefaultAPIURL       = "https://api.github.com"
	DefaultUserAgent    = "gitpulse"
)

// Config holds the validated runtime configuration.
// Fields that require complex parsing (dates, scheme resolution) are set by
// ProcessAndValidate after flags are read.
type Config struct {
	Token           string                 // API token (flag, config file, or env)
	APIURL          string                 // Base API URL
	UserAgent       string                 // User agent sent on API requests
	Since           time.Time              // Start of the activity window
	Until           time.Time              // End of the activity window
	Repository      string                 // Optional owner/name filter
	ExcludePersonal bool                   // Exclude repos owned by the subject
	Scheme          schema.PeriodScheme    // Bucketing scheme; empty means no aggregation
	Output          schema.OutputMode      // Output format
	OutputFile      string                 // Optional path to write output to
	TrendsFile      string                 // Optional path for the Parquet trends export
	RecentLimit     int                    // Number of recent detail rows per kind
	Precision       int                    // Decimal precision for numeric columns
	Color           bool                   // Colored labels in terminal output
	Workers         int                    // Concurrent per-subject pipelines
	CacheBackend    schema.DatabaseBackend // Fetch cache backend
	CacheDBConnect  string                 // Connection string for mysql/postgresql
	CacheTTL        time.Duration          // Fetch cache entry lifetime
	Subjects        []string               // Usernames (positional args)
}

// Clone returns a shallow copy for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Subjects = append([]string(nil), c.Subjects...)
	return &clone
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Token           string `mapstructure:"token"`
	APIURL          string `mapstructure:"api-url"`
	Days            int    `mapstructure:"days"`
	SinceStr        string `mapstructure:"since"`
	UntilStr        string `mapstructure:"until"`
	Repository      string `mapstructure:"repository"`
	ExcludePersonal bool   `mapstructure:"exclude-personal"`
	Aggregation     string `mapstructure:"aggregation"`
	WeekLabel       string `mapstructure:"week-label"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	TrendsFile      string `mapstructure:"trends-file"`
	RecentLimit     int    `mapstructure:"recent"`
	Precision       int    `mapstructure:"precision"`
	Color           string `mapstructure:"color"`
	Workers         int    `mapstructure:"workers"`
	CacheBackend    string `mapstructure:"cache-backend"`
	CacheDBConnect  string `mapstructure:"cache-db-connect"`
	CacheTTLHours   int    `mapstructure:"cache-ttl-hours"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	// --- 1. Token and endpoint ---
	cfg.Token = strings.TrimSpace(input.Token)
	if cfg.Token == "" {
		return fmt.Errorf("no API token provided; set --token, the token config key, or GITPULSE_TOKEN")
	}
	cfg.APIURL = strings.TrimRight(input.APIURL, "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.UserAgent = DefaultUserAgent

	// --- 2. Limits and workers ---
	if input.RecentLimit < 0 || input.RecentLimit > MaxRecentLimit {
		return fmt.Errorf("recent must be between 0 and %d (received %d)", MaxRecentLimit, input.RecentLimit)
	}
	cfg.RecentLimit = input.RecentLimit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Aggregation scheme resolution ---
	scheme, err := ResolveScheme(input.Aggregation, input.WeekLabel)
	if err != nil {
		return err
	}
	cfg.Scheme = scheme

	// --- 4. Output validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format %q. must be text, json, csv, html, parquet", input.Output)
	}

	cfg.OutputFile = input.OutputFile
	cfg.TrendsFile = input.TrendsFile
	if cfg.TrendsFile != "" && cfg.Output != schema.ParquetOut {
		return fmt.Errorf("trends-file is only supported with parquet output")
	}

	colorOn, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.Color = colorOn

	// --- 5. Date window ---
	if input.Days <= 0 {
		return fmt.Errorf("days must be greater than 0 (received %d)", input.Days)
	}
	cfg.Until = now.UTC()
	cfg.Since = cfg.Until.AddDate(0, 0, -input.Days)

	if input.SinceStr != "" {
		t, err := parseDateInput(input.SinceStr)
		if err != nil {
			return fmt.Errorf("invalid since date %q: %w", input.SinceStr, err)
		}
		cfg.Since = t
	}
	if input.UntilStr != "" {
		t, err := parseDateInput(input.UntilStr)
		if err != nil {
			return fmt.Errorf("invalid until date %q: %w", input.UntilStr, err)
		}
		cfg.Until = t
	}
	if cfg.Since.After(cfg.Until) {
		return fmt.Errorf("since (%s) cannot be after until (%s)",
			cfg.Since.Format(time.RFC3339), cfg.Until.Format(time.RFC3339))
	}

	// --- 6. Repository filter ---
	cfg.Repository = strings.TrimSpace(input.Repository)
	if cfg.Repository != "" && !strings.Contains(cfg.Repository, "/") {
		return fmt.Errorf("repository must be in owner/name form (received %q)", input.Repository)
	}
	cfg.ExcludePersonal = input.ExcludePersonal

	// --- 7. Cache configuration ---
	backend := schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend %q. must be sqlite, mysql, postgresql, or none", input.CacheBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.CacheDBConnect); err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTLHours > 0 {
		cfg.CacheTTL = time.Duration(input.CacheTTLHours) * time.Hour
	}

	return nil
}

// ResolveScheme maps the user-facing aggregation and week-label choices to
// a bucketing scheme. An empty aggregation means no per-period tables.
func ResolveScheme(aggregation, weekLabel string) (schema.PeriodScheme, error) {
	switch strings.ToLower(aggregation) {
	case "":
		return "", nil
	case "month":
		return schema.MonthScheme, nil
	case "week":
		switch strings.ToLower(weekLabel) {
		case "", "iso":
			return schema.WeekISOScheme, nil
		case "date":
			return schema.WeekLocaleScheme, nil
		default:
			return "", fmt.Errorf("invalid week-label %q. must be iso or date", weekLabel)
		}
	default:
		return "", fmt.Errorf("invalid aggregation %q. must be week or month", aggregation)
	}
}

// ValidateDatabaseConnectionString checks that SQL backends carry a
// connection string and sqlite/none do not require one.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if strings.TrimSpace(connStr) == "" {
			return fmt.Errorf("cache backend %s requires --cache-db-connect", backend)
		}
	}
	return nil
}

// parseDateInput accepts RFC3339 or a bare YYYY-MM-DD date (treated as UTC
// midnight).
func parseDateInput(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
