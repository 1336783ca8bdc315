// Package report renders summaries and comparisons to the terminal and
// exports them as JSON, CSV, HTML or Parquet.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// PrintSummary outputs a user's activity summary in the configured format.
func PrintSummary(summary *schema.UserSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSON(summary, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printSummaryCSV(summary, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.HTMLOut:
		if err := printSummaryHTML(summary, cfg); err != nil {
			return fmt.Errorf("error writing HTML output: %w", err)
		}
	case schema.ParquetOut:
		return ExportSummary(summary, cfg)
	default:
		// Default to human-readable tables
		if err := printSummaryTable(summary, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// PrintComparison outputs a multi-subject comparison in the configured format.
func PrintComparison(comparison schema.ComparisonReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSON(comparison, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printComparisonCSV(comparison, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.HTMLOut:
		if err := printComparisonHTML(comparison, cfg); err != nil {
			return fmt.Errorf("error writing HTML output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeComparisonParquet(comparison, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := printComparisonTable(comparison, cfg, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// ExportSummary writes a summary to the configured output file. Text output
// has no export shape, so it falls back to JSON.
func ExportSummary(summary *schema.UserSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := writeSummaryParquet(summary, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	case schema.CSVOut:
		return printSummaryCSV(summary, cfg)
	case schema.HTMLOut:
		return printSummaryHTML(summary, cfg)
	default:
		return printJSON(summary, cfg)
	}
}

// printSummaryCSV handles opening the file and calling the CSV writer.
func printSummaryCSV(summary *schema.UserSummary, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := writeSummaryCSV(w, summary, cfg); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote CSV to %s\n", cfg.OutputFile)
	}
	return nil
}

// printComparisonCSV handles opening the file and calling the CSV writer.
func printComparisonCSV(comparison schema.ComparisonReport, cfg *contract.Config) error {
	file, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := writeComparisonCSV(w, comparison, cfg); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "Wrote CSV to %s\n", cfg.OutputFile)
	}
	return nil
}
