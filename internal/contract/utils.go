package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gitpulse/gitpulse/schema"
)

// Color variables for console output.
var (
	IncreasingColor = color.New(color.FgGreen, color.Bold) // growth
	DecreasingColor = color.New(color.FgRed, color.Bold)   // decline
	StableColor     = color.New(color.FgYellow)            // steady state
)

// GetPlainDirectionLabel returns the plain text label for a trend
// direction. This is the core logic used for CSV and JSON printing.
func GetPlainDirectionLabel(d schema.TrendDirection) string {
	switch d {
	case schema.DirectionIncreasing:
		return "Increasing"
	case schema.DirectionDecreasing:
		return "Decreasing"
	default:
		return "Stable"
	}
}

// GetColorDirectionLabel returns a colored label for console output.
func GetColorDirectionLabel(d schema.TrendDirection) string {
	text := GetPlainDirectionLabel(d)
	switch d {
	case schema.DirectionIncreasing:
		return IncreasingColor.Sprint(text)
	case schema.DirectionDecreasing:
		return DecreasingColor.Sprint(text)
	default:
		return StableColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path, defaulting to stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the fetch
// cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitpulse_cache.db"
	}
	return filepath.Join(homeDir, ".gitpulse_cache.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateLabel truncates a display label to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is room for content.
func TruncateLabel(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
