// Package contract provides interfaces and shared utilities for gitpulse's
// internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// QueryOptions narrows an activity fetch to a time window, an optional
// repository, and an optional personal-repo exclusion.
type QueryOptions struct {
	Since           time.Time
	Until           time.Time
	Repository      string
	ExcludePersonal bool
}

// ActivityDataSource supplies raw per-kind activity records and profile
// info for a subject. The core never fetches, paginates, authenticates or
// rate-limits on its own; this seam also lets the pipeline be tested
// without a network.
type ActivityDataSource interface {
	// User returns the subject's profile.
	User(ctx context.Context, username string) (schema.UserProfile, error)

	// Records returns the raw records of one event kind for the subject.
	// Commit records carry additions/deletions; the other kinds are
	// count-only.
	Records(ctx context.Context, username string, kind schema.EventKind, opts QueryOptions) ([]schema.RawRecord, error)
}

// CacheManager defines the interface for managing the fetch cache store.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
