package schema

import "time"

// UserProfile is the subject's profile info as reported by the data source.
type UserProfile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityPeriod is the inclusive fetch window for a summary.
type ActivityPeriod struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
	Days  int       `json:"days"`
}

// CodeChanges summarizes line-change totals across all commit events.
type CodeChanges struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Total     int `json:"total"`
}

// RecentItem is one recent activity detail row for display.
type RecentItem struct {
	Date       time.Time `json:"date"`
	Repository string    `json:"repository"`
	Title      string    `json:"title"`
	State      string    `json:"state,omitempty"`
}

// UserSummary is the full per-subject activity report: profile, summary
// counts, optional per-period aggregation and trends, and recent details.
type UserSummary struct {
	User           UserProfile                 `json:"user"`
	ActivityPeriod ActivityPeriod              `json:"activity_period"`
	Counts         map[Metric]int              `json:"counts"`
	CodeChanges    CodeChanges                 `json:"code_changes"`
	MalformedCount int                         `json:"malformed_count"`
	Scheme         PeriodScheme                `json:"scheme,omitempty"`
	Aggregated     map[Metric]AggregatedSeries `json:"aggregated,omitempty"`
	Trends         map[Metric]TrendReport      `json:"trends,omitempty"`
	Recent         map[EventKind][]RecentItem  `json:"recent,omitempty"`
}

// CacheStatus represents the status of the fetch cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}
