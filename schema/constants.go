package schema

// Custom string types for type safety.
type (
	// EventKind discriminates the source shape of an activity event.
	EventKind string

	// Metric names one aggregated activity measure.
	Metric string

	// PeriodScheme selects the calendar bucketing rule.
	PeriodScheme string

	// TrendDirection is the coarse classification of a series trend.
	TrendDirection string

	// RankMeasure names one ranked comparison measure.
	RankMeasure string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All event kinds supported.
const (
	CommitEvent      EventKind = "commit"
	PullRequestEvent EventKind = "pull_request"
	IssueEvent       EventKind = "issue"
	ReviewEvent      EventKind = "review"
)

// All metrics supported. Adding a metric means adding a constant here
// and one aggregation rule in core.
const (
	MetricCommits            Metric = "commits"
	MetricPullRequests       Metric = "pull_requests"
	MetricIssues             Metric = "issues"
	MetricReviews            Metric = "reviews"
	MetricCodeChanges        Metric = "code_changes"
	MetricTotalContributions Metric = "total_contributions"
)

// All bucketing schemes supported.
const (
	WeekISOScheme    PeriodScheme = "week-iso"    // ISO-8601 weeks, YYYY-Www labels
	WeekLocaleScheme PeriodScheme = "week-locale" // same boundaries, labeled by week start date
	MonthScheme      PeriodScheme = "month"       // calendar months, YYYY-MM labels
)

// All trend directions supported.
const (
	DirectionIncreasing TrendDirection = "increasing"
	DirectionDecreasing TrendDirection = "decreasing"
	DirectionStable     TrendDirection = "stable"
)

// All ranked comparison measures supported.
const (
	RankTotalActivity     RankMeasure = "total_activity"
	RankDailyActivity     RankMeasure = "daily_average_activity"
	RankTotalPullRequests RankMeasure = "total_pull_requests"
	RankDailyPullRequests RankMeasure = "daily_average_pull_requests"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	HTMLOut    OutputMode = "html"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllEventKinds lists every event kind in fetch order.
var AllEventKinds = []EventKind{CommitEvent, PullRequestEvent, IssueEvent, ReviewEvent}

// AllMetrics lists every metric in display order.
var AllMetrics = []Metric{
	MetricCommits,
	MetricPullRequests,
	MetricIssues,
	MetricReviews,
	MetricCodeChanges,
	MetricTotalContributions,
}

// AllRankMeasures lists every ranked measure in display order.
var AllRankMeasures = []RankMeasure{
	RankTotalActivity,
	RankDailyActivity,
	RankTotalPullRequests,
	RankDailyPullRequests,
}

// KindForMetric maps the count metrics to the event kind they count.
// The sum metrics (code_changes, total_contributions) are not in this map.
var KindForMetric = map[Metric]EventKind{
	MetricCommits:      CommitEvent,
	MetricPullRequests: PullRequestEvent,
	MetricIssues:       IssueEvent,
	MetricReviews:      ReviewEvent,
}

// ValidPeriodSchemes lists all valid bucketing schemes.
var ValidPeriodSchemes = map[PeriodScheme]struct{}{
	WeekISOScheme:    {},
	WeekLocaleScheme: {},
	MonthScheme:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	HTMLOut:    {},
	ParquetOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
