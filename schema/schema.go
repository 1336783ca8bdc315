// Package schema has value objects, enums and shared helpers for all parts of gitpulse.
package schema

import "time"

// CodeDelta carries the signed line-change breakdown of a commit.
type CodeDelta struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Total returns the unsigned total of lines touched.
func (d CodeDelta) Total() int {
	return d.Added + d.Removed
}

// RawRecord is one source-specific activity record as received from the
// data source, before normalization. Timestamp is kept as the raw string
// so that unparseable records can be counted and skipped downstream.
type RawRecord struct {
	Timestamp    string `json:"timestamp"`
	Repository   string `json:"repository"`
	Title        string `json:"title,omitempty"`
	State        string `json:"state,omitempty"`
	URL          string `json:"url,omitempty"`
	Additions    int    `json:"additions,omitempty"`
	Deletions    int    `json:"deletions,omitempty"`
	OwnedByActor bool   `json:"owned_by_actor,omitempty"`
}

// ActivityEvent is one normalized activity instance. Events are immutable
// once produced by the normalizer.
type ActivityEvent struct {
	Kind         EventKind  `json:"kind"`
	Timestamp    time.Time  `json:"timestamp"` // always UTC
	Repository   string     `json:"repository"`
	Magnitude    int        `json:"magnitude,omitempty"`  // unsigned line total; commits only
	CodeDelta    *CodeDelta `json:"code_delta,omitempty"` // commits only
	OwnedByActor bool       `json:"owned_by_actor"`
}

// Period is one canonical, orderable calendar bucket. Start and End form a
// half-open UTC range [Start, End). Periods of the same scheme totally order
// by Start.
type Period struct {
	Scheme PeriodScheme `json:"scheme"`
	Label  string       `json:"label"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
}

// Contains reports whether t falls inside the period's half-open range.
func (p Period) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(p.Start) && t.Before(p.End)
}

// AggregatedSeries is one metric's trajectory over an ordered, gap-filled
// sequence of periods. Periods and Values are index-aligned and equal length.
type AggregatedSeries struct {
	Metric  Metric   `json:"metric"`
	Periods []Period `json:"periods"`
	Values  []int    `json:"values"`
}

// Total returns the sum of all values in the series.
func (s AggregatedSeries) Total() int {
	total := 0
	for _, v := range s.Values {
		total += v
	}
	return total
}

// TrendReport holds the structured trend facts derived from one series.
// Rendering the facts as prose belongs to the report layer.
type TrendReport struct {
	Metric          Metric         `json:"metric"`
	Total           int            `json:"total"`
	Direction       TrendDirection `json:"direction"`
	ChangeRatio     float64        `json:"change_ratio"`
	EmergedFromZero bool           `json:"emerged_from_zero"`
	PeakPeriod      Period         `json:"peak_period"`
	PeakValue       int            `json:"peak_value"`
	FirstHalfTotal  int            `json:"first_half_total"`
	SecondHalfTotal int            `json:"second_half_total"`
}

// SubjectComparison carries one subject's series re-aligned onto the union
// period axis, plus summary totals and daily-average rates.
type SubjectComparison struct {
	Subject       string             `json:"subject"`
	Values        map[Metric][]int   `json:"values"`
	Totals        map[Metric]int     `json:"totals"`
	DailyAverages map[Metric]float64 `json:"daily_averages"`
}

// RankEntry is one subject's position for a ranked measure.
type RankEntry struct {
	Rank    int     `json:"rank"`
	Subject string  `json:"subject"`
	Value   float64 `json:"value"`
}

// Ranking orders all subjects for one measure, descending by value with a
// stable subject-ascending tie-break.
type Ranking struct {
	Measure RankMeasure `json:"measure"`
	Entries []RankEntry `json:"entries"`
}

// ComparisonReport aligns and ranks multiple subjects' aggregated series on
// a shared union period axis.
type ComparisonReport struct {
	Scheme       PeriodScheme                 `json:"scheme"`
	UnionPeriods []Period                     `json:"union_periods"`
	ElapsedDays  int                          `json:"elapsed_days"`
	PerSubject   map[string]SubjectComparison `json:"per_subject"`
	Rankings     []Ranking                    `json:"rankings"`
}
