package core

import (
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// PeriodFor maps a timestamp to its canonical calendar bucket under the
// given scheme. The same timestamp and scheme always yield a value-equal
// Period, so periods can be compared and used as map keys by label.
func PeriodFor(t time.Time, scheme schema.PeriodScheme) schema.Period {
	t = t.UTC()
	switch scheme {
	case schema.MonthScheme:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return schema.Period{
			Scheme: scheme,
			Label:  start.Format("2006-01"),
			Start:  start,
			End:    start.AddDate(0, 1, 0),
		}
	default: // week-iso and week-locale share Monday-Sunday boundaries
		start := isoWeekStart(t)
		return schema.Period{
			Scheme: scheme,
			Label:  weekLabel(start, scheme),
			Start:  start,
			End:    start.AddDate(0, 0, 7),
		}
	}
}

// SequenceBetween produces the gapless, contiguous run of periods from the
// period containing a.Start through the period containing b.End, inclusive.
// Both periods must share a scheme.
func SequenceBetween(a, b schema.Period, scheme schema.PeriodScheme) []schema.Period {
	if b.Start.Before(a.Start) {
		a, b = b, a
	}
	var seq []schema.Period
	for p := PeriodFor(a.Start, scheme); !p.Start.After(b.Start); p = nextPeriod(p) {
		seq = append(seq, p)
	}
	return seq
}

// nextPeriod returns the period immediately following p, sharing a boundary
// with it. Adjacent generated periods are contiguous with no gap or overlap.
func nextPeriod(p schema.Period) schema.Period {
	return PeriodFor(p.End, p.Scheme)
}

// isoWeekStart returns the Monday 00:00 UTC that starts the ISO week
// containing t.
func isoWeekStart(t time.Time) time.Time {
	t = t.UTC()
	// Weekday is Sunday=0; shift so Monday=0.
	back := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -back)
}

// weekLabel formats the label for a week period starting at start.
// week-iso uses ISO-8601 numbering, so the last days of December can label
// under week 1 of the next ISO year and early January under week 52/53 of
// the previous one. week-locale labels by the week's start date instead.
func weekLabel(start time.Time, scheme schema.PeriodScheme) string {
	if scheme == schema.WeekLocaleScheme {
		return start.Format("2006-01-02")
	}
	// The ISO year/week of the Monday is the ISO year/week of every day in
	// the period.
	year, week := start.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
