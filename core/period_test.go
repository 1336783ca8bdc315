package core

import (
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodForMonth(t *testing.T) {
	p := PeriodFor(time.Date(2025, time.February, 14, 18, 30, 0, 0, time.UTC), schema.MonthScheme)

	assert.Equal(t, "2025-02", p.Label)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), p.End)
}

func TestPeriodForWeekISO(t *testing.T) {
	tests := []struct {
		name          string
		input         time.Time
		expectedLabel string
		expectedStart time.Time
	}{
		{
			name:          "midweek day",
			input:         time.Date(2025, time.February, 14, 12, 0, 0, 0, time.UTC),
			expectedLabel: "2025-W07",
			expectedStart: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			// January 1 2025 is a Wednesday; its ISO week starts in 2024
			// but the ISO year is 2025.
			name:          "early january belongs to W01 of the ISO year",
			input:         time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			expectedLabel: "2025-W01",
			expectedStart: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			// December 29 2025 is a Monday; ISO numbering assigns it to
			// week 1 of 2026.
			name:          "late december belongs to next ISO year",
			input:         time.Date(2025, time.December, 29, 10, 0, 0, 0, time.UTC),
			expectedLabel: "2026-W01",
			expectedStart: time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "sunday stays in the week started the previous monday",
			input:         time.Date(2025, time.February, 16, 23, 59, 59, 0, time.UTC),
			expectedLabel: "2025-W07",
			expectedStart: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PeriodFor(tt.input, schema.WeekISOScheme)
			assert.Equal(t, tt.expectedLabel, p.Label)
			assert.Equal(t, tt.expectedStart, p.Start)
			assert.Equal(t, tt.expectedStart.AddDate(0, 0, 7), p.End)
		})
	}
}

func TestPeriodForWeekLocale(t *testing.T) {
	p := PeriodFor(time.Date(2025, time.February, 14, 12, 0, 0, 0, time.UTC), schema.WeekLocaleScheme)

	// Same boundaries as week-iso, labeled by the start date.
	assert.Equal(t, "2025-02-10", p.Label)
	assert.Equal(t, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, time.February, 17, 0, 0, 0, 0, time.UTC), p.End)
}

func TestPeriodForNormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*3600)
	// 08:00 on Monday in UTC+9 is 23:00 Sunday in UTC, the previous week.
	local := time.Date(2025, time.February, 10, 8, 0, 0, 0, zone)

	p := PeriodFor(local, schema.WeekISOScheme)
	assert.Equal(t, "2025-W06", p.Label)
}

func TestPeriodContains(t *testing.T) {
	p := PeriodFor(time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC), schema.WeekISOScheme)

	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End.Add(-time.Second)))
	assert.False(t, p.Contains(p.End), "the end boundary is exclusive")
}

func TestSequenceBetweenIsContiguous(t *testing.T) {
	tests := []struct {
		name   string
		scheme schema.PeriodScheme
		from   time.Time
		to     time.Time
		count  int
	}{
		{
			name:   "weeks across a year boundary",
			scheme: schema.WeekISOScheme,
			from:   time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			to:     time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			count:  4,
		},
		{
			name:   "months across a year boundary",
			scheme: schema.MonthScheme,
			from:   time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
			to:     time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
			count:  4,
		},
		{
			name:   "single period",
			scheme: schema.MonthScheme,
			from:   time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			to:     time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
			count:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := SequenceBetween(PeriodFor(tt.from, tt.scheme), PeriodFor(tt.to, tt.scheme), tt.scheme)
			require.Len(t, seq, tt.count)
			for i := 1; i < len(seq); i++ {
				assert.Equal(t, seq[i-1].End, seq[i].Start, "adjacent periods must share a boundary")
			}
		})
	}
}

func TestSequenceBetweenSwapsReversedArguments(t *testing.T) {
	a := PeriodFor(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), schema.MonthScheme)
	b := PeriodFor(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), schema.MonthScheme)

	seq := SequenceBetween(a, b, schema.MonthScheme)
	require.Len(t, seq, 3)
	assert.Equal(t, "2025-01", seq[0].Label)
	assert.Equal(t, "2025-03", seq[2].Label)
}
