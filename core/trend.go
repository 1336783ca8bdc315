package core

import (
	"github.com/gitpulse/gitpulse/schema"
)

// trendDeadband is the fractional change below which a series is reported
// as stable. The 10% band is policy, not physics: it keeps the direction
// from flapping on noise while staying small enough to catch real shifts.
const trendDeadband = 0.10

// AnalyzeTrend derives direction, magnitude of change and the peak period
// from one aggregated series. The series is split into a first and second
// half (the middle element of an odd-length series belongs to the first
// half) and the halves' sums are compared.
//
// Returns schema.ErrEmptySeries when the series has no period axis; callers
// must not analyze a metric with no data span.
func AnalyzeTrend(series schema.AggregatedSeries) (schema.TrendReport, error) {
	if len(series.Periods) == 0 {
		return schema.TrendReport{}, schema.ErrEmptySeries
	}

	report := schema.TrendReport{
		Metric: series.Metric,
		Total:  series.Total(),
	}

	// Peak: argmax by value; the strictly-greater comparison makes the
	// earliest period win ties regardless of input ordering upstream.
	peakIdx := 0
	for i, v := range series.Values {
		if v > series.Values[peakIdx] {
			peakIdx = i
		}
	}
	report.PeakPeriod = series.Periods[peakIdx]
	report.PeakValue = series.Values[peakIdx]

	split := (len(series.Values) + 1) / 2
	for _, v := range series.Values[:split] {
		report.FirstHalfTotal += v
	}
	for _, v := range series.Values[split:] {
		report.SecondHalfTotal += v
	}

	switch {
	case split == len(series.Values):
		// A single bucket has no second half to compare against.
		report.Direction = schema.DirectionStable
	case report.FirstHalfTotal == 0 && report.SecondHalfTotal == 0:
		report.Direction = schema.DirectionStable
	case report.FirstHalfTotal == 0:
		// Activity emerged from nothing. An infinite ratio is hostile to
		// JSON consumers, so the report carries a flag and a unit ratio.
		report.Direction = schema.DirectionIncreasing
		report.EmergedFromZero = true
		report.ChangeRatio = 1.0
	default:
		report.ChangeRatio = float64(report.SecondHalfTotal-report.FirstHalfTotal) / float64(report.FirstHalfTotal)
		switch {
		case report.ChangeRatio > trendDeadband:
			report.Direction = schema.DirectionIncreasing
		case report.ChangeRatio < -trendDeadband:
			report.Direction = schema.DirectionDecreasing
		default:
			report.Direction = schema.DirectionStable
		}
	}

	return report, nil
}
