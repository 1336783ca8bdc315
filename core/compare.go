package core

import (
	"sort"

	"github.com/gitpulse/gitpulse/schema"
)

// Compare aligns multiple subjects' aggregated series on a shared union
// period axis and ranks them. The union axis is anchored on each subject's
// total_contributions series (every series of a subject shares one axis, so
// the anchor covers them all) and spans the earliest start to the latest
// end across subjects. Each subject's values are re-expressed over that
// axis with zeros outside the subject's own span.
//
// Daily averages divide by the elapsed days of the shared union span, not
// the subject's own span, so rate comparison stays meaningful when
// histories differ in length.
//
// Returns schema.ErrNoSubjects for an empty input and
// schema.ErrSchemeMismatch when subjects were aggregated under different
// calendar schemes.
func Compare(seriesBySubject map[string]map[schema.Metric]schema.AggregatedSeries) (schema.ComparisonReport, error) {
	if len(seriesBySubject) == 0 {
		return schema.ComparisonReport{}, schema.ErrNoSubjects
	}

	// Sort subjects up front: map iteration order must never leak into
	// the output.
	subjects := make([]string, 0, len(seriesBySubject))
	for s := range seriesBySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	// 1. Validate schemes and find the overall span from the anchors.
	var scheme schema.PeriodScheme
	var first, last schema.Period
	haveSpan := false
	for _, subject := range subjects {
		anchor, ok := seriesBySubject[subject][schema.MetricTotalContributions]
		if !ok || len(anchor.Periods) == 0 {
			continue // subject with no data span still gets zero-filled rows
		}
		s := anchor.Periods[0].Scheme
		if scheme == "" {
			scheme = s
		} else if s != scheme {
			return schema.ComparisonReport{}, schema.ErrSchemeMismatch
		}
		if !haveSpan || anchor.Periods[0].Start.Before(first.Start) {
			first = anchor.Periods[0]
		}
		if tail := anchor.Periods[len(anchor.Periods)-1]; !haveSpan || tail.Start.After(last.Start) {
			last = tail
		}
		haveSpan = true
	}

	report := schema.ComparisonReport{
		Scheme:     scheme,
		PerSubject: make(map[string]schema.SubjectComparison, len(subjects)),
	}

	var index map[string]int
	if haveSpan {
		report.UnionPeriods = SequenceBetween(first, last, scheme)
		report.ElapsedDays = int(last.End.Sub(first.Start).Hours() / 24)
		index = make(map[string]int, len(report.UnionPeriods))
		for i, p := range report.UnionPeriods {
			index[p.Label] = i
		}
	}

	// 2. Re-align every subject's series onto the union axis.
	for _, subject := range subjects {
		sc := schema.SubjectComparison{
			Subject:       subject,
			Values:        make(map[schema.Metric][]int),
			Totals:        make(map[schema.Metric]int),
			DailyAverages: make(map[schema.Metric]float64),
		}
		for metric, series := range seriesBySubject[subject] {
			row := make([]int, len(report.UnionPeriods))
			for i, p := range series.Periods {
				if j, ok := index[p.Label]; ok {
					row[j] = series.Values[i]
				}
			}
			sc.Values[metric] = row
			sc.Totals[metric] = series.Total()
			if report.ElapsedDays > 0 {
				sc.DailyAverages[metric] = float64(sc.Totals[metric]) / float64(report.ElapsedDays)
			}
		}
		report.PerSubject[subject] = sc
	}

	// 3. Build the rankings.
	for _, measure := range schema.AllRankMeasures {
		report.Rankings = append(report.Rankings, rankSubjects(measure, subjects, report.PerSubject))
	}

	return report, nil
}

// rankSubjects orders subjects for one measure, descending by value. The
// input subjects are already identifier-ascending and the sort is stable,
// so equal values reproducibly tie-break by subject.
func rankSubjects(measure schema.RankMeasure, subjects []string, perSubject map[string]schema.SubjectComparison) schema.Ranking {
	entries := make([]schema.RankEntry, 0, len(subjects))
	for _, subject := range subjects {
		entries = append(entries, schema.RankEntry{
			Subject: subject,
			Value:   measureValue(measure, perSubject[subject]),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return schema.Ranking{Measure: measure, Entries: entries}
}

// measureValue extracts the ranked value for one measure from a subject's
// comparison row.
func measureValue(measure schema.RankMeasure, sc schema.SubjectComparison) float64 {
	switch measure {
	case schema.RankDailyActivity:
		return sc.DailyAverages[schema.MetricTotalContributions]
	case schema.RankTotalPullRequests:
		return float64(sc.Totals[schema.MetricPullRequests])
	case schema.RankDailyPullRequests:
		return sc.DailyAverages[schema.MetricPullRequests]
	default: // RankTotalActivity
		return float64(sc.Totals[schema.MetricTotalContributions])
	}
}
