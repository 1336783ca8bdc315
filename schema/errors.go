package schema

import "errors"

// Sentinel errors for caller precondition violations. These are usage
// errors, never retried internally. Malformed individual events are not
// errors of this kind; they are counted and skipped by the normalizer.
var (
	// ErrEmptySeries is returned when trend analysis is invoked on a
	// series with no period axis.
	ErrEmptySeries = errors.New("series has no periods")

	// ErrSchemeMismatch is returned when subjects aggregated under
	// different calendar schemes are compared.
	ErrSchemeMismatch = errors.New("subjects use different bucketing schemes")

	// ErrNoSubjects is returned when a comparison is requested with zero
	// subjects.
	ErrNoSubjects = errors.New("comparison requires at least one subject")
)
