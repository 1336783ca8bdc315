package core

import (
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// rawTimeLayouts are the timestamp shapes the data source is known to emit.
// RFC3339 covers the API's ISO-8601 instants (including the Z suffix); the
// zoneless layout shows up in older cached payloads and is treated as UTC.
var rawTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Normalize converts raw source records of one kind into uniform activity
// events. Records without a parseable timestamp are skipped and counted so
// that a handful of bad records never discards an entire fetch; the count
// is surfaced to the caller instead of an error.
func Normalize(records []schema.RawRecord, kind schema.EventKind) ([]schema.ActivityEvent, int) {
	events := make([]schema.ActivityEvent, 0, len(records))
	malformed := 0

	for _, r := range records {
		ts, ok := parseRawTime(r.Timestamp)
		if !ok {
			malformed++
			continue
		}

		ev := schema.ActivityEvent{
			Kind:         kind,
			Timestamp:    ts,
			Repository:   r.Repository,
			OwnedByActor: r.OwnedByActor,
		}
		if kind == schema.CommitEvent {
			delta := schema.CodeDelta{Added: r.Additions, Removed: r.Deletions}
			ev.CodeDelta = &delta
			ev.Magnitude = delta.Total()
		}
		events = append(events, ev)
	}

	return events, malformed
}

// parseRawTime parses a raw record timestamp and normalizes it to UTC.
func parseRawTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range rawTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
