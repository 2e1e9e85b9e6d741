package normalizer

import (
	"encoding/json"
	"regexp"
	"time"

	"fandash/pkg/logger"
)

// ISOMillis matches the wire format consumers expect (millisecond UTC).
const ISOMillis = "2006-01-02T15:04:05.000Z"

// now is swapped out by tests to pin the fallback behavior.
var now = time.Now

var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

// layouts tried for non-ISO string timestamps, most common first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
	"01/02/2006",
}

// Timestamp normalizes the mixed encodings found in raw records to an
// ISO-8601 instant. Numbers are UNIX epoch seconds; strings that already
// carry an ISO date prefix pass through unchanged; other strings are
// tried against known layouts. Anything unparseable falls back to the
// current time so the record stays renderable; the fallback is logged.
func Timestamp(v any) string {
	switch t := v.(type) {
	case float64:
		return time.Unix(int64(t), 0).UTC().Format(ISOMillis)
	case int:
		return time.Unix(int64(t), 0).UTC().Format(ISOMillis)
	case int64:
		return time.Unix(t, 0).UTC().Format(ISOMillis)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return time.Unix(int64(f), 0).UTC().Format(ISOMillis)
		}
	case string:
		if isoPrefix.MatchString(t) {
			return t
		}
		for _, layout := range layouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts.UTC().Format(ISOMillis)
			}
		}
	}
	logger.Debug("timestamp_fallback", "value", v)
	return now().UTC().Format(ISOMillis)
}

// ParseISO turns a normalized timestamp back into a time.Time for
// sorting. Unparseable values collapse to the zero time, which sorts as
// the earliest possible instant.
func ParseISO(s string) time.Time {
	for _, layout := range []string{ISOMillis, time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
