package util

import (
	"math"
	"strconv"
	"time"
)

// ReportDateLayout is the MM-DD-YY layout used in screener reports.
const ReportDateLayout = "01-02-06"

// FormatUnixDate renders epoch seconds as MM-DD-YY in UTC. Fractional
// seconds are truncated; zero or non-finite input yields "".
func FormatUnixDate(sec float64) string {
	if sec == 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return ""
	}
	return time.Unix(int64(sec), 0).UTC().Format(ReportDateLayout)
}

// ParseDate accepts YYYY-MM-DD, RFC3339 or unix seconds. Returns (t, true) if any worked.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}
