// Package timeutil provides the fixed Manila (UTC+8) civil calendar used for
// every timestamp the bot records or filters on. All period boundaries are
// computed in this one location so the report path and the request path can
// never disagree about what "today" means.
package timeutil

import (
	"fmt"
	"time"
)

// Manila is the fixed UTC+8 civil calendar. Record timestamps are always
// expressed in this zone regardless of where they are read back from.
var Manila = time.FixedZone("Asia/Manila", 8*60*60)

// TimestampLayout is the wire format for record timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Now returns the current time in the Manila calendar.
func Now() time.Time {
	return time.Now().In(Manila)
}

// FormatTimestamp renders t as a Manila civil timestamp string.
func FormatTimestamp(t time.Time) string {
	return t.In(Manila).Format(TimestampLayout)
}

// ParseTimestamp parses a Manila civil timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, Manila)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// StartOfDay returns midnight of t's civil day in Manila.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Manila)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Manila)
}

// StartOfWeek returns the most recent Monday 00:00:00 in Manila.
func StartOfWeek(t time.Time) time.Time {
	t = t.In(Manila)
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t.AddDate(0, 0, -daysSinceMonday))
}

// StartOfMonth returns the first day of t's civil month at 00:00:00 in Manila.
func StartOfMonth(t time.Time) time.Time {
	t = t.In(Manila)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Manila)
}

// Period selects the reporting window for a summary.
type Period string

const (
	PeriodToday Period = "Today"
	PeriodWeek  Period = "This Week"
	PeriodMonth Period = "This Month"
)

// Start computes the inclusive lower bound of the period relative to now.
// Unrecognized periods fall back to a trailing 7-day window.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodToday:
		return StartOfDay(now)
	case PeriodWeek:
		return StartOfWeek(now)
	case PeriodMonth:
		return StartOfMonth(now)
	default:
		return now.In(Manila).AddDate(0, 0, -7)
	}
}

// Contains reports whether t falls inside the period ending at now.
func (p Period) Contains(t, now time.Time) bool {
	return !t.Before(p.Start(now))
}
