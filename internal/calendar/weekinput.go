package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var weekInputPattern = regexp.MustCompile(`^\d{4}-W\d{1,}$`)

// StartOfWeek returns the Monday on or before t.
func StartOfWeek(t time.Time) Day {
	d := DayOf(t)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDays(-(weekday - int(time.Monday)))
}

// FormatWeek renders the Monday of t's week as yyyy-MM-dd.
func FormatWeek(t time.Time) string {
	return StartOfWeek(t).String()
}

// FormatWeekInput renders t's week as an ISO week string, e.g. "2025-W40".
func FormatWeekInput(t time.Time) string {
	year, week := StartOfWeek(t).Time().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseWeekInput returns the Monday of an ISO week string such as "2025-W40".
// Malformed input falls back to the Monday of now's week.
func ParseWeekInput(s string, now time.Time) Day {
	if !weekInputPattern.MatchString(s) {
		return StartOfWeek(now)
	}
	parts := strings.SplitN(s, "-W", 2)
	year, _ := strconv.Atoi(parts[0])
	week, err := strconv.Atoi(parts[1])
	if err != nil {
		return StartOfWeek(now)
	}
	// January 4th always falls in ISO week 1.
	week1 := StartOfWeek(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC))
	return week1.AddDays((week - 1) * 7)
}

// NextWeek returns the Monday after t's week as yyyy-MM-dd.
func NextWeek(t time.Time) string {
	return StartOfWeek(t).AddDays(7).String()
}

// PreviousWeek returns the Monday before t's week as yyyy-MM-dd.
func PreviousWeek(t time.Time) string {
	return StartOfWeek(t).AddDays(-7).String()
}

// WithinBounds reports whether t falls on or between the yyyy-MM-dd dates
// earliest and latest. Unparseable bounds never contain anything.
func WithinBounds(t time.Time, earliest, latest string) bool {
	lo, err := time.Parse(time.DateOnly, earliest)
	if err != nil {
		return false
	}
	hi, err := time.Parse(time.DateOnly, latest)
	if err != nil {
		return false
	}
	d := DayOf(t)
	return !d.Before(DayOf(lo)) && !d.After(DayOf(hi))
}
