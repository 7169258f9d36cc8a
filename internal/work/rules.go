package work

import (
	"fmt"
	"time"

	"github.com/timesheet/internal/calendar"
)

// =============================================================================
// PAYROLL RULES
// =============================================================================
// A working day is Monday to Friday. Bank holidays are not taken into account:
// the printed form has its own Bank Holiday column for that.
//
// The payroll deadline is picked from the last working days of the month,
// counted back from month end:
//   0 = last working day, 1 = second-to-last, 2 = third-to-last, ...
// =============================================================================

const (
	// DefaultDeadlineOffset - second-to-last working day of the month
	DefaultDeadlineOffset = 1

	// DeadlineOptions - how many working days are offered as deadline choices
	DeadlineOptions = 5

	// DeadlineTime - time of day printed in front of the deadline date
	DeadlineTime = "10.00am"
)

// IsWorkDay returns true if the given day is a standard work day (Mon-Fri)
func IsWorkDay(d calendar.Day) bool {
	day := d.Weekday()
	return day >= time.Monday && day <= time.Friday
}

// LastWorkingDays returns up to count working days of m, most recent first.
// The walk starts at the last day of the month and stops at the first day,
// so short months or large counts give a shorter list rather than an error.
func LastWorkingDays(m calendar.Month, count int) []calendar.Day {
	days := make([]calendar.Day, 0, min(max(count, 0), m.Len()))
	first := m.First()
	for current := m.Last(); len(days) < count && !current.Before(first); current = current.AddDays(-1) {
		if IsWorkDay(current) {
			days = append(days, current)
		}
	}
	return days
}

// WorkingDayFromEnd returns the working day offset places back from the last
// working day of m. ok is false when the month has too few working days or
// the offset is negative.
func WorkingDayFromEnd(m calendar.Month, offset int) (day calendar.Day, ok bool) {
	if offset < 0 || offset >= m.Len() {
		return calendar.Day{}, false
	}
	days := LastWorkingDays(m, offset+1)
	if offset >= len(days) {
		return calendar.Day{}, false
	}
	return days[offset], true
}

// CountWorkingDays returns the number of working days in m.
func CountWorkingDays(m calendar.Month) int {
	n := 0
	for _, d := range m.Days() {
		if IsWorkDay(d) {
			n++
		}
	}
	return n
}

// FormatPayrollDeadline renders a deadline choice, e.g. "Thursday, October 30th".
func FormatPayrollDeadline(d calendar.Day) string {
	return fmt.Sprintf("%s, %s %s", d.Weekday(), d.Month(), d.Ordinal())
}

// FormatFullPayrollDeadline renders the deadline printed on the timesheet,
// e.g. "10.00am Thursday 30th of October, 2025".
func FormatFullPayrollDeadline(d calendar.Day, year int) string {
	return fmt.Sprintf("%s %s %s of %s, %d", DeadlineTime, d.Weekday(), d.Ordinal(), d.Month(), year)
}

// FallbackDeadline is printed when no working day matches the configured offset.
func FallbackDeadline(m calendar.Month) string {
	return fmt.Sprintf("%s Thursday 30th of %s, %d", DeadlineTime, m.Name(), m.Year)
}

// DeadlineText resolves the configured offset for m and formats it, falling
// back to FallbackDeadline when the offset does not resolve.
func DeadlineText(m calendar.Month, offset int) string {
	day, ok := WorkingDayFromEnd(m, offset)
	if !ok {
		return FallbackDeadline(m)
	}
	return FormatFullPayrollDeadline(day, m.Year)
}
