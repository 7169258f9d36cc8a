// Package pagination distributes the week groups of a month over the two
// pages of a printed timesheet.
package pagination

import (
	"github.com/timesheet/internal/calendar"
)

// Allowed page break thresholds, and the default.
const (
	MinBreakDay     = 14
	MaxBreakDay     = 17
	DefaultBreakDay = 16
)

// BreakDays lists every allowed page break threshold in ascending order.
func BreakDays() []int {
	days := make([]int, 0, MaxBreakDay-MinBreakDay+1)
	for d := MinBreakDay; d <= MaxBreakDay; d++ {
		days = append(days, d)
	}
	return days
}

// Entry is a full week, or the part of one, placed on a page.
type Entry struct {
	Number calendar.WeekNumber
	Days   calendar.Week
}

// Bucket is the ordered list of entries printed on one page.
type Bucket []Entry

// DayCount returns the number of days in the bucket.
func (b Bucket) DayCount() int {
	n := 0
	for _, e := range b {
		n += len(e.Days)
	}
	return n
}

// Days flattens the bucket into its days, in order.
func (b Bucket) Days() []calendar.Day {
	days := make([]calendar.Day, 0, b.DayCount())
	for _, e := range b {
		days = append(days, e.Days...)
	}
	return days
}

// Layout is the result of paginating a month: the first and second page.
type Layout struct {
	Page1 Bucket
	Page2 Bucket
}

// Buckets returns the page buckets in page order, dropping an empty page 2.
// Page 1 is always present, even when it holds no weeks.
func (l Layout) Buckets() []Bucket {
	if len(l.Page2) == 0 {
		return []Bucket{l.Page1}
	}
	return []Bucket{l.Page1, l.Page2}
}

// state is the accumulator threaded through the fold.
type state struct {
	layout   Layout
	dayCount int
	split    bool
}

// Paginate places weeks on two pages so that page 1 holds at most threshold
// days. The week that crosses the threshold is cut at a day boundary: its
// leading days go to page 1 and the rest, under the same week number, to
// page 2. When threshold is zero or negative everything lands on page 2.
func Paginate(weeks []calendar.Week, threshold int) Layout {
	acc := state{layout: Layout{Page1: Bucket{}, Page2: Bucket{}}}
	for i, week := range weeks {
		acc = step(acc, calendar.WeekNumber(i+1), week, threshold)
	}
	return acc.layout
}

func step(acc state, number calendar.WeekNumber, week calendar.Week, threshold int) state {
	switch {
	case acc.split:
		acc.layout.Page2 = append(acc.layout.Page2, Entry{Number: number, Days: week})

	case acc.dayCount+len(week) > threshold:
		remaining := threshold - acc.dayCount
		if remaining > 0 {
			acc.layout.Page1 = append(acc.layout.Page1, Entry{Number: number, Days: week[:remaining:remaining]})
		} else {
			remaining = 0
		}
		acc.layout.Page2 = append(acc.layout.Page2, Entry{Number: number, Days: week[remaining:]})
		acc.split = true

	default:
		acc.layout.Page1 = append(acc.layout.Page1, Entry{Number: number, Days: week})
		acc.dayCount += len(week)
	}
	return acc
}

// ForMonth partitions the month into weeks and paginates them.
func ForMonth(m calendar.Month, threshold int) Layout {
	return Paginate(calendar.Weeks(m), threshold)
}
