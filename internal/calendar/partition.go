package calendar

import "time"

// WeekStart is the weekday that opens a new week group.
const WeekStart = time.Monday

// Week is a run of consecutive days of one month. Every week starts on
// WeekStart except possibly the first week of the month.
type Week []Day

// WeekNumber is the 1-based position of a week within its month.
type WeekNumber int

func (w Week) First() Day { return w[0] }
func (w Week) Last() Day { return w[len(w)-1] }

// Weeks splits the month into week groups starting on Mondays.
func Weeks(m Month) []Week {
	return Partition(m, WeekStart)
}

// Partition splits the month into contiguous week groups. A new group opens
// on every day whose weekday is start; the first day of the month always
// opens the first group. Concatenating the result yields every day of the
// month exactly once, in order.
func Partition(m Month, start time.Weekday) []Week {
	days := m.Days()
	if len(days) == 0 {
		return []Week{}
	}

	var weeks []Week
	var current Week
	for _, day := range days {
		if len(current) > 0 && day.Weekday() == start {
			weeks = append(weeks, current)
			current = nil
		}
		current = append(current, day)
	}
	if len(current) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

// CountDays returns the total number of days across weeks.
func CountDays(weeks []Week) int {
	n := 0
	for _, w := range weeks {
		n += len(w)
	}
	return n
}
