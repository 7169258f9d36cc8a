package calendar

import (
	"fmt"
	"time"
)

// Day is a calendar date with no time-of-day. Two Days are equal when they
// name the same year, month and day, so Day values can be compared with ==.
type Day struct {
	t time.Time
}

// NewDay builds a Day, normalising out-of-range values the way time.Date does
// (October 32 becomes November 1).
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

func (d Day) Year() int { return d.t.Year() }
func (d Day) Month() time.Month { return d.t.Month() }
func (d Day) Day() int { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) Time() time.Time { return d.t }
func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }
func (d Day) After(other Day) bool { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }
func (d Day) MonthOf() Month { return Month{Year: d.Year(), Month: d.Month()} }
func (d Day) Format(layout string) string { return d.t.Format(layout) }

// String renders the date as yyyy-MM-dd.
func (d Day) String() string {
	return d.t.Format(time.DateOnly)
}

// Ordinal renders the day of month with its English suffix: 1st, 2nd, 3rd, 11th, 22nd.
func (d Day) Ordinal() string {
	return Ordinal(d.Day())
}

// Ordinal returns n with its English ordinal suffix.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
