package calendar

import (
	"fmt"
	"time"
)

// Month identifies a reporting month. Only Year and Month are significant.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "2006-01" month key.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, use YYYY-MM (e.g., 2025-10)", s)
	}
	return MonthOf(t), nil
}

// First returns the first day of the month.
func (m Month) First() Day {
	return NewDay(m.Year, m.Month, 1)
}

// Last returns the last day of the month.
func (m Month) Last() Day {
	return NewDay(m.Year, m.Month+1, 0)
}

// Len is the number of days in the month.
func (m Month) Len() int {
	return m.Last().Day()
}

// Days enumerates every day of the month in ascending order.
func (m Month) Days() []Day {
	n := m.Len()
	days := make([]Day, 0, n)
	first := m.First()
	for i := 0; i < n; i++ {
		days = append(days, first.AddDays(i))
	}
	return days
}

func (m Month) Next() Month { return m.add(1) }
func (m Month) Previous() Month { return m.add(-1) }

func (m Month) add(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthOf(t)
}

// Step moves n months forward (or backward when n is negative).
func (m Month) Step(n int) Month {
	return m.add(n)
}

// Name is the English month name, e.g. "October".
func (m Month) Name() string {
	return m.Month.String()
}

// Key renders the month as "2006-01".
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// String renders the month as "October 2025".
func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Name(), m.Year)
}
