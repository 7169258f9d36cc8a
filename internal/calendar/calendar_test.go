package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeksOctober2025(t *testing.T) {
	weeks := Weeks(Month{Year: 2025, Month: time.October})

	require.Len(t, weeks, 5)

	lengths := make([]int, len(weeks))
	for i, w := range weeks {
		lengths[i] = len(w)
	}
	assert.Equal(t, []int{5, 7, 7, 7, 5}, lengths)
	assert.Equal(t, 31, CountDays(weeks))

	assert.Equal(t, time.Wednesday, weeks[0].First().Weekday())
	assert.Equal(t, time.Sunday, weeks[0].Last().Weekday())
	for _, w := range weeks[1:] {
		assert.Equal(t, time.Monday, w.First().Weekday())
	}
	assert.Equal(t, NewDay(2025, time.October, 31), weeks[4].Last())
	assert.Equal(t, time.Friday, weeks[4].Last().Weekday())
}

func TestPartitionCoversEveryDay(t *testing.T) {
	start := Month{Year: 2023, Month: time.January}
	for i := 0; i < 48; i++ {
		m := start.Step(i)
		t.Run(m.Key(), func(t *testing.T) {
			weeks := Weeks(m)
			assert.GreaterOrEqual(t, len(weeks), 4)
			assert.LessOrEqual(t, len(weeks), 6)

			var flat []Day
			for wi, w := range weeks {
				require.NotEmpty(t, w)
				if wi > 0 {
					assert.Equal(t, time.Monday, w.First().Weekday(), "week %d", wi+1)
				}
				if wi > 0 && wi < len(weeks)-1 {
					assert.Len(t, w, 7, "interior week %d", wi+1)
				}
				flat = append(flat, w...)
			}
			assert.Equal(t, m.Days(), flat)
		})
	}
}

func TestPartitionCustomWeekStart(t *testing.T) {
	weeks := Partition(Month{Year: 2025, Month: time.October}, time.Sunday)

	require.Len(t, weeks, 5)
	assert.Len(t, weeks[0], 4) // Wed 1st .. Sat 4th
	for _, w := range weeks[1:] {
		assert.Equal(t, time.Sunday, w.First().Weekday())
	}
	assert.Equal(t, 31, CountDays(weeks))
}

func TestPartitionIsIdempotent(t *testing.T) {
	m := Month{Year: 2026, Month: time.February}
	assert.Equal(t, Weeks(m), Weeks(m))
}

func TestMonthNavigation(t *testing.T) {
	tests := []struct {
		name     string
		month    Month
		next     Month
		previous Month
	}{
		{"mid year", Month{2025, time.October}, Month{2025, time.November}, Month{2025, time.September}},
		{"december", Month{2025, time.December}, Month{2026, time.January}, Month{2025, time.November}},
		{"january", Month{2025, time.January}, Month{2025, time.February}, Month{2024, time.December}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.month.Next(); got != tt.next {
				t.Errorf("Next() = %v, want %v", got, tt.next)
			}
			if got := tt.month.Previous(); got != tt.previous {
				t.Errorf("Previous() = %v, want %v", got, tt.previous)
			}
		})
	}
}

func TestMonthLength(t *testing.T) {
	tests := []struct {
		month    Month
		expected int
	}{
		{Month{2024, time.February}, 29},
		{Month{2025, time.February}, 28},
		{Month{2025, time.April}, 30},
		{Month{2025, time.October}, 31},
	}

	for _, tt := range tests {
		t.Run(tt.month.Key(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.month.Len())
			assert.Len(t, tt.month.Days(), tt.expected)
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-10")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: time.October}, m)
	assert.Equal(t, "October 2025", m.String())
	assert.Equal(t, "2025-10", m.Key())

	_, err = ParseMonth("October")
	assert.Error(t, err)
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th",
		13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 30: "30th", 31: "31st",
	}
	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestDayOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2025, time.October, 31, 23, 30, 0, 0, loc)

	assert.Equal(t, NewDay(2025, time.October, 31), DayOf(late))
	assert.Equal(t, "2025-10-31", DayOf(late).String())
}
