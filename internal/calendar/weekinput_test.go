package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	// Monday Jan 1, 2024
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		t.Run(day.Weekday().String(), func(t *testing.T) {
			got := StartOfWeek(day)
			if got != NewDay(2024, time.January, 1) {
				t.Errorf("StartOfWeek(%v) = %v, want 2024-01-01", day, got)
			}
		})
	}
}

func TestFormatWeekInput(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), "2025-W40"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2025-W01"},
		// Sunday Jan 1 2023 belongs to the last ISO week of 2022.
		{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "2022-W52"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatWeekInput(tt.date))
		})
	}
}

func TestParseWeekInput(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		input    string
		expected Day
	}{
		{"2025-W40", NewDay(2025, time.September, 29)},
		{"2025-W1", NewDay(2024, time.December, 30)},
		{"2020-W53", NewDay(2020, time.December, 28)},
		{"", NewDay(2025, time.October, 13)},
		{"2025-40", NewDay(2025, time.October, 13)},
		{"garbage", NewDay(2025, time.October, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseWeekInput(tt.input, now))
		})
	}
}

func TestParseWeekInputRoundTrip(t *testing.T) {
	now := time.Now()
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	parsed := ParseWeekInput(FormatWeekInput(day), now)
	assert.Equal(t, StartOfWeek(day), parsed)
}

func TestWeekStepping(t *testing.T) {
	wed := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-09-29", FormatWeek(wed))
	assert.Equal(t, "2025-10-06", NextWeek(wed))
	assert.Equal(t, "2025-09-22", PreviousWeek(wed))
}

func TestWithinBounds(t *testing.T) {
	day := time.Date(2025, 10, 15, 18, 0, 0, 0, time.UTC)

	assert.True(t, WithinBounds(day, "2025-10-01", "2025-10-31"))
	assert.True(t, WithinBounds(day, "2025-10-15", "2025-10-15"))
	assert.False(t, WithinBounds(day, "2025-10-16", "2025-10-31"))
	assert.False(t, WithinBounds(day, "not-a-date", "2025-10-31"))
}
