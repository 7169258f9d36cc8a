package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Timesheet October 2025", "timesheet-october-2025"},
		{"Hello World!", "hello-world"},
		{"  padded   title  ", "padded-title"},
		{"a -- b", "a-b"},
		{"Café Menu", "caf-menu"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Timesheet\u00a0October 2025", "timesheet-october-2025"},
		{"vertical\vtab\u2003em\u2028line", "vertical-tab-em-line"},
		{"\ufeff\u00a0Timesheet June 2026\u3000", "timesheet-june-2026"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Make(tt.input); got != tt.expected {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	once := Make("Timesheet  --  March 2026")
	assert.Equal(t, once, Make(once))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "Cygnet...", Truncate("Cygnet Churchill", 6))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Permanent Staff", TitleCase("permanent staff"))
	assert.Equal(t, "Bank Staff", TitleCase("BANK STAFF"))
}
