// Package slug turns document titles into file-system safe names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}\x{FEFF}-]`)
	whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	hyphens    = regexp.MustCompile(`-+`)
)

// Make lowercases and trims input, strips everything outside [a-z0-9],
// whitespace and hyphens, then collapses whitespace runs and repeated
// hyphens into a single hyphen.
//
//	Make("Timesheet October 2025") == "timesheet-october-2025"
func Make(input string) string {
	s := norm.NFC.String(input)
	s = strings.TrimFunc(strings.ToLower(s), isSpace)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	return hyphens.ReplaceAllString(s, "-")
}

// isSpace matches Unicode white space, including the byte order mark.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Truncate shortens text to maxLength runes, appending "..." when cut.
func Truncate(text string, maxLength int) string {
	r := []rune(text)
	if len(r) <= maxLength {
		return text
	}
	return string(r[:maxLength]) + "..."
}

// TitleCase capitalises the first letter of every word.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
