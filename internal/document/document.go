// Package document lays out the printable timesheet for one month: the pages,
// their stable identifiers and everything printed on them. Rendering to
// pixels or HTML happens elsewhere.
package document

import (
	"fmt"
	"strings"

	"github.com/timesheet/internal/calendar"
	"github.com/timesheet/internal/pagination"
	"github.com/timesheet/internal/settings"
	"github.com/timesheet/internal/slug"
	"github.com/timesheet/internal/work"
)

// PageIDPrefix prefixes every page identifier: pdf-page-1, pdf-page-2.
const PageIDPrefix = "pdf-page-"

// Blank stands in for an unset name or position on page 2.
const Blank = "________________"

// Columns of every week table, in print order.
var Columns = []string{
	"Day",
	"Start Time",
	"End Time",
	"Hours",
	"Overtime",
	"Bank Holiday",
	"Training Hours",
	"Annual Leave",
	"Sickness",
}

// ShadedColumn is the index of the greyed Bank Holiday column.
const ShadedColumn = 5

// Staff categories ticked by hand on page 1.
var StaffCategories = []string{"Permanent Staff", "Bank Staff"}

// Signatures printed at the bottom of the last page.
var Signatures = []string{"Employee Signature:", "Manager Signature:"}

// Logo selects the mark printed in the page header.
type Logo int

const (
	LogoPlaceholder Logo = iota
	LogoCygnet
)

func (l Logo) String() string {
	if l == LogoCygnet {
		return "Cygnet"
	}
	return "LOGO"
}

// Document is a fully laid out timesheet.
type Document struct {
	Month   calendar.Month
	Title   string
	Slug    string
	Heading string
	Logo    Logo
	Pages   []Page
}

// Page is one A4 page of the timesheet.
type Page struct {
	Number int
	ID     string
	Staff  Staff
	Weeks  []WeekTable
	Footer *Footer
}

// Staff is the name and position block. Page 1 prints the full block with
// the category boxes; later pages print a compact line.
type Staff struct {
	Name     string
	Position string
	Compact  bool
}

// NameOrBlank returns the name, or Blank when the block is compact and the
// name is unset.
func (s Staff) NameOrBlank() string {
	if s.Compact && s.Name == "" {
		return Blank
	}
	return s.Name
}

func (s Staff) PositionOrBlank() string {
	if s.Compact && s.Position == "" {
		return Blank
	}
	return s.Position
}

// WeekTable is one week group, or the part of one, on a page.
type WeekTable struct {
	Number calendar.WeekNumber
	Title  string
	Days   calendar.Week
}

// Rows returns the row labels, e.g. "Wednesday 1st".
func (w WeekTable) Rows() []string {
	rows := make([]string, len(w.Days))
	for i, d := range w.Days {
		rows[i] = RowLabel(d)
	}
	return rows
}

// Footer carries the payroll deadline notice and the signature lines.
type Footer struct {
	Deadline string
	Notice   string
	Property string
}

// PageID returns the identifier of page n, counting from 1.
func PageID(n int) string {
	return fmt.Sprintf("%s%d", PageIDPrefix, n)
}

// Title returns the document title for m, e.g. "Timesheet October 2025".
func Title(m calendar.Month) string {
	return "Timesheet " + m.String()
}

// Heading returns the page header line, e.g. "Cygnet Churchill – October Timesheet".
func Heading(site string, m calendar.Month) string {
	return fmt.Sprintf("%s – %s Timesheet", site, m.Name())
}

// WeekTitle returns e.g. "Week 3: 13th – 16th October" for the days shown.
func WeekTitle(number calendar.WeekNumber, days calendar.Week, m calendar.Month) string {
	if len(days) == 0 {
		return fmt.Sprintf("Week %d", number)
	}
	return fmt.Sprintf("Week %d: %s – %s %s", number, days.First().Ordinal(), days.Last().Ordinal(), m.Name())
}

// RowLabel returns e.g. "Wednesday 1st".
func RowLabel(d calendar.Day) string {
	return fmt.Sprintf("%s %s", d.Weekday(), d.Ordinal())
}

// DeadlineNotice is the sentence printed above the signatures.
func DeadlineNotice(deadline string) string {
	return "These Timesheet needs to be signed by (" + deadline + "). " +
		"Please ensure all hours are in for last day of payroll as stated above, " +
		"it is your responsibility to ensure all hours are completed by the deadline. " +
		"Any hours submitted after the allocated date will not be paid until the following month."
}

// PropertyNotice reminds staff that the form stays on site.
func PropertyNotice(site string) string {
	return "These Timesheets remain the property of " + site + " and must not be taken off the premises."
}

// Render lays out m using the page break and deadline offset from s.
func Render(m calendar.Month, s settings.Settings) *Document {
	return RenderLayout(m, s, pagination.ForMonth(m, s.PageBreakDay))
}

// RenderLayout lays out m over an already computed layout. Page 2 is only
// produced when its bucket holds at least one entry, and the footer goes on
// page 2.
func RenderLayout(m calendar.Month, s settings.Settings, layout pagination.Layout) *Document {
	title := Title(m)
	doc := &Document{
		Month:   m,
		Title:   title,
		Slug:    slug.Make(title),
		Heading: Heading(s.SiteName, m),
		Logo:    LogoPlaceholder,
	}
	if s.UseCygnetLogo {
		doc.Logo = LogoCygnet
	}

	for i, bucket := range layout.Buckets() {
		n := i + 1
		page := Page{
			Number: n,
			ID:     PageID(n),
			Staff:  Staff{Name: s.Name, Position: s.Position, Compact: n > 1},
			Weeks:  weekTables(bucket, m),
		}
		if n == 2 {
			deadline := work.DeadlineText(m, s.PayrollDeadlineOffset)
			page.Footer = &Footer{
				Deadline: deadline,
				Notice:   DeadlineNotice(deadline),
				Property: PropertyNotice(s.SiteName),
			}
		}
		doc.Pages = append(doc.Pages, page)
	}

	return doc
}

func weekTables(bucket pagination.Bucket, m calendar.Month) []WeekTable {
	tables := make([]WeekTable, 0, len(bucket))
	for _, e := range bucket {
		tables = append(tables, WeekTable{
			Number: e.Number,
			Title:  WeekTitle(e.Number, e.Days, m),
			Days:   e.Days,
		})
	}
	return tables
}

// Page looks a page up by identifier.
func (d *Document) Page(id string) (Page, bool) {
	for _, p := range d.Pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// PageIDs lists the page identifiers in page order.
func (d *Document) PageIDs() []string {
	ids := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		ids[i] = p.ID
	}
	return ids
}

// Outline renders the document as indented plain text.
func (d *Document) Outline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", d.Title, d.Slug)
	for _, p := range d.Pages {
		fmt.Fprintf(&b, "\n== %s ==\n", p.ID)
		fmt.Fprintf(&b, "[%s] %s\n", d.Logo, d.Heading)
		if p.Staff.Compact {
			fmt.Fprintf(&b, "Name: %s | Position: %s\n", p.Staff.NameOrBlank(), p.Staff.PositionOrBlank())
		} else {
			fmt.Fprintf(&b, "Name: %s\nPosition: %s\n", p.Staff.Name, p.Staff.Position)
			boxes := make([]string, len(StaffCategories))
			for i, c := range StaffCategories {
				boxes[i] = "[ ] " + c
			}
			fmt.Fprintf(&b, "%s\n", strings.Join(boxes, "  "))
		}
		for _, w := range p.Weeks {
			fmt.Fprintf(&b, "%s\n", w.Title)
			for _, row := range w.Rows() {
				fmt.Fprintf(&b, "  %s\n", row)
			}
			b.WriteString("  TOTAL HOURS:\n")
			b.WriteString("  Authorised by: ____  Date: ____\n")
		}
		if p.Footer != nil {
			fmt.Fprintf(&b, "-- %s\n", p.Footer.Notice)
			fmt.Fprintf(&b, "-- %s\n", p.Footer.Property)
			fmt.Fprintf(&b, "-- %s ____  %s ____\n", Signatures[0], Signatures[1])
		}
	}
	return b.String()
}
