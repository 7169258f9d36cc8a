package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/timesheet/internal/calendar"
	"github.com/timesheet/internal/document"
	"github.com/timesheet/internal/storage"
	"github.com/timesheet/internal/work"
)

// Archiver writes a markdown record of each month's printed layout to the
// history directory.
type Archiver struct {
	historyPath string
	now         func() time.Time
}

// New creates a new Archiver
func New(historyPath string) *Archiver {
	return &Archiver{
		historyPath: historyPath,
		now:         time.Now,
	}
}

// FileName returns the archive file name for m, e.g. 2025-10.md.
func FileName(m calendar.Month) string {
	return m.Key() + ".md"
}

// ArchiveMonth writes the record for doc and returns its path. Exports made
// for other months are ignored.
func (a *Archiver) ArchiveMonth(doc *document.Document, exports []storage.ExportRecord) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("nothing to archive")
	}

	markdown := a.generateMarkdown(doc, exports)

	// Ensure history directory exists
	if err := os.MkdirAll(a.historyPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}

	filePath := filepath.Join(a.historyPath, FileName(doc.Month))
	if err := os.WriteFile(filePath, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	return filePath, nil
}

func (a *Archiver) generateMarkdown(doc *document.Document, exports []storage.ExportRecord) string {
	var sb strings.Builder
	m := doc.Month

	sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))

	// Summary stats
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Days | %d |\n", m.Len()))
	sb.WriteString(fmt.Sprintf("| Working Days | %d |\n", work.CountWorkingDays(m)))
	sb.WriteString(fmt.Sprintf("| Pages | %d |\n", len(doc.Pages)))
	for _, p := range doc.Pages {
		if p.Footer != nil {
			sb.WriteString(fmt.Sprintf("| Deadline | %s |\n", p.Footer.Deadline))
		}
	}
	sb.WriteString("\n")

	// Page layout
	sb.WriteString("## Pages\n\n")
	sb.WriteString("| Page | Week | Days |\n")
	sb.WriteString("|------|------|------|\n")
	for _, p := range doc.Pages {
		for _, w := range p.Weeks {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d |\n", p.ID, w.Number, len(w.Days)))
		}
	}
	sb.WriteString("\n")

	// Deadline options
	sb.WriteString("## Last Working Days\n\n")
	for i, d := range work.LastWorkingDays(m, work.DeadlineOptions) {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i, work.FormatPayrollDeadline(d)))
	}
	sb.WriteString("\n")

	var own []storage.ExportRecord
	for _, e := range exports {
		if e.Month == m.Key() {
			own = append(own, e)
		}
	}
	if len(own) > 0 {
		sb.WriteString("## Exports\n\n")
		sb.WriteString("| When | Pages | File |\n")
		sb.WriteString("|------|-------|------|\n")
		for _, e := range own {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Pages, filepath.Base(e.Path)))
		}
		sb.WriteString("\n")
	}

	// Footer
	sb.WriteString(fmt.Sprintf("---\n*Archived: %s*\n", a.now().Format("2006-01-02 15:04")))

	return sb.String()
}

// ListArchives returns list of archived months
func (a *Archiver) ListArchives() ([]string, error) {
	entries, err := os.ReadDir(a.historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var archives []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			archives = append(archives, e.Name())
		}
	}

	sort.Strings(archives)
	return archives, nil
}

// ReadArchive reads a specific month's archive
func (a *Archiver) ReadArchive(m calendar.Month) (string, error) {
	filename := FileName(m)
	data, err := os.ReadFile(filepath.Join(a.historyPath, filename))
	if err != nil {
		return "", fmt.Errorf("archive not found: %s", filename)
	}

	return string(data), nil
}
