package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/timesheet/internal/calendar"
	"github.com/timesheet/internal/document"
	"github.com/timesheet/internal/export"
	"github.com/timesheet/internal/pagination"
	"github.com/timesheet/internal/raster"
	"github.com/timesheet/internal/storage"
	"github.com/timesheet/internal/visualization"
	"github.com/timesheet/internal/work"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Padding(0, 1)
)

func renderTable(headers []string, rows [][]string, marked func(row int) bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case marked != nil && marked(row):
				return markStyle
			}
			return cellStyle
		})
	return t.String()
}

var weeksCmd = &cobra.Command{
	Use:   "weeks [YYYY-MM]",
	Short: "Show the week groups of a month",
	Long: `Split the month into Monday-start week groups. The first and last group
may be shorter than seven days. Use --prev and --next to show neighbouring
months as well. --week 2025-W40 picks the month of that ISO week and
highlights it; a malformed week falls back to the current week.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := monthArg(args)
		if err != nil {
			return err
		}
		prev, _ := cmd.Flags().GetInt("prev")
		next, _ := cmd.Flags().GetInt("next")

		out := cmd.OutOrStdout()
		var marked func(w calendar.Week) bool
		if cmd.Flags().Changed("week") {
			t, err := today()
			if err != nil {
				return err
			}
			input, _ := cmd.Flags().GetString("week")
			monday := calendar.ParseWeekInput(input, t)
			// An ISO week belongs to the month of its Thursday.
			m = monday.AddDays(3).MonthOf()

			earliest, latest := calendar.FormatWeek(monday.Time()), monday.AddDays(6).String()
			marked = func(w calendar.Week) bool {
				return calendar.WithinBounds(w.First().Time(), earliest, latest) ||
					calendar.WithinBounds(w.Last().Time(), earliest, latest)
			}
			fmt.Fprintf(out, "Week %s: %s to %s (previous %s, next %s)\n\n",
				calendar.FormatWeekInput(monday.Time()), earliest, latest,
				calendar.PreviousWeek(monday.Time()), calendar.NextWeek(monday.Time()))
		}

		for i := -prev; i <= next; i++ {
			month := m.Step(i)
			weeks := calendar.Weeks(month)

			rows := make([][]string, 0, len(weeks))
			for n, w := range weeks {
				rows = append(rows, []string{
					strconv.Itoa(n + 1),
					document.RowLabel(w.First()),
					document.RowLabel(w.Last()),
					strconv.Itoa(len(w)),
				})
			}
			fmt.Fprintln(out, titleStyle.Render(month.String()))
			var rowMarked func(row int) bool
			if marked != nil {
				rowMarked = func(row int) bool { return row < len(weeks) && marked(weeks[row]) }
			}
			fmt.Fprintln(out, renderTable([]string{"Week", "From", "To", "Days"}, rows, rowMarked))
			fmt.Fprintf(out, "%d weeks, %d days\n\n", len(weeks), calendar.CountDays(weeks))
		}
		return nil
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages [YYYY-MM]",
	Short: "Show how the weeks are split over the two pages",
	Long: `Paginate the month. Page 1 takes whole weeks until the page break day
count would be exceeded; the crossing week is split and the rest goes to
page 2. Defaults to the saved page break day.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := monthArg(args)
		if err != nil {
			return err
		}

		threshold := store.Get().PageBreakDay
		if cmd.Flags().Changed("break-day") {
			threshold, _ = cmd.Flags().GetInt("break-day")
			if threshold < pagination.MinBreakDay || threshold > pagination.MaxBreakDay {
				return fmt.Errorf("break day must be between %d and %d, got %d",
					pagination.MinBreakDay, pagination.MaxBreakDay, threshold)
			}
		}

		layout := pagination.ForMonth(m, threshold)
		var rows [][]string
		for i, bucket := range layout.Buckets() {
			for _, e := range bucket {
				rows = append(rows, []string{
					document.PageID(i + 1),
					document.WeekTitle(e.Number, e.Days, m),
					strconv.Itoa(len(e.Days)),
				})
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s, break after day %d", m, threshold)))
		fmt.Fprintln(out, renderTable([]string{"Page", "Week", "Days"}, rows, nil))
		fmt.Fprintf(out, "Page 1: %d days | Page 2: %d days\n", layout.Page1.DayCount(), layout.Page2.DayCount())
		return nil
	},
}

var deadlinesCmd = &cobra.Command{
	Use:   "deadlines [YYYY-MM]",
	Short: "List the last working days of a month",
	Long: `List the last working days of the month, most recent first. The entry
matching the saved payroll deadline offset is marked with a star.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := monthArg(args)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		offset := store.Get().PayrollDeadlineOffset

		days := work.LastWorkingDays(m, count)
		rows := make([][]string, 0, len(days))
		for i, d := range days {
			mark := ""
			if i == offset {
				mark = "*"
			}
			rows = append(rows, []string{strconv.Itoa(i), work.FormatPayrollDeadline(d), mark})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s, %d working days", m, work.CountWorkingDays(m))))
		fmt.Fprintln(out, renderTable([]string{"Offset", "Day", ""}, rows, func(row int) bool { return row == offset }))
		fmt.Fprintf(out, "Deadline: %s\n", work.DeadlineText(m, offset))
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [YYYY-MM]",
	Short: "Render the timesheet as HTML",
	Long:  `Render the timesheet as an HTML page, or as a plain text outline with --text.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := monthArg(args)
		if err != nil {
			return err
		}
		doc := document.Render(m, store.Get())

		text, _ := cmd.Flags().GetBool("text")
		svg, _ := cmd.Flags().GetBool("svg")

		var content string
		switch {
		case text:
			content = doc.Outline()
		case svg:
			content = visualization.New().GenerateWeekSVG(doc)
		default:
			content, err = visualization.New().GenerateHTMLPreview(doc)
			if err != nil {
				return err
			}
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}
		if err := os.WriteFile(output, []byte(content), 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", output)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [YYYY-MM]",
	Short: "Export the timesheet as an A4 PDF",
	Long: `Rasterize each page in order and save them as an A4 PDF named after the
month, e.g. timesheet-october-2025.pdf.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := monthArg(args)
		if err != nil {
			return err
		}
		dir := cfg.OutputDir
		if cmd.Flags().Changed("output") {
			dir, _ = cmd.Flags().GetString("output")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		doc := document.Render(m, store.Get())
		pipeline := export.New(raster.NewCanvas(cfg.RenderScale), dir, logger)
		res, err := pipeline.Export(ctx, doc)
		if err != nil {
			return err
		}

		if err := recordExport(res); err != nil {
			logger.Warn("export not recorded in history", "error", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d pages)\n", res.Path, res.Pages)
		return nil
	},
}

func recordExport(res export.Result) error {
	history, err := openDatabase()
	if err != nil {
		return err
	}
	return history.InsertExport(storage.ExportRecord{
		ID:        res.JobID,
		Month:     res.Month,
		Path:      res.Path,
		Pages:     res.Pages,
		CreatedAt: res.Finished,
	})
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for timesheet.

To load completions:

Bash:
  $ source <(timesheet completion bash)

Zsh:
  $ timesheet completion zsh > "${fpath[1]}/_timesheet"

Fish:
  $ timesheet completion fish > ~/.config/fish/completions/timesheet.fish

PowerShell:
  PS> timesheet completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(out)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletion(out)
		}
		return nil
	},
}

func init() {
	weeksCmd.Flags().Int("prev", 0, "Also show this many previous months")
	weeksCmd.Flags().Int("next", 0, "Also show this many following months")
	weeksCmd.Flags().String("week", "", "Highlight an ISO week, e.g. 2025-W40")

	pagesCmd.Flags().Int("break-day", pagination.DefaultBreakDay, "Page break day count (14-17)")

	deadlinesCmd.Flags().IntP("count", "n", work.DeadlineOptions, "Number of working days to list")

	previewCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
	previewCmd.Flags().Bool("text", false, "Plain text outline instead of HTML")
	previewCmd.Flags().Bool("svg", false, "SVG day strip instead of HTML, page 2 days outlined")
	previewCmd.MarkFlagsMutuallyExclusive("text", "svg")

	exportCmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
}
