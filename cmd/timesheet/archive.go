package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/timesheet/internal/archive"
	"github.com/timesheet/internal/document"
	"github.com/timesheet/internal/slug"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [YYYY-MM]",
	Short: "Archive a month's layout to markdown",
	Long: `Write a markdown record of the month's page layout, deadline options and
exports to the history directory next to the database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := monthArg(args)
		if err != nil {
			return err
		}

		history, err := openDatabase()
		if err != nil {
			return err
		}
		exports, err := history.RecentExports(100)
		if err != nil {
			return err
		}

		archiver := archive.New(historyPath())
		path, err := archiver.ArchiveMonth(document.Render(m, store.Get()), exports)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Archived %s to %s\n", m, path)
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived months",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		archives, err := archive.New(historyPath()).ListArchives()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(archives) == 0 {
			fmt.Fprintln(out, "No archived months. Run 'timesheet archive' first.")
			return nil
		}
		for _, a := range archives {
			fmt.Fprintf(out, "  - %s\n", a)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent PDF exports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		history, err := openDatabase()
		if err != nil {
			return err
		}
		records, err := history.RecentExports(limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No exports yet. Run 'timesheet export' first.")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			job := r.ID
			if len(job) > 8 {
				job = job[:8]
			}
			rows = append(rows, []string{
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.Month,
				fmt.Sprint(r.Pages),
				slug.Truncate(filepath.Base(r.Path), 40),
				job,
			})
		}
		fmt.Fprintln(out, renderTable([]string{"When", "Month", "Pages", "File", "Job"}, rows, nil))
		return nil
	},
}

func init() {
	archiveCmd.AddCommand(archiveListCmd)
	historyCmd.Flags().IntP("limit", "n", 10, "Number of exports to show")
}
