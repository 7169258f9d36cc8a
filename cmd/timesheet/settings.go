package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/timesheet/internal/settings"
	"github.com/timesheet/internal/slug"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the saved timesheet settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := store.Get()
		rows := [][]string{
			{"name", s.Name},
			{"position", s.Position},
			{"siteName", s.SiteName},
			{"pageBreakDay", strconv.Itoa(s.PageBreakDay)},
			{"payrollDeadlineOffset", strconv.Itoa(s.PayrollDeadlineOffset)},
			{"useCygnetLogo", strconv.FormatBool(s.UseCygnetLogo)},
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
		fmt.Fprintf(out, "Backend: %s\n", cfg.SettingsBackend)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	Long: `Change settings. Only the flags given are changed; each change is validated
and saved before the next one is applied.

Examples:
  timesheet settings set --name "Ada Lovelace" --position "bank staff"
  timesheet settings set --break-day 15 --deadline-offset 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		changed := 0

		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			if err := store.SetName(v); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("position") {
			v, _ := flags.GetString("position")
			if title, _ := flags.GetBool("title-case"); title {
				v = slug.TitleCase(v)
			}
			if err := store.SetPosition(v); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("site") {
			v, _ := flags.GetString("site")
			if err := store.SetSiteName(v); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("break-day") {
			v, _ := flags.GetInt("break-day")
			if err := store.SetPageBreakDay(v); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("deadline-offset") {
			v, _ := flags.GetInt("deadline-offset")
			if err := store.SetPayrollDeadlineOffset(v); err != nil {
				return err
			}
			changed++
		}
		if flags.Changed("cygnet-logo") {
			v, _ := flags.GetBool("cygnet-logo")
			if err := store.SetUseCygnetLogo(v); err != nil {
				return err
			}
			changed++
		}

		if changed == 0 {
			return fmt.Errorf("nothing to change, see --help")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d setting(s)\n", changed)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Update(func(s *settings.Settings) { *s = settings.Defaults() }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults")
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().String("name", "", "Employee name")
	settingsSetCmd.Flags().String("position", "", "Position, e.g. Permanent Staff")
	settingsSetCmd.Flags().Bool("title-case", false, "Title case the position")
	settingsSetCmd.Flags().String("site", "", "Site name printed in the header")
	settingsSetCmd.Flags().Int("break-day", 0, "Page break day count (14-17)")
	settingsSetCmd.Flags().Int("deadline-offset", 0, "Payroll deadline, counted back from the last working day")
	settingsSetCmd.Flags().Bool("cygnet-logo", false, "Print the Cygnet logo instead of the placeholder")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}
