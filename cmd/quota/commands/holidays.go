package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atlas/quota-engine/factory"
)

func newHolidaysCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage the holiday calendar",
		Long: `Holidays are stored in the SQLite database given by --db (or DB_PATH) and
are removed from the business-day count of every evaluation run against it.`,
	}

	cmd.AddCommand(newHolidaysListCmd(root))
	cmd.AddCommand(newHolidaysAddCmd(root))
	cmd.AddCommand(newHolidaysDeleteCmd(root))
	return cmd
}

func newHolidaysListCmd(root *rootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.openSQLite()
			if err != nil {
				return err
			}
			defer s.Close()

			holidays, err := s.ListHolidays(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tNAME\tRECURRING")
			for _, h := range holidays {
				date := h.Date
				if year != 0 {
					d, ok := h.InYear(year)
					if !ok {
						continue
					}
					date = d
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", h.ID, date, h.Name, h.Recurring)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "only holidays falling in this year (recurring ones mapped into it)")
	return cmd
}

func newHolidaysAddCmd(root *rootOptions) *cobra.Command {
	var hj factory.HolidayJSON

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a holiday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := factory.NewConfigFactory().Holiday(hj)
			if err != nil {
				return err
			}

			s, err := root.openSQLite()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SaveHoliday(cmd.Context(), h); err != nil {
				return err
			}
			log := root.logger(cmd)
			log.Debug().Str("id", h.ID).Str("date", h.Date.String()).Msg("holiday saved")

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s, %s)\n", h.ID, h.Date, h.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&hj.Date, "date", "", "holiday date YYYY-MM-DD")
	cmd.Flags().StringVar(&hj.Name, "name", "", "holiday name")
	cmd.Flags().BoolVar(&hj.Recurring, "recurring", false, "repeat on the same month/day every year")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newHolidaysDeleteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a holiday by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.openSQLite()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteHoliday(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
