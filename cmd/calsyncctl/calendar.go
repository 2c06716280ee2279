package main

import (
	"fmt"
	"io"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/calsync/calsync-server/internal/domain"
	"github.com/calsync/calsync-server/internal/service"
)

func newCalendarCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Sync and inspect user calendars",
	}

	var (
		country  string
		year     int
		holidays []string
	)
	sync := &cobra.Command{
		Use:   "sync USER_ID",
		Short: "Replace a user's calendar with the named holidays",
		Long: "Fetches the public holidays of a country and year, keeps the ones named\n" +
			"with --holiday, and replaces every event in the user's calendar with them.\n" +
			"Passing no --holiday clears the calendar.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			return withContainer(cmd, flags, func(i do.Injector) error {
				req := domain.AddHolidaysRequest{
					CountryCode: country,
					Year:        year,
					Holidays:    append([]string{}, holidays...),
				}

				result, err := do.MustInvoke[*service.CalendarService](i).AddHolidaysToCalendar(cmd.Context(), userID, req)
				if err != nil {
					return err
				}

				p := newPrinter(cmd, flags)
				p.line("%s", result.Message)
				return p.print(result, func(w io.Writer) {
					for _, h := range result.Holidays {
						fmt.Fprintf(w, "%s\t%s\n", h.Date, h.Name)
					}
				})
			})
		},
	}
	sync.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-2 country code")
	sync.Flags().IntVar(&year, "year", 0, "Calendar year")
	sync.Flags().StringArrayVar(&holidays, "holiday", nil, "Holiday name to keep (repeatable)")
	_ = sync.MarkFlagRequired("country")
	_ = sync.MarkFlagRequired("year")

	events := &cobra.Command{
		Use:   "events USER_ID",
		Short: "List the events in a user's calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			return withContainer(cmd, flags, func(i do.Injector) error {
				list, err := do.MustInvoke[*service.CalendarService](i).GetUserCalendarEvents(cmd.Context(), userID)
				if err != nil {
					return err
				}

				return newPrinter(cmd, flags).print(list, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tDATE\tTITLE\tCOUNTRY\tSYNC")
					for _, e := range list {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Date.Format(domain.DateLayout), e.Title, e.CountryCode, e.SyncID)
					}
				})
			})
		},
	}

	cmd.AddCommand(sync, events)
	return cmd
}
