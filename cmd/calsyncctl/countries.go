package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/calsync/calsync-server/internal/service"
)

func newCountriesCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Query country data",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List countries with holiday data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, flags, func(i do.Injector) error {
				countries, err := do.MustInvoke[*service.CountryService](i).ListAvailableCountries(cmd.Context())
				if err != nil {
					return err
				}

				return newPrinter(cmd, flags).print(countries, func(w io.Writer) {
					fmt.Fprintln(w, "CODE\tNAME")
					for _, c := range countries {
						fmt.Fprintf(w, "%s\t%s\n", c.CountryCode, c.Name)
					}
				})
			})
		},
	}

	info := &cobra.Command{
		Use:   "info COUNTRY_CODE",
		Short: "Show country details, borders, population, and flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, flags, func(i do.Injector) error {
				result, err := do.MustInvoke[*service.CountryService](i).GetCountryInfo(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return newPrinter(cmd, flags).print(result, func(w io.Writer) {
					ci := result.CountryInfo
					borders := make([]string, 0, len(ci.Borders))
					for _, b := range ci.Borders {
						borders = append(borders, b.CountryCode)
					}
					fmt.Fprintf(w, "Name:\t%s\n", ci.CommonName)
					fmt.Fprintf(w, "Official name:\t%s\n", ci.OfficialName)
					fmt.Fprintf(w, "Code:\t%s\n", ci.CountryCode)
					fmt.Fprintf(w, "Region:\t%s\n", ci.Region)
					fmt.Fprintf(w, "Borders:\t%s\n", strings.Join(borders, ", "))
					fmt.Fprintf(w, "Flag:\t%s\n", result.FlagURL)
					if counts := result.PopulationData.PopulationCounts; len(counts) > 0 {
						latest := counts[len(counts)-1]
						fmt.Fprintf(w, "Population:\t%d (%d)\n", latest.Value, latest.Year)
					}
				})
			})
		},
	}

	cmd.AddCommand(list, info)
	return cmd
}

func newHolidaysCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Query public holidays",
	}

	list := &cobra.Command{
		Use:   "list COUNTRY_CODE YEAR",
		Short: "List the public holidays of a country and year",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[1])
			}

			return withContainer(cmd, flags, func(i do.Injector) error {
				holidays, err := do.MustInvoke[*service.CountryService](i).ListPublicHolidays(cmd.Context(), year, args[0])
				if err != nil {
					return err
				}

				return newPrinter(cmd, flags).print(holidays, func(w io.Writer) {
					fmt.Fprintln(w, "DATE\tNAME")
					for _, h := range holidays {
						fmt.Fprintf(w, "%s\t%s\n", h.Date, h.Name)
					}
				})
			})
		},
	}

	cmd.AddCommand(list)
	return cmd
}
