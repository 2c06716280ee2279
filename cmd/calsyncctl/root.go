package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/di"
	"github.com/calsync/calsync-server/internal/logger"
)

// globalFlags are forwarded to config.Load so the CLI resolves settings the
// same way the server does.
type globalFlags struct {
	configFile string
	envFile    string
	logLevel   string
	dbDriver   string
	dbPath     string
	dbDSN      string
	jsonOutput bool
}

func (f *globalFlags) configArgs() []string {
	var args []string
	add := func(name, value string) {
		if value != "" {
			args = append(args, "--"+name+"="+value)
		}
	}
	add("config", f.configFile)
	add("env-file", f.envFile)
	add("log-level", f.logLevel)
	add("db-driver", f.dbDriver)
	add("db-path", f.dbPath)
	add("db-dsn", f.dbDSN)
	return args
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "calsyncctl",
		Short:         "Manage calsync users, holidays, and calendars",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Path to TOML config file")
	pf.StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.dbDriver, "db-driver", "", "Database driver: sqlite or postgres")
	pf.StringVar(&flags.dbPath, "db-path", "", "SQLite database path")
	pf.StringVar(&flags.dbDSN, "db-dsn", "", "PostgreSQL DSN")
	pf.BoolVar(&flags.jsonOutput, "json", false, "Print results as JSON")

	root.AddCommand(
		newUsersCmd(flags),
		newCountriesCmd(flags),
		newHolidaysCmd(flags),
		newCalendarCmd(flags),
	)

	return root
}

// withContainer loads config, builds the DI container and runs fn against it.
// Logs go to stderr so stdout carries only command output.
func withContainer(cmd *cobra.Command, flags *globalFlags, fn func(do.Injector) error) error {
	cfg, err := config.Load(flags.configArgs())
	if err != nil {
		return err
	}

	injector := di.NewContainer(cfg)
	defer injector.Shutdown()

	do.OverrideValue(injector, logger.New(logger.Config{
		Writer:      cmd.ErrOrStderr(),
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	}))

	return fn(injector)
}

// printer renders command results as a table or as JSON.
type printer struct {
	out  io.Writer
	json bool
}

func newPrinter(cmd *cobra.Command, flags *globalFlags) *printer {
	return &printer{out: cmd.OutOrStdout(), json: flags.jsonOutput}
}

// print writes v as indented JSON in JSON mode; otherwise it calls table with
// a tabwriter that is flushed afterwards.
func (p *printer) print(v any, table func(w io.Writer)) error {
	if p.json {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func (p *printer) line(format string, args ...any) {
	if !p.json {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}
