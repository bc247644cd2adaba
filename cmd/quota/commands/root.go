// Package commands implements the quota CLI.
package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/atlas/quota-engine/config"
	"github.com/atlas/quota-engine/factory"
	"github.com/atlas/quota-engine/generic"
	"github.com/atlas/quota-engine/generic/store"
	"github.com/atlas/quota-engine/pkg/logger"
	"github.com/atlas/quota-engine/store/sqlite"
)

// rootOptions are the global flags shared by every subcommand.
type rootOptions struct {
	dbPath   string
	logLevel string
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Sales quota and commission projection",
		Long: `Quota projects month-end account counts from the current business-day pace
and prices them with the commission tiers, accelerators and ranking bonus.

Usage:
  quota [command]

Examples:
  quota evaluate --today 2025-11-14 --target 80 --approved 40 --pending 10
  quota evaluate --team ura --approved 40 --position 1 --format json
  quota holidays add --date 2025-11-20 --name "Consciência Negra"
  quota holidays list --year 2025`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (holidays default to DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(newEvaluateCmd(opts))
	cmd.AddCommand(newHolidaysCmd(opts))
	return cmd
}

// Execute runs the CLI. This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{Level: o.logLevel, Pretty: true, Out: cmd.ErrOrStderr()})
}

// openSQLite opens --db, falling back to DB_PATH from the environment.
func (o *rootOptions) openSQLite() (*sqlite.Store, error) {
	path := o.dbPath
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		path = cfg.DatabasePath
	}
	return sqlite.New(path)
}

// openConfigStore returns the sqlite store when --db is set. Otherwise it
// returns an in-memory store seeded the way the server seeds its database:
// TEAMS_FILE (or the built-in teams) and DEFAULT_HOLIDAYS. The closer is
// never nil.
func (o *rootOptions) openConfigStore(ctx context.Context) (generic.ConfigStore, func() error, error) {
	if o.dbPath != "" {
		s, err := sqlite.New(o.dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	mem := store.NewMemory()
	f := factory.NewConfigFactory()
	defaults, err := f.LoadDefaults(cfg.TeamsFile, cfg.DefaultHolidays)
	if err != nil {
		return nil, nil, err
	}
	if err := f.Seed(ctx, mem, defaults); err != nil {
		return nil, nil, err
	}
	return mem, func() error { return nil }, nil
}
