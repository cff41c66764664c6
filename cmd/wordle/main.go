package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bodul/wordle/internal/config"
	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/game"
	"github.com/bodul/wordle/internal/logging"
	"github.com/bodul/wordle/internal/storage"
	"github.com/bodul/wordle/internal/storage/memory"
	"github.com/bodul/wordle/internal/storage/sqlite"
)

// app carries what every subcommand shares once flags and env are read.
type app struct {
	cfg     config.Config
	verbose bool
	logger  *zap.Logger
	loc     *time.Location
}

func main() {
	os.Exit(run(context.Background(), newRootCmd()))
}

// run executes root until it returns or a signal arrives. It returns the
// process exit code so deferred cleanup happens before os.Exit.
func run(ctx context.Context, root *cobra.Command) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wordle",
		Short: "Daily word-guessing game backend",
		Long: `wordle serves a daily word game: one secret word per calendar day,
chosen from the answer table by a hash of the date (MMDDYYYY), and a
letter-by-letter verdict for every guess.

Configuration comes from WORDLE_* environment variables; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.String("database", "", "SQLite database path (WORDLE_DATABASE); empty keeps data in memory")
	flags.String("timezone", "", "IANA time zone that decides the current day (WORDLE_TIMEZONE)")

	root.AddCommand(
		newServeCmd(a),
		newDayCmd(a),
		newGuessCmd(a),
		newWordsCmd(a),
		newAnswerCmd(a),
		newSeedCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.ParseEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("database") {
		cfg.Database, _ = flags.GetString("database")
	}
	if flags.Changed("timezone") {
		cfg.Timezone, _ = flags.GetString("timezone")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.SeedFile, _ = flags.GetString("seed")
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		cfg.WatchSeed, _ = flags.GetBool("watch")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.DevLog, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.loc = loc
	a.logger = logger
	return nil
}

// openStore opens SQLite when a database path is configured, memory otherwise.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	if a.cfg.Database == "" {
		a.logger.Warn("no database configured, data is kept in memory")
		return memory.NewStore(), nil
	}
	store, err := sqlite.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("database opened", zap.String("path", a.cfg.Database))
	return store, nil
}

func (a *app) selector() daily.Selector {
	return daily.NewSelector(a.loc)
}

func (a *app) newService(store storage.Store, opts ...game.Option) *game.Service {
	opts = append([]game.Option{
		game.WithLogger(a.logger),
		game.WithWordLength(a.cfg.WordLength),
	}, opts...)
	return game.NewService(store, store, a.selector(), opts...)
}

// withService opens the store, runs fn with a service over it and closes the store.
func (a *app) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *game.Service) error) error {
	ctx := cmd.Context()
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, a.newService(store))
}

// dateFlag parses the optional --date flag; nil means today.
func (a *app) dateFlag(cmd *cobra.Command) (*time.Time, error) {
	value, _ := cmd.Flags().GetString("date")
	if value == "" {
		return nil, nil
	}
	d, err := daily.ParseDate(value, a.loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
