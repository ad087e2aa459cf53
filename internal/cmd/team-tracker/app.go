package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leighmacdonald/team-tracker/internal/config"
	"github.com/leighmacdonald/team-tracker/internal/inbox"
	"github.com/leighmacdonald/team-tracker/internal/match"
	"github.com/leighmacdonald/team-tracker/internal/store"
	"github.com/leighmacdonald/team-tracker/internal/team"
)

var errJournalDisabled = errors.New("journal is disabled, set journal_enabled to use history")

// App is the per invocation application container. It owns the loaded team, the inbox its
// sources come from and, when enabled, the journal database.
type App struct {
	config  config.Config
	loader  *config.Loader
	team    *team.Store
	inbox   *inbox.Filesystem
	journal *store.Journal
	closers []io.Closer
}

// openApp loads config, sets up logging, opens the journal and loads the roster file.
func openApp(ctx context.Context) (*App, error) {
	loader := config.NewLoader(cfgFile)
	userConfig, errConfig := loader.Read()
	if errConfig != nil {
		return nil, errors.Join(errConfig, errApp)
	}

	logFile, errLogger := config.LoggerInit(config.DefaultLogName, userConfig.Level())
	if errLogger != nil {
		return nil, errors.Join(errLogger, errApp)
	}

	app := &App{config: userConfig, loader: loader, closers: []io.Closer{logFile}}

	if err := app.setup(ctx); err != nil {
		app.Close()

		return nil, err
	}

	return app, nil
}

func (app *App) setup(ctx context.Context) error {
	for _, dir := range []string{filepath.Dir(app.config.RosterPath), filepath.Dir(app.config.DatabasePath)} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.Join(err, errApp)
		}
	}

	files, errInbox := inbox.New(app.config.PlayersDir, app.config.CoachesDir, app.config.MatchesDir,
		app.config.TrashDir)
	if errInbox != nil {
		return errors.Join(errInbox, errApp)
	}
	app.inbox = &files

	opts := []team.Option{team.WithConsumer(app.inbox)}
	if app.config.JournalEnabled {
		database, errDB := store.Open(ctx, app.config.DatabasePath, true)
		if errDB != nil {
			return errors.Join(errDB, errApp)
		}
		app.closers = append(app.closers, database)
		app.journal = store.NewJournal(database)
		opts = append(opts, team.WithJournal(app.journal))
	}

	app.team = team.New(app.config.TeamName, opts...)

	if err := app.loadRoster(); err != nil {
		return err
	}

	return app.restoreMatches(ctx)
}

func (app *App) loadRoster() error {
	if _, errStat := os.Stat(app.config.RosterPath); errors.Is(errStat, os.ErrNotExist) {
		slog.Info("No roster file yet, starting empty", slog.String("path", app.config.RosterPath))

		return nil
	}

	result, errLoad := app.team.LoadRosterFile(app.config.RosterPath)
	if errLoad != nil {
		return errors.Join(errLoad, errApp)
	}

	slog.Debug("Roster loaded", slog.Int("entries", len(result.Added)),
		slog.Int("duplicates", len(result.Duplicates)), slog.Int("unknown", result.Unknown),
		slog.Int("malformed", result.Malformed))

	return nil
}

// restoreMatches replays journaled matches into the match log so earlier ingests can be listed.
// Disabled by replay_matches: false.
func (app *App) restoreMatches(ctx context.Context) error {
	if app.journal == nil || !app.config.ReplayMatches {
		return nil
	}

	journaled, errMatches := app.journal.Matches(ctx)
	if errMatches != nil {
		return errors.Join(errMatches, errApp)
	}

	records := make([]match.Record, len(journaled))
	for idx, entry := range journaled {
		records[idx] = entry.Record
	}
	app.team.RestoreMatches(records)

	return nil
}

func (app *App) save() error {
	if err := app.team.SaveRosterFile(app.config.RosterPath); err != nil {
		return errors.Join(err, errApp)
	}

	slog.Debug("Roster saved", slog.String("path", app.config.RosterPath))

	return nil
}

// Close releases the database and log file, in reverse order of opening.
func (app *App) Close() {
	for idx := len(app.closers) - 1; idx >= 0; idx-- {
		if err := app.closers[idx].Close(); err != nil {
			slog.Error("Failed to close resource", slog.String("error", err.Error()))
		}
	}
}

// withApp opens the app for one command, runs fn and saves the roster when fn reports a change.
// The roster is saved even when fn fails part way, as whatever it applied is already in memory.
func withApp(ctx context.Context, fn func(app *App) (bool, error)) error {
	app, errOpen := openApp(ctx)
	if errOpen != nil {
		return errOpen
	}
	defer app.Close()

	changed, errRun := fn(app)
	if !changed {
		return errRun
	}

	return errors.Join(errRun, app.save())
}
