package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leighmacdonald/team-tracker/internal/config"
	"github.com/leighmacdonald/team-tracker/internal/inbox"
	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// settleDelay is how long a sheet must go without writes before it is ingested.
const settleDelay = 500 * time.Millisecond

var errWatch = errors.New("failed to watch matches inbox")

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Ingest match sheets as they arrive in the matches inbox",
		Long: `Ingests every waiting match sheet, then keeps watching the matches inbox and ingests new
sheets as they are written. The roster is saved after each sheet. Editing the config file while
watching re-points the inbox directories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, errOpen := openApp(ctx)
			if errOpen != nil {
				return errOpen
			}
			defer app.Close()

			return newMatchWatcher(app, cmd.OutOrStdout()).run(ctx)
		},
	}
}

type matchWatcher struct {
	app *App
	out io.Writer
	// pending maps sheet names to the time of their last write event.
	pending map[string]time.Time
}

func newMatchWatcher(app *App, out io.Writer) *matchWatcher {
	return &matchWatcher{app: app, out: out, pending: map[string]time.Time{}}
}

func (w *matchWatcher) run(ctx context.Context) error {
	fsWatcher, errWatcher := fsnotify.NewWatcher()
	if errWatcher != nil {
		return errors.Join(errWatcher, errWatch)
	}

	if err := fsWatcher.Add(w.app.inbox.Dir(inbox.Matches)); err != nil {
		_ = fsWatcher.Close()

		return errors.Join(err, errWatch)
	}

	configChanges := make(chan config.Config, 1)
	if w.app.loader.Path() != "" {
		w.app.loader.Watch(configChanges)
	}

	// Sheets that arrived while nothing was watching.
	if err := w.queueWaiting(); err != nil {
		_ = fsWatcher.Close()

		return err
	}

	slog.Info("Watching matches inbox", slog.String("path", w.app.inbox.Dir(inbox.Matches)))
	fmt.Fprintf(w.out, "Watching %s for match sheets, ctrl+c to stop.\n", w.app.inbox.Dir(inbox.Matches))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-groupCtx.Done()

		return fsWatcher.Close()
	})
	group.Go(func() error {
		return w.loop(groupCtx, fsWatcher, configChanges)
	})

	return group.Wait()
}

func (w *matchWatcher) queueWaiting() error {
	waiting, errPending := w.app.inbox.Pending(inbox.Matches)
	if errPending != nil {
		return errors.Join(errPending, errWatch)
	}

	// Backdated so the first tick picks them up.
	for _, file := range waiting {
		w.pending[file.Name()] = time.Now().Add(-settleDelay)
	}

	return nil
}

func (w *matchWatcher) loop(ctx context.Context, fsWatcher *fsnotify.Watcher, configChanges <-chan config.Config) error {
	ticker := time.NewTicker(settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			if !record.IsSheet(event.Name) {
				continue
			}

			w.pending[filepath.Base(event.Name)] = time.Now()
		case errEvent, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("Inbox watcher error", slog.String("error", errEvent.Error()))
		case conf := <-configChanges:
			w.onConfigChange(fsWatcher, conf)
		case now := <-ticker.C:
			w.ingestSettled(ctx, now)
		}
	}
}

func (w *matchWatcher) ingestSettled(ctx context.Context, now time.Time) {
	var settled []string
	for name, lastWrite := range w.pending {
		if now.Sub(lastWrite) >= settleDelay {
			settled = append(settled, name)
		}
	}

	if len(settled) == 0 {
		return
	}

	sort.Strings(settled)

	changed := false
	for _, name := range settled {
		delete(w.pending, name)

		src := w.app.inbox.Source(inbox.Matches, name)
		if _, errStat := os.Stat(src.Path()); errStat != nil {
			continue
		}

		result, errIngest := w.app.team.IngestMatchSource(ctx, src)
		if result.Match.Opponent() != "" {
			changed = true
			fmt.Fprintln(w.out, ingestSummary(name, result))
		}

		if errIngest != nil {
			slog.Error("Failed to ingest match sheet", slog.String("source", name),
				slog.String("error", errIngest.Error()))
			fmt.Fprintf(w.out, "%s: %v\n", name, errIngest)
		}
	}

	if !changed {
		return
	}

	if err := w.app.save(); err != nil {
		slog.Error("Failed to save roster", slog.String("error", err.Error()))
	}
}

// onConfigChange re-points the inbox at the reloaded directories. Other settings apply on the next
// run.
func (w *matchWatcher) onConfigChange(fsWatcher *fsnotify.Watcher, conf config.Config) {
	current := w.app.config
	if conf.PlayersDir == current.PlayersDir && conf.CoachesDir == current.CoachesDir &&
		conf.MatchesDir == current.MatchesDir && conf.TrashDir == current.TrashDir {
		slog.Debug("Config reloaded, inbox unchanged")

		return
	}

	files, errInbox := inbox.New(conf.PlayersDir, conf.CoachesDir, conf.MatchesDir, conf.TrashDir)
	if errInbox != nil {
		slog.Error("Failed to open reloaded inbox", slog.String("error", errInbox.Error()))

		return
	}

	if conf.MatchesDir != current.MatchesDir {
		if err := fsWatcher.Add(conf.MatchesDir); err != nil {
			slog.Error("Failed to watch reloaded matches inbox", slog.String("error", err.Error()))

			return
		}

		if err := fsWatcher.Remove(current.MatchesDir); err != nil {
			slog.Warn("Failed to stop watching old matches inbox", slog.String("error", err.Error()))
		}

		clear(w.pending)
	}

	*w.app.inbox = files
	w.app.config.PlayersDir = conf.PlayersDir
	w.app.config.CoachesDir = conf.CoachesDir
	w.app.config.MatchesDir = conf.MatchesDir
	w.app.config.TrashDir = conf.TrashDir

	if err := w.queueWaiting(); err != nil {
		slog.Error("Failed to list reloaded matches inbox", slog.String("error", err.Error()))
	}

	slog.Info("Inbox directories reloaded", slog.String("matches", conf.MatchesDir))
}
