package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/leighmacdonald/team-tracker/internal/inbox"
	"github.com/leighmacdonald/team-tracker/internal/render"
	"github.com/leighmacdonald/team-tracker/internal/team"
	"github.com/spf13/cobra"
)

var (
	errConfirmReset = errors.New("reset zeroes every statistic, pass --yes to confirm")
	errChartMetric  = errors.New("unknown chart metric, use ppg or win")
)

func ingestCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "ingest [sheet...]",
		Short: "Apply match sheets from the matches inbox",
		Long: `Applies the named match sheets, or every waiting sheet when none are named, to the roster.
Applied sheets are moved to the trash directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				sources := make([]*inbox.File, 0, len(args))
				if all || len(args) == 0 {
					pending, errPending := app.inbox.Pending(inbox.Matches)
					if errPending != nil {
						return false, errPending
					}
					sources = pending
				} else {
					for _, name := range args {
						sources = append(sources, app.inbox.Source(inbox.Matches, name))
					}
				}

				if len(sources) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No match sheets waiting.")

					return false, nil
				}

				var (
					changed bool
					errs    []error
				)
				for _, src := range sources {
					result, errIngest := app.team.IngestMatchSource(cmd.Context(), src)
					if result.Match.Opponent() != "" {
						changed = true
						fmt.Fprintln(cmd.OutOrStdout(), ingestSummary(src.Name(), result))
					}

					if errIngest != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", src.Name(), errIngest)
						errs = append(errs, errIngest)
					}
				}

				return changed, errors.Join(errs...)
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Ingest every waiting sheet")

	return cmd
}

func ingestSummary(source string, result team.IngestResult) string {
	outcome := "lost to"
	if result.Match.Won() {
		outcome = "beat"
	}

	summary := fmt.Sprintf("%s: %s %s %d - %d, %d players updated", source, outcome, result.Match.Opponent(),
		result.Match.Score(), result.Match.OpponentScore(), len(result.Applied))
	if len(result.Skipped) > 0 {
		summary += fmt.Sprintf(", skipped %s", strings.Join(result.Skipped, ", "))
	}

	if result.Malformed > 0 {
		summary += fmt.Sprintf(", %d malformed rows", result.Malformed)
	}

	return summary
}

func rosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster [name]",
		Short: "Show the roster, or one entry in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				if len(args) == 1 {
					entry, found := app.team.Roster().Find(args[0])
					if !found {
						return false, fmt.Errorf("%w: %s", team.ErrNotFound, args[0])
					}

					fmt.Fprintln(cmd.OutOrStdout(), entry.Display())

					return false, nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), render.Roster(app.team.Name(), app.team.Roster().Entries()))

				return false, nil
			})
		},
	}
}

func matchesCmd() *cobra.Command {
	var sorted bool
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List ingested matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				if sorted {
					app.team.Matches().Reorganize()
				}

				fmt.Fprintln(cmd.OutOrStdout(), render.Matches(app.team.Matches()))

				return false, nil
			})
		},
	}
	cmd.Flags().BoolVarP(&sorted, "sort", "s", false, "Order by point differential, largest first")

	return cmd
}

func organizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "organize",
		Short: "Order coaches by win percentage, then players by points per game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				app.team.Roster().Reorganize()
				app.team.Matches().Reorganize()
				fmt.Fprintln(cmd.OutOrStdout(), render.Roster(app.team.Name(), app.team.Roster().Entries()))

				return true, nil
			})
		},
	}
}

func resetCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Zero every statistic and attendance count on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errConfirmReset
			}

			return withApp(cmd.Context(), func(app *App) (bool, error) {
				app.team.ResetAll()
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d roster entries.\n", app.team.Roster().Len())

				return true, nil
			})
		},
	}
	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm the reset")

	return cmd
}

func tradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trade <incoming> <outgoing>",
		Short: "Trade a player out for one waiting in the players inbox",
		Long: `Loads the incoming player file from the players inbox, then removes the outgoing player
from the roster. The incoming file is moved to the trash directory.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				errTrade := app.team.TradePlayer(cmd.Context(), app.inbox.Source(inbox.Players, args[0]), args[1])
				// The outgoing player only leaves once the incoming one has joined.
				if _, found := app.team.Roster().Find(args[1]); found {
					return false, errTrade
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Traded away %s.\n", args[1])

				return true, errTrade
			})
		},
	}
}

func hireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hire <coach>",
		Short: "Hire a coach waiting in the coaches inbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				before := app.team.Roster().Len()
				errHire := app.team.HireCoach(cmd.Context(), app.inbox.Source(inbox.Coaches, args[0]))
				if app.team.Roster().Len() == before {
					return false, errHire
				}

				fmt.Fprintln(cmd.OutOrStdout(), "Coach hired.")

				return true, errHire
			})
		},
	}
}

func fireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <name>",
		Short: "Remove a player or coach from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				if err := app.team.FireEntry(cmd.Context(), args[0]); err != nil {
					return false, err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s has left the team.\n", args[0])

				return true, nil
			})
		},
	}
}

func chartCmd() *cobra.Command {
	var (
		output string
		metric string
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Export a bar chart of player or coach averages as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var chartMetric render.ChartMetric
			switch metric {
			case "ppg":
				chartMetric = render.PointsPerGame
			case "win":
				chartMetric = render.WinPercentage
			default:
				return fmt.Errorf("%w: %s", errChartMetric, metric)
			}

			return withApp(cmd.Context(), func(app *App) (bool, error) {
				image, errChart := render.Chart(app.team.Name(), app.team.Roster().Entries(), chartMetric)
				if errChart != nil {
					return false, errChart
				}

				if err := os.WriteFile(output, image, 0o640); err != nil {
					return false, errors.Join(err, team.ErrIOFailure)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", output)

				return false, nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "roster.png", "PNG output path")
	cmd.Flags().StringVarP(&metric, "metric", "m", "ppg", "Metric to plot: ppg or win")

	return cmd
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled trades, hires and firings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(app *App) (bool, error) {
				if app.journal == nil {
					return false, errJournalDisabled
				}

				transfers, errTransfers := app.journal.Transfers(cmd.Context(), limit)
				if errTransfers != nil {
					return false, errTransfers
				}

				fmt.Fprintln(cmd.OutOrStdout(), render.Transfers(transfers))

				return false, nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of transfers to show")

	return cmd
}
