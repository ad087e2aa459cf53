package team

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/leighmacdonald/team-tracker/internal/match"
	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/leighmacdonald/team-tracker/internal/roster"
)

// IngestResult summarizes how a match sheet was applied.
type IngestResult struct {
	Match match.Record
	// Applied lists the players whose averages were updated.
	Applied []string
	// Skipped lists row names that are not players on the roster.
	Skipped []string
	// Malformed counts player rows that could not be parsed.
	Malformed int
}

// IngestMatch applies one match sheet. The header is turned into a match record and logged, every
// coach is credited with the result, and each player row updates the named player's averages.
// Rows naming someone who is not a player on the roster are skipped. A malformed row is skipped
// too; rows applied before it are kept.
func (s *Store) IngestMatch(sheet record.MatchSheet) (IngestResult, error) {
	rec, errHeader := match.ParseHeader(sheet.Header)
	if errHeader != nil {
		return IngestResult{}, errHeader
	}

	s.matches.Record(rec)

	result := IngestResult{Match: rec}
	playoff := rec.IsPlayoff()

	for _, coach := range s.roster.Coaches() {
		coach.ApplyResult(rec.Won(), playoff)
		addAttendance(coach, playoff)
	}

	for _, row := range sheet.Rows {
		if len(row) == 0 {
			continue
		}

		entry, found := s.roster.Find(row[0])
		player, isPlayer := entry.(*roster.Player)
		if !found || !isPlayer {
			result.Skipped = append(result.Skipped, row[0])

			continue
		}

		if err := player.ApplyMatchStats(row[1:], playoff); err != nil {
			slog.Warn("Skipping malformed match row", slog.String("player", row[0]),
				slog.String("error", err.Error()))
			result.Malformed++

			continue
		}

		addAttendance(player, playoff)
		result.Applied = append(result.Applied, player.Name())
	}

	slog.Info("Match ingested", slog.String("opponent", rec.Opponent()), slog.Bool("won", rec.Won()),
		slog.Int("applied", len(result.Applied)), slog.Int("skipped", len(result.Skipped)),
		slog.Int("malformed", result.Malformed))

	return result, nil
}

// IngestMatchSource reads, applies, journals and then consumes a match sheet source. A source
// that fails to relocate after being applied is reported with ErrIOFailure alongside the result;
// its statistics stay applied.
func (s *Store) IngestMatchSource(ctx context.Context, src record.Source) (IngestResult, error) {
	sheet, errSheet := readSheet(src)
	if errSheet != nil {
		return IngestResult{}, errSheet
	}

	result, errIngest := s.IngestMatch(sheet)
	if errIngest != nil {
		return IngestResult{}, errIngest
	}

	s.journalMatch(ctx, result.Match, src.Name())

	if err := s.markConsumed(src); err != nil {
		return result, err
	}

	return result, nil
}

func readSheet(src record.Source) (record.MatchSheet, error) {
	parser, errParser := record.ParserFor(src.Name())
	if errParser != nil {
		return record.MatchSheet{}, errors.Join(errParser, ErrMalformedRecord)
	}

	reader, errOpen := src.Open()
	if errOpen != nil {
		return record.MatchSheet{}, errors.Join(errOpen, ErrIOFailure)
	}

	data, errRead := io.ReadAll(reader)
	if errClose := reader.Close(); errClose != nil {
		slog.Error("Failed to close match source", slog.String("error", errClose.Error()))
	}

	if errRead != nil {
		return record.MatchSheet{}, errors.Join(errRead, ErrIOFailure)
	}

	return parser.Parse(data)
}

func addAttendance(entry roster.Entry, playoff bool) {
	entry.AddMatch()
	if playoff {
		entry.AddPlayoffMatch()
	}
}
