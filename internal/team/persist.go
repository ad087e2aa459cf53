package team

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/leighmacdonald/team-tracker/internal/roster"
)

// LoadResult summarizes a roster load. Rows are applied independently; one bad row never stops
// the rest.
type LoadResult struct {
	Added      []string
	Duplicates []string
	// Unknown counts rows with an unrecognized kind discriminator.
	Unknown   int
	Malformed int
}

// failure explains why a load that was expected to add an entry added none.
func (r LoadResult) failure() error {
	switch {
	case len(r.Added) > 0:
		return nil
	case len(r.Duplicates) > 0:
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, r.Duplicates[0])
	default:
		return errors.Join(errNoEntry, ErrMalformedRecord)
	}
}

// LoadRoster adds every row of r to the roster. Rows whose name is already on the roster are
// reported as duplicates, rows with an unknown kind are skipped, and malformed rows are counted.
// Only a failure to read r is returned as an error.
func (s *Store) LoadRoster(r io.Reader) (LoadResult, error) {
	rows, errRows := record.ReadRows(r)
	if errRows != nil {
		return LoadResult{}, errors.Join(errRows, ErrIOFailure)
	}

	var result LoadResult
	for idx, row := range rows {
		entry, errParse := roster.ParseRow(row)
		if errParse != nil {
			if errors.Is(errParse, roster.ErrUnknownKind) {
				result.Unknown++

				continue
			}

			slog.Warn("Skipping malformed roster row", slog.Int("row", idx+1), slog.String("error", errParse.Error()))
			result.Malformed++

			continue
		}

		if err := s.roster.Insert(entry); err != nil {
			slog.Warn("Skipping duplicate roster entry", slog.String("name", entry.Name()))
			result.Duplicates = append(result.Duplicates, entry.Name())

			continue
		}

		result.Added = append(result.Added, entry.Name())
	}

	return result, nil
}

// LoadRosterFile loads the roster file at path.
func (s *Store) LoadRosterFile(path string) (LoadResult, error) {
	file, errOpen := os.Open(path)
	if errOpen != nil {
		return LoadResult{}, errors.Join(errOpen, ErrIOFailure)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close roster file", slog.String("error", err.Error()))
		}
	}(file)

	return s.LoadRoster(file)
}

// SaveRoster writes every entry in roster order.
func (s *Store) SaveRoster(w io.Writer) error {
	entries := s.roster.Entries()
	rows := make([][]string, len(entries))
	for idx, entry := range entries {
		rows[idx] = roster.Row(entry)
	}

	if err := record.WriteRows(w, rows); err != nil {
		return errors.Join(err, ErrIOFailure)
	}

	return nil
}

// SaveRosterFile replaces the file at path with the current roster.
func (s *Store) SaveRosterFile(path string) error {
	file, errCreate := os.Create(path)
	if errCreate != nil {
		return errors.Join(errCreate, ErrIOFailure)
	}

	errSave := s.SaveRoster(file)
	if errClose := file.Close(); errClose != nil {
		return errors.Join(errSave, errClose, ErrIOFailure)
	}

	return errSave
}

func (s *Store) loadSource(src record.Source) (LoadResult, error) {
	reader, errOpen := src.Open()
	if errOpen != nil {
		return LoadResult{}, errors.Join(errOpen, ErrIOFailure)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close roster source", slog.String("error", err.Error()))
		}
	}(reader)

	return s.LoadRoster(reader)
}
