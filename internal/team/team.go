// Package team applies match results and roster transfers to a team's roster and match log, and
// reads and writes the roster file.
package team

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leighmacdonald/team-tracker/internal/match"
	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/leighmacdonald/team-tracker/internal/roster"
	"github.com/leighmacdonald/team-tracker/internal/store"
)

var (
	ErrNotFound        = roster.ErrNotFound
	ErrDuplicateEntry  = roster.ErrDuplicateEntry
	ErrMalformedRecord = record.ErrMalformedRecord
	// ErrIOFailure wraps failures to read, write or relocate a file.
	ErrIOFailure = errors.New("io failure")
	errNoEntry   = errors.New("source contained no usable roster entry")
)

// Consumer relocates a source once it has been applied so it is not processed twice.
type Consumer interface {
	MarkConsumed(src record.Source) error
}

// Journal records ingested matches and transfers.
type Journal interface {
	RecordMatch(ctx context.Context, rec match.Record, source string) error
	RecordTransfer(ctx context.Context, action store.Action, name string, source string) error
}

type keepConsumer struct{}

func (keepConsumer) MarkConsumed(_ record.Source) error {
	return nil
}

type Option func(*Store)

// WithConsumer sets where applied sources are moved. Without one sources are left in place.
func WithConsumer(consumer Consumer) Option {
	return func(s *Store) {
		s.consumer = consumer
	}
}

func WithJournal(journal Journal) Option {
	return func(s *Store) {
		s.journal = journal
	}
}

// Store owns a team's roster and match log. It is not safe for concurrent use.
type Store struct {
	name     string
	roster   *roster.Roster
	matches  *match.Log
	consumer Consumer
	journal  Journal
}

func New(name string, opts ...Option) *Store {
	teamStore := &Store{
		name:     name,
		roster:   roster.New(),
		matches:  match.NewLog(),
		consumer: keepConsumer{},
	}

	for _, opt := range opts {
		opt(teamStore)
	}

	return teamStore
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Roster() *roster.Roster {
	return s.roster
}

func (s *Store) Matches() *match.Log {
	return s.matches
}

// ResetAll zeroes every roster entry's attendance and statistics.
func (s *Store) ResetAll() {
	s.roster.ResetAll()
}

// RestoreMatches appends previously ingested records to the match log without touching any
// roster statistics.
func (s *Store) RestoreMatches(records []match.Record) {
	for _, rec := range records {
		s.matches.Record(rec)
	}
}

func (s *Store) markConsumed(src record.Source) error {
	if err := s.consumer.MarkConsumed(src); err != nil {
		slog.Error("Failed to consume source", slog.String("source", src.Name()),
			slog.String("error", err.Error()))

		return errors.Join(err, ErrIOFailure)
	}

	return nil
}

func (s *Store) journalMatch(ctx context.Context, rec match.Record, source string) {
	if s.journal == nil {
		return
	}

	if err := s.journal.RecordMatch(ctx, rec, source); err != nil {
		slog.Error("Failed to journal match", slog.String("source", source), slog.String("error", err.Error()))
	}
}

func (s *Store) journalTransfer(ctx context.Context, action store.Action, name string, source string) {
	if s.journal == nil {
		return
	}

	if err := s.journal.RecordTransfer(ctx, action, name, source); err != nil {
		slog.Error("Failed to journal transfer", slog.String("action", string(action)),
			slog.String("name", name), slog.String("error", err.Error()))
	}
}
