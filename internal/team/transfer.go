package team

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/leighmacdonald/team-tracker/internal/store"
)

// TradePlayer brings in the entry held by incoming and drops outgoingName. The incoming entry is
// loaded before the outgoing one is removed, so an incoming entry sharing the outgoing name is
// rejected as a duplicate. A trade that adds nobody leaves the roster and the source untouched.
func (s *Store) TradePlayer(ctx context.Context, incoming record.Source, outgoingName string) error {
	if _, found := s.roster.Find(outgoingName); !found {
		return fmt.Errorf("%w: %s", ErrNotFound, outgoingName)
	}

	result, errLoad := s.loadSource(incoming)
	if errLoad != nil {
		return errLoad
	}

	if err := result.failure(); err != nil {
		return err
	}

	// The incoming entry is already on the roster, so the outgoing one leaves even when the source
	// could not be moved. The relocation error is still reported.
	errConsume := s.markConsumed(incoming)

	if err := s.roster.Remove(outgoingName); err != nil {
		return err
	}

	slog.Info("Trade complete", slog.String("incoming", result.Added[0]), slog.String("outgoing", outgoingName))
	s.journalTransfer(ctx, store.ActionTradeIn, result.Added[0], incoming.Name())
	s.journalTransfer(ctx, store.ActionTradeOut, outgoingName, incoming.Name())

	return errConsume
}

// HireCoach loads the single entry held by src and consumes src once the entry was added.
func (s *Store) HireCoach(ctx context.Context, src record.Source) error {
	result, errLoad := s.loadSource(src)
	if errLoad != nil {
		return errLoad
	}

	if err := result.failure(); err != nil {
		return err
	}

	slog.Info("Hired", slog.String("name", result.Added[0]))
	s.journalTransfer(ctx, store.ActionHire, result.Added[0], src.Name())

	return s.markConsumed(src)
}

// FireEntry removes name from the roster.
func (s *Store) FireEntry(ctx context.Context, name string) error {
	if err := s.roster.Remove(name); err != nil {
		return err
	}

	slog.Info("Fired", slog.String("name", name))
	s.journalTransfer(ctx, store.ActionFire, name, "")

	return nil
}
