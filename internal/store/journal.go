package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leighmacdonald/team-tracker/internal/match"
)

var (
	errJournalWrite = errors.New("failed to write journal")
	errJournalRead  = errors.New("failed to read journal")
)

// Action names a roster transfer.
type Action string

const (
	ActionTradeIn  Action = "trade_in"
	ActionTradeOut Action = "trade_out"
	ActionHire     Action = "hire"
	ActionFire     Action = "fire"
)

// Transfer is a journaled roster change.
type Transfer struct {
	ID        uuid.UUID
	Action    Action
	Name      string
	Source    string
	CreatedOn time.Time
}

// JournaledMatch is a match record along with where and when it was ingested.
type JournaledMatch struct {
	ID        uuid.UUID
	Record    match.Record
	Source    string
	CreatedOn time.Time
}

// Journal keeps an append only history of ingested matches and roster transfers. It is an
// audit trail only; roster statistics are never rebuilt from it.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) RecordMatch(ctx context.Context, rec match.Record, source string) error {
	const query = `INSERT INTO match_journal (match_id, scope, opponent, score, opponent_score, bracket_stage, source, created_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := j.db.ExecContext(ctx, query, uuid.NewString(), string(rec.Scope()), rec.Opponent(), rec.Score(),
		rec.OpponentScore(), rec.BracketStage(), source, time.Now().UnixNano()); err != nil {
		return errors.Join(err, errJournalWrite)
	}

	return nil
}

// Matches returns every journaled match in ingestion order.
func (j *Journal) Matches(ctx context.Context) ([]JournaledMatch, error) {
	const query = `SELECT match_id, scope, opponent, score, opponent_score, bracket_stage, source, created_on
		FROM match_journal ORDER BY created_on, rowid`

	rows, errQuery := j.db.QueryContext(ctx, query)
	if errQuery != nil {
		return nil, errors.Join(errQuery, errJournalRead)
	}
	defer rows.Close()

	var matches []JournaledMatch
	for rows.Next() {
		var (
			matchID, scope, opponent, stage, source string
			score, opponentScore                    int
			createdOn                               int64
		)
		if err := rows.Scan(&matchID, &scope, &opponent, &score, &opponentScore, &stage, &source, &createdOn); err != nil {
			return nil, errors.Join(err, errJournalRead)
		}

		id, errID := uuid.Parse(matchID)
		if errID != nil {
			return nil, errors.Join(errID, errJournalRead)
		}

		rec := match.NewRegular(opponent, score, opponentScore)
		if match.Scope(scope) == match.ScopePlayoff {
			rec = match.NewPlayoff(opponent, score, opponentScore, stage)
		}

		matches = append(matches, JournaledMatch{
			ID:        id,
			Record:    rec,
			Source:    source,
			CreatedOn: time.Unix(0, createdOn),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, errJournalRead)
	}

	return matches, nil
}

func (j *Journal) RecordTransfer(ctx context.Context, action Action, name string, source string) error {
	const query = `INSERT INTO transfer_journal (transfer_id, action, name, source, created_on) VALUES (?, ?, ?, ?, ?)`

	if _, err := j.db.ExecContext(ctx, query, uuid.NewString(), string(action), name, source,
		time.Now().UnixNano()); err != nil {
		return errors.Join(err, errJournalWrite)
	}

	return nil
}

// Transfers returns up to limit of the most recent transfers, newest first. A limit of zero or
// less returns all of them.
func (j *Journal) Transfers(ctx context.Context, limit int) ([]Transfer, error) {
	query := `SELECT transfer_id, action, name, source, created_on FROM transfer_journal ORDER BY created_on DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, errQuery := j.db.QueryContext(ctx, query, args...)
	if errQuery != nil {
		return nil, errors.Join(errQuery, errJournalRead)
	}
	defer rows.Close()

	var transfers []Transfer
	for rows.Next() {
		var (
			transfer         Transfer
			transferID, kind string
			createdOn        int64
		)
		if err := rows.Scan(&transferID, &kind, &transfer.Name, &transfer.Source, &createdOn); err != nil {
			return nil, errors.Join(err, errJournalRead)
		}

		id, errID := uuid.Parse(transferID)
		if errID != nil {
			return nil, errors.Join(errID, errJournalRead)
		}

		transfer.ID = id
		transfer.Action = Action(kind)
		transfer.CreatedOn = time.Unix(0, createdOn)
		transfers = append(transfers, transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, errJournalRead)
	}

	return transfers, nil
}
