// Package match holds completed contests and the team's log of them.
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leighmacdonald/team-tracker/internal/record"
)

// Scope is the discriminator leading a match sheet header.
type Scope string

const (
	ScopeRegular Scope = "regular"
	ScopePlayoff Scope = "playoff"
)

var (
	errUnknownScope    = errors.New("unknown match scope")
	errHeaderFields    = errors.New("unexpected match header field count")
	errMissingOpponent = errors.New("missing opponent name")
	errMissingStage    = errors.New("playoff match missing bracket stage")
)

// Record is the immutable result of one contest. Playoff records also carry the bracket stage.
type Record struct {
	scope         Scope
	opponent      string
	score         int
	opponentScore int
	bracketStage  string
}

func NewRegular(opponent string, score int, opponentScore int) Record {
	return Record{scope: ScopeRegular, opponent: opponent, score: score, opponentScore: opponentScore}
}

func NewPlayoff(opponent string, score int, opponentScore int, bracketStage string) Record {
	return Record{
		scope:         ScopePlayoff,
		opponent:      opponent,
		score:         score,
		opponentScore: opponentScore,
		bracketStage:  bracketStage,
	}
}

func (r Record) Scope() Scope {
	return r.scope
}

func (r Record) IsPlayoff() bool {
	return r.scope == ScopePlayoff
}

func (r Record) Opponent() string {
	return r.opponent
}

func (r Record) Score() int {
	return r.score
}

func (r Record) OpponentScore() int {
	return r.opponentScore
}

// BracketStage is empty for regular season matches.
func (r Record) BracketStage() string {
	return r.bracketStage
}

// Differential is the team's score minus the opponent's.
func (r Record) Differential() int {
	return r.score - r.opponentScore
}

func (r Record) Won() bool {
	return r.Differential() > 0
}

func (r Record) String() string {
	out := fmt.Sprintf("Opponent team: %s\nYour score - Opponent score: %d - %d", r.opponent, r.score, r.opponentScore)
	if r.IsPlayoff() {
		out += "\nBracket stage: " + r.bracketStage
	}

	return out
}

// ParseHeader decodes the first row of a match sheet:
//
//	scope,opponent,yourScore,opponentScore[,bracketStage]
//
// A playoff header without a bracket stage is malformed.
func ParseHeader(fields []string) (Record, error) {
	if len(fields) < 4 {
		return Record{}, errors.Join(fmt.Errorf("%w: %d", errHeaderFields, len(fields)), record.ErrMalformedRecord)
	}

	opponent := strings.TrimSpace(fields[1])
	if opponent == "" {
		return Record{}, errors.Join(errMissingOpponent, record.ErrMalformedRecord)
	}

	score, errScore := record.ParseInt(fields[2])
	if errScore != nil {
		return Record{}, errScore
	}

	opponentScore, errOpponent := record.ParseInt(fields[3])
	if errOpponent != nil {
		return Record{}, errOpponent
	}

	switch Scope(strings.TrimSpace(fields[0])) {
	case ScopeRegular:
		return NewRegular(opponent, score, opponentScore), nil
	case ScopePlayoff:
		if len(fields) < 5 || strings.TrimSpace(fields[4]) == "" {
			return Record{}, errors.Join(errMissingStage, record.ErrMalformedRecord)
		}

		return NewPlayoff(opponent, score, opponentScore, strings.TrimSpace(fields[4])), nil
	default:
		return Record{}, errors.Join(fmt.Errorf("%w: %q", errUnknownScope, fields[0]), record.ErrMalformedRecord)
	}
}

// Header encodes a record in the form read by ParseHeader.
func Header(r Record) []string {
	fields := []string{string(r.scope), r.opponent, record.FormatInt(r.score), record.FormatInt(r.opponentScore)}
	if r.IsPlayoff() {
		fields = append(fields, r.bracketStage)
	}

	return fields
}
