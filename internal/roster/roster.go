package roster

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/leighmacdonald/team-tracker/internal/record"
	"golang.org/x/exp/slices"
)

const commonFieldCount = 5

// Roster is the ordered set of entries on a team, keyed by name. Order is insertion order until
// Reorganize is called.
type Roster struct {
	entries []Entry
}

func New() *Roster {
	return &Roster{}
}

// Insert appends the entry, failing with ErrDuplicateEntry when the name is already taken.
func (r *Roster) Insert(entry Entry) error {
	if r.index(entry.Name()) != -1 {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.Name())
	}

	r.entries = append(r.entries, entry)

	return nil
}

// Find looks up an entry by exact, case-sensitive name.
func (r *Roster) Find(name string) (Entry, bool) {
	idx := r.index(name)
	if idx == -1 {
		return nil, false
	}

	return r.entries[idx], true
}

// Remove deletes the first entry with the given name.
func (r *Roster) Remove(name string) error {
	idx := r.index(name)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	r.entries = slices.Delete(r.entries, idx, idx+1)

	return nil
}

// Reorganize sorts coaches by win percentage and players by points per game, both descending,
// placing coaches first. Equal keys keep their relative order.
func (r *Roster) Reorganize() {
	var coaches, players []Entry
	for _, entry := range r.entries {
		switch entry.Kind() {
		case KindCoach:
			coaches = append(coaches, entry)
		case KindPlayer:
			players = append(players, entry)
		}
	}

	sortDescending(coaches)
	sortDescending(players)

	r.entries = append(coaches, players...)
}

// ResetAll zeroes the attendance and statistics of every entry.
func (r *Roster) ResetAll() {
	for _, entry := range r.entries {
		entry.ResetStatistics()
	}
}

func (r *Roster) Len() int {
	return len(r.entries)
}

// Entries returns the entries in roster order.
func (r *Roster) Entries() []Entry {
	return slices.Clone(r.entries)
}

func (r *Roster) Players() []*Player {
	var players []*Player
	for _, entry := range r.entries {
		if player, ok := entry.(*Player); ok {
			players = append(players, player)
		}
	}

	return players
}

func (r *Roster) Coaches() []*Coach {
	var coaches []*Coach
	for _, entry := range r.entries {
		if coach, ok := entry.(*Coach); ok {
			coaches = append(coaches, coach)
		}
	}

	return coaches
}

func (r *Roster) index(name string) int {
	return slices.IndexFunc(r.entries, func(entry Entry) bool {
		return entry.Name() == name
	})
}

func sortDescending(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.SortKey(), a.SortKey())
	})
}

// ParseRow decodes one roster file row:
//
//	name,age,matchesAttended,playoffMatchesAttended,kind,<variant fields>
//
// Rows with an unrecognized kind fail with ErrUnknownKind, anything else unreadable with
// record.ErrMalformedRecord.
func ParseRow(fields []string) (Entry, error) {
	if len(fields) < commonFieldCount {
		return nil, errors.Join(fmt.Errorf("%w: got %d, want at least %d", errFieldCount, len(fields), commonFieldCount),
			record.ErrMalformedRecord)
	}

	kind := Kind(fields[4])
	if kind != KindPlayer && kind != KindCoach {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, fields[4])
	}

	name := fields[0]
	if name == "" {
		return nil, errors.Join(errEmptyName, record.ErrMalformedRecord)
	}

	age, errAge := record.ParseInt(fields[1])
	if errAge != nil {
		return nil, errAge
	}

	matches, errMatches := record.ParseInt(fields[2])
	if errMatches != nil {
		return nil, errMatches
	}

	playoffMatches, errPlayoff := record.ParseInt(fields[3])
	if errPlayoff != nil {
		return nil, errPlayoff
	}

	variant := fields[commonFieldCount:]

	var entry Entry
	switch kind {
	case KindPlayer:
		if len(variant) == 0 {
			return nil, errors.Join(errFieldCount, record.ErrMalformedRecord)
		}
		jersey, errJersey := record.ParseInt(variant[0])
		if errJersey != nil {
			return nil, errJersey
		}
		entry = NewPlayer(name, age, jersey, matches, playoffMatches)
	case KindCoach:
		entry = NewCoach(name, age, matches, playoffMatches)
	}

	if err := entry.DeserializeStats(variant); err != nil {
		return nil, err
	}

	return entry, nil
}

// Row encodes an entry in the format read by ParseRow.
func Row(entry Entry) []string {
	common := entry.Common()
	row := []string{
		common.Name,
		record.FormatInt(common.Age),
		record.FormatInt(common.MatchesAttended),
		record.FormatInt(common.PlayoffMatchesAttended),
		string(entry.Kind()),
	}

	return append(row, entry.SerializeStats()...)
}
