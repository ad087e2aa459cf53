// Package roster models the people tracked by a team: players and coaches, and the ordered roster
// holding them.
package roster

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

var (
	ErrNotFound       = errors.New("roster entry not found")
	ErrDuplicateEntry = errors.New("roster entry already exists")
	// ErrUnknownKind is returned by ParseRow for rows whose discriminator is neither player nor coach.
	ErrUnknownKind = errors.New("unknown roster entry kind")
	errEmptyName   = errors.New("empty name")
)

// Kind is the discriminator written to the roster file.
type Kind string

const (
	KindPlayer Kind = "player"
	KindCoach  Kind = "coach"
)

// Common holds the fields shared by every roster entry.
type Common struct {
	Name                   string
	Age                    int
	MatchesAttended        int
	PlayoffMatchesAttended int
}

// Entry is the capability set shared by Player and Coach.
type Entry interface {
	Name() string
	Kind() Kind
	Common() Common
	// AddMatch and AddPlayoffMatch must be called after the statistics for that match were applied.
	AddMatch()
	AddPlayoffMatch()
	ResetStatistics()
	// SerializeStats returns the variant specific fields following the discriminator.
	SerializeStats() []string
	// DeserializeStats restores the fields produced by SerializeStats. The entry is left untouched
	// when the fields are malformed.
	DeserializeStats(fields []string) error
	// SortKey is the value Reorganize orders each kind by, descending.
	SortKey() float64
	Display() string
	String() string
}

type member struct {
	name                   string
	age                    int
	matchesAttended        int
	playoffMatchesAttended int
}

func (m *member) Name() string {
	return m.name
}

func (m *member) Common() Common {
	return Common{
		Name:                   m.name,
		Age:                    m.age,
		MatchesAttended:        m.matchesAttended,
		PlayoffMatchesAttended: m.playoffMatchesAttended,
	}
}

func (m *member) AddMatch() {
	m.matchesAttended++
}

func (m *member) AddPlayoffMatch() {
	m.playoffMatchesAttended++
}

func (m *member) resetAttendance() {
	m.matchesAttended = 0
	m.playoffMatchesAttended = 0
}

func (m *member) String() string {
	return fmt.Sprintf("Name: %s, Age: %d\nMatches played (regular / playoff): %d / %d\n",
		m.name, m.age, m.matchesAttended, m.playoffMatchesAttended)
}

// Round rounds to one decimal place, halves rounding up. NaN stays NaN.
func Round(value float64) float64 {
	rounded, err := stats.Round(value, 1)
	if err != nil {
		return math.NaN()
	}

	return rounded
}

// runningMean folds one more observation into a mean taken over count observations.
func runningMean(mean float64, count int, observed float64) float64 {
	return Round((mean*float64(count) + observed) / float64(count+1))
}
