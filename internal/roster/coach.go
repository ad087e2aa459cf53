package roster

import (
	"errors"
	"fmt"

	"github.com/leighmacdonald/team-tracker/internal/record"
)

const (
	coachFieldCount = 2
	winValue        = 100
)

var errFieldCount = errors.New("unexpected field count")

// Coach is a roster entry tracking win percentages of the matches they attended.
type Coach struct {
	member
	winPercentage        float64
	playoffWinPercentage float64
}

func NewCoach(name string, age int, matchesAttended int, playoffMatchesAttended int) *Coach {
	return &Coach{
		member: member{
			name:                   name,
			age:                    age,
			matchesAttended:        matchesAttended,
			playoffMatchesAttended: playoffMatchesAttended,
		},
	}
}

func (c *Coach) Kind() Kind {
	return KindCoach
}

func (c *Coach) WinPercentage() float64 {
	return c.winPercentage
}

func (c *Coach) PlayoffWinPercentage() float64 {
	return c.playoffWinPercentage
}

func (c *Coach) SortKey() float64 {
	return c.winPercentage
}

// ApplyResult folds one match result into the win percentages, counting a win as 100 and a loss
// as 0. Call before AddMatch.
func (c *Coach) ApplyResult(won bool, playoff bool) {
	var observed float64
	if won {
		observed = winValue
	}

	c.winPercentage = runningMean(c.winPercentage, c.matchesAttended, observed)
	if playoff {
		c.playoffWinPercentage = runningMean(c.playoffWinPercentage, c.playoffMatchesAttended, observed)
	}
}

func (c *Coach) ResetStatistics() {
	c.resetAttendance()
	c.winPercentage = 0
	c.playoffWinPercentage = 0
}

func (c *Coach) SerializeStats() []string {
	return []string{record.FormatFloat(c.winPercentage), record.FormatFloat(c.playoffWinPercentage)}
}

func (c *Coach) DeserializeStats(fields []string) error {
	if len(fields) != coachFieldCount {
		return errors.Join(fmt.Errorf("%w: got %d, want %d", errFieldCount, len(fields), coachFieldCount),
			record.ErrMalformedRecord)
	}

	values, err := record.ParseFloats(fields)
	if err != nil {
		return err
	}

	c.winPercentage = values[0]
	c.playoffWinPercentage = values[1]

	return nil
}

func (c *Coach) Display() string {
	return renderCard(c.name, "Regular Season Win (%)", "Playoff Season Win (%)",
		[][]string{
			{fmt.Sprintf("%d games", c.matchesAttended), fmt.Sprintf("%d games", c.playoffMatchesAttended)},
			{record.FormatFloat(c.winPercentage) + "%", record.FormatFloat(c.playoffWinPercentage) + "%"},
		})
}

func (c *Coach) String() string {
	return c.member.String() + fmt.Sprintf("Win percentage (regular / playoff): %s%% / %s%%",
		record.FormatFloat(c.winPercentage), record.FormatFloat(c.playoffWinPercentage))
}
