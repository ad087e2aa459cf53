package roster

import (
	"errors"
	"fmt"

	"github.com/leighmacdonald/team-tracker/internal/record"
)

const (
	// Per game values read from a regular season match row: points, assists, rebounds.
	regularStatCount = 3
	// Playoff rows add field goal and three point percentages.
	playoffStatCount = 5
	// jersey + regular + playoff.
	playerFieldCount = 1 + regularStatCount + playoffStatCount
)

var errStatCount = errors.New("not enough statistic fields")

// Player is a roster entry tracking per game scoring averages.
type Player struct {
	member
	jerseyNumber      int
	statistics        [regularStatCount]float64
	playoffStatistics [playoffStatCount]float64
}

func NewPlayer(name string, age int, jerseyNumber int, matchesAttended int, playoffMatchesAttended int) *Player {
	return &Player{
		member: member{
			name:                   name,
			age:                    age,
			matchesAttended:        matchesAttended,
			playoffMatchesAttended: playoffMatchesAttended,
		},
		jerseyNumber: jerseyNumber,
	}
}

func (p *Player) Kind() Kind {
	return KindPlayer
}

func (p *Player) JerseyNumber() int {
	return p.jerseyNumber
}

// Statistics returns points, assists and rebounds per regular season game.
func (p *Player) Statistics() [regularStatCount]float64 {
	return p.statistics
}

// PlayoffStatistics returns points, assists, rebounds per playoff game followed by field goal
// and three point percentages.
func (p *Player) PlayoffStatistics() [playoffStatCount]float64 {
	return p.playoffStatistics
}

func (p *Player) SortKey() float64 {
	return p.statistics[0]
}

// StatFieldCount is how many values a match row must carry for a player.
func StatFieldCount(playoff bool) int {
	if playoff {
		return playoffStatCount
	}

	return regularStatCount
}

// ApplyMatchStats folds one match row into the running averages. fields holds the raw per game
// values in row order; anything past the required count is ignored. The attendance counters must
// not have been incremented for this match yet. A playoff match updates the regular averages too.
func (p *Player) ApplyMatchStats(fields []string, playoff bool) error {
	needed := StatFieldCount(playoff)
	if len(fields) < needed {
		return errors.Join(fmt.Errorf("%w: got %d, want %d", errStatCount, len(fields), needed),
			record.ErrMalformedRecord)
	}

	values, err := record.ParseFloats(fields[:needed])
	if err != nil {
		return err
	}

	for idx := range p.statistics {
		p.statistics[idx] = runningMean(p.statistics[idx], p.matchesAttended, values[idx])
	}

	if playoff {
		for idx := range p.playoffStatistics {
			p.playoffStatistics[idx] = runningMean(p.playoffStatistics[idx], p.playoffMatchesAttended, values[idx])
		}
	}

	return nil
}

func (p *Player) ResetStatistics() {
	p.resetAttendance()
	p.statistics = [regularStatCount]float64{}
	p.playoffStatistics = [playoffStatCount]float64{}
}

func (p *Player) SerializeStats() []string {
	fields := make([]string, 0, playerFieldCount)
	fields = append(fields, record.FormatInt(p.jerseyNumber))
	for _, value := range p.statistics {
		fields = append(fields, record.FormatFloat(value))
	}
	for _, value := range p.playoffStatistics {
		fields = append(fields, record.FormatFloat(value))
	}

	return fields
}

// DeserializeStats restores the averages. fields[0] is the jersey number, which is fixed at
// construction and only validated here.
func (p *Player) DeserializeStats(fields []string) error {
	if len(fields) != playerFieldCount {
		return errors.Join(fmt.Errorf("%w: got %d, want %d", errFieldCount, len(fields), playerFieldCount),
			record.ErrMalformedRecord)
	}

	if _, err := record.ParseInt(fields[0]); err != nil {
		return err
	}

	values, err := record.ParseFloats(fields[1:])
	if err != nil {
		return err
	}

	copy(p.statistics[:], values[:regularStatCount])
	copy(p.playoffStatistics[:], values[regularStatCount:])

	return nil
}

func (p *Player) Display() string {
	return renderCard(fmt.Sprintf("%d - %s", p.jerseyNumber, p.name),
		"Regular Season Stats", "Playoff Season Stats",
		[][]string{
			{fmt.Sprintf("%d games", p.matchesAttended), fmt.Sprintf("%d games", p.playoffMatchesAttended)},
			{record.FormatFloat(p.statistics[0]) + " ppg", record.FormatFloat(p.playoffStatistics[0]) + " ppg"},
			{record.FormatFloat(p.statistics[1]) + " apg", record.FormatFloat(p.playoffStatistics[1]) + " apg"},
			{record.FormatFloat(p.statistics[2]) + " rpg", record.FormatFloat(p.playoffStatistics[2]) + " rpg"},
			{"N/A", record.FormatFloat(p.playoffStatistics[3]) + "% fg"},
			{"N/A", record.FormatFloat(p.playoffStatistics[4]) + "% 3p"},
		})
}

func (p *Player) String() string {
	return p.member.String() + fmt.Sprintf("Jersey number: %d\n", p.jerseyNumber) +
		fmt.Sprintf("Statistics: %sppg, %sapg, %srpg\n",
			record.FormatFloat(p.statistics[0]), record.FormatFloat(p.statistics[1]), record.FormatFloat(p.statistics[2])) +
		fmt.Sprintf("Playoff statistics: %sppg, %sapg, %srpg, %s%%, %s%%",
			record.FormatFloat(p.playoffStatistics[0]), record.FormatFloat(p.playoffStatistics[1]),
			record.FormatFloat(p.playoffStatistics[2]), record.FormatFloat(p.playoffStatistics[3]),
			record.FormatFloat(p.playoffStatistics[4]))
}
