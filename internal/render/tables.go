package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/team-tracker/internal/match"
	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/leighmacdonald/team-tracker/internal/roster"
	"github.com/leighmacdonald/team-tracker/internal/store"
	"github.com/montanaflynn/stats"
	"github.com/muesli/reflow/truncate"
)

const (
	nameWidth     = 24
	opponentWidth = 28
	emptyRoster   = "There is no one on your roster!"
	emptyMatches  = "You have not played any matches yet!"
	emptyHistory  = "No roster transfers recorded yet."
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Gray)).
		BorderColumn(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case row%2 == 0:
				return EvenRow
			default:
				return OddRow
			}
		}).
		Headers(headers...)
}

func cell(value string, width uint) string {
	return truncate.StringWithTail(value, width, "…")
}

// Roster renders every entry in roster order followed by team averages.
func Roster(teamName string, entries []roster.Entry) string {
	title := TitleStyle.Render(teamName)
	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, emptyRoster)
	}

	tbl := newTable("#", "Name", "Kind", "Age", "GP", "Playoff GP", "PPG / Win%", "APG", "RPG")

	var pointsPerGame, winPercentages []float64
	for _, entry := range entries {
		common := entry.Common()
		row := []string{
			"",
			cell(common.Name, nameWidth),
			string(entry.Kind()),
			strconv.Itoa(common.Age),
			strconv.Itoa(common.MatchesAttended),
			strconv.Itoa(common.PlayoffMatchesAttended),
		}

		switch value := entry.(type) {
		case *roster.Player:
			averages := value.Statistics()
			row[0] = strconv.Itoa(value.JerseyNumber())
			row = append(row, record.FormatFloat(averages[0]), record.FormatFloat(averages[1]),
				record.FormatFloat(averages[2]))
			pointsPerGame = append(pointsPerGame, averages[0])
		case *roster.Coach:
			row = append(row, record.FormatFloat(value.WinPercentage())+"%", "", "")
			winPercentages = append(winPercentages, value.WinPercentage())
		}

		tbl.Row(row...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, tbl.Render(), summary(pointsPerGame, winPercentages))
}

func summary(pointsPerGame []float64, winPercentages []float64) string {
	var parts []string
	if mean, err := stats.Mean(pointsPerGame); err == nil {
		parts = append(parts, fmt.Sprintf("Team average: %s ppg over %d players",
			record.FormatFloat(roster.Round(mean)), len(pointsPerGame)))
	}

	if mean, err := stats.Mean(winPercentages); err == nil {
		parts = append(parts, fmt.Sprintf("Coaching average: %s%% wins over %d coaches",
			record.FormatFloat(roster.Round(mean)), len(winPercentages)))
	}

	return MutedStyle.Render(strings.Join(parts, "\n"))
}

// Matches renders the regular season and playoff sequences of a match log.
func Matches(log *match.Log) string {
	if log.Len() == 0 {
		return emptyMatches
	}

	var sections []string
	if regular := log.Regular(); len(regular) > 0 {
		sections = append(sections, TitleStyle.Render("Regular season"), matchTable(regular, false))
	}

	if playoff := log.Playoff(); len(playoff) > 0 {
		sections = append(sections, TitleStyle.Render("Playoffs"), matchTable(playoff, true))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func matchTable(records []match.Record, playoff bool) string {
	headers := []string{"Opponent", "Score", "Diff", "Result"}
	if playoff {
		headers = append(headers, "Stage")
	}

	tbl := newTable(headers...)
	for _, rec := range records {
		result := LossStyle.Render("L")
		if rec.Won() {
			result = WinStyle.Render("W")
		}

		row := []string{
			cell(rec.Opponent(), opponentWidth),
			fmt.Sprintf("%d - %d", rec.Score(), rec.OpponentScore()),
			fmt.Sprintf("%+d", rec.Differential()),
			result,
		}
		if playoff {
			row = append(row, rec.BracketStage())
		}

		tbl.Row(row...)
	}

	return tbl.Render()
}

// Transfers renders journaled roster transfers, newest first.
func Transfers(transfers []store.Transfer) string {
	if len(transfers) == 0 {
		return emptyHistory
	}

	tbl := newTable("When", "Action", "Name", "Source")
	for _, transfer := range transfers {
		tbl.Row(humanize.Time(transfer.CreatedOn), string(transfer.Action), cell(transfer.Name, nameWidth),
			transfer.Source)
	}

	return tbl.Render()
}
