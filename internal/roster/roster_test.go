package roster_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/leighmacdonald/team-tracker/internal/roster"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	require.InDelta(t, 12.0, roster.Round(12.04), 0.0001)
	require.InDelta(t, 12.3, roster.Round(12.25), 0.0001)
	require.InDelta(t, 66.7, roster.Round(200.0/3), 0.0001)
	require.True(t, math.IsNaN(roster.Round(math.NaN())))
}

func TestPlayerRunningMean(t *testing.T) {
	player := roster.NewPlayer("Scottie Barnes", 23, 4, 0, 0)
	require.NoError(t, player.ApplyMatchStats([]string{"10", "4", "6"}, false))
	player.AddMatch()
	require.NoError(t, player.ApplyMatchStats([]string{"10", "6", "8"}, false))
	player.AddMatch()

	// mean 10 over 2 games, then a 16 point game.
	require.NoError(t, player.ApplyMatchStats([]string{"16", "2", "1"}, false))
	player.AddMatch()

	require.Equal(t, [3]float64{12, 4, 5}, player.Statistics())
	require.Equal(t, 3, player.Common().MatchesAttended)
	require.InDelta(t, 12.0, player.SortKey(), 0.0001)
}

func TestPlayerPlayoffStats(t *testing.T) {
	player := roster.NewPlayer("RJ Barrett", 24, 9, 4, 0)
	require.NoError(t, player.ApplyMatchStats([]string{"20", "5", "5", "50", "40"}, true))
	player.AddMatch()
	player.AddPlayoffMatch()

	// The regular averages were empty over 4 games, so the playoff game counts as one of five.
	require.Equal(t, [3]float64{4, 1, 1}, player.Statistics())
	require.Equal(t, [5]float64{20, 5, 5, 50, 40}, player.PlayoffStatistics())
	require.Equal(t, roster.Common{Name: "RJ Barrett", Age: 24, MatchesAttended: 5, PlayoffMatchesAttended: 1},
		player.Common())
}

func TestPlayerMalformedStats(t *testing.T) {
	player := roster.NewPlayer("Jakob Poeltl", 28, 19, 1, 0)
	require.NoError(t, player.DeserializeStats([]string{"19", "10.0", "2.0", "9.0", "0", "0", "0", "0", "0"}))

	require.ErrorIs(t, player.ApplyMatchStats([]string{"10", "4"}, false), record.ErrMalformedRecord)
	require.ErrorIs(t, player.ApplyMatchStats([]string{"10", "4", "6"}, true), record.ErrMalformedRecord)
	require.ErrorIs(t, player.ApplyMatchStats([]string{"10", "x", "6"}, false), record.ErrMalformedRecord)
	require.ErrorIs(t, player.ApplyMatchStats([]string{"NaN", "Inf", "6"}, false), record.ErrMalformedRecord)
	require.ErrorIs(t, player.ApplyMatchStats([]string{"10", "4", "6", "+Inf", "40"}, true), record.ErrMalformedRecord)

	require.Equal(t, [3]float64{10, 2, 9}, player.Statistics())
}

func TestCoachResults(t *testing.T) {
	coach := roster.NewCoach("Darko Rajakovic", 45, 0, 0)
	coach.ApplyResult(true, false)
	coach.AddMatch()
	require.InDelta(t, 100.0, coach.WinPercentage(), 0.0001)

	coach.ApplyResult(false, true)
	coach.AddMatch()
	coach.AddPlayoffMatch()
	require.InDelta(t, 50.0, coach.WinPercentage(), 0.0001)
	require.InDelta(t, 0.0, coach.PlayoffWinPercentage(), 0.0001)

	coach.ApplyResult(true, false)
	coach.AddMatch()
	require.InDelta(t, 66.7, coach.WinPercentage(), 0.0001)
	require.Equal(t, []string{"66.7", "0.0"}, coach.SerializeStats())
}

func TestResetStatistics(t *testing.T) {
	player := roster.NewPlayer("Gradey Dick", 20, 1, 0, 0)
	require.NoError(t, player.ApplyMatchStats([]string{"15", "2", "3", "45", "38"}, true))
	player.AddMatch()
	player.AddPlayoffMatch()

	coach := roster.NewCoach("Assistant", 50, 3, 1)
	coach.ApplyResult(true, true)

	for _, entry := range []roster.Entry{player, coach} {
		entry.ResetStatistics()
		require.Zero(t, entry.Common().MatchesAttended)
		require.Zero(t, entry.Common().PlayoffMatchesAttended)
	}

	require.Equal(t, []string{"1", "0.0", "0.0", "0.0", "0.0", "0.0", "0.0", "0.0", "0.0"}, player.SerializeStats())
	require.Equal(t, []string{"0.0", "0.0"}, coach.SerializeStats())
	require.Contains(t, player.Display(), "0 games")
	require.Contains(t, coach.Display(), "0.0%")
	require.Equal(t, 1, player.JerseyNumber())
}

func TestRowRoundTrip(t *testing.T) {
	player := roster.NewPlayer("Immanuel Quickley", 25, 5, 12, 3)
	require.NoError(t, player.DeserializeStats([]string{"5", "18.6", "6.8", "4.8", "20.1", "7.0", "5.2", "41.3", "39.5"}))
	coach := roster.NewCoach("Darko Rajakovic", 45, 12, 3)
	require.NoError(t, coach.DeserializeStats([]string{"58.3", "33.3"}))

	for _, entry := range []roster.Entry{player, coach} {
		row := roster.Row(entry)
		parsed, err := roster.ParseRow(row)
		require.NoError(t, err)
		require.Equal(t, entry.Kind(), parsed.Kind())
		require.Equal(t, entry.Common(), parsed.Common())
		require.Empty(t, cmp.Diff(entry.SerializeStats(), parsed.SerializeStats()))
		require.Equal(t, row, roster.Row(parsed))
	}
}

func TestParseRowErrors(t *testing.T) {
	_, errKind := roster.ParseRow([]string{"Raptor", "30", "0", "0", "mascot"})
	require.ErrorIs(t, errKind, roster.ErrUnknownKind)

	for _, row := range [][]string{
		{"Too", "Short"},
		{"", "30", "0", "0", "coach", "0.0", "0.0"},
		{"Bad Age", "thirty", "0", "0", "coach", "0.0", "0.0"},
		{"Coach Fields", "30", "0", "0", "coach", "0.0"},
		{"No Jersey", "30", "0", "0", "player"},
		{"Player Fields", "30", "0", "0", "player", "7", "1.0"},
		{"Bad Stat", "30", "0", "0", "player", "7", "1.0", "2.0", "x", "0", "0", "0", "0", "0"},
		{"Infinite Stat", "30", "0", "0", "player", "7", "0.0", "+Inf", "7.3", "0", "0", "0", "0", "0"},
		{"NaN Coach", "30", "0", "0", "coach", "NaN", "0.0"},
	} {
		_, err := roster.ParseRow(row)
		require.ErrorIs(t, err, record.ErrMalformedRecord, row)
	}
}

func TestRosterInsertFindRemove(t *testing.T) {
	teamRoster := roster.New()
	require.NoError(t, teamRoster.Insert(roster.NewPlayer("Chris Boucher", 31, 25, 0, 0)))
	require.ErrorIs(t, teamRoster.Insert(roster.NewCoach("Chris Boucher", 31, 0, 0)), roster.ErrDuplicateEntry)
	require.Equal(t, 1, teamRoster.Len())

	entry, found := teamRoster.Find("Chris Boucher")
	require.True(t, found)
	require.Equal(t, roster.KindPlayer, entry.Kind())

	_, found = teamRoster.Find("chris boucher")
	require.False(t, found)

	require.ErrorIs(t, teamRoster.Remove("Nobody"), roster.ErrNotFound)
	require.NoError(t, teamRoster.Remove("Chris Boucher"))
	require.Zero(t, teamRoster.Len())
}

func TestRosterReorganize(t *testing.T) {
	newPlayer := func(name string, ppg string) *roster.Player {
		player := roster.NewPlayer(name, 25, 0, 1, 0)
		require.NoError(t, player.DeserializeStats([]string{"0", ppg, "0", "0", "0", "0", "0", "0", "0"}))

		return player
	}
	newCoach := func(name string, win string) *roster.Coach {
		coach := roster.NewCoach(name, 50, 1, 0)
		require.NoError(t, coach.DeserializeStats([]string{win, "0"}))

		return coach
	}

	teamRoster := roster.New()
	for _, entry := range []roster.Entry{
		newPlayer("Player 20", "20"),
		newCoach("Coach 60", "60"),
		newPlayer("Player 30", "30"),
		newCoach("Coach 80", "80"),
		newPlayer("Player 20 Later", "20"),
	} {
		require.NoError(t, teamRoster.Insert(entry))
	}

	teamRoster.Reorganize()

	var names []string
	for _, entry := range teamRoster.Entries() {
		names = append(names, entry.Name())
	}

	require.Equal(t, []string{"Coach 80", "Coach 60", "Player 30", "Player 20", "Player 20 Later"}, names)
	require.Len(t, teamRoster.Players(), 3)
	require.Len(t, teamRoster.Coaches(), 2)
}

func TestDisplay(t *testing.T) {
	player := roster.NewPlayer("Scottie Barnes", 23, 4, 2, 0)
	display := player.Display()
	require.Contains(t, display, "4 - Scottie Barnes")
	require.Contains(t, display, "Regular Season Stats")
	require.Contains(t, display, "N/A")

	coach := roster.NewCoach("A Coach With A Remarkably Long Name", 50, 0, 0)
	require.Contains(t, coach.Display(), "…")
}
