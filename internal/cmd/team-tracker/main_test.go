package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	root       string
	configPath string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	xdg.Reload()

	configPath := filepath.Join(root, "team-tracker.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`team_name: Toronto Raptors
roster_path: `+filepath.Join(root, "roster.csv")+`
players_dir: `+filepath.Join(root, "players")+`
coaches_dir: `+filepath.Join(root, "coaches")+`
matches_dir: `+filepath.Join(root, "matches")+`
trash_dir: `+filepath.Join(root, "trash")+`
database_path: `+filepath.Join(root, "team-tracker.db")+`
`), 0o600))

	require.NoError(t, os.WriteFile(filepath.Join(root, "roster.csv"), []byte(
		`Darko Rajakovic,45,0,0,coach,0.0,0.0
Scottie Barnes,23,0,0,player,4,0.0,0.0,0.0,0.0,0.0,0.0,0.0,0.0
RJ Barrett,24,0,0,player,9,0.0,0.0,0.0,0.0,0.0,0.0,0.0,0.0
`), 0o600))

	return testEnv{root: root, configPath: configPath}
}

func (e testEnv) write(t *testing.T, dir string, name string, data string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(e.root, dir), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(e.root, dir, name), []byte(data), 0o600))
}

func (e testEnv) appendConfig(t *testing.T, yaml string) {
	t.Helper()

	file, err := os.OpenFile(e.configPath, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, errWrite := file.WriteString(yaml)
	require.NoError(t, errWrite)
	require.NoError(t, file.Close())
}

// writeAtomic renames a finished file into place so watchers never see it half written.
func (e testEnv) writeAtomic(t *testing.T, path string, data string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	staging := filepath.Join(e.root, "staging.tmp")
	require.NoError(t, os.WriteFile(staging, []byte(data), 0o600))
	require.NoError(t, os.Rename(staging, path))
}

func (e testEnv) replaceConfig(t *testing.T, old string, replacement string) {
	t.Helper()

	data, err := os.ReadFile(e.configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), old)

	e.writeAtomic(t, e.configPath, strings.Replace(string(data), old, replacement, 1))
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func (e testEnv) roster(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(e.root, "roster.csv"))
	require.NoError(t, err)

	return string(data)
}

func TestIngestCommand(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "matches", "game1.csv", "regular,Chicago Bulls,90,80\nScottie Barnes,26,3,5\n")
	env.write(t, "matches", "game2.csv", "playoff,Boston Celtics,95,101,Finals\nRJ Barrett,30,4,8,55,40\n")

	out, err := env.run(t, "ingest")
	require.NoError(t, err)
	require.Contains(t, out, "game1.csv: beat Chicago Bulls 90 - 80, 1 players updated")
	require.Contains(t, out, "game2.csv: lost to Boston Celtics 95 - 101")

	saved := env.roster(t)
	require.Contains(t, saved, "Darko Rajakovic,45,2,1,coach,50.0,0.0")
	require.Contains(t, saved, "Scottie Barnes,23,1,0,player,4,26.0,3.0,5.0")
	require.FileExists(t, filepath.Join(env.root, "trash", "game1.csv"))

	// Journaled matches are listed by later runs.
	matches, errMatches := env.run(t, "matches", "--sort")
	require.NoError(t, errMatches)
	require.Contains(t, matches, "Chicago Bulls")
	require.Contains(t, matches, "Finals")

	idle, errIdle := env.run(t, "ingest")
	require.NoError(t, errIdle)
	require.Contains(t, idle, "No match sheets waiting.")
}

func TestTransferCommands(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "players", "boucher.csv", "Chris Boucher,31,0,0,player,25,0,0,0,0,0,0,0,0\n")
	env.write(t, "coaches", "nurse.csv", "Nick Nurse,56,0,0,coach,0.0,0.0\n")

	_, errTrade := env.run(t, "trade", "boucher", "RJ Barrett")
	require.NoError(t, errTrade)
	require.Contains(t, env.roster(t), "Chris Boucher")
	require.NotContains(t, env.roster(t), "RJ Barrett")

	_, errMissing := env.run(t, "trade", "boucher", "Scottie Barnes")
	require.Error(t, errMissing)
	require.Contains(t, env.roster(t), "Scottie Barnes")

	_, errHire := env.run(t, "hire", "nurse")
	require.NoError(t, errHire)
	require.Contains(t, env.roster(t), "Nick Nurse")

	_, errFire := env.run(t, "fire", "Darko Rajakovic")
	require.NoError(t, errFire)
	require.NotContains(t, env.roster(t), "Darko Rajakovic")

	history, errHistory := env.run(t, "history")
	require.NoError(t, errHistory)
	for _, action := range []string{"trade_in", "trade_out", "hire", "fire"} {
		require.Contains(t, history, action)
	}

	out, errRoster := env.run(t, "roster", "Chris Boucher")
	require.NoError(t, errRoster)
	require.Contains(t, out, "25 - Chris Boucher")
}

func TestResetAndOrganize(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "matches", "game1.csv", "regular,Chicago Bulls,90,80\nRJ Barrett,26,3,5\n")

	_, err := env.run(t, "ingest", "game1")
	require.NoError(t, err)

	_, errOrganize := env.run(t, "organize")
	require.NoError(t, errOrganize)
	lines := strings.Split(strings.TrimSpace(env.roster(t)), "\n")
	require.True(t, strings.HasPrefix(lines[0], "Darko Rajakovic"))
	require.True(t, strings.HasPrefix(lines[1], "RJ Barrett"))

	_, errUnconfirmed := env.run(t, "reset")
	require.ErrorIs(t, errUnconfirmed, errConfirmReset)

	_, errReset := env.run(t, "reset", "--yes")
	require.NoError(t, errReset)
	require.Contains(t, env.roster(t), "RJ Barrett,24,0,0,player,9,0.0,0.0,0.0")
}

func TestChartCommand(t *testing.T) {
	env := newTestEnv(t)
	output := filepath.Join(env.root, "chart.png")

	_, errEmpty := env.run(t, "chart", "-o", output)
	require.Error(t, errEmpty)

	env.write(t, "matches", "game1.csv", "regular,Chicago Bulls,90,80\nRJ Barrett,26,3,5\n")
	_, err := env.run(t, "ingest", "--all")
	require.NoError(t, err)

	_, errChart := env.run(t, "chart", "-o", output, "--metric", "win")
	require.NoError(t, errChart)
	require.FileExists(t, output)

	_, errMetric := env.run(t, "chart", "--metric", "rebounds")
	require.ErrorIs(t, errMetric, errChartMetric)
}

func TestMatchesWithoutReplay(t *testing.T) {
	env := newTestEnv(t)
	env.appendConfig(t, "replay_matches: false\n")
	env.write(t, "matches", "game1.csv", "regular,Chicago Bulls,90,80\nScottie Barnes,26,3,5\n")

	_, err := env.run(t, "ingest")
	require.NoError(t, err)

	out, errMatches := env.run(t, "matches")
	require.NoError(t, errMatches)
	require.Contains(t, out, "You have not played any matches yet!")

	// Still journaled for history, only not replayed.
	require.Contains(t, env.roster(t), "Scottie Barnes,23,1,0,player,4,26.0,3.0,5.0")
}
