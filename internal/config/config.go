package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName     = "team-tracker"
	DefaultConfigName = "team-tracker"
	DefaultDBName     = "team-tracker.db"
	DefaultLogName    = "team-tracker.log"
	DefaultRosterName = "roster.csv"
	EnvPrefix         = "teamtracker"
)

type Config struct {
	TeamName   string `mapstructure:"team_name"`
	RosterPath string `mapstructure:"roster_path"`
	// PlayersDir holds single row roster files of players available for trade.
	PlayersDir string `mapstructure:"players_dir"`
	// CoachesDir holds single row roster files of coaches available for hire.
	CoachesDir string `mapstructure:"coaches_dir"`
	// MatchesDir holds match sheets waiting to be ingested.
	MatchesDir string `mapstructure:"matches_dir"`
	// TrashDir receives every source once it has been applied.
	TrashDir       string `mapstructure:"trash_dir"`
	DatabasePath   string `mapstructure:"database_path"`
	JournalEnabled bool   `mapstructure:"journal_enabled"`
	// ReplayMatches refills the match log from the journal at startup. When off, match history
	// only lasts for the run that ingested it.
	ReplayMatches bool   `mapstructure:"replay_matches"`
	LogLevel      string `mapstructure:"log_level"`
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// PathData generates a path pointing to name under $XDG_DATA_HOME, where the roster, inbox and
// journal live by default.
func PathData(name string) string {
	dataDir, found := os.LookupEnv("DATA_DIR")
	if found && dataDir != "" {
		return path.Join(dataDir, name)
	}

	return path.Join(xdg.DataHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to write to a log file under the config dir, keeping
// command output clean.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, ConfigDirName), 0o750); err != nil {
		return nil, errors.Join(err, errLoggerInit)
	}

	logFile, errLogFile := os.OpenFile(path.Join(xdg.ConfigHome, ConfigDirName, logPath),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
