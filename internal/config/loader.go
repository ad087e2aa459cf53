package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var errTeamName = errors.New("team_name must not be empty")

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

// NewLoader builds a loader reading the file at configFile, or searching the config dir and the
// working directory when configFile is empty.
func NewLoader(configFile string) *Loader {
	loader := Loader{Viper: viper.New()}
	loader.SetDefault("team_name", "Toronto Raptors")
	loader.SetDefault("roster_path", PathData(DefaultRosterName))
	loader.SetDefault("players_dir", PathData("players"))
	loader.SetDefault("coaches_dir", PathData("coaches"))
	loader.SetDefault("matches_dir", PathData("matches"))
	loader.SetDefault("trash_dir", PathData("trash"))
	loader.SetDefault("database_path", PathData(DefaultDBName))
	loader.SetDefault("journal_enabled", true)
	loader.SetDefault("replay_matches", true)
	loader.SetDefault("log_level", "info")
	loader.SetConfigType("yaml")
	if configFile != "" {
		loader.SetConfigFile(configFile)
	} else {
		loader.SetConfigName(DefaultConfigName)
		loader.AddConfigPath(Path(""))
		loader.AddConfigPath(".")
	}
	loader.SetEnvPrefix(EnvPrefix)
	loader.AutomaticEnv()

	return &loader
}

// Watch starts broadcasting reloaded configs to changes whenever the config file is rewritten.
func (cl *Loader) Watch(changes chan<- Config) {
	cl.changes = changes
	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Rename) && !in.Has(fsnotify.Create) {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	// Nobody may be listening any more once the watcher has stopped.
	select {
	case cl.changes <- config:
	default:
		slog.Warn("Dropped config reload, no listener ready")
	}
}

func (cl *Loader) Write(config Config) error {
	cl.Set("team_name", config.TeamName)
	cl.Set("roster_path", config.RosterPath)
	cl.Set("players_dir", config.PlayersDir)
	cl.Set("coaches_dir", config.CoachesDir)
	cl.Set("matches_dir", config.MatchesDir)
	cl.Set("trash_dir", config.TrashDir)
	cl.Set("database_path", config.DatabasePath)
	cl.Set("journal_enabled", config.JournalEnabled)
	cl.Set("replay_matches", config.ReplayMatches)
	cl.Set("log_level", config.LogLevel)

	if err := cl.WriteConfig(); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

// Read loads the config file if one exists. A missing file is not an error; defaults and
// environment overrides apply.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if config.TeamName == "" {
		return Config{}, errors.Join(errTeamName, errConfigRead)
	}

	return config, nil
}
