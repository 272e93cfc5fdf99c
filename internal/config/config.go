package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/logging"
)

// Config represents the complete TeamMate configuration
type Config struct {
	Formation FormationConfig `mapstructure:"formation"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Output    OutputConfig    `mapstructure:"output"`
}

// FormationConfig controls the allocation engine
type FormationConfig struct {
	// TeamSize is the number of members in every completed team
	TeamSize int `mapstructure:"team_size"`
	// ActivityCap is the maximum members of one team sharing a preferred activity
	ActivityCap int `mapstructure:"activity_cap"`
	// ThinkerCap is the maximum Thinkers per team in the primary pass
	ThinkerCap int `mapstructure:"thinker_cap"`
	// DiversityThreshold is the distinct-archetype count at which a team stops
	// accepting a repeated Leader or Thinker
	DiversityThreshold int `mapstructure:"diversity_threshold"`
	// Parallelism is the number of workers for generalist placement (1 = sequential)
	Parallelism int `mapstructure:"parallelism"`
	// Seed fixes the random source for reproducible runs (0 = time-based)
	Seed int64 `mapstructure:"seed"`
	// Leftover runs the relaxed leftover pass after the primary pass
	Leftover bool `mapstructure:"leftover"`
}

// PathsConfig controls input and output locations
type PathsConfig struct {
	// ParticipantsFile is the CSV file participants are loaded from
	ParticipantsFile string `mapstructure:"participants_file"`
	// TeamsFile is the CSV file completed teams are written to (empty = don't write)
	TeamsFile string `mapstructure:"teams_file"`
	// Database is the SQLite file formation runs are recorded in (empty = don't record)
	Database string `mapstructure:"database"`
	// LogDir holds teammate.log (empty = data directory)
	LogDir string `mapstructure:"log_dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level sets the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
	// Color enables lipgloss styling in text output
	Color bool `mapstructure:"color"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Formation: FormationConfig{
			TeamSize:           5,
			ActivityCap:        2,
			ThinkerCap:         2,
			DiversityThreshold: 3,
			Parallelism:        1,
			Seed:               0,
			Leftover:           true,
		},
		Paths: PathsConfig{
			ParticipantsFile: "participants.csv",
			TeamsFile:        "formed_teams.csv",
			Database:         "",
			LogDir:           "",
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  logging.DefaultRotationConfig().MaxSizeMB,
			MaxBackups: logging.DefaultRotationConfig().MaxBackups,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Formation defaults
	viper.SetDefault("formation.team_size", defaults.Formation.TeamSize)
	viper.SetDefault("formation.activity_cap", defaults.Formation.ActivityCap)
	viper.SetDefault("formation.thinker_cap", defaults.Formation.ThinkerCap)
	viper.SetDefault("formation.diversity_threshold", defaults.Formation.DiversityThreshold)
	viper.SetDefault("formation.parallelism", defaults.Formation.Parallelism)
	viper.SetDefault("formation.seed", defaults.Formation.Seed)
	viper.SetDefault("formation.leftover", defaults.Formation.Leftover)

	// Paths defaults
	viper.SetDefault("paths.participants_file", defaults.Paths.ParticipantsFile)
	viper.SetDefault("paths.teams_file", defaults.Paths.TeamsFile)
	viper.SetDefault("paths.database", defaults.Paths.Database)
	viper.SetDefault("paths.log_dir", defaults.Paths.LogDir)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Output defaults
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.color", defaults.Output.Color)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if it
// cannot be loaded
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the directory holding the config file
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "teammate")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teammate"
	}
	return filepath.Join(home, ".config", "teammate")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the directory used for the log file when paths.log_dir is unset
func DataDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "teammate")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teammate"
	}
	return filepath.Join(home, ".local", "state", "teammate")
}

// ResolveLogDir returns the configured log directory or DataDir when unset
func (p *PathsConfig) ResolveLogDir() string {
	if p.LogDir == "" {
		return DataDir()
	}
	if strings.HasPrefix(p.LogDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p.LogDir[2:])
		}
	}
	return p.LogDir
}
