// Package config provides CLI commands for managing TeamMate configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/sanulisiya/20241263TeamMate-sub000/internal/config"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify TeamMate configuration",
	Long: `View or modify TeamMate configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  teammate config set formation.team_size 4
  teammate config set paths.database ~/teammate.db
  teammate config set output.format json

Valid keys:
  formation.team_size           - Members per team
  formation.activity_cap        - Max members of a team sharing an activity
  formation.thinker_cap         - Max Thinkers per team in the primary pass
  formation.diversity_threshold - Distinct archetypes before repeats are refused
  formation.parallelism         - Placement workers (1 = sequential)
  formation.seed                - Random seed (0 = time-based)
  formation.leftover            - Run the leftover pass (true/false)
  paths.participants_file       - Participant CSV file
  paths.teams_file              - Formed teams CSV file
  paths.database                - SQLite database for run history
  paths.log_dir                 - Directory for teammate.log
  logging.enabled               - Write the log file (true/false)
  logging.level                 - debug, info, warn or error
  logging.max_size_mb           - Log size before rotation
  logging.max_backups           - Rotated log files to keep
  output.format                 - text or json
  output.color                  - Style text output (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/teammate/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file location",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	RunE:  runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  teammate config reset                      # Reset all to defaults
  teammate config reset formation.team_size  # Reset only the team size`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyTypes lists every settable key and how its value is parsed.
var keyTypes = map[string]string{
	"formation.team_size":           "int",
	"formation.activity_cap":        "int",
	"formation.thinker_cap":         "int",
	"formation.diversity_threshold": "int",
	"formation.parallelism":         "int",
	"formation.seed":                "int64",
	"formation.leftover":            "bool",
	"paths.participants_file":       "string",
	"paths.teams_file":              "string",
	"paths.database":                "string",
	"paths.log_dir":                 "string",
	"logging.enabled":               "bool",
	"logging.level":                 "level",
	"logging.max_size_mb":           "int",
	"logging.max_backups":           "int",
	"output.format":                 "format",
	"output.color":                  "bool",
}

func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"formation.team_size":           d.Formation.TeamSize,
		"formation.activity_cap":        d.Formation.ActivityCap,
		"formation.thinker_cap":         d.Formation.ThinkerCap,
		"formation.diversity_threshold": d.Formation.DiversityThreshold,
		"formation.parallelism":         d.Formation.Parallelism,
		"formation.seed":                d.Formation.Seed,
		"formation.leftover":            d.Formation.Leftover,
		"paths.participants_file":       d.Paths.ParticipantsFile,
		"paths.teams_file":              d.Paths.TeamsFile,
		"paths.database":                d.Paths.Database,
		"paths.log_dir":                 d.Paths.LogDir,
		"logging.enabled":               d.Logging.Enabled,
		"logging.level":                 d.Logging.Level,
		"logging.max_size_mb":           d.Logging.MaxSizeMB,
		"logging.max_backups":           d.Logging.MaxBackups,
		"output.format":                 d.Output.Format,
		"output.color":                  d.Output.Color,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	return printConfig(cmd.OutOrStdout(), appconfig.Get(), viper.ConfigFileUsed())
}

func printConfig(w io.Writer, cfg *appconfig.Config, used string) error {
	var b strings.Builder
	b.WriteString("Current configuration:\n\n")

	// Show where config is being read from
	if used != "" {
		fmt.Fprintf(&b, "Config file: %s\n\n", used)
	} else {
		b.WriteString("Config file: (none - using defaults)\n\n")
	}

	b.WriteString("formation:\n")
	fmt.Fprintf(&b, "  team_size: %d\n", cfg.Formation.TeamSize)
	fmt.Fprintf(&b, "  activity_cap: %d\n", cfg.Formation.ActivityCap)
	fmt.Fprintf(&b, "  thinker_cap: %d\n", cfg.Formation.ThinkerCap)
	fmt.Fprintf(&b, "  diversity_threshold: %d\n", cfg.Formation.DiversityThreshold)
	fmt.Fprintf(&b, "  parallelism: %d\n", cfg.Formation.Parallelism)
	fmt.Fprintf(&b, "  seed: %d\n", cfg.Formation.Seed)
	fmt.Fprintf(&b, "  leftover: %v\n", cfg.Formation.Leftover)

	b.WriteString("paths:\n")
	fmt.Fprintf(&b, "  participants_file: %s\n", cfg.Paths.ParticipantsFile)
	fmt.Fprintf(&b, "  teams_file: %s\n", cfg.Paths.TeamsFile)
	fmt.Fprintf(&b, "  database: %s\n", cfg.Paths.Database)
	fmt.Fprintf(&b, "  log_dir: %s\n", cfg.Paths.ResolveLogDir())

	b.WriteString("logging:\n")
	fmt.Fprintf(&b, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(&b, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(&b, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(&b, "  max_backups: %d\n", cfg.Logging.MaxBackups)

	b.WriteString("output:\n")
	fmt.Fprintf(&b, "  format: %s\n", cfg.Output.Format)
	fmt.Fprintf(&b, "  color: %v\n", cfg.Output.Color)

	_, err := io.WriteString(w, b.String())
	return err
}

// parseValue converts a raw command-line value for key into its typed form.
func parseValue(key, value string) (any, error) {
	keyType, ok := keyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'teammate config set --help' to see valid keys", key)
	}

	switch keyType {
	case "level":
		if !slices.Contains(appconfig.ValidLogLevels(), strings.ToLower(value)) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return strings.ToLower(value), nil
	case "format":
		if !slices.Contains(appconfig.ValidOutputFormats(), value) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidOutputFormats(), ", "))
		}
		return value, nil
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return intVal, nil
	case "int64":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return v, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	_, _ = fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// writeConfig writes viper's current settings to the user's config file.
func writeConfig() (string, error) {
	if err := os.MkdirAll(appconfig.ConfigDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const defaultConfigContent = `# TeamMate Configuration

# Team formation settings
formation:
  # Members in every completed team
  team_size: 5
  # Maximum members of one team sharing a preferred activity
  activity_cap: 2
  # Maximum Thinkers per team in the primary pass
  thinker_cap: 2
  # Distinct archetypes after which a team refuses a repeated Leader or Thinker
  diversity_threshold: 3
  # Placement workers for generalists (1 = sequential, deterministic with a seed)
  parallelism: 1
  # Random seed for reproducible runs (0 = time-based)
  seed: 0
  # Build extra teams from the unassigned pool with relaxed role rules
  leftover: true

# File locations
paths:
  participants_file: participants.csv
  teams_file: formed_teams.csv
  # SQLite database for run history (empty = don't record runs)
  database: ""
  # Directory for teammate.log (empty = ~/.local/state/teammate)
  log_dir: ""

# Log file settings
logging:
  enabled: true
  # debug, info, warn or error
  level: info
  max_size_mb: 5
  max_backups: 3

# Report output
output:
  # text or json
  format: text
  color: true
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'teammate config set' to modify values", configFile)
	}

	if err := os.MkdirAll(appconfig.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Created config file at %s\n", configFile)
	_, _ = fmt.Fprintln(out, "Edit this file to customize TeamMate's behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		_, _ = fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	_, _ = fmt.Fprintln(out, "\nSearch paths:")
	_, _ = fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	_, _ = fmt.Fprintln(out, "  2. ./config.yaml (current directory)")
	_, _ = fmt.Fprintln(out, "\nEnvironment variables: TEAMMATE_* (e.g., TEAMMATE_FORMATION_TEAM_SIZE)")
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	for _, e := range []string{"vim", "nano", "vi"} {
		if _, err := execLookPath(e); err == nil {
			return e
		}
	}
	return ""
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := defaultValues()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for key, value := range defaults {
			viper.Set(key, value)
		}
		_, _ = fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'teammate config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		_, _ = fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
