package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Formation.TeamSize != 5 {
		t.Errorf("Formation.TeamSize = %d, want 5", cfg.Formation.TeamSize)
	}
	if cfg.Formation.ActivityCap != 2 {
		t.Errorf("Formation.ActivityCap = %d, want 2", cfg.Formation.ActivityCap)
	}
	if cfg.Formation.ThinkerCap != 2 {
		t.Errorf("Formation.ThinkerCap = %d, want 2", cfg.Formation.ThinkerCap)
	}
	if cfg.Formation.DiversityThreshold != 3 {
		t.Errorf("Formation.DiversityThreshold = %d, want 3", cfg.Formation.DiversityThreshold)
	}
	if cfg.Formation.Parallelism != 1 {
		t.Errorf("Formation.Parallelism = %d, want 1", cfg.Formation.Parallelism)
	}
	if !cfg.Formation.Leftover {
		t.Error("Formation.Leftover should be true by default")
	}

	if cfg.Paths.ParticipantsFile != "participants.csv" {
		t.Errorf("Paths.ParticipantsFile = %q, want %q", cfg.Paths.ParticipantsFile, "participants.csv")
	}
	if cfg.Paths.TeamsFile != "formed_teams.csv" {
		t.Errorf("Paths.TeamsFile = %q, want %q", cfg.Paths.TeamsFile, "formed_teams.csv")
	}
	if cfg.Paths.Database != "" {
		t.Errorf("Paths.Database = %q, want empty", cfg.Paths.Database)
	}

	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "text")
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := ConfigDir(); got != "/custom/config/teammate" {
			t.Errorf("ConfigDir() = %q, want %q", got, "/custom/config/teammate")
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)
		want := filepath.Join(home, ".config", "teammate")
		if got := ConfigDir(); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigFile(); got != "/custom/config/teammate/config.yaml" {
		t.Errorf("ConfigFile() = %q", got)
	}
}

func TestPathsConfig_ResolveLogDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", "/state")

	tests := []struct {
		name   string
		logDir string
		want   string
	}{
		{"unset uses data dir", "", "/state/teammate"},
		{"absolute", "/var/log/teammate", "/var/log/teammate"},
		{"relative", "logs", "logs"},
		{"home expansion", "~/tm-logs", filepath.Join(home, "tm-logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PathsConfig{LogDir: tt.logDir}
			if got := p.ResolveLogDir(); got != tt.want {
				t.Errorf("ResolveLogDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.Formation.TeamSize != 5 {
		t.Errorf("Get().Formation.TeamSize = %d, want 5", cfg.Formation.TeamSize)
	}
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("formation.team_size", 4)
	viper.Set("formation.parallelism", 8)
	viper.Set("output.format", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Formation.TeamSize != 4 {
		t.Errorf("TeamSize = %d, want 4", cfg.Formation.TeamSize)
	}
	if cfg.Formation.Parallelism != 8 {
		t.Errorf("Parallelism = %d, want 8", cfg.Formation.Parallelism)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("formation.team_size", 0)

	cfg, err := Load()
	if err == nil {
		t.Fatalf("Load() = %+v, want error", cfg)
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Load() error type = %T, want ValidationErrors", err)
	}
	if verrs[0].Field != "formation.team_size" {
		t.Errorf("Field = %q, want formation.team_size", verrs[0].Field)
	}

	if got := Get(); got.Formation.TeamSize != 5 {
		t.Errorf("Get() should fall back to defaults, TeamSize = %d", got.Formation.TeamSize)
	}
}
