package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/sanulisiya/20241263TeamMate-sub000/internal/config"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    any
		wantErr bool
	}{
		{"formation.team_size", "4", 4, false},
		{"formation.team_size", "four", nil, true},
		{"formation.team_size", "-1", nil, true},
		{"formation.seed", "-42", int64(-42), false},
		{"formation.leftover", "false", false, false},
		{"formation.leftover", "no", nil, true},
		{"logging.level", "WARN", "warn", false},
		{"logging.level", "loud", nil, true},
		{"output.format", "json", "json", false},
		{"output.format", "xml", nil, true},
		{"paths.database", "runs.db", "runs.db", false},
		{"tui.theme", "dark", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := parseValue(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestKeyTypesMatchDefaults(t *testing.T) {
	defaults := defaultValues()
	for key := range keyTypes {
		if _, ok := defaults[key]; !ok {
			t.Errorf("settable key %q has no default", key)
		}
	}
	for key := range defaults {
		if _, ok := keyTypes[key]; !ok {
			t.Errorf("default key %q is not settable", key)
		}
	}
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := appconfig.Default()
	cfg.Formation.TeamSize = 4

	if err := printConfig(&buf, cfg, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"(none - using defaults)", "team_size: 4", "format: text", "leftover: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigSetAndReset(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	appconfig.SetDefaults()

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runConfigSet(cmd, []string{"formation.team_size", "3"}); err != nil {
		t.Fatalf("set error = %v", err)
	}
	data, err := os.ReadFile(appconfig.ConfigFile())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "team_size: 3") {
		t.Errorf("config file missing team_size:\n%s", data)
	}

	// Rejected by the validator: teams_file equal to participants_file.
	if err := runConfigSet(cmd, []string{"paths.teams_file", "participants.csv"}); err == nil {
		t.Error("set accepted a teams file equal to the participants file")
	}
	if got := viper.GetString("paths.teams_file"); got != "formed_teams.csv" {
		t.Errorf("rejected value left in place: %q", got)
	}

	if err := runConfigReset(cmd, []string{"formation.team_size"}); err != nil {
		t.Fatalf("reset error = %v", err)
	}
	if got := viper.GetInt("formation.team_size"); got != 5 {
		t.Errorf("team_size after reset = %d, want 5", got)
	}
	if err := runConfigReset(cmd, []string{"nope"}); err == nil {
		t.Error("reset accepted an unknown key")
	}
}

func TestConfigInit(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(appconfig.ConfigDir(), "config.yaml")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if err := runConfigInit(cmd, nil); err == nil {
		t.Error("second init should refuse to overwrite")
	}

	// The generated file must load and validate.
	viper.Reset()
	defer viper.Reset()
	viper.SetConfigFile(appconfig.ConfigFile())
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("generated config unreadable: %v", err)
	}
	if _, err := appconfig.Load(); err != nil {
		t.Errorf("generated config invalid: %v", err)
	}
}

func TestFindEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	orig := execLookPath
	defer func() { execLookPath = orig }()

	execLookPath = func(name string) (string, error) {
		if name == "nano" {
			return "/usr/bin/nano", nil
		}
		return "", os.ErrNotExist
	}
	if got := findEditor(); got != "nano" {
		t.Errorf("findEditor() = %q, want nano", got)
	}

	t.Setenv("EDITOR", "code")
	if got := findEditor(); got != "code" {
		t.Errorf("findEditor() = %q, want code", got)
	}
}
