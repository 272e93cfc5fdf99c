package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"zero team size", func(c *Config) { c.Formation.TeamSize = 0 }, "formation.team_size"},
		{"huge team size", func(c *Config) { c.Formation.TeamSize = 1000 }, "formation.team_size"},
		{"zero activity cap", func(c *Config) { c.Formation.ActivityCap = 0 }, "formation.activity_cap"},
		{"negative thinker cap", func(c *Config) { c.Formation.ThinkerCap = -1 }, "formation.thinker_cap"},
		{"zero diversity threshold", func(c *Config) { c.Formation.DiversityThreshold = 0 }, "formation.diversity_threshold"},
		{"zero parallelism", func(c *Config) { c.Formation.Parallelism = 0 }, "formation.parallelism"},
		{"excess parallelism", func(c *Config) { c.Formation.Parallelism = 65 }, "formation.parallelism"},
		{"null byte in path", func(c *Config) { c.Paths.Database = "runs\x00.db" }, "paths.database"},
		{"long path", func(c *Config) { c.Paths.LogDir = strings.Repeat("a", 5000) }, "paths.log_dir"},
		{"teams file overwrites input", func(c *Config) { c.Paths.TeamsFile = c.Paths.ParticipantsFile }, "paths.teams_file"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"zero log size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge log size", func(c *Config) { c.Logging.MaxSizeMB = 5000 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
		{"bad output format", func(c *Config) { c.Output.Format = "yaml" }, "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Formation.TeamSize = -1
	cfg.Logging.Level = "loud"
	cfg.Output.Format = ""

	errs := cfg.Validate()
	if len(errs) != 3 {
		t.Fatalf("Validate() returned %d errors, want 3: %v", len(errs), errs)
	}
}

func TestValidLists(t *testing.T) {
	if len(ValidLogLevels()) != 4 {
		t.Errorf("ValidLogLevels() = %v", ValidLogLevels())
	}
	if len(ValidOutputFormats()) != 2 {
		t.Errorf("ValidOutputFormats() = %v", ValidOutputFormats())
	}
}
