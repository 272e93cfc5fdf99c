package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "formation.team_size")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return logging.ValidLevels()
}

// ValidOutputFormats returns the list of valid output formats
func ValidOutputFormats() []string {
	return []string{"text", "json"}
}

// Upper bounds that keep a misconfigured run from doing something silly.
const (
	maxTeamSize    = 100
	maxParallelism = 64
	maxLogSizeMB   = 1000
	maxPathLength  = 4096
)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateFormation()...)
	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateOutput()...)

	return errors
}

// validateFormation validates the FormationConfig
func (c *Config) validateFormation() []ValidationError {
	var errors []ValidationError
	f := c.Formation

	if f.TeamSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "formation.team_size",
			Value:   f.TeamSize,
			Message: "must be positive",
		})
	} else if f.TeamSize > maxTeamSize {
		errors = append(errors, ValidationError{
			Field:   "formation.team_size",
			Value:   f.TeamSize,
			Message: fmt.Sprintf("exceeds maximum of %d", maxTeamSize),
		})
	}

	positive := []struct {
		field string
		value int
	}{
		{"formation.activity_cap", f.ActivityCap},
		{"formation.thinker_cap", f.ThinkerCap},
		{"formation.diversity_threshold", f.DiversityThreshold},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be positive",
			})
		}
	}

	if f.Parallelism < 1 {
		errors = append(errors, ValidationError{
			Field:   "formation.parallelism",
			Value:   f.Parallelism,
			Message: "must be at least 1",
		})
	} else if f.Parallelism > maxParallelism {
		errors = append(errors, ValidationError{
			Field:   "formation.parallelism",
			Value:   f.Parallelism,
			Message: fmt.Sprintf("exceeds maximum of %d", maxParallelism),
		})
	}

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	paths := []struct {
		field string
		value string
	}{
		{"paths.participants_file", c.Paths.ParticipantsFile},
		{"paths.teams_file", c.Paths.TeamsFile},
		{"paths.database", c.Paths.Database},
		{"paths.log_dir", c.Paths.LogDir},
	}
	for _, p := range paths {
		if p.value == "" {
			continue
		}
		if strings.ContainsRune(p.value, '\x00') {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "path contains invalid null character",
			})
		}
		if len(p.value) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	if c.Paths.TeamsFile != "" && c.Paths.TeamsFile == c.Paths.ParticipantsFile {
		errors = append(errors, ValidationError{
			Field:   "paths.teams_file",
			Value:   c.Paths.TeamsFile,
			Message: "must differ from paths.participants_file",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	} else if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
		})
	}

	return errors
}
