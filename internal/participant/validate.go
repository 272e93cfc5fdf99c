package participant

import (
	"regexp"
	"strings"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Validate checks that a participant carries usable values. The allocation
// engine does not call it; loaders do, before handing participants over.
func (p Participant) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.NewValidationError("id is required").WithField("ID")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewValidationError("name is required").WithField("Name")
	}
	if p.Email != "" && !emailRegex.MatchString(p.Email) {
		return errors.NewValidationError("email is malformed").WithField("Email").WithValue(p.Email)
	}
	if p.SkillLevel < MinSkill || p.SkillLevel > MaxSkill {
		return errors.NewValidationError("skill level must be between 1 and 10").
			WithField("SkillLevel").WithValue(p.SkillLevel)
	}
	if strings.TrimSpace(p.PreferredActivity) == "" {
		return errors.NewValidationError("preferred activity is required").WithField("PreferredActivity")
	}
	if !p.Archetype.IsValid() {
		return errors.NewValidationError("unknown archetype").WithField("Archetype").WithValue(string(p.Archetype))
	}
	if p.Position != "" && !p.Position.IsValid() {
		return errors.NewValidationError("unknown position").WithField("Position").WithValue(string(p.Position))
	}
	if p.PersonalityScore < MinPersonality || p.PersonalityScore > MaxPersonality {
		return errors.NewValidationError("personality score must be between 1 and 100").
			WithField("PersonalityScore").WithValue(p.PersonalityScore)
	}
	return nil
}
