package participant

import (
	"fmt"
	"strings"
)

// Skill and personality bounds accepted by Validate.
const (
	MinSkill       = 1
	MaxSkill       = 10
	MinPersonality = 1
	MaxPersonality = 100
)

// Archetype is the personality-derived role a participant plays in a team.
// Leaders seed teams, Thinkers are subject to a per-team quota, and Balanced
// and Motivator participants are generalists with no quota.
type Archetype string

const (
	// Leader participants seed one team each.
	Leader Archetype = "Leader"

	// Thinker participants are spread one per team first, at most two per team.
	Thinker Archetype = "Thinker"

	// Balanced participants are generalists.
	Balanced Archetype = "Balanced"

	// Motivator participants are generalists.
	Motivator Archetype = "Motivator"
)

// String returns the string representation of the archetype.
func (a Archetype) String() string {
	return string(a)
}

// IsValid returns true if this is a recognized archetype value.
func (a Archetype) IsValid() bool {
	switch a {
	case Leader, Thinker, Balanced, Motivator:
		return true
	default:
		return false
	}
}

// IsGeneralist reports whether the archetype carries no placement quota.
func (a Archetype) IsGeneralist() bool {
	return a == Balanced || a == Motivator
}

// Archetypes returns every archetype in canonical order.
func Archetypes() []Archetype {
	return []Archetype{Leader, Thinker, Balanced, Motivator}
}

// ParseArchetype converts a case-insensitive name into an Archetype.
func ParseArchetype(s string) (Archetype, error) {
	for _, a := range Archetypes() {
		if strings.EqualFold(strings.TrimSpace(s), string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown archetype %q", s)
}

// ClassifyPersonality maps a personality score onto an archetype:
// 90-100 Leader, 70-89 Balanced, 50-69 Thinker, anything lower Motivator.
func ClassifyPersonality(score int) Archetype {
	switch {
	case score >= 90:
		return Leader
	case score >= 70:
		return Balanced
	case score >= 50:
		return Thinker
	default:
		return Motivator
	}
}

// Position is the in-game position a participant prefers to play.
type Position string

const (
	PositionStrategist  Position = "Strategist"
	PositionAttacker    Position = "Attacker"
	PositionDefender    Position = "Defender"
	PositionSupporter   Position = "Supporter"
	PositionCoordinator Position = "Coordinator"
)

// String returns the string representation of the position.
func (p Position) String() string {
	return string(p)
}

// IsValid returns true if this is a recognized position value.
func (p Position) IsValid() bool {
	switch p {
	case PositionStrategist, PositionAttacker, PositionDefender, PositionSupporter, PositionCoordinator:
		return true
	default:
		return false
	}
}

// Positions returns every position in canonical order.
func Positions() []Position {
	return []Position{PositionStrategist, PositionAttacker, PositionDefender, PositionSupporter, PositionCoordinator}
}

// ParsePosition converts a case-insensitive name into a Position.
func ParsePosition(s string) (Position, error) {
	for _, p := range Positions() {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Participant is one person in the formation pool.
type Participant struct {
	ID                string    `json:"id"`                 // Caller-assigned unique identifier
	Name              string    `json:"name"`               // Display name
	Email             string    `json:"email,omitempty"`    // Contact address
	SkillLevel        int       `json:"skill_level"`        // 1-10
	PreferredActivity string    `json:"preferred_activity"` // Game or activity the participant prefers
	Archetype         Archetype `json:"archetype"`          // Role used for quotas during formation
	Position          Position  `json:"position"`           // Preferred in-game position
	PersonalityScore  int       `json:"personality_score"`  // 1-100

	// TeamNumber is the 1-based number of the completed team holding this
	// participant, or 0 when unplaced.
	TeamNumber int `json:"team_number"`
}

// String returns a short human-readable description.
func (p Participant) String() string {
	return fmt.Sprintf("%s (%s, skill %d, %s)", p.ID, p.Archetype, p.SkillLevel, p.PreferredActivity)
}

// AverageSkill returns the mean skill level of the given participants, or 0
// for an empty slice.
func AverageSkill(ps []Participant) float64 {
	if len(ps) == 0 {
		return 0
	}
	total := 0
	for _, p := range ps {
		total += p.SkillLevel
	}
	return float64(total) / float64(len(ps))
}
