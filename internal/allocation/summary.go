package allocation

import (
	"math"
	"sort"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// TeamSummary describes one completed team.
type TeamSummary struct {
	Number     int                           `json:"number"`
	Size       int                           `json:"size"`
	AvgSkill   float64                       `json:"avg_skill"`
	Deviation  float64                       `json:"deviation"`
	Activities map[string]int                `json:"activities"`
	Archetypes map[participant.Archetype]int `json:"archetypes"`
}

// Summary is the balance report for a set of completed teams.
type Summary struct {
	Participants int           `json:"participants"`
	Unassigned   int           `json:"unassigned"`
	TargetAvg    float64       `json:"target_avg"`
	MinTeamAvg   float64       `json:"min_team_avg"`
	MaxTeamAvg   float64       `json:"max_team_avg"`
	Spread       float64       `json:"spread"`
	MeanAbsDev   float64       `json:"mean_abs_deviation"`
	Teams        []TeamSummary `json:"teams"`

	// UnassignedByArchetype counts the pool by archetype.
	UnassignedByArchetype map[participant.Archetype]int `json:"unassigned_by_archetype"`
}

// Summarize computes balance statistics for teams and the remaining pool.
// The target is the mean skill over everyone in teams and pool, which is the
// primary pass's target when nobody was lost.
func Summarize(teams []team.Team, unassigned []participant.Participant) Summary {
	everyone := make([]participant.Participant, 0, len(unassigned))
	for _, t := range teams {
		everyone = append(everyone, t.Members...)
	}
	everyone = append(everyone, unassigned...)

	s := Summary{
		Participants:          len(everyone),
		Unassigned:            len(unassigned),
		TargetAvg:             participant.AverageSkill(everyone),
		UnassignedByArchetype: make(map[participant.Archetype]int),
	}
	for _, p := range unassigned {
		s.UnassignedByArchetype[p.Archetype]++
	}
	if len(teams) == 0 {
		return s
	}

	s.MinTeamAvg = math.Inf(1)
	s.MaxTeamAvg = math.Inf(-1)
	totalDev := 0.0
	for _, t := range teams {
		avg := t.AverageSkill()
		dev := math.Abs(avg - s.TargetAvg)
		s.Teams = append(s.Teams, TeamSummary{
			Number:     t.Number,
			Size:       t.Size(),
			AvgSkill:   avg,
			Deviation:  dev,
			Activities: t.ActivityCounts(),
			Archetypes: t.ArchetypeCounts(),
		})
		s.MinTeamAvg = math.Min(s.MinTeamAvg, avg)
		s.MaxTeamAvg = math.Max(s.MaxTeamAvg, avg)
		totalDev += dev
	}
	sort.Slice(s.Teams, func(i, j int) bool { return s.Teams[i].Number < s.Teams[j].Number })
	s.Spread = s.MaxTeamAvg - s.MinTeamAvg
	s.MeanAbsDev = totalDev / float64(len(teams))
	return s
}
