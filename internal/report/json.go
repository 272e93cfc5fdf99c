package report

import (
	"encoding/json"
	"io"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/allocation"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// Result is the machine-readable form of one formation run.
type Result struct {
	RunID      string                    `json:"run_id,omitempty"`
	Teams      []TeamJSON                `json:"teams"`
	Unassigned []participant.Participant `json:"unassigned"`
	Summary    allocation.Summary        `json:"summary"`
}

// TeamJSON is a completed team in a Result.
type TeamJSON struct {
	Number  int                       `json:"number"`
	Members []participant.Participant `json:"members"`
}

// NewResult assembles a Result and computes its summary.
func NewResult(runID string, teams []team.Team, unassigned []participant.Participant) Result {
	r := Result{
		RunID:      runID,
		Teams:      make([]TeamJSON, 0, len(teams)),
		Unassigned: unassigned,
		Summary:    allocation.Summarize(teams, unassigned),
	}
	if r.Unassigned == nil {
		r.Unassigned = []participant.Participant{}
	}
	for _, t := range teams {
		r.Teams = append(r.Teams, TeamJSON{Number: t.Number, Members: t.Members})
	}
	return r
}

// TeamList converts the result's teams back into team snapshots.
func (r Result) TeamList() []team.Team {
	out := make([]team.Team, 0, len(r.Teams))
	for _, t := range r.Teams {
		out = append(out, team.Team{Number: t.Number, Members: t.Members})
	}
	return out
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
