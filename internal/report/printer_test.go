package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/allocation"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/store/sqlite"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

func person(id string, skill int, arch participant.Archetype) participant.Participant {
	return participant.Participant{
		ID:                id,
		Name:              "Player " + id,
		SkillLevel:        skill,
		PreferredActivity: "Chess",
		Archetype:         arch,
		Position:          participant.PositionDefender,
		PersonalityScore:  75,
	}
}

func sampleTeams() []team.Team {
	return []team.Team{
		{Number: 1, Members: []participant.Participant{person("P1", 4, participant.Leader), person("P2", 8, participant.Thinker)}},
		{Number: 2, Members: []participant.Participant{person("P3", 6, participant.Leader), person("P4", 6, participant.Balanced)}},
	}
}

func TestPrinterTeams(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)

	if err := p.Teams(sampleTeams()); err != nil {
		t.Fatalf("Teams() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Team 1", "Team 2", "avg skill 6.00", "P3", "Thinker"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)

	_ = p.Teams(nil)
	_ = p.Unassigned(nil)
	_ = p.Runs(nil)

	out := buf.String()
	for _, want := range []string{"No teams formed.", "Everyone was placed.", "No stored runs."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 0)
	pool := []participant.Participant{person("P5", 2, participant.Motivator)}

	if err := p.Summary(allocation.Summarize(sampleTeams(), pool)); err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"participants: 5", "unassigned:   1", "target avg:   5.20", "spread 0.00", "Motivator=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterTruncatesToWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 20)

	_ = p.Unassigned([]participant.Participant{person("P1", 5, participant.Balanced)})
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if got := len([]rune(line)); got > 20 {
			t.Errorf("line %q has width %d, want <= 20", line, got)
		}
	}
}

func TestPrinterRuns(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, PlainStyles(), 200)
	runs := []sqlite.RunInfo{{
		ID:           "run-1",
		CreatedAt:    time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC),
		TeamSize:     5,
		Participants: 12,
		Teams:        2,
		Unassigned:   2,
		TargetAvg:    5.5,
	}}

	if err := p.Runs(runs); err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if !strings.Contains(buf.String(), "run-1") || !strings.Contains(buf.String(), "5.50") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrinterKeepsFirstError(t *testing.T) {
	p := NewPrinter(failingWriter{}, PlainStyles(), 0)
	if err := p.Teams(sampleTeams()); err == nil {
		t.Fatal("Teams() error = nil, want write error")
	}
	if p.Err() == nil {
		t.Error("Err() = nil after failed write")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestWriteJSONResult(t *testing.T) {
	var buf bytes.Buffer
	res := NewResult("run-1", sampleTeams(), nil)
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded struct {
		RunID      string            `json:"run_id"`
		Teams      []json.RawMessage `json:"teams"`
		Unassigned []json.RawMessage `json:"unassigned"`
		Summary    struct {
			Participants int `json:"participants"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded.RunID != "run-1" || len(decoded.Teams) != 2 || decoded.Summary.Participants != 4 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Unassigned == nil {
		t.Error("unassigned should encode as [] not null")
	}
	if !strings.Contains(buf.String(), `"skill_level": 8`) {
		t.Errorf("participant fields not tagged:\n%s", buf.String())
	}
}
