package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

const sampleCSV = `ID,Name,Email,PreferredGame,SkillLevel,PreferredRole,PersonalityScore,PersonalityType
P001,Ava Perera,ava@example.com,Chess,7,Strategist,92,Leader
P002,Ben Silva,ben@example.com,FIFA,4,attacker,55,
P003,Chen Li,,Valorant,9,,80,balanced
`

func TestReadParticipants(t *testing.T) {
	got, err := ReadParticipants(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadParticipants() error = %v", err)
	}

	want := []participant.Participant{
		{ID: "P001", Name: "Ava Perera", Email: "ava@example.com", PreferredActivity: "Chess", SkillLevel: 7,
			Position: participant.PositionStrategist, PersonalityScore: 92, Archetype: participant.Leader},
		{ID: "P002", Name: "Ben Silva", Email: "ben@example.com", PreferredActivity: "FIFA", SkillLevel: 4,
			Position: participant.PositionAttacker, PersonalityScore: 55, Archetype: participant.Thinker},
		{ID: "P003", Name: "Chen Li", PreferredActivity: "Valorant", SkillLevel: 9,
			PersonalityScore: 80, Archetype: participant.Balanced},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadParticipants() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadParticipants_ColumnOrderAndCase(t *testing.T) {
	in := "personalityscore,skilllevel,preferredgame,name,id\n" +
		"45,3,Go,Dana,P9\n" +
		"\n" +
		",,,,\n"

	got, err := ReadParticipants(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadParticipants() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d participants, want 1", len(got))
	}
	if got[0].Archetype != participant.Motivator {
		t.Errorf("Archetype = %q, want Motivator from score 45", got[0].Archetype)
	}
	if got[0].PreferredActivity != "Go" || got[0].SkillLevel != 3 {
		t.Errorf("got %+v", got[0])
	}
}

func TestReadParticipants_Errors(t *testing.T) {
	const header = "ID,Name,Email,PreferredGame,SkillLevel,PreferredRole,PersonalityScore,PersonalityType\n"

	tests := []struct {
		name      string
		input     string
		wantIs    error
		wantRow   int
		wantField string
	}{
		{
			name:   "empty",
			input:  "",
			wantIs: errors.ErrMissingColumn,
		},
		{
			name:      "missing column",
			input:     "ID,Name,PreferredGame,PersonalityScore\nP1,A,Chess,50\n",
			wantIs:    errors.ErrMissingColumn,
			wantField: ColSkillLevel,
		},
		{
			name:      "skill not a number",
			input:     header + "P1,A,a@b.co,Chess,high,,50,\n",
			wantIs:    errors.ErrMalformedRecord,
			wantRow:   2,
			wantField: ColSkillLevel,
		},
		{
			name:      "skill out of range",
			input:     header + "P1,A,a@b.co,Chess,7,,50,\nP2,B,b@b.co,Go,11,,50,\n",
			wantIs:    errors.ErrInvalidInput,
			wantRow:   3,
			wantField: "SkillLevel",
		},
		{
			name:      "unknown position",
			input:     header + "P1,A,a@b.co,Chess,7,Goalkeeper,50,\n",
			wantIs:    errors.ErrMalformedRecord,
			wantRow:   2,
			wantField: ColPreferredRole,
		},
		{
			name:      "unknown type",
			input:     header + "P1,A,a@b.co,Chess,7,,50,Wizard\n",
			wantIs:    errors.ErrMalformedRecord,
			wantRow:   2,
			wantField: ColPersonalityType,
		},
		{
			name:      "bad email",
			input:     header + "P1,A,not-an-email,Chess,7,,50,\n",
			wantIs:    errors.ErrInvalidInput,
			wantRow:   2,
			wantField: "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadParticipants(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadParticipants() error = nil")
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("error %v is not %v", err, tt.wantIs)
			}
			var ve *errors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a ValidationError", err)
			}
			if ve.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", ve.Row, tt.wantRow)
			}
			if tt.wantField != "" && ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestReadParticipants_DuplicateID(t *testing.T) {
	in := "ID,Name,PreferredGame,SkillLevel,PersonalityScore\n" +
		"P1,A,Chess,5,50\n" +
		"P1,B,Go,6,60\n"

	_, err := ReadParticipants(strings.NewReader(in))
	var ae *errors.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want AlreadyExistsError", err)
	}
	if ae.ResourceID != "P1" {
		t.Errorf("ResourceID = %q, want P1", ae.ResourceID)
	}
	if !strings.Contains(err.Error(), "line 3 repeats line 2") {
		t.Errorf("error %q should name both lines", err)
	}
}

func TestLoadParticipants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "participants.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadParticipants(path)
	if err != nil {
		t.Fatalf("LoadParticipants() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d participants, want 3", len(got))
	}
}

func TestLoadParticipants_Missing(t *testing.T) {
	_, err := LoadParticipants(filepath.Join(t.TempDir(), "nope.csv"))
	var se *errors.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StorageError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should wrap os.ErrNotExist", err)
	}
}
