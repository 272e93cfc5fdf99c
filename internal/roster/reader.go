package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

// Participant file columns.
const (
	ColID               = "ID"
	ColName             = "Name"
	ColEmail            = "Email"
	ColPreferredGame    = "PreferredGame"
	ColSkillLevel       = "SkillLevel"
	ColPreferredRole    = "PreferredRole"
	ColPersonalityScore = "PersonalityScore"
	ColPersonalityType  = "PersonalityType"
)

// ParticipantHeader is the column order used when writing participants.
var ParticipantHeader = []string{
	ColID, ColName, ColEmail, ColPreferredGame, ColSkillLevel,
	ColPreferredRole, ColPersonalityScore, ColPersonalityType,
}

var requiredColumns = []string{ColID, ColName, ColPreferredGame, ColSkillLevel, ColPersonalityScore}

// LoadParticipants reads and validates the participant file at path.
func LoadParticipants(path string) ([]participant.Participant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("open participants", err).WithPath(path)
	}
	defer func() { _ = f.Close() }()

	ps, err := ReadParticipants(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return ps, nil
}

// ReadParticipants parses participant CSV from r. It stops at the first
// invalid row, reporting the row's line number. Duplicate IDs are rejected.
func ReadParticipants(r io.Reader) ([]participant.Participant, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("participant file is empty").WithCause(errors.ErrMissingColumn)
	}
	if err != nil {
		return nil, errors.NewValidationError("unreadable header").WithRow(1).WithCause(err)
	}

	cols := indexColumns(header)
	for _, name := range requiredColumns {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			return nil, errors.NewValidationError("missing column").
				WithField(name).
				WithCause(errors.ErrMissingColumn)
		}
	}

	var out []participant.Participant
	seen := make(map[string]int)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			ve := errors.NewValidationError("unreadable record").WithCause(err)
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				ve = ve.WithRow(pe.Line)
			}
			return nil, ve
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		p, err := parseRecord(cols, record)
		if err != nil {
			return nil, withRow(err, line)
		}
		if err := p.Validate(); err != nil {
			return nil, withRow(err, line)
		}
		if first, dup := seen[p.ID]; dup {
			return nil, errors.NewAlreadyExistsError("participant", p.ID).
				WithCause(fmt.Errorf("line %d repeats line %d", line, first))
		}
		seen[p.ID] = line
		out = append(out, p)
	}
	return out, nil
}

// columns maps lower-cased header names to record indexes.
type columns map[string]int

func indexColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

func (c columns) get(record []string, name string) string {
	i, ok := c[strings.ToLower(name)]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRecord(cols columns, record []string) (participant.Participant, error) {
	p := participant.Participant{
		ID:                cols.get(record, ColID),
		Name:              cols.get(record, ColName),
		Email:             cols.get(record, ColEmail),
		PreferredActivity: cols.get(record, ColPreferredGame),
	}

	skill, err := parseInt(cols, record, ColSkillLevel)
	if err != nil {
		return p, err
	}
	p.SkillLevel = skill

	score, err := parseInt(cols, record, ColPersonalityScore)
	if err != nil {
		return p, err
	}
	p.PersonalityScore = score

	if raw := cols.get(record, ColPreferredRole); raw != "" {
		pos, err := participant.ParsePosition(raw)
		if err != nil {
			return p, errors.NewValidationError("unknown position").
				WithField(ColPreferredRole).WithValue(raw).WithCause(errors.ErrMalformedRecord)
		}
		p.Position = pos
	}

	if raw := cols.get(record, ColPersonalityType); raw != "" {
		arch, err := participant.ParseArchetype(raw)
		if err != nil {
			return p, errors.NewValidationError("unknown personality type").
				WithField(ColPersonalityType).WithValue(raw).WithCause(errors.ErrMalformedRecord)
		}
		p.Archetype = arch
	} else {
		p.Archetype = participant.ClassifyPersonality(score)
	}
	return p, nil
}

func parseInt(cols columns, record []string, name string) (int, error) {
	raw := cols.get(record, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("not an integer").
			WithField(name).WithValue(raw).WithCause(errors.ErrMalformedRecord)
	}
	return n, nil
}

func withRow(err error, line int) error {
	var ve *errors.ValidationError
	if errors.As(err, &ve) {
		return ve.WithRow(line)
	}
	return err
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
