package roster

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// TeamHeader is the header of a team file.
var TeamHeader = []string{
	"TeamNumber", "ID", "Name", "Email", "Activity", "Skill", "Role", "PersonalityScore", "PersonalityType",
}

// WriteTeams writes one row per team member, teams in the order given.
func WriteTeams(w io.Writer, teams []team.Team) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TeamHeader); err != nil {
		return err
	}
	for _, t := range teams {
		for _, m := range t.Members {
			row := []string{
				strconv.Itoa(t.Number),
				m.ID,
				m.Name,
				m.Email,
				m.PreferredActivity,
				strconv.Itoa(m.SkillLevel),
				string(m.Position),
				strconv.Itoa(m.PersonalityScore),
				string(m.Archetype),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParticipants writes participants with ParticipantHeader, so the
// output can be loaded again with ReadParticipants.
func WriteParticipants(w io.Writer, ps []participant.Participant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ParticipantHeader); err != nil {
		return err
	}
	for _, p := range ps {
		row := []string{
			p.ID,
			p.Name,
			p.Email,
			p.PreferredActivity,
			strconv.Itoa(p.SkillLevel),
			string(p.Position),
			strconv.Itoa(p.PersonalityScore),
			string(p.Archetype),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveTeams writes teams to path, replacing it atomically.
func SaveTeams(path string, teams []team.Team) error {
	return saveFile(path, func(w io.Writer) error { return WriteTeams(w, teams) })
}

// SaveUnassigned writes the unassigned pool to path, replacing it atomically.
func SaveUnassigned(path string, ps []participant.Participant) error {
	return saveFile(path, func(w io.Writer) error { return WriteParticipants(w, ps) })
}

func saveFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStorageError("create directory", err).WithPath(dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.NewStorageError("create temp file", err).WithPath(path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return errors.NewStorageError("write csv", err).WithPath(path)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError("close temp file", err).WithPath(path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.NewStorageError("replace file", err).WithPath(path)
	}
	return nil
}
