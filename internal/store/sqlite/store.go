// Package sqlite records formation runs in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/store/sqlite/migrations"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// unassignedTeam is the team_number under which pool members are stored.
const unassignedTeam = 0

// Run is one stored formation run: the primary teams, any leftover teams,
// and the participants still unassigned afterwards.
type Run struct {
	ID         string
	CreatedAt  time.Time
	TeamSize   int
	TargetAvg  float64
	Seed       int64
	Leftover   bool
	Source     string
	Teams      []team.Team
	Unassigned []participant.Participant
}

// Participants returns the number of participants the run accounted for.
func (r Run) Participants() int {
	n := len(r.Unassigned)
	for _, t := range r.Teams {
		n += t.Size()
	}
	return n
}

// RunInfo is the listing view of a stored run.
type RunInfo struct {
	ID           string
	CreatedAt    time.Time
	TeamSize     int
	Participants int
	Teams        int
	Unassigned   int
	TargetAvg    float64
	Source       string
}

// Store persists formation runs in SQLite.
type Store struct {
	sqlDB *sql.DB
	path  string
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewStorageError("storage path is required", errors.ErrInvalidInput)
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewStorageError("open sqlite db", err).WithPath(cleanPath)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.NewStorageError("ping sqlite db", err).WithPath(cleanPath)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, errors.NewStorageError("run migrations", err).WithPath(cleanPath)
	}
	return &Store{sqlDB: sqlDB, path: cleanPath}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return errors.ErrStoreClosed
	}
	return nil
}

// SaveRun stores run and all of its members in one transaction.
// A zero CreatedAt is set to the current time.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(run.ID) == "" {
		return errors.NewValidationError("run id is required").WithField("ID")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("begin transaction", err).WithPath(s.path).WithRetryable(true)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
		   id, created_at, team_size, participants, team_count,
		   unassigned_count, target_avg, seed, leftover, source
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		toMillis(run.CreatedAt),
		run.TeamSize,
		run.Participants(),
		len(run.Teams),
		len(run.Unassigned),
		run.TargetAvg,
		run.Seed,
		run.Leftover,
		run.Source,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewAlreadyExistsError("run", run.ID)
		}
		return errors.NewStorageError("insert run", err).WithTable("runs")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_members (
		   run_id, team_number, ordinal, participant_id, name, email,
		   activity, skill, position, personality_score, personality_type
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStorageError("prepare member insert", err).WithTable("run_members")
	}
	defer func() { _ = stmt.Close() }()

	insert := func(teamNumber, ordinal int, p participant.Participant) error {
		_, err := stmt.ExecContext(ctx,
			run.ID, teamNumber, ordinal, p.ID, p.Name, p.Email,
			p.PreferredActivity, p.SkillLevel, string(p.Position),
			p.PersonalityScore, string(p.Archetype),
		)
		if err != nil {
			return errors.NewStorageError(fmt.Sprintf("insert member %s", p.ID), err).WithTable("run_members")
		}
		return nil
	}
	for _, t := range run.Teams {
		if t.Number <= unassignedTeam {
			return errors.NewValidationError("team number must be positive").WithField("Number").WithValue(t.Number)
		}
		for i, m := range t.Members {
			if err := insert(t.Number, i, m); err != nil {
				return err
			}
		}
	}
	for i, p := range run.Unassigned {
		if err := insert(unassignedTeam, i, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("commit run", err).WithPath(s.path).WithRetryable(true)
	}
	return nil
}

// GetRun returns a stored run with its teams and unassigned pool.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	if err := s.ready(ctx); err != nil {
		return Run{}, err
	}

	var (
		run       Run
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, created_at, team_size, target_avg, seed, leftover, source
		   FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &createdAt, &run.TeamSize, &run.TargetAvg, &run.Seed, &run.Leftover, &run.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, errors.NewNotFoundError("run", id)
	}
	if err != nil {
		return Run{}, errors.NewStorageError("get run", err).WithTable("runs")
	}
	run.CreatedAt = fromMillis(createdAt)

	if run.Teams, err = s.RunTeams(ctx, id); err != nil {
		return Run{}, err
	}
	if run.Unassigned, err = s.RunUnassigned(ctx, id); err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, created_at, team_size, participants, team_count,
		        unassigned_count, target_avg, source
		   FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.NewStorageError("list runs", err).WithTable("runs")
	}
	defer func() { _ = rows.Close() }()

	var out []RunInfo
	for rows.Next() {
		var (
			info      RunInfo
			createdAt int64
		)
		if err := rows.Scan(&info.ID, &createdAt, &info.TeamSize, &info.Participants,
			&info.Teams, &info.Unassigned, &info.TargetAvg, &info.Source); err != nil {
			return nil, errors.NewStorageError("scan run", err).WithTable("runs")
		}
		info.CreatedAt = fromMillis(createdAt)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterate runs", err).WithTable("runs")
	}
	return out, nil
}

// RunTeams returns the completed teams of a run, ordered by team number.
func (s *Store) RunTeams(ctx context.Context, id string) ([]team.Team, error) {
	members, err := s.members(ctx, id, "team_number > 0")
	if err != nil {
		return nil, err
	}
	var teams []team.Team
	for _, m := range members {
		if len(teams) == 0 || teams[len(teams)-1].Number != m.TeamNumber {
			teams = append(teams, team.Team{Number: m.TeamNumber})
		}
		last := &teams[len(teams)-1]
		last.Members = append(last.Members, m)
	}
	return teams, nil
}

// RunUnassigned returns the participants left unassigned by a run.
func (s *Store) RunUnassigned(ctx context.Context, id string) ([]participant.Participant, error) {
	return s.members(ctx, id, "team_number = 0")
}

// DeleteRun removes a run and its members.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return errors.NewStorageError("delete run", err).WithTable("runs")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFoundError("run", id)
	}
	return nil
}

func (s *Store) members(ctx context.Context, id, where string) ([]participant.Participant, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT team_number, participant_id, name, email, activity, skill,
		        position, personality_score, personality_type
		   FROM run_members
		  WHERE run_id = ? AND `+where+`
		  ORDER BY team_number, ordinal`, id)
	if err != nil {
		return nil, errors.NewStorageError("query members", err).WithTable("run_members")
	}
	defer func() { _ = rows.Close() }()

	var out []participant.Participant
	for rows.Next() {
		var (
			p        participant.Participant
			position string
			arch     string
		)
		if err := rows.Scan(&p.TeamNumber, &p.ID, &p.Name, &p.Email, &p.PreferredActivity,
			&p.SkillLevel, &position, &p.PersonalityScore, &arch); err != nil {
			return nil, errors.NewStorageError("scan member", err).WithTable("run_members")
		}
		p.Position = participant.Position(position)
		p.Archetype = participant.Archetype(arch)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterate members", err).WithTable("run_members")
	}
	return out, nil
}

func (s *Store) exists(ctx context.Context, id string) error {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs WHERE id = ?`, id).Scan(&n); err != nil {
		return errors.NewStorageError("check run", err).WithTable("runs")
	}
	if n == 0 {
		return errors.NewNotFoundError("run", id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
