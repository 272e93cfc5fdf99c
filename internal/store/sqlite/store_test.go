package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "teammate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func member(id string, skill, teamNumber int) participant.Participant {
	return participant.Participant{
		ID:                id,
		Name:              "Player " + id,
		Email:             id + "@example.com",
		SkillLevel:        skill,
		PreferredActivity: "Chess",
		Archetype:         participant.Balanced,
		Position:          participant.PositionStrategist,
		PersonalityScore:  60,
		TeamNumber:        teamNumber,
	}
}

func sampleRun(id string, created time.Time) Run {
	return Run{
		ID:        id,
		CreatedAt: created,
		TeamSize:  2,
		TargetAvg: 5.5,
		Seed:      42,
		Leftover:  true,
		Source:    "participants.csv",
		Teams: []team.Team{
			{Number: 1, Members: []participant.Participant{member("P1", 4, 1), member("P2", 7, 1)}},
			{Number: 2, Members: []participant.Participant{member("P3", 5, 2), member("P4", 6, 2)}},
		},
		Unassigned: []participant.Participant{member("P5", 3, 0)},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teammate.db")
	first, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, first.SaveRun(context.Background(), sampleRun("r1", time.Now())))
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	runs, err := second.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestSaveAndGetRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := sampleRun("r1", created)

	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, run.ID, got.ID)
	require.True(t, got.CreatedAt.Equal(created))
	require.Equal(t, run.TeamSize, got.TeamSize)
	require.InDelta(t, run.TargetAvg, got.TargetAvg, 1e-9)
	require.Equal(t, run.Seed, got.Seed)
	require.True(t, got.Leftover)
	require.Equal(t, run.Source, got.Source)
	require.Equal(t, run.Teams, got.Teams)
	require.Equal(t, run.Unassigned, got.Unassigned)
}

func TestSaveRunDuplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveRun(ctx, sampleRun("dup", time.Now())))

	err := store.SaveRun(ctx, sampleRun("dup", time.Now()))
	require.Error(t, err)
	require.ErrorIs(t, err, &errors.AlreadyExistsError{})
}

func TestSaveRunRejectsUnnumberedTeam(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	run := sampleRun("bad", time.Now())
	run.Teams[1].Number = 0

	err := store.SaveRun(ctx, run)
	require.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = store.GetRun(ctx, "bad")
	require.ErrorIs(t, err, &errors.NotFoundError{})
}

func TestSaveRunRequiresID(t *testing.T) {
	store := openTestStore(t)
	err := store.SaveRun(context.Background(), sampleRun("", time.Now()))
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, "new", runs[0].ID)
	require.Equal(t, "old", runs[2].ID)
	require.Equal(t, 5, runs[0].Participants)
	require.Equal(t, 2, runs[0].Teams)
	require.Equal(t, 1, runs[0].Unassigned)

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, "mid", limited[1].ID)
}

func TestRunTeamsAndUnassigned(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveRun(ctx, sampleRun("r1", time.Now())))

	teams, err := store.RunTeams(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, 2, teams[1].Number)
	require.Equal(t, "P3", teams[1].Members[0].ID)

	pool, err := store.RunUnassigned(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, pool, 1)
	require.Equal(t, 0, pool[0].TeamNumber)

	_, err = store.RunTeams(ctx, "missing")
	require.ErrorIs(t, err, &errors.NotFoundError{})
}

func TestDeleteRunCascades(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveRun(ctx, sampleRun("r1", time.Now())))

	require.NoError(t, store.DeleteRun(ctx, "r1"))

	var members int
	require.NoError(t, store.sqlDB.QueryRowContext(ctx, `SELECT COUNT(1) FROM run_members`).Scan(&members))
	require.Zero(t, members)

	err := store.DeleteRun(ctx, "r1")
	require.ErrorIs(t, err, &errors.NotFoundError{})
}

func TestClosedStore(t *testing.T) {
	var store *Store
	require.NoError(t, store.Close())
	_, err := store.ListRuns(context.Background(), 0)
	require.ErrorIs(t, err, errors.ErrStoreClosed)
}

func TestCanceledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.SaveRun(ctx, sampleRun("r1", time.Now()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n"
	require.Equal(t, "\nCREATE TABLE a (x);\n", extractUp(content))
	require.Equal(t, "SELECT 1;", extractUp("SELECT 1;"))
}
