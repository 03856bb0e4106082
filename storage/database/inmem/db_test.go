package inmemdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
	appfs "github.com/trezcool/classtrack/fs"
	"github.com/trezcool/classtrack/storage/database/inmem"
)

func TestOpen(t *testing.T) {
	db, err := inmemdb.Open(appfs.FS, appfs.FixturesDir, inmemdb.Options{})
	require.NoError(t, err)
	ctx := context.Background()

	assignments, err := inmemdb.NewAssignmentRepository(db).QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, assignments, 10)

	subs, err := inmemdb.NewSubmissionRepository(db).QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 5)

	students, err := inmemdb.NewStudentRepository(db).QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 3)

	notifs, err := inmemdb.NewNotificationRepository(db).QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, notifs, 5)
}

func TestOpen_Shift(t *testing.T) {
	shift := 72 * time.Hour
	db, err := inmemdb.Open(appfs.FS, appfs.FixturesDir, inmemdb.Options{Shift: shift})
	require.NoError(t, err)
	ctx := context.Background()

	a, err := inmemdb.NewAssignmentRepository(db).GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 18, 9, 30, 0, 0, time.UTC), a.DueDate)

	s, err := inmemdb.NewSubmissionRepository(db).GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 7, 20, 15, 0, 0, time.UTC), s.SubmittedAt)
	assert.Equal(t, time.Date(2025, time.January, 11, 10, 0, 0, 0, time.UTC), s.GradedAt.Time)

	// ungraded submissions stay ungraded
	s, err = inmemdb.NewSubmissionRepository(db).GetByID(ctx, 3)
	require.NoError(t, err)
	assert.False(t, s.GradedAt.Valid)
}

func TestRebaseShift(t *testing.T) {
	now := core.FixturesAnchor.Add(49*time.Hour + 30*time.Second)
	assert.Equal(t, 49*time.Hour, inmemdb.RebaseShift(core.FixturesAnchor, now))
}

func TestLatency(t *testing.T) {
	db := inmemdb.NewDB(core.Latency{GetAll: time.Hour})
	repo := inmemdb.NewAssignmentRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := repo.QueryAll(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = repo.GetByID(context.Background(), 1)
	assert.True(t, core.IsNotFound(err), "GetByID has no latency")

	_, err = repo.Create(context.Background(), assignment.Assignment{Title: "t"})
	assert.NoError(t, err)
}
