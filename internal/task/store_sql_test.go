package task_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectpulse/projectpulse/internal/db"
	"github.com/projectpulse/projectpulse/internal/project"
	"github.com/projectpulse/projectpulse/internal/task"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") +
		"?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	dbh.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}

func seedProject(t *testing.T, dbh *sql.DB, id string) {
	t.Helper()
	_, err := project.NewSQLStore(dbh, "sqlite").Create(context.Background(), project.Project{
		ID: id, Name: "Project " + id, Status: project.StatusActive,
		CreatedBy: "u1", CreatedAt: 1, UpdatedAt: 1,
	})
	require.NoError(t, err)
}

func newTask(id, projectID, title string, due *int64, createdAt int64) task.Task {
	return task.Task{
		ID: id, ProjectID: projectID, Title: title,
		Status: task.StatusTodo, DueAt: due,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	}
}

func i64(v int64) *int64 { return &v }

func TestTimelineOrdering(t *testing.T) {
	dbh := openTestDB(t)
	seedProject(t, dbh, "p1")
	store := task.NewSQLStore(dbh, "sqlite")
	ctx := context.Background()

	for _, tk := range []task.Task{
		newTask("t_late", "p1", "Ship", i64(3000), 1),
		newTask("t_none", "p1", "Backlog item", nil, 2),
		newTask("t_soon", "p1", "Design review", i64(1000), 3),
	} {
		_, err := store.Create(ctx, tk)
		require.NoError(t, err)
	}

	got, err := store.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "t_soon", got[0].ID)
	assert.Equal(t, "t_late", got[1].ID)
	assert.Equal(t, "t_none", got[2].ID, "undated tasks sort last")
}

func TestListByAssignee(t *testing.T) {
	dbh := openTestDB(t)
	seedProject(t, dbh, "p1")
	store := task.NewSQLStore(dbh, "sqlite")
	ctx := context.Background()

	a := newTask("t1", "p1", "Mine", i64(1000), 1)
	a.Assignee = "u42"
	b := newTask("t2", "p1", "Theirs", i64(2000), 2)
	b.Assignee = "u7"
	for _, tk := range []task.Task{a, b} {
		_, err := store.Create(ctx, tk)
		require.NoError(t, err)
	}

	got, err := store.ListByAssignee(ctx, "u42")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestTaskUpdateDelete(t *testing.T) {
	dbh := openTestDB(t)
	seedProject(t, dbh, "p1")
	store := task.NewSQLStore(dbh, "sqlite")
	ctx := context.Background()

	tk := newTask("t1", "p1", "Design review", i64(1000), 1)
	_, err := store.Create(ctx, tk)
	require.NoError(t, err)

	tk.Status = task.StatusDone
	tk.Assignee = "u42"
	tk.UpdatedAt = 2
	got, err := store.Update(ctx, tk)
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, got.Status)
	assert.Equal(t, "u42", got.Assignee)

	_, err = store.Update(ctx, newTask("ghost", "p1", "X", nil, 1))
	assert.ErrorIs(t, err, task.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "t1"))
	assert.ErrorIs(t, store.Delete(ctx, "t1"), task.ErrNotFound)

	_, err = store.Get(ctx, "t1")
	assert.ErrorIs(t, err, task.ErrNotFound)
}
