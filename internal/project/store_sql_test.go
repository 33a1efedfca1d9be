package project_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectpulse/projectpulse/internal/db"
	"github.com/projectpulse/projectpulse/internal/project"
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

func sample(id, name, status string, createdAt int64) project.Project {
	return project.Project{
		ID: id, Name: name, Status: status,
		CreatedBy: "u1", CreatedAt: createdAt, UpdatedAt: createdAt,
	}
}

func TestStoreCreateGet(t *testing.T) {
	store := project.NewSQLStore(openTestDB(t), "sqlite")
	ctx := context.Background()

	start := int64(1700000000)
	want := sample("p1", "Website Revamp", project.StatusActive, 1000)
	want.Description = "Q3 marketing site overhaul"
	want.StartAt = &start

	_, err := store.Create(ctx, want)
	require.NoError(t, err)

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NotNil(t, got.StartAt)
	assert.Nil(t, got.EndAt)

	_, err = store.Get(ctx, "nope")
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestStoreListFilters(t *testing.T) {
	store := project.NewSQLStore(openTestDB(t), "sqlite")
	ctx := context.Background()

	for _, p := range []project.Project{
		sample("p1", "Website Revamp", project.StatusActive, 1000),
		sample("p2", "Mobile App", project.StatusPlanning, 2000),
		sample("p3", "Website Migration", project.StatusCompleted, 3000),
	} {
		_, err := store.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := store.List(ctx, project.ListOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "p3", all[0].ID) // newest first

	web, err := store.List(ctx, project.ListOpts{Q: "website"})
	require.NoError(t, err)
	assert.Len(t, web, 2)

	active, err := store.List(ctx, project.ListOpts{Status: project.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "p1", active[0].ID)

	page, err := store.List(ctx, project.ListOpts{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "p2", page[0].ID)
}

func TestStoreUpdateDelete(t *testing.T) {
	store := project.NewSQLStore(openTestDB(t), "sqlite")
	ctx := context.Background()

	p := sample("p1", "Website Revamp", project.StatusPlanning, 1000)
	_, err := store.Create(ctx, p)
	require.NoError(t, err)

	p.Status = project.StatusActive
	p.UpdatedAt = 2000
	got, err := store.Update(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, project.StatusActive, got.Status)
	assert.Equal(t, int64(2000), got.UpdatedAt)

	_, err = store.Update(ctx, sample("ghost", "X", project.StatusActive, 1))
	assert.ErrorIs(t, err, project.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "p1"))
	assert.ErrorIs(t, store.Delete(ctx, "p1"), project.ErrNotFound)
}
