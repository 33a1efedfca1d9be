package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

const taskCols = `id, project_id, title, description, status, assignee, due_at, created_at, updated_at`

func (s *SQLStore) Create(ctx context.Context, t Task) (Task, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks
		(`+taskCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Assignee, t.DueAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE id=$1`, id)
	return scanTask(row)
}

func (s *SQLStore) ListByProject(ctx context.Context, projectID string) ([]Task, error) {
	// CASE keeps NULL due dates last on both sqlite and postgres.
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskCols+` FROM tasks
		WHERE project_id=$1
		ORDER BY CASE WHEN due_at IS NULL THEN 1 ELSE 0 END, due_at, created_at`, projectID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (s *SQLStore) ListByAssignee(ctx context.Context, assignee string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskCols+` FROM tasks
		WHERE assignee=$1
		ORDER BY CASE WHEN due_at IS NULL THEN 1 ELSE 0 END, due_at, created_at`, assignee)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (s *SQLStore) Update(ctx context.Context, t Task) (Task, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks
		SET title=$1, description=$2, status=$3, assignee=$4, due_at=$5, updated_at=$6
		WHERE id=$7`,
		t.Title, t.Description, t.Status, t.Assignee, t.DueAt, t.UpdatedAt, t.ID)
	if err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Task{}, ErrNotFound
	}
	return s.Get(ctx, t.ID)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectTasks(rows *sql.Rows) ([]Task, error) {
	defer rows.Close()
	out := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var due sql.NullInt64
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Assignee, &due, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	if due.Valid {
		v := due.Int64
		t.DueAt = &v
	}
	return t, nil
}
