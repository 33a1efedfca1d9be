package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Create(ctx context.Context, p Project) (Project, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO projects
		(id, name, description, status, start_at, end_at, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Description, p.Status, p.StartAt, p.EndAt, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, description, status, start_at, end_at, created_by, created_at, updated_at
		FROM projects WHERE id=$1`, id)
	return scanProject(row)
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Project, error) {
	q := `SELECT id, name, description, status, start_at, end_at, created_by, created_at, updated_at
		FROM projects WHERE 1=1`
	args := []any{}
	if opts.Q != "" {
		args = append(args, opts.Q)
		q += ` AND LOWER(name) LIKE '%' || LOWER($` + strconv.Itoa(len(args)) + `) || '%'`
	}
	if opts.Status != "" {
		args = append(args, opts.Status)
		q += ` AND status=$` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY created_at DESC, id DESC`
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit, opts.Offset)
	q += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) Update(ctx context.Context, p Project) (Project, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE projects
		SET name=$1, description=$2, status=$3, start_at=$4, end_at=$5, updated_at=$6
		WHERE id=$7`,
		p.Name, p.Description, p.Status, p.StartAt, p.EndAt, p.UpdatedAt, p.ID)
	if err != nil {
		return Project{}, fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Project{}, ErrNotFound
	}
	return s.Get(ctx, p.ID)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	var start, end sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &start, &end, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	if start.Valid {
		v := start.Int64
		p.StartAt = &v
	}
	if end.Valid {
		v := end.Int64
		p.EndAt = &v
	}
	return p, nil
}
