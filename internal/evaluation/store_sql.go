package evaluation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLStore persists evaluations in the evaluations table. Answers and
// dimension scores are stored as JSON blobs; the calculator treats them as
// opaque key->number maps either way.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Create(ctx context.Context, ev Evaluation) (Evaluation, error) {
	aj, err := json.Marshal(ev.Answers)
	if err != nil {
		return Evaluation{}, err
	}
	dj, err := json.Marshal(ev.DimensionScores)
	if err != nil {
		return Evaluation{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO evaluations
		(id, project_id, evaluator_name, answers_json, dimension_scores_json, total_score, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		ev.ID, ev.ProjectID, ev.EvaluatorName, string(aj), string(dj), ev.TotalScore, ev.CreatedAt, ev.UpdatedAt)
	if err != nil {
		return Evaluation{}, fmt.Errorf("insert evaluation: %w", err)
	}
	return ev, nil
}

func (s *SQLStore) Update(ctx context.Context, ev Evaluation) (Evaluation, error) {
	aj, err := json.Marshal(ev.Answers)
	if err != nil {
		return Evaluation{}, err
	}
	dj, err := json.Marshal(ev.DimensionScores)
	if err != nil {
		return Evaluation{}, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE evaluations
		SET evaluator_name=$1, answers_json=$2, dimension_scores_json=$3, total_score=$4, updated_at=$5
		WHERE id=$6`,
		ev.EvaluatorName, string(aj), string(dj), ev.TotalScore, ev.UpdatedAt, ev.ID)
	if err != nil {
		return Evaluation{}, fmt.Errorf("update evaluation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Evaluation{}, ErrNotFound
	}
	return s.Get(ctx, ev.ID)
}

func (s *SQLStore) Get(ctx context.Context, id string) (Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, project_id, evaluator_name, answers_json, dimension_scores_json, total_score, created_at, updated_at
		FROM evaluations WHERE id=$1`, id)
	return scanEvaluation(row)
}

func (s *SQLStore) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]Evaluation, error) {
	q := `SELECT id, project_id, evaluator_name, answers_json, dimension_scores_json, total_score, created_at, updated_at
		FROM evaluations WHERE project_id=$1 ORDER BY created_at DESC, id DESC`
	args := []any{projectID}
	if limit > 0 {
		q += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id=$1`, id)
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

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var ev Evaluation
	var ajson, djson string
	err := row.Scan(&ev.ID, &ev.ProjectID, &ev.EvaluatorName, &ajson, &djson, &ev.TotalScore, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, ErrNotFound
		}
		return Evaluation{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &ev.Answers); err != nil {
		return Evaluation{}, fmt.Errorf("decode answers: %w", err)
	}
	if err := json.Unmarshal([]byte(djson), &ev.DimensionScores); err != nil {
		return Evaluation{}, fmt.Errorf("decode dimension scores: %w", err)
	}
	return ev, nil
}
