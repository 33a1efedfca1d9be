// Package audit appends domain events to the event_log table. Writes are
// best-effort: callers log failures but never fail the triggering request.
package audit

import (
	"context"
	"database/sql"
	"time"
)

const (
	TypeEvaluationSubmitted = "EvaluationSubmitted"
	TypeEvaluationReplaced  = "EvaluationReplaced"
	TypeEvaluationDeleted   = "EvaluationDeleted"
	TypeProjectDeleted      = "ProjectDeleted"
)

type Event struct {
	Offset    int64
	SiteID    string
	Type      string
	Key       string // natural key, e.g. evaluation ID
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	site := e.SiteID
	if site == "" {
		site = "local"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		site, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
