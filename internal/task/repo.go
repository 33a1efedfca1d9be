package task

import "context"

type Store interface {
	Create(ctx context.Context, t Task) (Task, error)
	Get(ctx context.Context, id string) (Task, error)
	// ListByProject orders by due date ascending with undated tasks last
	// (the project timeline).
	ListByProject(ctx context.Context, projectID string) ([]Task, error)
	ListByAssignee(ctx context.Context, assignee string) ([]Task, error)
	Update(ctx context.Context, t Task) (Task, error)
	Delete(ctx context.Context, id string) error
}
