package evaluation

import "context"

// Store persists evaluation records. Implementations must return ErrNotFound
// for missing IDs so callers can map it to a non-fatal condition.
type Store interface {
	Create(ctx context.Context, ev Evaluation) (Evaluation, error)
	Update(ctx context.Context, ev Evaluation) (Evaluation, error)
	Get(ctx context.Context, id string) (Evaluation, error)
	// ListByProject returns a project's evaluations newest-first.
	// limit <= 0 means no limit.
	ListByProject(ctx context.Context, projectID string, limit, offset int) ([]Evaluation, error)
	Delete(ctx context.Context, id string) error
}
