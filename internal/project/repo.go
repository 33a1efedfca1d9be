package project

import "context"

type ListOpts struct {
	Q      string // substring match on name
	Status string
	Limit  int
	Offset int
}

type Store interface {
	Create(ctx context.Context, p Project) (Project, error)
	Get(ctx context.Context, id string) (Project, error)
	// List returns projects newest-first.
	List(ctx context.Context, opts ListOpts) ([]Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	// Delete removes the project; tasks and evaluations cascade via FK.
	Delete(ctx context.Context, id string) error
}
