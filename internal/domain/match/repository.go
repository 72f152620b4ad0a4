package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// UpdateStatus moves the match through its lifecycle as the fixture
	// feed reports progress.
	UpdateStatus(ctx context.Context, matchID string, status Status) error
}
