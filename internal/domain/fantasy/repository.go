package fantasy

import "context"

// Repository describes fantasy team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Team, error)
	ExistsByUserAndMatch(ctx context.Context, userID, matchID string) (bool, error)
	Create(ctx context.Context, team Team) error
}
