package memory

import (
	"context"
	"sync"

	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]fantasy.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]fantasy.Team)}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.items[teamID]
	if !ok {
		return fantasy.Team{}, false, nil
	}

	return cloneTeam(team), true, nil
}

func (r *TeamRepository) ListByUser(_ context.Context, userID string) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0, 4)
	for _, team := range r.items {
		if team.UserID == userID {
			out = append(out, cloneTeam(team))
		}
	}

	return out, nil
}

func (r *TeamRepository) ExistsByUserAndMatch(_ context.Context, userID, matchID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, team := range r.items {
		if team.UserID == userID && team.MatchID == matchID {
			return true, nil
		}
	}

	return false, nil
}

func (r *TeamRepository) Create(_ context.Context, team fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[team.ID] = cloneTeam(team)
	return nil
}

func cloneTeam(t fantasy.Team) fantasy.Team {
	copied := t
	copied.PlayerIDs = append([]string(nil), t.PlayerIDs...)
	return copied
}
