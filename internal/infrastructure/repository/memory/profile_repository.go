package memory

import (
	"context"
	"sync"

	"github.com/pitchside/fantasy-cricket/internal/domain/user"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[string]user.Profile)}
}

func (r *ProfileRepository) Get(_ context.Context, userID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.items[userID]
	if !ok {
		return user.Profile{}, false, nil
	}

	return profile, true, nil
}

func (r *ProfileRepository) Save(_ context.Context, profile user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[profile.UserID] = profile
	return nil
}
