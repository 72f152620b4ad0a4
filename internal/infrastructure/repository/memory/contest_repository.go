package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
)

type ContestRepository struct {
	mu     sync.RWMutex
	items  map[string]contest.Contest
	orders []string
}

func NewContestRepository(contests []contest.Contest) *ContestRepository {
	items := make(map[string]contest.Contest, len(contests))
	orders := make([]string, 0, len(contests))

	for _, c := range contests {
		items[c.ID] = cloneContest(c)
		orders = append(orders, c.ID)
	}

	return &ContestRepository{
		items:  items,
		orders: orders,
	}
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[contestID]
	if !ok {
		return contest.Contest{}, false, nil
	}

	return cloneContest(c), true, nil
}

func (r *ContestRepository) ListByMatch(_ context.Context, matchID string) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0, len(r.orders))
	for _, id := range r.orders {
		c := r.items[id]
		if c.MatchID == matchID {
			out = append(out, cloneContest(c))
		}
	}

	return out, nil
}

func (r *ContestRepository) ApplyPoints(_ context.Context, contestID, userID string, points int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[contestID]
	if !ok {
		return fmt.Errorf("contest %s not found", contestID)
	}

	for i := range c.Participants {
		if c.Participants[i].UserID == userID {
			c.Participants[i].Points = points
			r.items[contestID] = c
			return nil
		}
	}

	return fmt.Errorf("user %s is not in contest %s", userID, contestID)
}

func (r *ContestRepository) addParticipant(contestID string, p contest.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.items[contestID]
	c.Participants = append(c.Participants, p)
	c.SpotsFilled = len(c.Participants)
	r.items[contestID] = c
}

func (r *ContestRepository) markSettled(contestID string, results []contest.SettlementResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.items[contestID]
	for _, result := range results {
		for i := range c.Participants {
			if c.Participants[i].UserID == result.UserID {
				rank := result.Rank
				c.Participants[i].Rank = &rank
			}
		}
	}
	c.Settled = true
	r.items[contestID] = c
}

func cloneContest(c contest.Contest) contest.Contest {
	copied := c
	copied.Participants = make([]contest.Participant, len(c.Participants))
	for i, p := range c.Participants {
		copied.Participants[i] = p
		if p.Rank != nil {
			rank := *p.Rank
			copied.Participants[i].Rank = &rank
		}
	}
	return copied
}
