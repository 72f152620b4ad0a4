package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	basecache "github.com/pitchside/fantasy-cricket/internal/platform/cache"
)

type countingMatchRepo struct {
	next      match.Repository
	listCalls int
}

func (r *countingMatchRepo) List(ctx context.Context) ([]match.Match, error) {
	r.listCalls++
	return r.next.List(ctx)
}

func (r *countingMatchRepo) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.next.GetByID(ctx, matchID)
}

func (r *countingMatchRepo) UpdateStatus(ctx context.Context, matchID string, status match.Status) error {
	return r.next.UpdateStatus(ctx, matchID, status)
}

func TestMatchRepository_ListReadsThroughOnce(t *testing.T) {
	counting := &countingMatchRepo{next: memory.NewMatchRepository(memory.SeedMatches())}
	repo := NewMatchRepository(counting, basecache.NewStore(time.Minute))

	first, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	second, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}

	if counting.listCalls != 1 {
		t.Fatalf("expected 1 backing call, got %d", counting.listCalls)
	}
	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("unexpected list sizes: %d vs %d", len(first), len(second))
	}
}

func TestMatchRepository_UpdateStatusInvalidatesCache(t *testing.T) {
	repo := NewMatchRepository(memory.NewMatchRepository(memory.SeedMatches()), basecache.NewStore(time.Minute))

	item, exists, err := repo.GetByID(t.Context(), memory.MatchIDIndAus)
	if err != nil || !exists {
		t.Fatalf("get match failed: exists=%v err=%v", exists, err)
	}
	if item.Status != match.StatusUpcoming {
		t.Fatalf("unexpected seed status: %s", item.Status)
	}

	if err := repo.UpdateStatus(t.Context(), memory.MatchIDIndAus, match.StatusLive); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	item, exists, err = repo.GetByID(t.Context(), memory.MatchIDIndAus)
	if err != nil || !exists {
		t.Fatalf("get match after update failed: exists=%v err=%v", exists, err)
	}
	if item.Status != match.StatusLive {
		t.Fatalf("expected live status after invalidation, got %s", item.Status)
	}
}
