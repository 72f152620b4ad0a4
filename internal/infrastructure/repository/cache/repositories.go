package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	basecache "github.com/pitchside/fantasy-cricket/internal/platform/cache"
)

// Read-through decorators for the static catalog repositories. Matches and
// players change rarely (a status flip, a seed reload), so short TTLs keep
// the hot list endpoints off the database. Wallets, teams, and contests are
// never cached: admission and settlement must read authoritative state.

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, matchID string, status match.Status) error {
	if err := r.next.UpdateStatus(ctx, matchID, status); err != nil {
		return err
	}

	r.cache.Delete(ctx, "match:list")
	r.cache.Delete(ctx, "match:id:"+matchID)
	return nil
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	sorted := append([]string(nil), playerIDs...)
	sort.Strings(sorted)
	key := "player:ids:" + strings.Join(sorted, ",")

	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}
