package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
)

type MatchService struct {
	matchRepo match.Repository
}

func NewMatchService(matchRepo match.Repository) *MatchService {
	return &MatchService{matchRepo: matchRepo}
}

func (s *MatchService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

var matchStatusOrder = map[match.Status]int{
	match.StatusUpcoming:  0,
	match.StatusLive:      1,
	match.StatusCompleted: 2,
}

// UpdateMatchStatus applies a lifecycle report from the fixture feed. Moving a
// match past upcoming locks every contest attached to it; the lifecycle only
// moves forward, so a regression can never re-open admission. Replaying the
// current status is a no-op success.
func (s *MatchService) UpdateMatchStatus(ctx context.Context, matchID string, status match.Status) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateMatchStatus")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	switch status {
	case match.StatusUpcoming, match.StatusLive, match.StatusCompleted:
	default:
		return match.Match{}, fmt.Errorf("%w: invalid match status %q", ErrInvalidInput, status)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if matchStatusOrder[status] < matchStatusOrder[item.Status] {
		return match.Match{}, fmt.Errorf("%w: match %s cannot move from %s back to %s", ErrInvalidInput, matchID, item.Status, status)
	}

	if err := s.matchRepo.UpdateStatus(ctx, matchID, status); err != nil {
		return match.Match{}, fmt.Errorf("update match status: %w", err)
	}

	item.Status = status
	return item, nil
}
