package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
)

// ContestView pairs a contest with its derived lifecycle state.
type ContestView struct {
	Contest contest.Contest
	State   contest.State
}

type ContestService struct {
	matchRepo   match.Repository
	contestRepo contest.Repository
	now         func() time.Time
}

func NewContestService(matchRepo match.Repository, contestRepo contest.Repository) *ContestService {
	return &ContestService{
		matchRepo:   matchRepo,
		contestRepo: contestRepo,
		now:         time.Now,
	}
}

func (s *ContestService) GetContest(ctx context.Context, contestID string) (ContestView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetContest")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return ContestView{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return ContestView{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return ContestView{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	state, err := s.deriveState(ctx, item)
	if err != nil {
		return ContestView{}, err
	}

	return ContestView{Contest: item, State: state}, nil
}

func (s *ContestService) ListContestsForMatch(ctx context.Context, matchID string) ([]ContestView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListContestsForMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	target, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	items, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list contests: %w", err)
	}

	started := target.Started(s.now().UTC())
	views := make([]ContestView, 0, len(items))
	for _, item := range items {
		views = append(views, ContestView{Contest: item, State: item.StateAt(started)})
	}

	return views, nil
}

func (s *ContestService) deriveState(ctx context.Context, item contest.Contest) (contest.State, error) {
	target, exists, err := s.matchRepo.GetByID(ctx, item.MatchID)
	if err != nil {
		return "", fmt.Errorf("get contest match: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: match=%s", ErrNotFound, item.MatchID)
	}

	return item.StateAt(target.Started(s.now().UTC())), nil
}
