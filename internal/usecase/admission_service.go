package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

// AdmissionService decides contest entry. The decision is bounded and
// synchronous: a full contest fails fast, nothing queues, and admission is
// final once granted.
type AdmissionService struct {
	matchRepo   match.Repository
	contestRepo contest.Repository
	teamRepo    fantasy.Repository
	store       contest.AdmissionStore
	logger      *logging.Logger
	now         func() time.Time
}

func NewAdmissionService(
	matchRepo match.Repository,
	contestRepo contest.Repository,
	teamRepo fantasy.Repository,
	store contest.AdmissionStore,
	logger *logging.Logger,
) *AdmissionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AdmissionService{
		matchRepo:   matchRepo,
		contestRepo: contestRepo,
		teamRepo:    teamRepo,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// JoinContest admits the user into the contest with the given team.
//
// Teams and the contest's match binding are immutable, so ownership and match
// checks run outside the atomic unit. Capacity, balance, and the
// one-entry-per-user rule are re-checked inside AdmissionStore.Admit, which
// serializes the check-then-act sequence per contest and per wallet: two
// concurrent joins can never both consume the last spot or double-spend the
// same balance.
func (s *AdmissionService) JoinContest(ctx context.Context, userID, contestID, teamID string) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdmissionService.JoinContest")
	defer span.End()

	userID = strings.TrimSpace(userID)
	contestID = strings.TrimSpace(contestID)
	teamID = strings.TrimSpace(teamID)

	if userID == "" {
		return contest.Contest{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if contestID == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return contest.Contest{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	target, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}
	if target.Settled {
		return contest.Contest{}, fmt.Errorf("%w: contest %s is settled", contest.ErrContestClosed, contestID)
	}

	fixture, exists, err := s.matchRepo.GetByID(ctx, target.MatchID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest match: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: match=%s", ErrNotFound, target.MatchID)
	}
	if fixture.Started(s.now().UTC()) {
		return contest.Contest{}, fmt.Errorf("%w: match %s has started", contest.ErrContestClosed, target.MatchID)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if team.UserID != userID {
		return contest.Contest{}, fmt.Errorf("%w: team %s is not owned by caller", contest.ErrTeamMismatch, teamID)
	}
	if team.MatchID != target.MatchID {
		return contest.Contest{}, fmt.Errorf("%w: team targets match %s, contest targets %s", contest.ErrTeamMismatch, team.MatchID, target.MatchID)
	}

	admitted, err := s.store.Admit(ctx, contestID, userID, teamID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("admit user=%s contest=%s: %w", userID, contestID, err)
	}

	s.logger.InfoContext(ctx, "contest admission granted",
		"user_id", userID,
		"contest_id", contestID,
		"team_id", teamID,
		"spots_filled", admitted.SpotsFilled,
		"total_spots", admitted.TotalSpots,
	)

	return admitted, nil
}
