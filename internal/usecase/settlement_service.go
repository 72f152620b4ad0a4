package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// prizeShares is the payout split across the top finishers, in percent.
// Remainder from integer division stays with the house.
var prizeShares = []int64{50, 30, 20}

type SettlementService struct {
	matchRepo   match.Repository
	contestRepo contest.Repository
	store       contest.SettlementStore
	logger      *logging.Logger
}

func NewSettlementService(
	matchRepo match.Repository,
	contestRepo contest.Repository,
	store contest.SettlementStore,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SettlementService{
		matchRepo:   matchRepo,
		contestRepo: contestRepo,
		store:       store,
		logger:      logger,
	}
}

// SettleMatch finalizes every contest of a completed match: ranks become
// immutable and winnings are appended to the ledger. Already settled contests
// are skipped, so the operation is safe to re-run.
func (s *SettlementService) SettleMatch(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	fixture, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if fixture.Status != match.StatusCompleted {
		return fmt.Errorf("%w: match %s is not completed", ErrInvalidInput, matchID)
	}

	contests, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("list contests: %w", err)
	}

	p := pool.New().WithErrors().WithContext(ctx)
	settled := 0
	for _, c := range contests {
		if c.Settled {
			continue
		}
		settled++
		item := c
		p.Go(func(ctx context.Context) error {
			return s.settleContest(ctx, item)
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("settle match %s: %w", matchID, err)
	}

	s.logger.InfoContext(ctx, "match settled",
		"match_id", matchID,
		"contest_count", settled,
	)

	return nil
}

func (s *SettlementService) settleContest(ctx context.Context, item contest.Contest) error {
	ranking := rankParticipants(item.Participants)

	results := make([]contest.SettlementResult, 0, len(ranking))
	for _, entry := range ranking {
		results = append(results, contest.SettlementResult{
			UserID: entry.UserID,
			TeamID: entry.TeamID,
			Rank:   entry.Rank,
			Prize:  prizeFor(entry.Rank, item.PrizePool),
		})
	}

	if err := s.store.Settle(ctx, item.ID, results); err != nil {
		return fmt.Errorf("settle contest %s: %w", item.ID, err)
	}

	return nil
}

func prizeFor(rank int, prizePool int64) int64 {
	if rank < 1 || rank > len(prizeShares) {
		return 0
	}
	return prizePool * prizeShares[rank-1] / 100
}
