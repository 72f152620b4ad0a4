package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

const defaultPointsWorkers = 8

// RankedEntry is one leaderboard row. Rank is 1-based; rank 1 is the top
// scorer.
type RankedEntry struct {
	Rank   int
	UserID string
	TeamID string
	Points int64
}

// PlayerPointsUpdate is one raw per-player point value from the scoring feed.
type PlayerPointsUpdate struct {
	PlayerID string
	Points   int64
}

type LeaderboardService struct {
	matchRepo   match.Repository
	contestRepo contest.Repository
	teamRepo    fantasy.Repository
	workers     int
	logger      *logging.Logger
}

func NewLeaderboardService(
	matchRepo match.Repository,
	contestRepo contest.Repository,
	teamRepo fantasy.Repository,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		matchRepo:   matchRepo,
		contestRepo: contestRepo,
		teamRepo:    teamRepo,
		workers:     defaultPointsWorkers,
		logger:      logger,
	}
}

// Leaderboard projects the contest's current ranking. For settled contests the
// stored settlement snapshot wins; otherwise the ranking is recomputed on
// demand and never stored.
func (s *LeaderboardService) Leaderboard(ctx context.Context, contestID string) ([]RankedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	if item.Settled {
		return settledEntries(item.Participants), nil
	}

	return rankParticipants(item.Participants), nil
}

// ApplyMatchPoints folds a raw per-player scoring update into every contest of
// the match. Captain points count double and vice-captain points count 1.5x
// before summation; the stored participant points are therefore already
// weighted and ranking never re-weights them. Participants are processed
// through a bounded worker pool.
func (s *LeaderboardService) ApplyMatchPoints(ctx context.Context, matchID string, updates []PlayerPointsUpdate) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ApplyMatchPoints")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: player points are required", ErrInvalidInput)
	}

	_, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	pointsByPlayer := make(map[string]int64, len(updates))
	for _, update := range updates {
		playerID := strings.TrimSpace(update.PlayerID)
		if playerID == "" {
			return fmt.Errorf("%w: player id is required in points update", ErrInvalidInput)
		}
		pointsByPlayer[playerID] = update.Points
	}

	contests, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("list contests: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create points worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		applyErr error
	)

	recordErr := func(err error) {
		mu.Lock()
		if applyErr == nil {
			applyErr = err
		}
		mu.Unlock()
	}

	for _, c := range contests {
		if c.Settled {
			continue
		}
		for _, p := range c.Participants {
			contestID := c.ID
			participant := p

			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				if err := s.applyParticipantPoints(ctx, contestID, participant, pointsByPlayer); err != nil {
					recordErr(err)
				}
			})
			if submitErr != nil {
				wg.Done()
				recordErr(fmt.Errorf("submit points task: %w", submitErr))
			}
		}
	}
	wg.Wait()

	if applyErr != nil {
		return applyErr
	}

	s.logger.InfoContext(ctx, "match points applied",
		"match_id", matchID,
		"contest_count", len(contests),
		"player_count", len(pointsByPlayer),
	)

	return nil
}

func (s *LeaderboardService) applyParticipantPoints(
	ctx context.Context,
	contestID string,
	participant contest.Participant,
	pointsByPlayer map[string]int64,
) error {
	team, exists, err := s.teamRepo.GetByID(ctx, participant.TeamID)
	if err != nil {
		return fmt.Errorf("get team %s: %w", participant.TeamID, err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, participant.TeamID)
	}

	total := WeightedTeamPoints(team, pointsByPlayer)
	if err := s.contestRepo.ApplyPoints(ctx, contestID, participant.UserID, total); err != nil {
		return fmt.Errorf("apply points contest=%s user=%s: %w", contestID, participant.UserID, err)
	}

	return nil
}

// WeightedTeamPoints sums raw per-player points for a team, doubling the
// captain and multiplying the vice-captain by 1.5. The feed delivers whole
// points, so the vice-captain's half point rounds half up.
func WeightedTeamPoints(team fantasy.Team, pointsByPlayer map[string]int64) int64 {
	var total int64
	for _, playerID := range team.PlayerIDs {
		base := pointsByPlayer[playerID]
		switch playerID {
		case team.CaptainID:
			total += base * 2
		case team.ViceCaptainID:
			total += (base*3 + 1) / 2
		default:
			total += base
		}
	}

	return total
}

// rankParticipants orders by points descending, ties broken by earliest
// admission so repeated projections are deterministic.
func rankParticipants(participants []contest.Participant) []RankedEntry {
	ordered := append([]contest.Participant(nil), participants...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
	})

	entries := make([]RankedEntry, 0, len(ordered))
	for i, p := range ordered {
		entries = append(entries, RankedEntry{
			Rank:   i + 1,
			UserID: p.UserID,
			TeamID: p.TeamID,
			Points: p.Points,
		})
	}

	return entries
}

func settledEntries(participants []contest.Participant) []RankedEntry {
	ordered := append([]contest.Participant(nil), participants...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := rankOf(ordered[i]), rankOf(ordered[j])
		return ri < rj
	})

	entries := make([]RankedEntry, 0, len(ordered))
	for _, p := range ordered {
		entries = append(entries, RankedEntry{
			Rank:   rankOf(p),
			UserID: p.UserID,
			TeamID: p.TeamID,
			Points: p.Points,
		})
	}

	return entries
}

func rankOf(p contest.Participant) int {
	if p.Rank == nil {
		return 0
	}
	return *p.Rank
}
