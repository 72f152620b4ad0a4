package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

// CreateTeamInput is the incoming payload for fantasy team creation.
type CreateTeamInput struct {
	UserID        string
	MatchID       string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

type TeamService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	teamRepo   fantasy.Repository
	rules      fantasy.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	teamRepo fantasy.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateTeam validates the roster server-side and persists an immutable team.
// A user gets one team per match; re-submission is rejected.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	if input.UserID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.CaptainID == "" || input.ViceCaptainID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: captain and vice-captain are required", ErrInvalidInput)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return fantasy.Team{}, err
	}

	target, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}

	now := s.now().UTC()
	if target.Started(now) {
		return fantasy.Team{}, fmt.Errorf("%w: match %s has already started", ErrInvalidInput, input.MatchID)
	}

	alreadyHasTeam, err := s.teamRepo.ExistsByUserAndMatch(ctx, input.UserID, input.MatchID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("check existing team: %w", err)
	}
	if alreadyHasTeam {
		return fantasy.Team{}, fmt.Errorf("%w: team already exists for match %s", ErrInvalidInput, input.MatchID)
	}

	picks, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get players by ids: %w", err)
	}
	if len(picks) != len(playerIDs) {
		return fantasy.Team{}, fmt.Errorf("%w: some players do not exist", ErrInvalidInput)
	}

	if err := fantasy.ValidateRoster(picks, input.CaptainID, input.ViceCaptainID, s.rules); err != nil {
		return fantasy.Team{}, fmt.Errorf("validate roster: %w", err)
	}

	var totalCredits int64
	for _, pick := range picks {
		totalCredits += pick.Credits
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	team := fantasy.Team{
		ID:            teamID,
		UserID:        input.UserID,
		MatchID:       input.MatchID,
		PlayerIDs:     playerIDs,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		TotalCredits:  totalCredits,
		CreatedAt:     now,
	}

	if err := team.ValidateBasic(); err != nil {
		return fantasy.Team{}, fmt.Errorf("validate team: %w", err)
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return fantasy.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "fantasy team created",
		"user_id", input.UserID,
		"match_id", input.MatchID,
		"team_id", team.ID,
		"total_credits", totalCredits,
	)

	return team, nil
}

func (s *TeamService) ListMyTeams(ctx context.Context, userID string) ([]fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListMyTeams")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
