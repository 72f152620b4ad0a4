package usecase

import (
	"errors"
	"testing"

	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
)

func newTeamService(teamRepo *memory.TeamRepository) *TeamService {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())

	return NewTeamService(matchRepo, playerRepo, teamRepo, fantasy.DefaultRules(), idgen.NewRandomGenerator(), nil)
}

func validRosterInput(userID string) CreateTeamInput {
	return CreateTeamInput{
		UserID:  userID,
		MatchID: memory.MatchIDIndAus,
		PlayerIDs: []string{
			"aus-wk-01",
			"ind-bat-03", "ind-bat-04", "aus-bat-03", "aus-bat-04",
			"ind-ar-02", "aus-ar-02",
			"ind-bowl-02", "ind-bowl-03", "aus-bowl-02", "aus-bowl-03",
		},
		CaptainID:     "ind-bat-03",
		ViceCaptainID: "aus-bowl-02",
	}
}

func TestTeamService_CreateTeam_ValidRoster(t *testing.T) {
	teamRepo := memory.NewTeamRepository()
	svc := newTeamService(teamRepo)

	team, err := svc.CreateTeam(t.Context(), validRosterInput("user-1"))
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if team.ID == "" {
		t.Fatal("expected team id to be assigned")
	}
	if team.TotalCredits != 92 {
		t.Fatalf("unexpected total credits: %d", team.TotalCredits)
	}

	teams, err := svc.ListMyTeams(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}
}

func TestTeamService_CreateTeam_RejectBudgetExceeded(t *testing.T) {
	svc := newTeamService(memory.NewTeamRepository())

	input := validRosterInput("user-1")
	input.PlayerIDs = []string{
		"ind-wk-01",
		"ind-bat-01", "ind-bat-02", "aus-bat-01", "aus-bat-02",
		"ind-ar-01", "aus-ar-01",
		"ind-bowl-01", "aus-bowl-01", "aus-bowl-02", "ind-bowl-02",
	}
	input.CaptainID = "ind-bat-01"
	input.ViceCaptainID = "ind-bowl-01"

	_, err := svc.CreateTeam(t.Context(), input)
	if !errors.Is(err, fantasy.ErrExceededBudget) {
		t.Fatalf("expected ErrExceededBudget, got %v", err)
	}
}

func TestTeamService_CreateTeam_RejectSecondTeamForMatch(t *testing.T) {
	svc := newTeamService(memory.NewTeamRepository())

	if _, err := svc.CreateTeam(t.Context(), validRosterInput("user-1")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateTeam(t.Context(), validRosterInput("user-1"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_CreateTeam_RejectStartedMatch(t *testing.T) {
	svc := newTeamService(memory.NewTeamRepository())

	input := validRosterInput("user-1")
	input.MatchID = memory.MatchIDEngSa

	_, err := svc.CreateTeam(t.Context(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_CreateTeam_RejectUnknownPlayer(t *testing.T) {
	svc := newTeamService(memory.NewTeamRepository())

	input := validRosterInput("user-1")
	input.PlayerIDs[0] = "ind-wk-99"

	_, err := svc.CreateTeam(t.Context(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_CreateTeam_RejectCaptainOutsideRoster(t *testing.T) {
	svc := newTeamService(memory.NewTeamRepository())

	input := validRosterInput("user-1")
	input.CaptainID = "ind-bat-01"

	_, err := svc.CreateTeam(t.Context(), input)
	if !errors.Is(err, fantasy.ErrCaptainNotInRoster) {
		t.Fatalf("expected ErrCaptainNotInRoster, got %v", err)
	}
}
