package usecase

import (
	"testing"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
)

type leaderboardEnv struct {
	matchRepo   *memory.MatchRepository
	contestRepo *memory.ContestRepository
	teamRepo    *memory.TeamRepository
	walletRepo  *memory.WalletRepository
	store       *memory.ContestStore
	svc         *LeaderboardService
}

func newLeaderboardEnv() *leaderboardEnv {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	contestRepo := memory.NewContestRepository(memory.SeedContests())
	teamRepo := memory.NewTeamRepository()
	walletRepo := memory.NewWalletRepository()
	store := memory.NewContestStore(contestRepo, walletRepo, idgen.NewRandomGenerator())

	return &leaderboardEnv{
		matchRepo:   matchRepo,
		contestRepo: contestRepo,
		teamRepo:    teamRepo,
		walletRepo:  walletRepo,
		store:       store,
		svc:         NewLeaderboardService(matchRepo, contestRepo, teamRepo, nil),
	}
}

// enter funds the user, stores a team, and admits it into the contest.
func (e *leaderboardEnv) enter(t *testing.T, userID, contestID, captainID, viceCaptainID string) {
	t.Helper()

	_, err := e.walletRepo.AppendDeposit(t.Context(), wallet.Transaction{
		ID:        "seed-tx-" + userID + "-" + contestID,
		UserID:    userID,
		Type:      wallet.TypeDeposit,
		Amount:    1000,
		SessionID: "seed-session-" + userID + "-" + contestID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed balance failed: %v", err)
	}

	team := fantasy.Team{
		ID:            "team-" + userID,
		UserID:        userID,
		MatchID:       memory.MatchIDIndAus,
		PlayerIDs:     validRosterInput(userID).PlayerIDs,
		CaptainID:     captainID,
		ViceCaptainID: viceCaptainID,
		TotalCredits:  92,
		CreatedAt:     time.Now().UTC(),
	}
	if err := e.teamRepo.Create(t.Context(), team); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}

	if _, err := e.store.Admit(t.Context(), contestID, userID, team.ID); err != nil {
		t.Fatalf("admit %s failed: %v", userID, err)
	}
}

func uniformPoints(value int64) []PlayerPointsUpdate {
	updates := make([]PlayerPointsUpdate, 0, 11)
	for _, playerID := range validRosterInput("").PlayerIDs {
		updates = append(updates, PlayerPointsUpdate{PlayerID: playerID, Points: value})
	}
	return updates
}

func TestWeightedTeamPoints(t *testing.T) {
	team := fantasy.Team{
		PlayerIDs:     []string{"p1", "p2", "p3"},
		CaptainID:     "p1",
		ViceCaptainID: "p2",
	}
	points := map[string]int64{"p1": 10, "p2": 25, "p3": 7}

	// Captain doubles, vice-captain takes 1.5x with the half point rounded up.
	if got := WeightedTeamPoints(team, points); got != 20+38+7 {
		t.Fatalf("weighted points = %d, want 65", got)
	}
}

func TestWeightedTeamPoints_ViceCaptainRoundsHalfUp(t *testing.T) {
	team := fantasy.Team{
		PlayerIDs:     []string{"p1"},
		ViceCaptainID: "p1",
	}

	cases := []struct {
		base int64
		want int64
	}{
		{base: 10, want: 15},
		{base: 25, want: 38},
		{base: 1, want: 2},
		{base: 0, want: 0},
	}
	for _, tc := range cases {
		got := WeightedTeamPoints(team, map[string]int64{"p1": tc.base})
		if got != tc.want {
			t.Fatalf("weighted points for base %d = %d, want %d", tc.base, got, tc.want)
		}
	}
}

func TestLeaderboardService_ApplyMatchPoints_WeightsCaptaincy(t *testing.T) {
	env := newLeaderboardEnv()
	env.enter(t, "user-1", memory.ContestIDMega, "ind-bat-03", "aus-bowl-02")
	env.enter(t, "user-2", memory.ContestIDMega, "aus-bat-03", "ind-ar-02")

	updates := uniformPoints(10)
	for i := range updates {
		if updates[i].PlayerID == "ind-bat-03" {
			updates[i].Points = 30
		}
	}

	if err := env.svc.ApplyMatchPoints(t.Context(), memory.MatchIDIndAus, updates); err != nil {
		t.Fatalf("apply match points failed: %v", err)
	}

	entries, err := env.svc.Leaderboard(t.Context(), memory.ContestIDMega)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Base sum is 130; user-1 captains the 30-point player (+30) and
	// vice-captains a 10-point player (+5).
	if entries[0].UserID != "user-1" || entries[0].Points != 165 {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
	if entries[1].UserID != "user-2" || entries[1].Points != 145 {
		t.Fatalf("unexpected runner-up: %+v", entries[1])
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Fatalf("unexpected ranks: %d, %d", entries[0].Rank, entries[1].Rank)
	}
}

func TestLeaderboardService_Leaderboard_TieBreaksByJoinTime(t *testing.T) {
	env := newLeaderboardEnv()
	env.enter(t, "user-1", memory.ContestIDMega, "ind-bat-03", "aus-bowl-02")
	env.enter(t, "user-2", memory.ContestIDMega, "ind-bat-03", "aus-bowl-02")

	if err := env.svc.ApplyMatchPoints(t.Context(), memory.MatchIDIndAus, uniformPoints(10)); err != nil {
		t.Fatalf("apply match points failed: %v", err)
	}

	entries, err := env.svc.Leaderboard(t.Context(), memory.ContestIDMega)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}

	if entries[0].UserID != "user-1" {
		t.Fatalf("tie must go to the earlier entrant, got %s first", entries[0].UserID)
	}
	if entries[0].Points != entries[1].Points {
		t.Fatalf("expected a points tie, got %d and %d", entries[0].Points, entries[1].Points)
	}
}

func TestLeaderboardService_Leaderboard_SettledRanksAreFrozen(t *testing.T) {
	env := newLeaderboardEnv()
	env.enter(t, "user-1", memory.ContestIDHeadToHead, "ind-bat-03", "aus-bowl-02")
	env.enter(t, "user-2", memory.ContestIDHeadToHead, "ind-bat-03", "aus-bowl-02")

	err := env.store.Settle(t.Context(), memory.ContestIDHeadToHead, []contest.SettlementResult{
		{UserID: "user-2", TeamID: "team-user-2", Rank: 1, Prize: 45},
		{UserID: "user-1", TeamID: "team-user-1", Rank: 2},
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	entries, err := env.svc.Leaderboard(t.Context(), memory.ContestIDHeadToHead)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}

	if entries[0].UserID != "user-2" || entries[0].Rank != 1 {
		t.Fatalf("settled ranking must come from the stored snapshot, got %+v", entries[0])
	}
}

func TestLeaderboardService_ApplyMatchPoints_SkipsSettledContests(t *testing.T) {
	env := newLeaderboardEnv()
	env.enter(t, "user-1", memory.ContestIDHeadToHead, "ind-bat-03", "aus-bowl-02")

	err := env.store.Settle(t.Context(), memory.ContestIDHeadToHead, []contest.SettlementResult{
		{UserID: "user-1", TeamID: "team-user-1", Rank: 1, Prize: 45},
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	if err := env.svc.ApplyMatchPoints(t.Context(), memory.MatchIDIndAus, uniformPoints(10)); err != nil {
		t.Fatalf("apply match points failed: %v", err)
	}

	item, _, err := env.contestRepo.GetByID(t.Context(), memory.ContestIDHeadToHead)
	if err != nil {
		t.Fatalf("get contest failed: %v", err)
	}
	if item.Participants[0].Points != 0 {
		t.Fatalf("settled contest points must stay frozen, got %d", item.Participants[0].Points)
	}
}
