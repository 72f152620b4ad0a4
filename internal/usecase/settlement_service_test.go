package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
)

type settlementEnv struct {
	matchRepo   *memory.MatchRepository
	contestRepo *memory.ContestRepository
	walletRepo  *memory.WalletRepository
	store       *memory.ContestStore
	svc         *SettlementService
}

func newSettlementEnv(contests []contest.Contest) *settlementEnv {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	contestRepo := memory.NewContestRepository(contests)
	walletRepo := memory.NewWalletRepository()
	store := memory.NewContestStore(contestRepo, walletRepo, idgen.NewRandomGenerator())

	return &settlementEnv{
		matchRepo:   matchRepo,
		contestRepo: contestRepo,
		walletRepo:  walletRepo,
		store:       store,
		svc:         NewSettlementService(matchRepo, contestRepo, store, nil),
	}
}

func (e *settlementEnv) admitWithPoints(t *testing.T, contestID, userID string, points int64) {
	t.Helper()

	_, err := e.walletRepo.AppendDeposit(t.Context(), wallet.Transaction{
		ID:        "seed-tx-" + userID,
		UserID:    userID,
		Type:      wallet.TypeDeposit,
		Amount:    20,
		SessionID: "seed-session-" + userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed balance failed: %v", err)
	}

	if _, err := e.store.Admit(t.Context(), contestID, userID, "team-"+userID); err != nil {
		t.Fatalf("admit %s failed: %v", userID, err)
	}
	if err := e.contestRepo.ApplyPoints(t.Context(), contestID, userID, points); err != nil {
		t.Fatalf("apply points failed: %v", err)
	}
}

func TestSettlementService_SettleMatch_PaysPrizesOnce(t *testing.T) {
	env := newSettlementEnv([]contest.Contest{{
		ID:         "contest-final",
		MatchID:    memory.MatchIDNzPak,
		TotalSpots: 3,
		EntryFee:   10,
		PrizePool:  100,
	}})

	env.admitWithPoints(t, "contest-final", "user-1", 50)
	env.admitWithPoints(t, "contest-final", "user-2", 80)
	env.admitWithPoints(t, "contest-final", "user-3", 20)

	if err := env.svc.SettleMatch(t.Context(), memory.MatchIDNzPak); err != nil {
		t.Fatalf("settle match failed: %v", err)
	}

	item, _, err := env.contestRepo.GetByID(t.Context(), "contest-final")
	if err != nil {
		t.Fatalf("get contest failed: %v", err)
	}
	if !item.Settled {
		t.Fatal("contest must be marked settled")
	}

	wantRanks := map[string]int{"user-2": 1, "user-1": 2, "user-3": 3}
	for _, p := range item.Participants {
		if p.Rank == nil {
			t.Fatalf("participant %s has no rank", p.UserID)
		}
		if *p.Rank != wantRanks[p.UserID] {
			t.Fatalf("participant %s rank = %d, want %d", p.UserID, *p.Rank, wantRanks[p.UserID])
		}
	}

	// Pool 100 splits 50/30/20. Everyone deposited 20 and paid a 10 fee.
	wantBalances := map[string]int64{"user-2": 60, "user-1": 40, "user-3": 30}
	for userID, want := range wantBalances {
		balance, err := env.walletRepo.Balance(t.Context(), userID)
		if err != nil {
			t.Fatalf("balance for %s failed: %v", userID, err)
		}
		if balance != want {
			t.Fatalf("balance for %s is %d, want %d", userID, balance, want)
		}
	}

	// Replay pays nothing twice.
	if err := env.svc.SettleMatch(t.Context(), memory.MatchIDNzPak); err != nil {
		t.Fatalf("replayed settle failed: %v", err)
	}
	for userID, want := range wantBalances {
		balance, err := env.walletRepo.Balance(t.Context(), userID)
		if err != nil {
			t.Fatalf("balance for %s failed: %v", userID, err)
		}
		if balance != want {
			t.Fatalf("replay changed balance for %s: %d, want %d", userID, balance, want)
		}
	}
}

func TestSettlementService_SettleMatch_RejectUnfinishedMatch(t *testing.T) {
	env := newSettlementEnv(memory.SeedContests())

	err := env.svc.SettleMatch(t.Context(), memory.MatchIDIndAus)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSettlementService_SettleMatch_UnknownMatch(t *testing.T) {
	env := newSettlementEnv(nil)

	err := env.svc.SettleMatch(t.Context(), "t20-unknown")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
