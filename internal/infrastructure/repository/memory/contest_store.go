package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
)

// ContestStore performs admissions and settlements against the in-memory
// repositories. One mutex serializes the check-then-act sequences; concurrent
// ledger appends outside this lock only ever increase a balance, so a passed
// balance check cannot be invalidated mid-admission.
type ContestStore struct {
	mu       sync.Mutex
	contests *ContestRepository
	wallets  *WalletRepository
	idGen    idgen.Generator
	now      func() time.Time
}

func NewContestStore(contests *ContestRepository, wallets *WalletRepository, idGen idgen.Generator) *ContestStore {
	return &ContestStore{
		contests: contests,
		wallets:  wallets,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *ContestStore) Admit(ctx context.Context, contestID, userID, teamID string) (contest.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, exists, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, err
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("contest %s not found", contestID)
	}
	if target.Settled {
		return contest.Contest{}, contest.ErrContestClosed
	}

	for _, p := range target.Participants {
		if p.UserID == userID {
			return contest.Contest{}, contest.ErrAlreadyJoined
		}
	}
	if target.SpotsFilled >= target.TotalSpots {
		return contest.Contest{}, contest.ErrContestFull
	}

	balance, err := s.wallets.Balance(ctx, userID)
	if err != nil {
		return contest.Contest{}, err
	}
	if balance < target.EntryFee {
		return contest.Contest{}, contest.ErrInsufficientBalance
	}

	txID, err := s.idGen.NewID()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("generate transaction id: %w", err)
	}

	now := s.now().UTC()
	amount, err := wallet.SignedAmount(wallet.TypeEntryFee, target.EntryFee)
	if err != nil {
		return contest.Contest{}, err
	}

	if err := s.wallets.Append(ctx, wallet.Transaction{
		ID:        txID,
		UserID:    userID,
		Type:      wallet.TypeEntryFee,
		Amount:    amount,
		CreatedAt: now,
	}); err != nil {
		return contest.Contest{}, fmt.Errorf("append entry fee: %w", err)
	}

	s.contests.addParticipant(contestID, contest.Participant{
		UserID:   userID,
		TeamID:   teamID,
		JoinedAt: now,
	})

	admitted, _, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, err
	}

	return admitted, nil
}

func (s *ContestStore) Settle(ctx context.Context, contestID string, results []contest.SettlementResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, exists, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("contest %s not found", contestID)
	}
	if target.Settled {
		return nil
	}

	now := s.now().UTC()
	for _, result := range results {
		if result.Prize <= 0 {
			continue
		}

		txID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate transaction id: %w", err)
		}
		if err := s.wallets.Append(ctx, wallet.Transaction{
			ID:        txID,
			UserID:    result.UserID,
			Type:      wallet.TypeWinnings,
			Amount:    result.Prize,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("append winnings: %w", err)
		}
	}

	s.contests.markSettled(contestID, results)
	return nil
}
