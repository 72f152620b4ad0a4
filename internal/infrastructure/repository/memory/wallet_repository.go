package memory

import (
	"context"
	"sync"

	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
)

type WalletRepository struct {
	mu        sync.RWMutex
	items     []wallet.Transaction
	bySession map[string]struct{}
}

func NewWalletRepository() *WalletRepository {
	return &WalletRepository{bySession: make(map[string]struct{})}
}

func (r *WalletRepository) Balance(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var balance int64
	for _, tx := range r.items {
		if tx.UserID == userID {
			balance += tx.Amount
		}
	}

	return balance, nil
}

func (r *WalletRepository) ListByUser(_ context.Context, userID string) ([]wallet.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wallet.Transaction, 0, 8)
	// Newest first, matching the statement view users expect.
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}

	return out, nil
}

func (r *WalletRepository) Append(_ context.Context, tx wallet.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, tx)
	return nil
}

func (r *WalletRepository) AppendDeposit(_ context.Context, tx wallet.Transaction) (bool, error) {
	if err := tx.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySession[tx.SessionID]; ok {
		return false, nil
	}

	r.bySession[tx.SessionID] = struct{}{}
	r.items = append(r.items, tx)
	return true, nil
}
