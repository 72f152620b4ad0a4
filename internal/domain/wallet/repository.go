package wallet

import "context"

// Repository describes ledger persistence needs from use cases. Entry fee
// debits never go through Append, they belong to the contest AdmissionStore
// so the debit shares the admission's atomic unit.
type Repository interface {
	// Balance folds the user's transactions; implementations must read
	// authoritative state, not a cache.
	Balance(ctx context.Context, userID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	// Append adds one immutable record (deposits, winnings).
	Append(ctx context.Context, tx Transaction) error
	// AppendDeposit is Append with idempotency on the payment session id.
	// It reports false when the session was already reconciled.
	AppendDeposit(ctx context.Context, tx Transaction) (bool, error)
}
