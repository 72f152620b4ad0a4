package wallet

import (
	"fmt"
	"time"
)

// Type classifies ledger entries. The sign of the stored amount follows the
// type: deposits and winnings are positive, entry fees negative.
type Type string

const (
	TypeDeposit  Type = "deposit"
	TypeEntryFee Type = "entry_fee"
	TypeWinnings Type = "winnings"
)

// Transaction is one immutable ledger entry. The ledger is append-only: a
// user's balance is always the fold over their transactions, never a stored
// counter.
type Transaction struct {
	ID        string
	UserID    string
	Type      Type
	Amount    int64
	SessionID string
	CreatedAt time.Time
}

// SignedAmount applies the type's sign to a non-negative magnitude.
func SignedAmount(t Type, magnitude int64) (int64, error) {
	if magnitude < 0 {
		return 0, fmt.Errorf("transaction magnitude cannot be negative: %d", magnitude)
	}
	switch t {
	case TypeEntryFee:
		return -magnitude, nil
	case TypeDeposit, TypeWinnings:
		return magnitude, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %s", t)
	}
}

func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("transaction user id is required")
	}
	switch t.Type {
	case TypeDeposit:
		if t.SessionID == "" {
			return fmt.Errorf("deposit transaction requires a session id")
		}
		if t.Amount <= 0 {
			return fmt.Errorf("deposit amount must be positive")
		}
	case TypeWinnings:
		if t.Amount <= 0 {
			return fmt.Errorf("winnings amount must be positive")
		}
	case TypeEntryFee:
		if t.Amount >= 0 {
			return fmt.Errorf("entry fee amount must be negative")
		}
	default:
		return fmt.Errorf("unknown transaction type: %s", t.Type)
	}

	return nil
}
