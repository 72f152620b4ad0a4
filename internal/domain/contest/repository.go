package contest

import "context"

// Repository describes contest persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Contest, error)
	ApplyPoints(ctx context.Context, contestID, userID string, points int64) error
}

// AdmissionStore owns the one genuine race in the system: the capacity
// check-and-increment plus the wallet debit. Admit re-checks every
// precondition and performs the three writes (increment spots, append
// entry_fee transaction, insert participant) as a single atomic unit,
// serialized per contest and per user wallet. On any rejection no state
// changes and one of the sentinel errors above is returned.
type AdmissionStore interface {
	Admit(ctx context.Context, contestID, userID, teamID string) (Contest, error)
}

// SettlementResult is one participant's final standing.
type SettlementResult struct {
	UserID string
	TeamID string
	Rank   int
	Prize  int64
}

// SettlementStore finalizes a contest: ranks become immutable and winnings
// transactions are appended, all in one unit. Settling an already settled
// contest is a no-op.
type SettlementStore interface {
	Settle(ctx context.Context, contestID string, results []SettlementResult) error
}
