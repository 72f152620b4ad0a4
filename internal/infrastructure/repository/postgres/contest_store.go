package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
)

const pqUniqueViolation = "23505"

// ContestStore runs admissions and settlements in single transactions. The
// contest row lock serializes per contest; the advisory lock on the user id
// serializes per wallet, so two admissions spending the same balance cannot
// interleave even across different contests.
type ContestStore struct {
	db       *sqlx.DB
	contests *ContestRepository
	idGen    idgen.Generator
}

func NewContestStore(db *sqlx.DB, contests *ContestRepository, idGen idgen.Generator) *ContestStore {
	return &ContestStore{
		db:       db,
		contests: contests,
		idGen:    idGen,
	}
}

func (s *ContestStore) Admit(ctx context.Context, contestID, userID, teamID string) (contest.Contest, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("begin admission tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return contest.Contest{}, fmt.Errorf("lock wallet: %w", err)
	}

	var row contestTableModel
	if err := tx.GetContext(ctx, &row, `SELECT * FROM contests WHERE public_id = $1 FOR UPDATE`, contestID); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, fmt.Errorf("contest %s not found", contestID)
		}
		return contest.Contest{}, fmt.Errorf("lock contest: %w", err)
	}
	if row.Settled {
		return contest.Contest{}, contest.ErrContestClosed
	}

	// A repeat join is AlreadyJoined no matter how full the contest is or what
	// the wallet holds; the unique constraint below stays as the backstop.
	var joined bool
	const joinedQuery = `SELECT EXISTS (
SELECT 1 FROM contest_participants WHERE contest_public_id = $1 AND user_id = $2)`
	if err := tx.GetContext(ctx, &joined, joinedQuery, contestID, userID); err != nil {
		return contest.Contest{}, fmt.Errorf("check participant: %w", err)
	}
	if joined {
		return contest.Contest{}, contest.ErrAlreadyJoined
	}

	if row.SpotsFilled >= row.TotalSpots {
		return contest.Contest{}, contest.ErrContestFull
	}

	var balance int64
	const balanceQuery = `SELECT COALESCE(SUM(amount), 0) FROM wallet_transactions WHERE user_id = $1`
	if err := tx.GetContext(ctx, &balance, balanceQuery, userID); err != nil {
		return contest.Contest{}, fmt.Errorf("read wallet balance: %w", err)
	}
	if balance < row.EntryFee {
		return contest.Contest{}, contest.ErrInsufficientBalance
	}

	const insertParticipantQuery = `
INSERT INTO contest_participants (contest_public_id, user_id, team_public_id, points, joined_at)
VALUES ($1, $2, $3, 0, NOW())`
	if _, err := tx.ExecContext(ctx, insertParticipantQuery, contestID, userID, teamID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return contest.Contest{}, contest.ErrAlreadyJoined
		}
		return contest.Contest{}, fmt.Errorf("insert participant: %w", err)
	}

	amount, err := wallet.SignedAmount(wallet.TypeEntryFee, row.EntryFee)
	if err != nil {
		return contest.Contest{}, err
	}
	txID, err := s.idGen.NewID()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("generate transaction id: %w", err)
	}

	const insertFeeQuery = `
INSERT INTO wallet_transactions (public_id, user_id, type, amount, created_at)
VALUES ($1, $2, $3, $4, NOW())`
	if _, err := tx.ExecContext(ctx, insertFeeQuery, txID, userID, wallet.TypeEntryFee, amount); err != nil {
		return contest.Contest{}, fmt.Errorf("insert entry fee: %w", err)
	}

	const bumpSpotsQuery = `UPDATE contests SET spots_filled = spots_filled + 1, updated_at = NOW() WHERE public_id = $1`
	if _, err := tx.ExecContext(ctx, bumpSpotsQuery, contestID); err != nil {
		return contest.Contest{}, fmt.Errorf("increment spots filled: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return contest.Contest{}, fmt.Errorf("commit admission: %w", err)
	}

	admitted, _, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, err
	}

	return admitted, nil
}

func (s *ContestStore) Settle(ctx context.Context, contestID string, results []contest.SettlementResult) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settlement tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row contestTableModel
	if err := tx.GetContext(ctx, &row, `SELECT * FROM contests WHERE public_id = $1 FOR UPDATE`, contestID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("contest %s not found", contestID)
		}
		return fmt.Errorf("lock contest: %w", err)
	}
	if row.Settled {
		return nil
	}

	const rankQuery = `
UPDATE contest_participants SET rank = $3
WHERE contest_public_id = $1 AND user_id = $2`
	const winningsQuery = `
INSERT INTO wallet_transactions (public_id, user_id, type, amount, created_at)
VALUES ($1, $2, $3, $4, NOW())`

	for _, result := range results {
		if _, err := tx.ExecContext(ctx, rankQuery, contestID, result.UserID, result.Rank); err != nil {
			return fmt.Errorf("store rank for %s: %w", result.UserID, err)
		}
		if result.Prize <= 0 {
			continue
		}

		txID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate transaction id: %w", err)
		}
		if _, err := tx.ExecContext(ctx, winningsQuery, txID, result.UserID, wallet.TypeWinnings, result.Prize); err != nil {
			return fmt.Errorf("insert winnings for %s: %w", result.UserID, err)
		}
	}

	const settleQuery = `UPDATE contests SET settled = TRUE, updated_at = NOW() WHERE public_id = $1`
	if _, err := tx.ExecContext(ctx, settleQuery, contestID); err != nil {
		return fmt.Errorf("mark contest settled: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement: %w", err)
	}

	return nil
}
