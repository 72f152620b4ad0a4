package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	qb "github.com/pitchside/fantasy-cricket/internal/platform/querybuilder"
)

type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Balance(ctx context.Context, userID string) (int64, error) {
	query, args, err := qb.Select("COALESCE(SUM(amount), 0)").From("wallet_transactions").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build balance query: %w", err)
	}

	var balance int64
	if err := r.db.GetContext(ctx, &balance, query, args...); err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}

	return balance, nil
}

func (r *WalletRepository) ListByUser(ctx context.Context, userID string) ([]wallet.Transaction, error) {
	query, args, err := qb.Select("*").From("wallet_transactions").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list transactions query: %w", err)
	}

	var rows []walletTransactionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]wallet.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, wallet.Transaction{
			ID:        row.PublicID,
			UserID:    row.UserID,
			Type:      wallet.Type(row.Type),
			Amount:    row.Amount,
			SessionID: row.SessionID.String,
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}

func (r *WalletRepository) Append(ctx context.Context, tx wallet.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertInto("wallet_transactions").
		Columns("public_id", "user_id", "type", "amount", "session_id", "created_at").
		Values(tx.ID, tx.UserID, string(tx.Type), tx.Amount, nullString(tx.SessionID), tx.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build append transaction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}

	return nil
}

func (r *WalletRepository) AppendDeposit(ctx context.Context, tx wallet.Transaction) (bool, error) {
	if err := tx.Validate(); err != nil {
		return false, err
	}

	query, args, err := qb.InsertInto("wallet_transactions").
		Columns("public_id", "user_id", "type", "amount", "session_id", "created_at").
		Values(tx.ID, tx.UserID, string(tx.Type), tx.Amount, nullString(tx.SessionID), tx.CreatedAt).
		Suffix("ON CONFLICT (session_id) WHERE session_id IS NOT NULL DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build append deposit query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("append deposit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("append deposit rows affected: %w", err)
	}

	return affected > 0, nil
}
