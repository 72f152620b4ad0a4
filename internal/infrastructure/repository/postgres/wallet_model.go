package postgres

import (
	"database/sql"
	"time"
)

type walletTransactionTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	UserID    string         `db:"user_id"`
	Type      string         `db:"type"`
	Amount    int64          `db:"amount"`
	SessionID sql.NullString `db:"session_id"`
	CreatedAt time.Time      `db:"created_at"`
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
