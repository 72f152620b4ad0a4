package postgres

import (
	"database/sql"
	"time"
)

type contestTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	MatchPublicID string    `db:"match_public_id"`
	TotalSpots    int       `db:"total_spots"`
	SpotsFilled   int       `db:"spots_filled"`
	EntryFee      int64     `db:"entry_fee"`
	PrizePool     int64     `db:"prize_pool"`
	Settled       bool      `db:"settled"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type contestParticipantTableModel struct {
	ID              int64         `db:"id"`
	ContestPublicID string        `db:"contest_public_id"`
	UserID          string        `db:"user_id"`
	TeamPublicID    string        `db:"team_public_id"`
	Points          int64         `db:"points"`
	Rank            sql.NullInt64 `db:"rank"`
	JoinedAt        time.Time     `db:"joined_at"`
}
