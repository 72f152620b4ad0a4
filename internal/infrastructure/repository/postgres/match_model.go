package postgres

import "time"

type matchTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Team1     string    `db:"team1"`
	Team2     string    `db:"team2"`
	Venue     string    `db:"venue"`
	StartsAt  time.Time `db:"starts_at"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
