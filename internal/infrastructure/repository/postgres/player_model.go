package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Team      string    `db:"team"`
	Position  string    `db:"position"`
	Credits   int64     `db:"credits"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
