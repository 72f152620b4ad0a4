package postgres

import "time"

type fantasyTeamTableModel struct {
	ID                  int64     `db:"id"`
	PublicID            string    `db:"public_id"`
	UserID              string    `db:"user_id"`
	MatchPublicID       string    `db:"match_public_id"`
	CaptainPublicID     string    `db:"captain_public_id"`
	ViceCaptainPublicID string    `db:"vice_captain_public_id"`
	TotalCredits        int64     `db:"total_credits"`
	CreatedAt           time.Time `db:"created_at"`
}

type fantasyTeamPickTableModel struct {
	ID             int64  `db:"id"`
	TeamPublicID   string `db:"team_public_id"`
	PlayerPublicID string `db:"player_public_id"`
}
