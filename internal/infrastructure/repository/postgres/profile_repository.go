package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/domain/user"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (user.Profile, bool, error) {
	const query = `SELECT user_id, name, email, phone FROM user_profiles WHERE user_id = $1`

	var row struct {
		UserID string `db:"user_id"`
		Name   string `db:"name"`
		Email  string `db:"email"`
		Phone  string `db:"phone"`
	}
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return user.Profile{
		UserID: row.UserID,
		Name:   row.Name,
		Email:  row.Email,
		Phone:  row.Phone,
	}, true, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile user.Profile) error {
	const query = `
INSERT INTO user_profiles (user_id, name, email, phone, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
ON CONFLICT (user_id)
DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, profile.UserID, profile.Name, profile.Email, profile.Phone, time.Now().UTC()); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}
