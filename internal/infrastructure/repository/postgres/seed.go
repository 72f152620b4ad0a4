package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo fixtures into an empty database so a fresh
// deployment is playable immediately.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM matches`); err != nil {
		return fmt.Errorf("count matches for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range memory.SeedMatches() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (public_id, team1, team2, venue, starts_at, status)
VALUES (:public_id, :team1, :team2, :venue, :starts_at, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": m.ID,
			"team1":     m.Team1,
			"team2":     m.Team2,
			"venue":     m.Venue,
			"starts_at": m.StartsAt,
			"status":    string(m.Status),
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, name, team, position, credits)
VALUES (:public_id, :name, :team, :position, :credits)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": p.ID,
			"name":      p.Name,
			"team":      p.Team,
			"position":  string(p.Position),
			"credits":   p.Credits,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, c := range memory.SeedContests() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO contests (public_id, match_public_id, total_spots, spots_filled, entry_fee, prize_pool, settled)
VALUES (:public_id, :match_public_id, :total_spots, 0, :entry_fee, :prize_pool, FALSE)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":       c.ID,
			"match_public_id": c.MatchID,
			"total_spots":     c.TotalSpots,
			"entry_fee":       c.EntryFee,
			"prize_pool":      c.PrizePool,
		})
		if err != nil {
			return fmt.Errorf("bind seed contest %s query: %w", c.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed contest %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap seed: %w", err)
	}

	return nil
}
