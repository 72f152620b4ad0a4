package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	qb "github.com/pitchside/fantasy-cricket/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, matchID string, status match.Status) error {
	query, args, err := qb.Update("matches").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match status rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s not found", matchID)
	}

	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:       row.PublicID,
		Team1:    row.Team1,
		Team2:    row.Team2,
		Venue:    row.Venue,
		StartsAt: row.StartsAt,
		Status:   match.Status(row.Status),
	}
}
