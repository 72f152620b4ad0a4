package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	qb "github.com/pitchside/fantasy-cricket/internal/platform/querybuilder"
)

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select("*").From("contests").
		Where(qb.Eq("public_id", contestID)).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build get contest by id query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("get contest by id: %w", err)
	}

	item, err := r.attachParticipants(ctx, contestFromRow(row))
	if err != nil {
		return contest.Contest{}, false, err
	}

	return item, true, nil
}

func (r *ContestRepository) ListByMatch(ctx context.Context, matchID string) ([]contest.Contest, error) {
	query, args, err := qb.Select("*").From("contests").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contests by match query: %w", err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contests by match: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		item, err := r.attachParticipants(ctx, contestFromRow(row))
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *ContestRepository) ApplyPoints(ctx context.Context, contestID, userID string, points int64) error {
	query, args, err := qb.Update("contest_participants").
		Set("points", points).
		Where(
			qb.Eq("contest_public_id", contestID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build apply points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("apply points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply points rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s is not in contest %s", userID, contestID)
	}

	return nil
}

func (r *ContestRepository) attachParticipants(ctx context.Context, item contest.Contest) (contest.Contest, error) {
	query, args, err := qb.Select("*").From("contest_participants").
		Where(qb.Eq("contest_public_id", item.ID)).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []contestParticipantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return contest.Contest{}, fmt.Errorf("list participants: %w", err)
	}

	item.Participants = make([]contest.Participant, 0, len(rows))
	for _, row := range rows {
		item.Participants = append(item.Participants, contest.Participant{
			UserID:   row.UserID,
			TeamID:   row.TeamPublicID,
			Points:   row.Points,
			Rank:     nullIntToRank(row.Rank),
			JoinedAt: row.JoinedAt,
		})
	}

	return item, nil
}

func contestFromRow(row contestTableModel) contest.Contest {
	return contest.Contest{
		ID:          row.PublicID,
		MatchID:     row.MatchPublicID,
		TotalSpots:  row.TotalSpots,
		SpotsFilled: row.SpotsFilled,
		EntryFee:    row.EntryFee,
		PrizePool:   row.PrizePool,
		Settled:     row.Settled,
	}
}
