package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	qb "github.com/pitchside/fantasy-cricket/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (fantasy.Team, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return fantasy.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	team, err := r.attachPicks(ctx, teamFromRow(row))
	if err != nil {
		return fantasy.Team{}, false, err
	}

	return team, true, nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]fantasy.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by user query: %w", err)
	}

	var rows []fantasyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by user: %w", err)
	}

	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		team, err := r.attachPicks(ctx, teamFromRow(row))
		if err != nil {
			return nil, err
		}
		out = append(out, team)
	}

	return out, nil
}

func (r *TeamRepository) ExistsByUserAndMatch(ctx context.Context, userID, matchID string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("fantasy_teams").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build team exists query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check team exists: %w", err)
	}

	return count > 0, nil
}

func (r *TeamRepository) Create(ctx context.Context, team fantasy.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	teamQuery, teamArgs, err := qb.InsertInto("fantasy_teams").
		Columns("public_id", "user_id", "match_public_id", "captain_public_id", "vice_captain_public_id", "total_credits", "created_at").
		Values(team.ID, team.UserID, team.MatchID, team.CaptainID, team.ViceCaptainID, team.TotalCredits, team.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, teamQuery, teamArgs...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	picks := qb.InsertInto("fantasy_team_picks").
		Columns("team_public_id", "player_public_id")
	for _, playerID := range team.PlayerIDs {
		picks.Values(team.ID, playerID)
	}
	picksQuery, picksArgs, err := picks.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, picksQuery, picksArgs...); err != nil {
		return fmt.Errorf("insert team picks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team create: %w", err)
	}

	return nil
}

func (r *TeamRepository) attachPicks(ctx context.Context, team fantasy.Team) (fantasy.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_team_picks").
		Where(qb.Eq("team_public_id", team.ID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("build list team picks query: %w", err)
	}

	var rows []fantasyTeamPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fantasy.Team{}, fmt.Errorf("list team picks: %w", err)
	}

	team.PlayerIDs = make([]string, 0, len(rows))
	for _, row := range rows {
		team.PlayerIDs = append(team.PlayerIDs, row.PlayerPublicID)
	}

	return team, nil
}

func teamFromRow(row fantasyTeamTableModel) fantasy.Team {
	return fantasy.Team{
		ID:            row.PublicID,
		UserID:        row.UserID,
		MatchID:       row.MatchPublicID,
		CaptainID:     row.CaptainPublicID,
		ViceCaptainID: row.ViceCaptainPublicID,
		TotalCredits:  row.TotalCredits,
		CreatedAt:     row.CreatedAt,
	}
}
