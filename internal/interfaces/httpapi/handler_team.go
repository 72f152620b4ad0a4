package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createTeamRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		UserID:        principal.UserID,
		MatchID:       req.MatchID,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(team))
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teams, err := h.teamService.ListMyTeams(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type createTeamRequest struct {
	MatchID       string   `json:"match_id" validate:"required"`
	PlayerIDs     []string `json:"player_ids" validate:"required,len=11,dive,required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
	ViceCaptainID string   `json:"vice_captain_id" validate:"required"`
}

type teamDTO struct {
	ID            string    `json:"id"`
	MatchID       string    `json:"matchId"`
	PlayerIDs     []string  `json:"playerIds"`
	CaptainID     string    `json:"captainId"`
	ViceCaptainID string    `json:"viceCaptainId"`
	TotalCredits  int64     `json:"totalCredits"`
	CreatedAt     time.Time `json:"createdAt"`
}

func teamToDTO(t fantasy.Team) teamDTO {
	return teamDTO{
		ID:            t.ID,
		MatchID:       t.MatchID,
		PlayerIDs:     t.PlayerIDs,
		CaptainID:     t.CaptainID,
		ViceCaptainID: t.ViceCaptainID,
		TotalCredits:  t.TotalCredits,
		CreatedAt:     t.CreatedAt,
	}
}
