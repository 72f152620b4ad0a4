package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	contestID := r.PathValue("contestID")
	view, err := h.contestService.GetContest(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestViewToDTO(view))
}

func (h *Handler) JoinContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinContest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	contestID := r.PathValue("contestID")
	var req joinContestRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	joined, err := h.admissionService.JoinContest(ctx, principal.UserID, contestID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "join contest failed",
			"user_id", principal.UserID,
			"contest_id", contestID,
			"team_id", req.TeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinContestResponse{
		ContestID:   joined.ID,
		TeamID:      req.TeamID,
		SpotsFilled: joined.SpotsFilled,
		TotalSpots:  joined.TotalSpots,
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	contestID := r.PathValue("contestID")
	entries, err := h.leaderboardService.Leaderboard(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, leaderboardEntryDTO{
			Rank:   e.Rank,
			UserID: e.UserID,
			TeamID: e.TeamID,
			Points: e.Points,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type joinContestRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type joinContestResponse struct {
	ContestID   string `json:"contestId"`
	TeamID      string `json:"teamId"`
	SpotsFilled int    `json:"spotsFilled"`
	TotalSpots  int    `json:"totalSpots"`
}

type leaderboardEntryDTO struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	TeamID string `json:"teamId"`
	Points int64  `json:"points"`
}
