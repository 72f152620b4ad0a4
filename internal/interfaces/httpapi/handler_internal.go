package httpapi

import (
	"net/http"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

// Internal job endpoints are called by the scoring and operations pipelines,
// never by end users. They are gated by RequireInternalJobToken.

func (h *Handler) ApplyMatchPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyMatchPoints")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req applyMatchPointsRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updates := make([]usecase.PlayerPointsUpdate, 0, len(req.Points))
	for _, p := range req.Points {
		updates = append(updates, usecase.PlayerPointsUpdate{
			PlayerID: p.PlayerID,
			Points:   p.Points,
		})
	}

	if err := h.leaderboardService.ApplyMatchPoints(ctx, matchID, updates); err != nil {
		h.logger.ErrorContext(ctx, "apply match points failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match points applied", "match_id", matchID, "players", len(updates))
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"matchId": matchID,
		"players": len(updates),
	})
}

func (h *Handler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchStatus")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req updateMatchStatusRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.UpdateMatchStatus(ctx, matchID, match.Status(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "update match status failed", "match_id", matchID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match status updated", "match_id", matchID, "status", req.Status)
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) SettleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettleMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.settlementService.SettleMatch(ctx, matchID); err != nil {
		h.logger.ErrorContext(ctx, "settle match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match settled", "match_id", matchID)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"matchId": matchID,
		"status":  "settled",
	})
}

type applyMatchPointsRequest struct {
	Points []playerPointsDTO `json:"points" validate:"required,min=1,dive"`
}

type playerPointsDTO struct {
	PlayerID string `json:"player_id" validate:"required"`
	Points   int64  `json:"points"`
}

type updateMatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=upcoming live completed"`
}
