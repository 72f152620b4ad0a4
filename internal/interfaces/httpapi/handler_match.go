package httpapi

import (
	"net/http"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.matchService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ListContestsByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContestsByMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	views, err := h.contestService.ListContestsForMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list contests failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestDTO, 0, len(views))
	for _, v := range views {
		items = append(items, contestViewToDTO(v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type matchDTO struct {
	ID       string    `json:"id"`
	Team1    string    `json:"team1"`
	Team2    string    `json:"team2"`
	Venue    string    `json:"venue,omitempty"`
	StartsAt time.Time `json:"startsAt"`
	Status   string    `json:"status"`
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Credits  int64  `json:"credits"`
}

type contestDTO struct {
	ID          string `json:"id"`
	MatchID     string `json:"matchId"`
	TotalSpots  int    `json:"totalSpots"`
	SpotsFilled int    `json:"spotsFilled"`
	EntryFee    int64  `json:"entryFee"`
	PrizePool   int64  `json:"prizePool"`
	State       string `json:"state"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:       m.ID,
		Team1:    m.Team1,
		Team2:    m.Team2,
		Venue:    m.Venue,
		StartsAt: m.StartsAt,
		Status:   string(m.Status),
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		Name:     p.Name,
		Team:     p.Team,
		Position: string(p.Position),
		Credits:  p.Credits,
	}
}

func contestViewToDTO(v usecase.ContestView) contestDTO {
	return contestDTO{
		ID:          v.Contest.ID,
		MatchID:     v.Contest.MatchID,
		TotalSpots:  v.Contest.TotalSpots,
		SpotsFilled: v.Contest.SpotsFilled,
		EntryFee:    v.Contest.EntryFee,
		PrizePool:   v.Contest.PrizePool,
		State:       string(v.State),
	}
}
