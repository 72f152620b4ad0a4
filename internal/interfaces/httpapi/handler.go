package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

type Handler struct {
	matchService       *usecase.MatchService
	playerService      *usecase.PlayerService
	teamService        *usecase.TeamService
	contestService     *usecase.ContestService
	admissionService   *usecase.AdmissionService
	walletService      *usecase.WalletService
	leaderboardService *usecase.LeaderboardService
	settlementService  *usecase.SettlementService
	profileService     *usecase.ProfileService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	contestService *usecase.ContestService,
	admissionService *usecase.AdmissionService,
	walletService *usecase.WalletService,
	leaderboardService *usecase.LeaderboardService,
	settlementService *usecase.SettlementService,
	profileService *usecase.ProfileService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:       matchService,
		playerService:      playerService,
		teamService:        teamService,
		contestService:     contestService,
		admissionService:   admissionService,
		walletService:      walletService,
		leaderboardService: leaderboardService,
		settlementService:  settlementService,
		profileService:     profileService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
