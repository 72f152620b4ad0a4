package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/domain/user"
	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

const testJobToken = "job-token-secret"

type staticVerifier struct {
	principals map[string]user.Principal
}

func (v *staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

type noopGateway struct{}

func (noopGateway) CreateCheckoutSession(_ context.Context, input usecase.CheckoutSessionInput) (usecase.CheckoutSession, error) {
	return usecase.CheckoutSession{ID: "cs_test_" + input.UserID, URL: "https://checkout.test/cs"}, nil
}

func (noopGateway) GetSessionStatus(_ context.Context, sessionID string) (usecase.SessionStatus, error) {
	return usecase.SessionStatus{State: usecase.SessionStateCompleted, UserID: "user-1", AmountInCents: 10000, Reference: sessionID}, nil
}

type routerEnv struct {
	router     http.Handler
	walletRepo *memory.WalletRepository
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	contestRepo := memory.NewContestRepository(memory.SeedContests())
	teamRepo := memory.NewTeamRepository()
	walletRepo := memory.NewWalletRepository()
	profileRepo := memory.NewProfileRepository()
	generator := idgen.NewRandomGenerator()
	store := memory.NewContestStore(contestRepo, walletRepo, generator)

	handler := NewHandler(
		usecase.NewMatchService(matchRepo),
		usecase.NewPlayerService(playerRepo),
		usecase.NewTeamService(matchRepo, playerRepo, teamRepo, fantasy.DefaultRules(), generator, nil),
		usecase.NewContestService(matchRepo, contestRepo),
		usecase.NewAdmissionService(matchRepo, contestRepo, teamRepo, store, nil),
		usecase.NewWalletService(walletRepo, noopGateway{}, generator, "https://app.test/success", "https://app.test/cancel", nil),
		usecase.NewLeaderboardService(matchRepo, contestRepo, teamRepo, nil),
		usecase.NewSettlementService(matchRepo, contestRepo, store, nil),
		usecase.NewProfileService(profileRepo),
		logging.NewNop(),
	)

	verifier := &staticVerifier{principals: map[string]user.Principal{
		"token-user-1": {UserID: "user-1", Email: "one@example.com"},
		"token-user-2": {UserID: "user-2", Email: "two@example.com"},
	}}

	return &routerEnv{
		router:     NewRouter(handler, verifier, logging.NewNop(), []string{"*"}, testJobToken),
		walletRepo: walletRepo,
	}
}

func (e *routerEnv) seedBalance(t *testing.T, userID string, amount int64) {
	t.Helper()

	_, err := e.walletRepo.AppendDeposit(t.Context(), wallet.Transaction{
		ID:        "seed-tx-" + userID,
		UserID:    userID,
		Type:      wallet.TypeDeposit,
		Amount:    amount,
		SessionID: "seed-session-" + userID,
	})
	if err != nil {
		t.Fatalf("seed balance failed: %v", err)
	}
}

func (e *routerEnv) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal response envelope: %v", err)
		}
	}
	return rec, envelope
}

func TestRouter_Healthz(t *testing.T) {
	env := newRouterEnv(t)

	rec, envelope := env.do(t, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected healthz payload: %v", envelope)
	}
}

func TestRouter_ProtectedRouteRequiresAuth(t *testing.T) {
	env := newRouterEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/v1/wallet/balance", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec, _ = env.do(t, http.MethodGet, "/v1/wallet/balance", "bogus-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for unknown token, got %d", rec.Code)
	}
}

func TestRouter_CreateTeamAndJoinContest(t *testing.T) {
	env := newRouterEnv(t)
	env.seedBalance(t, "user-1", 100)

	createBody := `{
		"match_id": "` + memory.MatchIDIndAus + `",
		"player_ids": ["aus-wk-01","ind-bat-03","ind-bat-04","aus-bat-03","aus-bat-04","ind-ar-02","aus-ar-02","ind-bowl-02","ind-bowl-03","aus-bowl-02","aus-bowl-03"],
		"captain_id": "ind-bat-03",
		"vice_captain_id": "aus-bowl-02"
	}`
	rec, envelope := env.do(t, http.MethodPost, "/v1/fantasy/teams", "token-user-1", createBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create team: expected status 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ := envelope["data"].(map[string]any)
	teamID, _ := data["id"].(string)
	if teamID == "" {
		t.Fatalf("expected team id in response, got %v", envelope)
	}

	joinBody := `{"team_id": "` + teamID + `"}`
	rec, envelope = env.do(t, http.MethodPost, "/v1/contests/"+memory.ContestIDMega+"/join", "token-user-1", joinBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("join contest: expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ = envelope["data"].(map[string]any)
	if got, _ := data["spotsFilled"].(float64); got != 1 {
		t.Fatalf("expected spotsFilled=1, got %v", data["spotsFilled"])
	}

	// Entry fee 49 debited from the seeded 100.
	rec, envelope = env.do(t, http.MethodGet, "/v1/wallet/balance", "token-user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get balance: expected status 200, got %d", rec.Code)
	}
	data, _ = envelope["data"].(map[string]any)
	if got, _ := data["balance"].(float64); got != 51 {
		t.Fatalf("expected balance 51, got %v", data["balance"])
	}

	// A second join of the same contest conflicts.
	rec, envelope = env.do(t, http.MethodPost, "/v1/contests/"+memory.ContestIDMega+"/join", "token-user-1", joinBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("repeat join: expected status 409, got %d", rec.Code)
	}
	errorObj, _ := envelope["error"].(map[string]any)
	if got, _ := errorObj["status"].(string); got != "ALREADY_EXISTS" {
		t.Fatalf("expected ALREADY_EXISTS, got %v", errorObj["status"])
	}
}

func TestRouter_InternalRoutesRequireJobToken(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/matches/"+memory.MatchIDIndAus+"/status", strings.NewReader(`{"status":"live"}`))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without job token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/matches/"+memory.MatchIDIndAus+"/status", strings.NewReader(`{"status":"live"}`))
	req.Header.Set("X-Internal-Job-Token", testJobToken)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with job token, got %d (%s)", rec.Code, rec.Body.String())
	}

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response envelope: %v", err)
	}
	data, _ := envelope["data"].(map[string]any)
	if data["status"] != "live" {
		t.Fatalf("expected match status live, got %v", data["status"])
	}
}
