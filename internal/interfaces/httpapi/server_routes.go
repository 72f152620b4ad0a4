package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/contests", handler.ListContestsByMatch)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedFantasyRoutes(mux, handler, verifier)
	registerAuthorizedContestRoutes(mux, handler, verifier)
	registerAuthorizedWalletRoutes(mux, handler, verifier)
	registerAuthorizedProfileRoutes(mux, handler, verifier)
}

func registerAuthorizedFantasyRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/fantasy/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/fantasy/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
}

func registerAuthorizedContestRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/contests/{contestID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinContest)))
	mux.Handle("GET /v1/contests/{contestID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
}

func registerAuthorizedWalletRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/wallet/balance", RequireAuth(verifier, http.HandlerFunc(handler.GetWalletBalance)))
	mux.Handle("GET /v1/wallet/transactions", RequireAuth(verifier, http.HandlerFunc(handler.ListWalletTransactions)))
	mux.Handle("POST /v1/wallet/checkout", RequireAuth(verifier, http.HandlerFunc(handler.CreateWalletCheckout)))
	mux.Handle("POST /v1/wallet/deposits", RequireAuth(verifier, http.HandlerFunc(handler.RecordWalletDeposit)))
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/profile/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/profile/me", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyProfile)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/matches/{matchID}/points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ApplyMatchPoints)))
	mux.Handle("POST /v1/internal/matches/{matchID}/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateMatchStatus)))
	mux.Handle("POST /v1/internal/matches/{matchID}/settle", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SettleMatch)))
}
