package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/pitchside/fantasy-cricket/internal/config"
	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/fantasy"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/user"
	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/account/identity"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/payment/stripe"
	cacherepo "github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/cache"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/pitchside/fantasy-cricket/internal/interfaces/httpapi"
	basecache "github.com/pitchside/fantasy-cricket/internal/platform/cache"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/platform/resilience"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

type repositories struct {
	matches  match.Repository
	players  player.Repository
	contests contest.Repository
	teams    fantasy.Repository
	wallets  wallet.Repository
	profiles user.ProfileRepository
	store    admissionSettlementStore
}

type admissionSettlementStore interface {
	contest.AdmissionStore
	contest.SettlementStore
}

// NewHTTPServer wires repositories, services, and the HTTP router. The
// returned cleanup closes the database pool when one was opened; with an
// empty DB_URL the service runs entirely on seeded in-memory repositories.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	}

	generator := idgen.NewRandomGenerator()

	gateway := stripe.NewClient(stripe.ClientConfig{
		BaseURL:    cfg.StripeBaseURL,
		SecretKey:  cfg.StripeSecretKey,
		Timeout:    cfg.StripeTimeout,
		MaxRetries: cfg.StripeMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StripeCircuitEnabled,
			FailureThreshold: cfg.StripeCircuitFailureCount,
			OpenTimeout:      cfg.StripeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StripeCircuitHalfOpenMaxReq,
		},
	})

	verifier := identity.NewClient(
		&http.Client{Timeout: cfg.IdentityTimeout},
		cfg.IdentityBaseURL,
		cfg.IdentityIntrospectPath,
		cfg.IdentityAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.IdentityCircuitEnabled,
			FailureThreshold: cfg.IdentityCircuitFailureCount,
			OpenTimeout:      cfg.IdentityCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IdentityCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		usecase.NewMatchService(repos.matches),
		usecase.NewPlayerService(repos.players),
		usecase.NewTeamService(repos.matches, repos.players, repos.teams, fantasy.DefaultRules(), generator, logger),
		usecase.NewContestService(repos.matches, repos.contests),
		usecase.NewAdmissionService(repos.matches, repos.contests, repos.teams, repos.store, logger),
		usecase.NewWalletService(repos.wallets, gateway, generator, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, logger),
		usecase.NewLeaderboardService(repos.matches, repos.contests, repos.teams, logger),
		usecase.NewSettlementService(repos.matches, repos.contests, repos.store, logger),
		usecase.NewProfileService(repos.profiles),
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup(ctx)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("running with in-memory repositories", "reason", "DB_URL empty")

		contestRepo := memory.NewContestRepository(memory.SeedContests())
		walletRepo := memory.NewWalletRepository()

		return repositories{
			matches:  memory.NewMatchRepository(memory.SeedMatches()),
			players:  memory.NewPlayerRepository(memory.SeedPlayers()),
			contests: contestRepo,
			teams:    memory.NewTeamRepository(),
			wallets:  walletRepo,
			profiles: memory.NewProfileRepository(),
			store:    memory.NewContestStore(contestRepo, walletRepo, idgen.NewRandomGenerator()),
		}, noop, nil
	}

	db, err := connectDB(ctx, cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect database: %w", err)
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("running with postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))

	contestRepo := postgres.NewContestRepository(db)
	cleanup := func(context.Context) error { return db.Close() }

	return repositories{
		matches:  postgres.NewMatchRepository(db),
		players:  postgres.NewPlayerRepository(db),
		contests: contestRepo,
		teams:    postgres.NewTeamRepository(db),
		wallets:  postgres.NewWalletRepository(db),
		profiles: postgres.NewProfileRepository(db),
		store:    postgres.NewContestStore(db, contestRepo, idgen.NewRandomGenerator()),
	}, cleanup, nil
}

func connectDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.ConnectContext(ctx, "postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}
