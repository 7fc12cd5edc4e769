package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-session-gateway/config"
	"wallet-session-gateway/internal/adapter/contract"
	httpHandler "wallet-session-gateway/internal/adapter/http/handler"
	"wallet-session-gateway/internal/adapter/http/middleware"
	"wallet-session-gateway/internal/adapter/provider"
	pgStorage "wallet-session-gateway/internal/adapter/storage/postgres"
	redisStorage "wallet-session-gateway/internal/adapter/storage/redis"
	"wallet-session-gateway/internal/core/ports"
	"wallet-session-gateway/internal/service"
	"wallet-session-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet Session Gateway")

	ctx := context.Background()
	var checkers []ports.HealthChecker

	// Optional PostgreSQL operation journal
	var journal ports.OperationJournal
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		if err := pgStorage.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		journal = pgStorage.NewOperationJournal(pool)
		checkers = append(checkers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected, operation journal enabled")
	}

	// Optional Redis lock, rate limits and idempotency cache
	var (
		opLock         ports.OperationLock
		rateLimitStore *redisStorage.RateLimitStore
		idemCache      middleware.ResponseCache
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		opLock = redisStorage.NewOperationLock(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		idemCache = redisStorage.NewIdempotencyCache(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	// Wallet provider and contract binding
	gateway := provider.NewGateway(cfg.Provider.URL, cfg.Provider.DialTimeout, log)
	defer gateway.Close()
	checkers = append(checkers, gateway)
	binder := contract.NewBinder(cfg.Confirmation.PollInterval, log)

	controllers, err := buildControllers(cfg, gateway, binder, opLock, journal, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build session controllers")
	}

	// Detect the provider and restore previously authorized accounts.
	for _, ctl := range controllers {
		initCtx, cancel := context.WithTimeout(ctx, cfg.Provider.DialTimeout+10*time.Second)
		snap, err := ctl.Init(initCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("contract", ctl.Name()).Msg("session init incomplete")
			continue
		}
		log.Info().Str("contract", ctl.Name()).Str("state", string(snap.State)).Msg("session initialized")
	}

	// Operator authentication is enabled by a JWT secret.
	var (
		authSvc  ports.AuthService
		tokenSvc ports.TokenService
	)
	if cfg.JWT.Secret != "" {
		jwtSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
		tokenSvc = jwtSvc
		authSvc = service.NewAuthService(service.NewArgon2HashService(), jwtSvc, cfg.Auth.OperatorHash)
		if cfg.Auth.OperatorHash == "" {
			log.Warn().Msg("auth.operator_hash not set, no token can be issued")
		}
	} else {
		log.Warn().Msg("jwt.secret not set, session routes are unauthenticated")
	}

	gin.SetMode(cfg.Server.Mode)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:          authSvc,
		TokenSvc:         tokenSvc,
		Controllers:      controllers,
		RateLimitStore:   rateLimitStore,
		RateLimits:       middleware.RateLimitRules(cfg.RateLimit),
		IdempotencyCache: idemCache,
		IdempotencyTTL:   cfg.Redis.IdempotencyTTL,
		HealthCheckers:   checkers,
		Logger:           log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Operation requests wait for confirmation, so allow them the full window.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Confirmation.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// buildControllers creates one session controller per contract with an address.
func buildControllers(
	cfg *config.Config,
	gateway ports.ProviderGateway,
	binder ports.ContractBinder,
	lock ports.OperationLock,
	journal ports.OperationJournal,
	log zerolog.Logger,
) ([]ports.SessionController, error) {
	type entry struct {
		name    string
		cc      config.ContractConfig
		profile func() (service.ContractProfile, error)
	}
	entries := []entry{
		{"atm", cfg.Contracts.ATM, func() (service.ContractProfile, error) {
			return service.ATMProfile(cfg.Contracts.ATM.Decimals), nil
		}},
		{"lottery", cfg.Contracts.Lottery, func() (service.ContractProfile, error) {
			return service.LotteryProfile(cfg.Contracts.Lottery.Decimals, cfg.Contracts.Lottery.TicketPrice)
		}},
	}

	var out []ports.SessionController
	for _, e := range entries {
		if !e.cc.Enabled() {
			log.Info().Str("contract", e.name).Msg("no address configured, contract not served")
			continue
		}
		descriptor, err := contract.LoadDescriptor(e.name, e.cc.ABIPath)
		if err != nil {
			return nil, fmt.Errorf("%s descriptor: %w", e.name, err)
		}
		profile, err := e.profile()
		if err != nil {
			return nil, fmt.Errorf("%s profile: %w", e.name, err)
		}
		ctl, err := service.NewSessionController(service.SessionConfig{
			Address:             e.cc.Address,
			Descriptor:          descriptor,
			Profile:             profile,
			ConfirmationTimeout: cfg.Confirmation.Timeout,
			LockTTL:             cfg.Redis.LockTTL,
		}, gateway, binder, lock, journal, logger.ForContract(log, e.name, e.cc.Address))
		if err != nil {
			return nil, fmt.Errorf("%s session: %w", e.name, err)
		}
		out = append(out, ctl)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no contracts configured")
	}
	return out, nil
}
