package handler

import (
	"time"

	"wallet-session-gateway/internal/adapter/http/middleware"
	redisStore "wallet-session-gateway/internal/adapter/storage/redis"
	"wallet-session-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc          ports.AuthService  // nil = no /auth/token route
	TokenSvc         ports.TokenService // nil = session routes are unauthenticated
	Controllers      []ports.SessionController
	RateLimitStore   *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimits       map[string]middleware.RateLimitRule
	IdempotencyCache middleware.ResponseCache // nil = Idempotency-Key ignored
	IdempotencyTTL   time.Duration
	HealthCheckers   []ports.HealthChecker
	Logger           zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(64 << 10))

	r.GET("/health", HealthCheck(5*time.Second, deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	noop := func(c *gin.Context) { c.Next() }

	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return noop
		}
		rule, ok := deps.RateLimits[group]
		if !ok {
			return noop
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	idem := noop
	if deps.IdempotencyCache != nil {
		idem = middleware.Idempotency(deps.IdempotencyCache, deps.IdempotencyTTL, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	if deps.AuthSvc != nil {
		authHandler := NewAuthHandler(deps.AuthSvc)
		v1.POST("/auth/token", rl(middleware.GroupAuth), authHandler.Login)
	}

	// --- Session routes (JWT when configured) ---
	auth := noop
	if deps.TokenSvc != nil {
		auth = middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	}

	sh := NewSessionHandler(deps.Controllers...)
	reads := rl(middleware.GroupReads)
	ops := rl(middleware.GroupOperations)

	sessions := v1.Group("/sessions", auth)
	{
		sessions.GET("", reads, sh.List)
		sessions.GET("/:contract", reads, sh.Get)
		sessions.GET("/:contract/operations", reads, sh.History)
		sessions.POST("/:contract/connect", ops, sh.Connect)
		sessions.POST("/:contract/balance/refresh", reads, sh.RefreshBalance)
		sessions.POST("/:contract/operations", ops, idem, sh.SubmitOperation)
		sessions.POST("/:contract/ownership", ops, idem, sh.TransferOwnership)
		sessions.POST("/:contract/accounts-changed", ops, sh.AccountsChanged)
	}

	return r
}
