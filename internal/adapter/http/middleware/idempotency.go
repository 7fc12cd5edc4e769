package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	redisStore "wallet-session-gateway/internal/adapter/storage/redis"
	"wallet-session-gateway/pkg/apperror"
	"wallet-session-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// ResponseCache stores replayable responses by key.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*redisStore.CachedResponse, error)
	Set(ctx context.Context, key string, resp *redisStore.CachedResponse, ttl time.Duration) error
}

// Idempotency replays the stored response when an operation request repeats its
// Idempotency-Key. Only final outcomes are stored: confirmed, reverted, and
// submitted-but-unconfirmed. A retry after any of those must not send a second
// transaction. Requests without the header pass through untouched.
func Idempotency(cache ResponseCache, ttl time.Duration, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			response.Error(c, apperror.Validation("Idempotency-Key too long"))
			c.Abort()
			return
		}

		cacheKey := extractIdentifier(c) + ":" + c.Param("contract") + ":" + key
		ctx := c.Request.Context()

		cached, err := cache.Get(ctx, cacheKey)
		if err != nil {
			log.Warn().Err(err).Msg("idempotency lookup failed, processing request")
		} else if cached != nil {
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if !replayable(status) || !json.Valid(rec.body.Bytes()) {
			return
		}
		// The client may be gone by now; the outcome is still final and must be stored.
		resp := &redisStore.CachedResponse{Status: status, Body: json.RawMessage(rec.body.Bytes())}
		if err := cache.Set(context.WithoutCancel(ctx), cacheKey, resp, ttl); err != nil {
			log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotent response")
		}
	}
}

func replayable(status int) bool {
	switch status {
	case http.StatusOK, http.StatusUnprocessableEntity, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// bodyRecorder tees the response body so it can be cached after the handler runs.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
