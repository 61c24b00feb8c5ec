package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "commercial-paper-verifier/internal/adapter/storage/redis"
	"commercial-paper-verifier/pkg/apperror"
	"commercial-paper-verifier/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the rate limits per endpoint group.
// verifyLimit overrides the verify group when positive.
func DefaultRateLimitRules(verifyLimit int64) map[string]RateLimitRule {
	rules := map[string]RateLimitRule{
		"verify":   {Limit: 600, Window: time.Minute},
		"verdicts": {Limit: 120, Window: time.Minute},
	}
	if verifyLimit > 0 {
		rules["verify"] = RateLimitRule{Limit: verifyLimit, Window: time.Minute}
	}
	return rules
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// A nil store or a non-positive limit disables it.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || rule.Limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := max(result.ResetAt-time.Now().Unix(), 1)
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys limits by authenticated client, falling back to IP.
func extractIdentifier(c *gin.Context) string {
	if id := c.GetString(CtxClientID); id != "" {
		return "client:" + id
	}
	return "ip:" + c.ClientIP()
}
