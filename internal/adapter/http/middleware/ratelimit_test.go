package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commercial-paper-verifier/internal/adapter/http/middleware"
	redisStore "commercial-paper-verifier/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// setupRateLimitRouter takes the client id from the X-Test-Client header.
func setupRateLimitRouter(store *redisStore.RateLimitStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	log := zerolog.Nop()

	setClient := func(c *gin.Context) {
		if id := c.GetHeader("X-Test-Client"); id != "" {
			c.Set(middleware.CtxClientID, id)
		}
		c.Next()
	}

	r.GET("/test", setClient, middleware.RateLimiter(store, "test", rule, log), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return r
}

func newStore(t *testing.T) (*redisStore.RateLimitStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redisStore.NewRateLimitStore(client), mr
}

func doGet(router *gin.Engine, clientID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/test", nil)
	if clientID != "" {
		req.Header.Set("X-Test-Client", clientID)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	store, _ := newStore(t)
	router := setupRateLimitRouter(store)

	for i := 0; i < 3; i++ {
		w := doGet(router, "")
		assert.Equal(t, 200, w.Code, "request %d should succeed", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	store, _ := newStore(t)
	router := setupRateLimitRouter(store)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, doGet(router, "").Code)
	}

	w := doGet(router, "")
	assert.Equal(t, 429, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_KeysByClient(t *testing.T) {
	store, _ := newStore(t)
	router := setupRateLimitRouter(store)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, doGet(router, "node-a").Code)
	}
	assert.Equal(t, 429, doGet(router, "node-a").Code)

	// independent counter
	assert.Equal(t, 200, doGet(router, "node-b").Code)
}

func TestRateLimiter_DegradedWhenRedisDown(t *testing.T) {
	store, mr := newStore(t)
	router := setupRateLimitRouter(store)
	mr.Close()

	w := doGet(router, "")
	assert.Equal(t, 200, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimiter_DisabledWithoutStore(t *testing.T) {
	router := setupRateLimitRouter(nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 200, doGet(router, "").Code)
	}
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules(0)
	assert.Equal(t, int64(600), rules["verify"].Limit)
	assert.Equal(t, time.Minute, rules["verify"].Window)
	assert.Equal(t, int64(120), rules["verdicts"].Limit)

	rules = middleware.DefaultRateLimitRules(30)
	assert.Equal(t, int64(30), rules["verify"].Limit)
	assert.Equal(t, int64(120), rules["verdicts"].Limit)
}
