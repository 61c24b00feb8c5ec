package redis

import (
	"context"
	"testing"
	"time"

	"commercial-paper-verifier/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerdict() *domain.Verdict {
	return &domain.Verdict{
		TransactionID: "ab12",
		Command:       domain.CommandRedeem,
		Accepted:      false,
		ErrorCode:     "TX_002",
		Kind:          domain.KindContractViolation,
		Rule:          domain.RuleRedeemImmature,
		Reason:        "paper has not matured",
		VerifiedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestVerdictCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewVerdictCache(client)
	ctx := context.Background()

	key := "f00d"

	// Get before set => nil
	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result)

	verdict := newTestVerdict()
	require.NoError(t, cache.Set(ctx, key, verdict, time.Hour))

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, verdict, result)
	assert.True(t, s.Exists("verdict:"+key))
}

func TestVerdictCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewVerdictCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", newTestVerdict(), time.Second))

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestVerdictCache_CorruptEntry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewVerdictCache(client)

	require.NoError(t, s.Set("verdict:bad", "not json"))

	result, err := cache.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestVerdictCache_Unavailable(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	cache := NewVerdictCache(client)
	s.Close()

	_, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, cache.Set(context.Background(), "k", newTestVerdict(), time.Minute))
}
