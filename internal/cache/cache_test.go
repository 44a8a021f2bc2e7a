package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/cache"
	"github.com/vytor/questledger/internal/models"
)

func TestNoop_AlwaysMisses(t *testing.T) {
	var c cache.LeaderboardCache = cache.Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "2024-03-04", "growth:50", []models.LeaderboardEntry{{UserID: "a"}}, time.Minute))
	entries, ok, err := c.Get(ctx, "2024-03-04", "growth:50")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entries)
	assert.NoError(t, c.Invalidate(ctx, "2024-03-04"))
}

func TestRedisLeaderboardCache_KeyPerWeek(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	c := cache.NewRedisLeaderboardCache(client)
	assert.Equal(t, "questledger:leaderboard:2024-03-04", c.Key("2024-03-04"))
	assert.NotEqual(t, c.Key("2024-03-04"), c.Key("2024-03-11"))
}

func TestNewRedisClient_UnreachableAddress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := cache.NewRedisClient(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}
