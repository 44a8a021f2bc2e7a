package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
)

const defaultPrefix = "questledger:leaderboard:"

// NewRedisClient connects and pings so a bad address fails at startup.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

type RedisLeaderboardCache struct {
	client redis.Cmdable
	prefix string
}

func NewRedisLeaderboardCache(client redis.Cmdable) *RedisLeaderboardCache {
	return &RedisLeaderboardCache{client: client, prefix: defaultPrefix}
}

// Key is the hash holding every cached view of a week.
func (c *RedisLeaderboardCache) Key(weekStart string) string {
	return c.prefix + weekStart
}

func (c *RedisLeaderboardCache) Get(ctx context.Context, weekStart, view string) ([]models.LeaderboardEntry, bool, error) {
	data, err := c.client.HGet(ctx, c.Key(weekStart), view).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.FromContext(ctx).WithPrefix("leaderboard_cache").Warn("discarding corrupt entry %s/%s: %v", weekStart, view, err)
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *RedisLeaderboardCache) Set(ctx context.Context, weekStart, view string, entries []models.LeaderboardEntry, ttl time.Duration) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	key := c.Key(weekStart)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, view, data)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	return err
}

func (c *RedisLeaderboardCache) Invalidate(ctx context.Context, weekStart string) error {
	return c.client.Del(ctx, c.Key(weekStart)).Err()
}
