// Package cache stores computed leaderboards so repeated reads skip the
// weekly rollup scan.
package cache

import (
	"context"
	"time"

	"github.com/vytor/questledger/internal/models"
)

// LeaderboardCache groups entries by week so one delete drops every
// cached view of that week.
type LeaderboardCache interface {
	Get(ctx context.Context, weekStart, view string) ([]models.LeaderboardEntry, bool, error)
	Set(ctx context.Context, weekStart, view string, entries []models.LeaderboardEntry, ttl time.Duration) error
	Invalidate(ctx context.Context, weekStart string) error
}

// Noop never hits. It is used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string, string) ([]models.LeaderboardEntry, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, string, []models.LeaderboardEntry, time.Duration) error {
	return nil
}

func (Noop) Invalidate(context.Context, string) error { return nil }
