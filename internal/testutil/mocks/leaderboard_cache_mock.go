package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/questledger/internal/models"
)

// MockLeaderboardCache is a mock implementation of cache.LeaderboardCache
type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context, weekStart, view string) ([]models.LeaderboardEntry, bool, error) {
	args := m.Called(ctx, weekStart, view)
	var entries []models.LeaderboardEntry
	if v := args.Get(0); v != nil {
		entries = v.([]models.LeaderboardEntry)
	}
	return entries, args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardCache) Set(ctx context.Context, weekStart, view string, entries []models.LeaderboardEntry, ttl time.Duration) error {
	args := m.Called(ctx, weekStart, view, entries, ttl)
	return args.Error(0)
}

func (m *MockLeaderboardCache) Invalidate(ctx context.Context, weekStart string) error {
	args := m.Called(ctx, weekStart)
	return args.Error(0)
}
