package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/questledger/internal/models"
)

// MockWeeklyStatsRepository is a mock implementation of repository.WeeklyStatsRepository
type MockWeeklyStatsRepository struct {
	mock.Mock
}

func (m *MockWeeklyStatsRepository) Ensure(ctx context.Context, userID, weekStart string) (*models.UserWeeklyStats, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserWeeklyStats), args.Error(1)
}

func (m *MockWeeklyStatsRepository) Get(ctx context.Context, userID, weekStart string) (*models.UserWeeklyStats, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserWeeklyStats), args.Error(1)
}

func (m *MockWeeklyStatsRepository) Update(ctx context.Context, stats models.UserWeeklyStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockWeeklyStatsRepository) ListByWeek(ctx context.Context, weekStart string) ([]models.UserWeeklyStats, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserWeeklyStats), args.Error(1)
}
