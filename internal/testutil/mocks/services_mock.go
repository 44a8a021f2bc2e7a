package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/questledger/internal/models"
)

// MockAttemptService is a mock implementation of services.AttemptService
type MockAttemptService struct {
	mock.Mock
}

func (m *MockAttemptService) Submit(ctx context.Context, userID string, req models.SubmitRequest) (*models.SubmitResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitResult), args.Error(1)
}

// MockLeaderboardService is a mock implementation of services.LeaderboardService
type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Leaderboard(ctx context.Context, q models.LeaderboardQuery) (*models.Leaderboard, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardService) Invalidate(ctx context.Context, weekStart string) error {
	args := m.Called(ctx, weekStart)
	return args.Error(0)
}

// MockWalletService is a mock implementation of services.WalletService
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Reconcile(ctx context.Context, userID string) (*models.WalletReconciliation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WalletReconciliation), args.Error(1)
}

func (m *MockWalletService) Transactions(ctx context.Context, userID string) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WalletTransaction), args.Error(1)
}
