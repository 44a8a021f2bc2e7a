package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueLeaderboardInvalidation(weekStart string) error {
	args := m.Called(weekStart)
	return args.Error(0)
}
