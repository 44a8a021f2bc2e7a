package jobs

import (
	"github.com/vytor/questledger/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool        *worker.Pool
	invalidator worker.LeaderboardInvalidator
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, invalidator worker.LeaderboardInvalidator) JobQueue {
	return &WorkerQueue{pool: pool, invalidator: invalidator}
}

func (q *WorkerQueue) EnqueueLeaderboardInvalidation(weekStart string) error {
	return q.pool.Submit(&worker.InvalidateLeaderboardJob{
		Invalidator: q.invalidator,
		WeekStart:   weekStart,
	})
}
