package jobs

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueLeaderboardInvalidation(weekStart string) error
}
