package worker

import (
	"context"

	"github.com/vytor/questledger/internal/logger"
)

// LeaderboardInvalidator drops cached leaderboards for a week.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context, weekStart string) error
}

// InvalidateLeaderboardJob runs after a submission commits so readers
// stop seeing the week's stale rankings.
type InvalidateLeaderboardJob struct {
	Invalidator LeaderboardInvalidator
	WeekStart   string
}

func (j *InvalidateLeaderboardJob) Name() string { return "invalidate_leaderboard" }

func (j *InvalidateLeaderboardJob) Run(ctx context.Context) error {
	logger.FromContext(ctx).Debug("invalidating leaderboard cache for week %s", j.WeekStart)
	return j.Invalidator.Invalidate(ctx, j.WeekStart)
}
