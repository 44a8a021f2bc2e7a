package services

import (
	"context"
	"time"

	"github.com/vytor/questledger/internal/gamification"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

// WeeklyPolicy holds the anti-grind thresholds.
type WeeklyPolicy struct {
	EngagementFloorSec int
	EligibleXPCap      int
}

func DefaultWeeklyPolicy() WeeklyPolicy {
	return WeeklyPolicy{EngagementFloorSec: 20, EligibleXPCap: 300}
}

type WeeklyInput struct {
	UserID       string
	LessonID     string
	At           time.Time
	Difficulty   models.Difficulty
	Total        int
	Score        int
	XP           int
	TimeSpentSec *int
}

type WeeklyOutcome struct {
	WeekStart string
	Eligible  bool
	Stats     models.UserWeeklyStats
}

// WeeklyStatsAggregator folds one new attempt into the user's weekly rollup.
type WeeklyStatsAggregator struct {
	policy WeeklyPolicy
}

func NewWeeklyStatsAggregator(policy WeeklyPolicy) *WeeklyStatsAggregator {
	return &WeeklyStatsAggregator{policy: policy}
}

// Apply must run inside the submission's transaction and before the attempt
// row is written, so the first-attempt check only sees earlier attempts.
func (a *WeeklyStatsAggregator) Apply(ctx context.Context, tx repository.Tx, in WeeklyInput) (*WeeklyOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("weekly_stats")

	weekStart := gamification.WeekKey(in.At)
	today := gamification.Day(in.At)

	stats, err := tx.WeeklyStats().Ensure(ctx, in.UserID, weekStart)
	if err != nil {
		return nil, err
	}

	if stats.LastActiveDay != today {
		stats.ActiveDays++
		stats.LastActiveDay = today
	}

	stats.QuestionsAttempted += in.Total
	stats.QuestionsCorrect += in.Score

	engaged := in.TimeSpentSec != nil && *in.TimeSpentSec >= a.policy.EngagementFloorSec
	if !engaged {
		stats.AddFlag(models.FlagFastSubmit)
	}

	prior, err := tx.Attempts().CountForLessonInWeek(ctx, in.UserID, in.LessonID, weekStart)
	if err != nil {
		return nil, err
	}
	if prior > 0 {
		stats.AddFlag(models.FlagLessonRepeat)
	}

	eligible := engaged && prior == 0
	if eligible {
		stats.LessonsCompleted++
		xp := in.XP
		if xp > a.policy.EligibleXPCap {
			xp = a.policy.EligibleXPCap
		}
		stats.EligibleXP += xp
		if in.Difficulty == models.DifficultyHard && gamification.IsPerfect(in.Score, in.Total) {
			stats.HardPerfectCount++
		}
	}
	log.Debug("week=%s eligible=%v engaged=%v prior_attempts=%d", weekStart, eligible, engaged, prior)

	if err := tx.WeeklyStats().Update(ctx, *stats); err != nil {
		return nil, err
	}
	return &WeeklyOutcome{WeekStart: weekStart, Eligible: eligible, Stats: *stats}, nil
}
