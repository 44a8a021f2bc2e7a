package services_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/services"
	"github.com/vytor/questledger/internal/testutil/mocks"
)

var leaderboardNow = time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC)

func weekly(userID string, eligibleXP, attempted, correct, lessons, activeDays, hardPerfect int) models.UserWeeklyStats {
	return models.UserWeeklyStats{
		UserID:             userID,
		WeekStart:          "2024-03-04",
		EligibleXP:         eligibleXP,
		QuestionsAttempted: attempted,
		QuestionsCorrect:   correct,
		LessonsCompleted:   lessons,
		ActiveDays:         activeDays,
		HardPerfectCount:   hardPerfect,
	}
}

func newLeaderboardService(repo *mocks.MockWeeklyStatsRepository, c *mocks.MockLeaderboardCache) services.LeaderboardService {
	return services.NewLeaderboardService(repo,
		services.WithLeaderboardCache(c, time.Minute),
		services.WithLeaderboardLimits(services.LeaderboardLimits{Default: 2, Max: 3}),
		services.WithLeaderboardClock(func() time.Time { return leaderboardNow }),
	)
}

func TestLeaderboard_ComputesAndCaches(t *testing.T) {
	repo := new(mocks.MockWeeklyStatsRepository)
	c := new(mocks.MockLeaderboardCache)
	rows := []models.UserWeeklyStats{
		weekly("u-b", 100, 10, 10, 2, 2, 0),
		weekly("u-a", 100, 10, 10, 2, 2, 0),
		weekly("u-c", 90, 10, 5, 3, 5, 0),
	}
	repo.On("ListByWeek", mock.Anything, "2024-03-04").Return(rows, nil)
	c.On("Get", mock.Anything, "2024-03-04", "growth:2").Return(nil, false, nil)
	c.On("Set", mock.Anything, "2024-03-04", "growth:2", mock.Anything, time.Minute).Return(nil)

	lb, err := newLeaderboardService(repo, c).Leaderboard(context.Background(), models.LeaderboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", lb.WeekStart)
	assert.Equal(t, models.LeaderboardGrowth, lb.Type)
	require.Len(t, lb.Entries, 2)
	// u-c is active more days but misses the accuracy boost.
	assert.Equal(t, "u-a", lb.Entries[0].UserID)
	assert.Equal(t, "u-b", lb.Entries[1].UserID)
	assert.Equal(t, 1, lb.Entries[0].Rank)
	assert.Equal(t, 2, lb.Entries[1].Rank)

	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestLeaderboard_CacheHitSkipsRepository(t *testing.T) {
	repo := new(mocks.MockWeeklyStatsRepository)
	c := new(mocks.MockLeaderboardCache)
	cached := []models.LeaderboardEntry{{Rank: 1, UserID: "u-z", Score: 42}}
	c.On("Get", mock.Anything, "2024-02-26", "mastery:3").Return(cached, true, nil)

	lb, err := newLeaderboardService(repo, c).Leaderboard(context.Background(), models.LeaderboardQuery{
		WeekStart: "2024-03-01",
		Type:      models.LeaderboardMastery,
		Limit:     40,
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-02-26", lb.WeekStart)
	assert.Equal(t, cached, lb.Entries)
	repo.AssertNotCalled(t, "ListByWeek", mock.Anything, mock.Anything)
}

func TestLeaderboard_CacheErrorsFallBackToRepository(t *testing.T) {
	repo := new(mocks.MockWeeklyStatsRepository)
	c := new(mocks.MockLeaderboardCache)
	repo.On("ListByWeek", mock.Anything, "2024-03-04").Return([]models.UserWeeklyStats{}, nil)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, false, stderrors.New("redis down"))
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("redis down"))

	lb, err := newLeaderboardService(repo, c).Leaderboard(context.Background(), models.LeaderboardQuery{WeekStart: "2024-03-04"})
	require.NoError(t, err)
	assert.NotNil(t, lb.Entries)
	assert.Empty(t, lb.Entries)
}

func TestLeaderboard_RepositoryError(t *testing.T) {
	repo := new(mocks.MockWeeklyStatsRepository)
	c := new(mocks.MockLeaderboardCache)
	repo.On("ListByWeek", mock.Anything, "2024-03-04").Return(nil, stderrors.New("db gone"))
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, false, nil)

	_, err := newLeaderboardService(repo, c).Leaderboard(context.Background(), models.LeaderboardQuery{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.Code(err))
}

func TestLeaderboard_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		q     models.LeaderboardQuery
		field string
	}{
		{"unknown type", models.LeaderboardQuery{Type: "speed"}, "type"},
		{"bad week", models.LeaderboardQuery{WeekStart: "03/04/2024"}, "weekStart"},
		{"negative limit", models.LeaderboardQuery{Limit: -1}, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newLeaderboardService(new(mocks.MockWeeklyStatsRepository), new(mocks.MockLeaderboardCache))
			_, err := svc.Leaderboard(context.Background(), tt.q)
			require.Error(t, err)
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
			assert.Contains(t, appErr.Details, tt.field)
		})
	}
}

func TestLeaderboard_Invalidate(t *testing.T) {
	c := new(mocks.MockLeaderboardCache)
	c.On("Invalidate", mock.Anything, "2024-03-04").Return(nil)

	svc := newLeaderboardService(new(mocks.MockWeeklyStatsRepository), c)
	require.NoError(t, svc.Invalidate(context.Background(), "2024-03-04"))
	c.AssertExpectations(t)
}

func TestLeaderboard_CancelledCallerDoesNotFailSharedWork(t *testing.T) {
	repo := new(mocks.MockWeeklyStatsRepository)
	c := new(mocks.MockLeaderboardCache)
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	repo.On("ListByWeek", live, "2024-03-04").Return([]models.UserWeeklyStats{weekly("u-a", 100, 10, 10, 2, 2, 0)}, nil)
	c.On("Get", mock.Anything, "2024-03-04", "growth:2").Return(nil, false, nil)
	c.On("Set", live, "2024-03-04", "growth:2", mock.Anything, time.Minute).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lb, err := newLeaderboardService(repo, c).Leaderboard(ctx, models.LeaderboardQuery{})
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestLeaderboard_InvalidationDuringComputeSkipsCacheWrite(t *testing.T) {
	repo := new(mocks.MockWeeklyStatsRepository)
	c := new(mocks.MockLeaderboardCache)
	svc := newLeaderboardService(repo, c)

	c.On("Get", mock.Anything, "2024-03-04", "growth:2").Return(nil, false, nil)
	c.On("Invalidate", mock.Anything, "2024-03-04").Return(nil)
	c.On("Set", mock.Anything, "2024-03-04", "growth:2", mock.Anything, time.Minute).Return(nil)
	repo.On("ListByWeek", mock.Anything, "2024-03-04").
		Return([]models.UserWeeklyStats{weekly("u-a", 100, 10, 10, 2, 2, 0)}, nil).
		Run(func(mock.Arguments) {
			// A submission commits while the rollups are being read.
			require.NoError(t, svc.Invalidate(context.Background(), "2024-03-04"))
		}).Once()

	lb, err := svc.Leaderboard(context.Background(), models.LeaderboardQuery{})
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// The next read runs under the new generation and caches normally.
	repo.On("ListByWeek", mock.Anything, "2024-03-04").
		Return([]models.UserWeeklyStats{weekly("u-a", 100, 10, 10, 2, 2, 0)}, nil).Once()
	_, err = svc.Leaderboard(context.Background(), models.LeaderboardQuery{})
	require.NoError(t, err)
	c.AssertCalled(t, "Set", mock.Anything, "2024-03-04", "growth:2", mock.Anything, time.Minute)
	repo.AssertExpectations(t)
}
