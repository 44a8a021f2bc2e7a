package leaderboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/leaderboard"
	"github.com/vytor/questledger/internal/models"
)

func stats(userID string, eligibleXP, attempted, correct, lessons, activeDays, hardPerfect int) models.UserWeeklyStats {
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

func TestGrowthScore(t *testing.T) {
	tests := []struct {
		name string
		s    models.UserWeeklyStats
		want int
	}{
		{"high accuracy boost", stats("a", 100, 20, 19, 0, 0, 0), 115},
		{"mid accuracy boost", stats("a", 100, 20, 16, 0, 0, 0), 108},
		{"no boost", stats("a", 100, 20, 10, 0, 0, 0), 100},
		{"no attempts", stats("a", 0, 0, 0, 0, 0, 0), 0},
		{"active days capped", stats("a", 0, 10, 0, 0, 7, 0), 25},
		{"hard perfect bonus", stats("a", 33, 3, 3, 1, 1, 2), 38 + 5 + 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leaderboard.GrowthScore(tt.s))
		})
	}
}

func TestMasteryScore(t *testing.T) {
	// accuracy 2/3 -> 667, 2 lessons -> 60, 1 hard perfect -> 25, 6 days capped -> 50
	s := stats("a", 0, 3, 2, 2, 6, 1)
	assert.Equal(t, 667+60+25+50, leaderboard.MasteryScore(s))
	assert.Equal(t, 0, leaderboard.MasteryScore(stats("b", 0, 0, 0, 0, 0, 0)))
}

func TestRank_AccuracyBreaksEqualXP(t *testing.T) {
	rows := []models.UserWeeklyStats{
		stats("sloppy", 100, 20, 10, 2, 0, 0),
		stats("precise", 100, 20, 19, 2, 0, 0),
	}

	entries := leaderboard.Rank(models.LeaderboardGrowth, rows, 10)

	require.Len(t, entries, 2)
	assert.Equal(t, "precise", entries[0].UserID)
	assert.Equal(t, 115, entries[0].Score)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "sloppy", entries[1].UserID)
	assert.Equal(t, 100, entries[1].Score)
	assert.InDelta(t, 0.95, entries[0].Accuracy, 1e-9)
}

func TestRank_TieBreakByUserID(t *testing.T) {
	rows := []models.UserWeeklyStats{
		stats("carol", 50, 10, 5, 1, 1, 0),
		stats("alice", 50, 10, 5, 1, 1, 0),
		stats("bob", 50, 10, 5, 1, 1, 0),
	}

	entries := leaderboard.Rank(models.LeaderboardMastery, rows, 0)

	require.Len(t, entries, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{entries[0].UserID, entries[1].UserID, entries[2].UserID})
}

func TestRank_Truncates(t *testing.T) {
	rows := []models.UserWeeklyStats{
		stats("a", 10, 1, 1, 1, 1, 0),
		stats("b", 20, 1, 1, 1, 1, 0),
		stats("c", 30, 1, 1, 1, 1, 0),
	}

	entries := leaderboard.Rank(models.LeaderboardGrowth, rows, 2)

	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].UserID)
	assert.Equal(t, "b", entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, leaderboard.Rank(models.LeaderboardGrowth, nil, 50))
}
