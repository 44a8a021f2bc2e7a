// Package leaderboard scores weekly rollups and orders them into ranked entries.
package leaderboard

import (
	"math"
	"sort"

	"github.com/vytor/questledger/internal/models"
)

const activeDayCap = 5

func cappedActiveDays(s models.UserWeeklyStats) int {
	if s.ActiveDays > activeDayCap {
		return activeDayCap
	}
	if s.ActiveDays < 0 {
		return 0
	}
	return s.ActiveDays
}

// AccuracyMultiplier boosts eligible XP for accurate weeks.
func AccuracyMultiplier(accuracy float64) float64 {
	switch {
	case accuracy >= 0.90:
		return 1.15
	case accuracy >= 0.75:
		return 1.08
	default:
		return 1.0
	}
}

// GrowthScore rewards capped XP earned this week.
func GrowthScore(s models.UserWeeklyStats) int {
	boosted := int(math.Round(float64(s.EligibleXP) * AccuracyMultiplier(s.Accuracy())))
	return boosted + 5*cappedActiveDays(s) + 20*s.HardPerfectCount
}

// MasteryScore rewards accuracy first, then completed lessons.
func MasteryScore(s models.UserWeeklyStats) int {
	return int(math.Round(s.Accuracy()*1000)) +
		30*s.LessonsCompleted +
		25*s.HardPerfectCount +
		10*cappedActiveDays(s)
}

// Score dispatches on the leaderboard type. Unknown types score as growth.
func Score(t models.LeaderboardType, s models.UserWeeklyStats) int {
	if t == models.LeaderboardMastery {
		return MasteryScore(s)
	}
	return GrowthScore(s)
}

// Rank scores every row, sorts by score descending with userId ascending as
// the tie-break, and keeps the first limit entries. limit <= 0 keeps all.
func Rank(t models.LeaderboardType, rows []models.UserWeeklyStats, limit int) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for _, s := range rows {
		entries = append(entries, models.LeaderboardEntry{
			UserID:           s.UserID,
			Score:            Score(t, s),
			LessonsCompleted: s.LessonsCompleted,
			EligibleXP:       s.EligibleXP,
			Accuracy:         s.Accuracy(),
			ActiveDays:       s.ActiveDays,
			HardPerfectCount: s.HardPerfectCount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
