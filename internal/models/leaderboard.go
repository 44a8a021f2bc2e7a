package models

type LeaderboardType string

const (
	LeaderboardGrowth  LeaderboardType = "growth"
	LeaderboardMastery LeaderboardType = "mastery"
)

type LeaderboardQuery struct {
	WeekStart string
	Type      LeaderboardType
	Limit     int
}

type LeaderboardEntry struct {
	Rank             int     `json:"rank"`
	UserID           string  `json:"userId"`
	Score            int     `json:"score"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	EligibleXP       int     `json:"eligibleXP"`
	Accuracy         float64 `json:"accuracy"`
	ActiveDays       int     `json:"activeDays"`
	HardPerfectCount int     `json:"hardPerfectCount"`
}

type Leaderboard struct {
	WeekStart string             `json:"weekStart"`
	Type      LeaderboardType    `json:"type"`
	Entries   []LeaderboardEntry `json:"entries"`
}
