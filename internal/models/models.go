package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps an empty value to medium and rejects anything unknown.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case "":
		return DifficultyMedium, true
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), true
	default:
		return "", false
	}
}

type Wallet struct {
	Coins    int `json:"coins"`
	Diamonds int `json:"diamonds"`
}

// User holds the gamification state of an account. LastActiveDate is a
// UTC calendar day (YYYY-MM-DD) and is empty until the first submission.
type User struct {
	ID             string    `json:"id"`
	TotalXP        int       `json:"totalXP"`
	Level          int       `json:"level"`
	StreakCount    int       `json:"streakCount"`
	LastActiveDate string    `json:"lastActiveDate,omitempty"`
	Wallet         Wallet    `json:"wallet"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
