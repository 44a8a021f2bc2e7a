package gamification

import (
	"math"

	"github.com/vytor/questledger/internal/models"
)

const (
	// XPPerLevel is the XP span of one level.
	XPPerLevel = 500

	PerfectCoins    = 20
	CompletionCoins = 10
	MasteryDiamonds = 5
)

// BaseXP returns the XP a perfect run of a quiz is worth. Unknown
// difficulties are priced as medium.
func BaseXP(d models.Difficulty) int {
	switch d {
	case models.DifficultyEasy:
		return 30
	case models.DifficultyHard:
		return 100
	default:
		return 50
	}
}

// IsPerfect reports whether every question was answered correctly.
func IsPerfect(score, total int) bool {
	return total > 0 && score == total
}

// XP scales the difficulty base by accuracy and rounds half away from zero.
func XP(score, total int, d models.Difficulty) int {
	if total <= 0 || score <= 0 {
		return 0
	}
	if score > total {
		score = total
	}
	accuracy := float64(score) / float64(total)
	return int(math.Round(float64(BaseXP(d)) * accuracy))
}

// Coins pays the perfect bonus or the flat completion amount.
func Coins(score, total int) int {
	if IsPerfect(score, total) {
		return PerfectCoins
	}
	return CompletionCoins
}

// Diamonds are only paid for a perfect hard quiz.
func Diamonds(score, total int, d models.Difficulty) int {
	if d == models.DifficultyHard && IsPerfect(score, total) {
		return MasteryDiamonds
	}
	return 0
}

// Level is floor(totalXP/500)+1.
func Level(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

type Rewards struct {
	XP       int
	Coins    int
	Diamonds int
}

// Award computes every reward for a graded quiz.
func Award(score, total int, d models.Difficulty) Rewards {
	return Rewards{
		XP:       XP(score, total, d),
		Coins:    Coins(score, total),
		Diamonds: Diamonds(score, total, d),
	}
}
