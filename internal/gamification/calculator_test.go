package gamification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/questledger/internal/gamification"
	"github.com/vytor/questledger/internal/models"
)

func TestXP(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		total      int
		difficulty models.Difficulty
		want       int
	}{
		{"medium two of three", 2, 3, models.DifficultyMedium, 33},
		{"easy perfect", 4, 4, models.DifficultyEasy, 30},
		{"hard perfect", 3, 3, models.DifficultyHard, 100},
		{"hard half", 1, 2, models.DifficultyHard, 50},
		{"unknown difficulty priced as medium", 1, 1, models.Difficulty("legendary"), 50},
		{"zero score", 0, 5, models.DifficultyHard, 0},
		{"empty quiz", 0, 0, models.DifficultyHard, 0},
		{"rounds half up", 1, 4, models.DifficultyEasy, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gamification.XP(tt.score, tt.total, tt.difficulty))
		})
	}
}

func TestCoins(t *testing.T) {
	assert.Equal(t, 20, gamification.Coins(3, 3))
	assert.Equal(t, 10, gamification.Coins(2, 3))
	assert.Equal(t, 10, gamification.Coins(0, 3))
	assert.Equal(t, 10, gamification.Coins(0, 0))
}

func TestDiamonds_OnlyHardPerfect(t *testing.T) {
	difficulties := []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}

	for _, d := range difficulties {
		for total := 1; total <= 4; total++ {
			for score := 0; score <= total; score++ {
				got := gamification.Diamonds(score, total, d)
				if d == models.DifficultyHard && score == total {
					assert.Equal(t, 5, got, "%s %d/%d", d, score, total)
				} else {
					assert.Zero(t, got, "%s %d/%d", d, score, total)
				}
			}
		}
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, gamification.Level(0))
	assert.Equal(t, 1, gamification.Level(499))
	assert.Equal(t, 2, gamification.Level(500))
	assert.Equal(t, 5, gamification.Level(2250))

	prev := gamification.Level(0)
	for xp := 0; xp <= 5000; xp += 7 {
		lvl := gamification.Level(xp)
		assert.GreaterOrEqual(t, lvl, prev)
		prev = lvl
	}
}

func TestAward(t *testing.T) {
	r := gamification.Award(3, 3, models.DifficultyHard)
	assert.Equal(t, gamification.Rewards{XP: 100, Coins: 20, Diamonds: 5}, r)
}
