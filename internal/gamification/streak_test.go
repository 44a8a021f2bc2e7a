package gamification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/questledger/internal/gamification"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2024, 3, 6, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		prev gamification.Streak
		want gamification.Streak
	}{
		{
			name: "first submission",
			prev: gamification.Streak{},
			want: gamification.Streak{Count: 1, LastActiveDate: "2024-03-06"},
		},
		{
			name: "same day is unchanged",
			prev: gamification.Streak{Count: 4, LastActiveDate: "2024-03-06"},
			want: gamification.Streak{Count: 4, LastActiveDate: "2024-03-06"},
		},
		{
			name: "yesterday increments",
			prev: gamification.Streak{Count: 4, LastActiveDate: "2024-03-05"},
			want: gamification.Streak{Count: 5, LastActiveDate: "2024-03-06"},
		},
		{
			name: "three days ago resets",
			prev: gamification.Streak{Count: 9, LastActiveDate: "2024-03-03"},
			want: gamification.Streak{Count: 1, LastActiveDate: "2024-03-06"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gamification.NextStreak(tt.prev, now))
		})
	}
}

func TestNextStreak_UsesUTCDay(t *testing.T) {
	// 01:00 on March 7th in UTC+3 is still March 6th in UTC.
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2024, 3, 7, 1, 0, 0, 0, loc)

	got := gamification.NextStreak(gamification.Streak{Count: 2, LastActiveDate: "2024-03-06"}, now)
	assert.Equal(t, 2, got.Count)
}

func TestNextStreak_AcrossMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	got := gamification.NextStreak(gamification.Streak{Count: 2, LastActiveDate: "2024-02-29"}, now)
	assert.Equal(t, gamification.Streak{Count: 3, LastActiveDate: "2024-03-01"}, got)
}
