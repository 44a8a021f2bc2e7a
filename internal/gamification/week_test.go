package gamification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/gamification"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"monday midnight", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "2024-03-04"},
		{"wednesday", time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC), "2024-03-04"},
		{"sunday last second", time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC), "2024-03-04"},
		{"crosses year", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), "2024-12-30"},
		{"offset zone normalized to utc", time.Date(2024, 3, 11, 1, 0, 0, 0, time.FixedZone("UTC+2", 7200)), "2024-03-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gamification.WeekKey(tt.at))
		})
	}
}

func TestNormalizeWeek(t *testing.T) {
	got, err := gamification.NormalizeWeek("2024-03-08")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", got)

	_, err = gamification.NormalizeWeek("03/08/2024")
	assert.Error(t, err)
}
