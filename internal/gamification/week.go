package gamification

import (
	"fmt"
	"time"
)

// DayLayout is the storage format for calendar days.
const DayLayout = "2006-01-02"

// Day returns the UTC calendar day of t.
func Day(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// WeekStart returns Monday 00:00 UTC of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// WeekKey is WeekStart formatted as a calendar day.
func WeekKey(t time.Time) string {
	return Day(WeekStart(t))
}

// NormalizeWeek parses a day and returns the key of the week containing it.
func NormalizeWeek(s string) (string, error) {
	t, err := ParseDay(s)
	if err != nil {
		return "", err
	}
	return WeekKey(t), nil
}
