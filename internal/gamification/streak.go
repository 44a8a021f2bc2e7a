package gamification

import "time"

type Streak struct {
	Count          int
	LastActiveDate string
}

// NextStreak applies one submission made at now to the streak. Only the UTC
// calendar day of now matters. A second submission on the same day is a no-op.
func NextStreak(prev Streak, now time.Time) Streak {
	today := Day(now)
	if prev.LastActiveDate == today {
		return prev
	}
	if prev.LastActiveDate == "" {
		return Streak{Count: 1, LastActiveDate: today}
	}
	if prev.LastActiveDate == Day(now.UTC().AddDate(0, 0, -1)) {
		return Streak{Count: prev.Count + 1, LastActiveDate: today}
	}
	return Streak{Count: 1, LastActiveDate: today}
}
