package models

import "time"

const (
	FlagFastSubmit   = "fast_submit"
	FlagLessonRepeat = "lesson_repeat"
)

// UserWeeklyStats is the per-user rollup for one ISO week. WeekStart and
// LastActiveDay are UTC calendar days (YYYY-MM-DD).
type UserWeeklyStats struct {
	UserID             string    `json:"userId"`
	WeekStart          string    `json:"weekStart"`
	LessonsCompleted   int       `json:"lessonsCompleted"`
	QuestionsAttempted int       `json:"questionsAttempted"`
	QuestionsCorrect   int       `json:"questionsCorrect"`
	HardPerfectCount   int       `json:"hardPerfectCount"`
	EligibleXP         int       `json:"eligibleXP"`
	ActiveDays         int       `json:"activeDays"`
	LastActiveDay      string    `json:"lastActiveDay,omitempty"`
	DailyCapUsed       int       `json:"dailyCapUsed"`
	SuspiciousFlags    []string  `json:"suspiciousFlags"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Accuracy is questionsCorrect/questionsAttempted, or 0 with no attempts.
func (s UserWeeklyStats) Accuracy() float64 {
	if s.QuestionsAttempted <= 0 {
		return 0
	}
	return float64(s.QuestionsCorrect) / float64(s.QuestionsAttempted)
}

// AddFlag records a flag once.
func (s *UserWeeklyStats) AddFlag(flag string) {
	for _, f := range s.SuspiciousFlags {
		if f == flag {
			return
		}
	}
	s.SuspiciousFlags = append(s.SuspiciousFlags, flag)
}
