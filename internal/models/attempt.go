package models

import "time"

// AnswerInput is one submitted answer. SelectedIndex is a pointer so a
// missing field is distinguishable from option 0.
type AnswerInput struct {
	QID           string `json:"qid"`
	SelectedIndex *int   `json:"selectedIndex"`
}

// SubmitRequest is the attempt payload handed to the attempt service. A nil
// Answers slice means the field was absent; an empty one is a valid submission.
type SubmitRequest struct {
	LessonID       string        `json:"lessonId"`
	Answers        []AnswerInput `json:"answers"`
	TimeSpentSec   *int          `json:"timeSpentSec,omitempty"`
	IdempotencyKey string        `json:"idempotencyKey"`
}

// SubmitResult is returned for both fresh and replayed submissions.
// Replayed is transport metadata and never part of the body.
type SubmitResult struct {
	Score           int  `json:"score"`
	Total           int  `json:"total"`
	XPAwarded       int  `json:"xpAwarded"`
	CoinsAwarded    int  `json:"coinsAwarded"`
	DiamondsAwarded int  `json:"diamondsAwarded"`
	Replayed        bool `json:"-"`
}

type AttemptAnswer struct {
	QID           string `json:"qid"`
	SelectedIndex int    `json:"selectedIndex"`
	Correct       bool   `json:"correct"`
}

type Attempt struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	LessonID        string          `json:"lessonId"`
	QuizVersion     int             `json:"quizVersion"`
	Difficulty      Difficulty      `json:"difficulty"`
	Answers         []AttemptAnswer `json:"answers"`
	Score           int             `json:"score"`
	TotalQuestions  int             `json:"totalQuestions"`
	XPAwarded       int             `json:"xpAwarded"`
	CoinsAwarded    int             `json:"coinsAwarded"`
	DiamondsAwarded int             `json:"diamondsAwarded"`
	TimeSpentSec    *int            `json:"timeSpentSec,omitempty"`
	IdempotencyKey  string          `json:"idempotencyKey"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Result rebuilds the response shape from a persisted attempt.
func (a Attempt) Result() SubmitResult {
	return SubmitResult{
		Score:           a.Score,
		Total:           a.TotalQuestions,
		XPAwarded:       a.XPAwarded,
		CoinsAwarded:    a.CoinsAwarded,
		DiamondsAwarded: a.DiamondsAwarded,
	}
}
