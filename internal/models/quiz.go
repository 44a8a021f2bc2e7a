package models

import "time"

type Question struct {
	QID         string   `json:"qid"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation,omitempty"`
}

// Quiz is one immutable version of a lesson's question set. Only Published
// may change after creation.
type Quiz struct {
	ID         string     `json:"id"`
	LessonID   string     `json:"lessonId"`
	Version    int        `json:"version"`
	Source     string     `json:"source"`
	Difficulty Difficulty `json:"difficulty"`
	Published  bool       `json:"published"`
	Questions  []Question `json:"questions"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// QuizDraft is the input for creating a new quiz version.
type QuizDraft struct {
	LessonID   string     `json:"lessonId"`
	Source     string     `json:"source"`
	Difficulty Difficulty `json:"difficulty"`
	Published  bool       `json:"published"`
	Questions  []Question `json:"questions"`
}
