package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

type attemptRepository struct {
	conn
}

// NewAttemptRepository creates an AttemptRepository outside any transaction.
func NewAttemptRepository(database *db.DB) repository.AttemptRepository {
	return &attemptRepository{conn: newConn(database)}
}

func (r *attemptRepository) FindByIdempotencyKey(ctx context.Context, userID, key string) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var (
		a          models.Attempt
		difficulty string
		timeSpent  sql.NullInt64
	)
	err := r.queryRow(ctx, `
SELECT id, user_id, lesson_id, quiz_version, difficulty, score, total_questions,
       xp_awarded, coins_awarded, diamonds_awarded, time_spent_sec, idempotency_key, created_at
FROM attempts
WHERE user_id = ? AND idempotency_key = ?
`, userID, key).Scan(
		&a.ID, &a.UserID, &a.LessonID, &a.QuizVersion, &difficulty, &a.Score, &a.TotalQuestions,
		&a.XPAwarded, &a.CoinsAwarded, &a.DiamondsAwarded, &timeSpent, &a.IdempotencyKey, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to look up attempt: %v", err)
		return nil, err
	}
	a.Difficulty = models.Difficulty(difficulty)
	a.TimeSpentSec = intPtr(timeSpent)

	answers, err := r.answers(ctx, a.ID)
	if err != nil {
		log.Error("failed to load answers for attempt %s: %v", a.ID, err)
		return nil, err
	}
	a.Answers = answers
	return &a, nil
}

func (r *attemptRepository) answers(ctx context.Context, attemptID string) ([]models.AttemptAnswer, error) {
	rows, err := r.query(ctx, `
SELECT qid, selected_index, correct
FROM attempt_answers
WHERE attempt_id = ?
ORDER BY position ASC
`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.AttemptAnswer{}
	for rows.Next() {
		var ans models.AttemptAnswer
		if err := rows.Scan(&ans.QID, &ans.SelectedIndex, &ans.Correct); err != nil {
			return nil, err
		}
		answers = append(answers, ans)
	}
	return answers, rows.Err()
}

func (r *attemptRepository) CountForLessonInWeek(ctx context.Context, userID, lessonID, weekStart string) (int, error) {
	var n int
	err := r.queryRow(ctx, `
SELECT COUNT(*) FROM attempts
WHERE user_id = ? AND lesson_id = ? AND week_start = ?
`, userID, lessonID, weekStart).Scan(&n)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("attempt_repo").Error("failed to count attempts: %v", err)
	}
	return n, err
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt, weekStart string) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt %s for user %s", a.ID, a.UserID)

	if _, err := r.exec(ctx, `
INSERT INTO attempts (id, user_id, lesson_id, quiz_version, difficulty, week_start, score, total_questions,
                      xp_awarded, coins_awarded, diamonds_awarded, time_spent_sec, idempotency_key, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, a.ID, a.UserID, a.LessonID, a.QuizVersion, string(a.Difficulty), weekStart, a.Score, a.TotalQuestions,
		a.XPAwarded, a.CoinsAwarded, a.DiamondsAwarded, nullInt(a.TimeSpentSec), a.IdempotencyKey, a.CreatedAt); err != nil {
		if !db.IsUniqueViolation(err) {
			log.Error("failed to insert attempt: %v", err)
		}
		return err
	}

	for i, ans := range a.Answers {
		if _, err := r.exec(ctx, `
INSERT INTO attempt_answers (attempt_id, position, qid, selected_index, correct)
VALUES (?, ?, ?, ?, ?)
`, a.ID, i, ans.QID, ans.SelectedIndex, ans.Correct); err != nil {
			log.Error("failed to insert answer %d: %v", i, err)
			return err
		}
	}
	return nil
}
