package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

const quizColumns = `id, lesson_id, version, source, difficulty, published, created_at`

type quizRepository struct {
	db *db.DB
	conn
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(database *db.DB) repository.QuizRepository {
	return &quizRepository{db: database, conn: newConn(database)}
}

func (r *quizRepository) Create(ctx context.Context, draft models.QuizDraft) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("creating quiz version for lesson %s with %d questions", draft.LessonID, len(draft.Questions))

	var created *models.Quiz
	err := r.db.InTx(ctx, func(ctx context.Context, sqlTx *sql.Tx) error {
		c := conn{q: sqlTx, dialect: r.dialect}

		var latest int
		if err := c.queryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM quizzes WHERE lesson_id = ?`, draft.LessonID).Scan(&latest); err != nil {
			return err
		}

		q := models.Quiz{
			ID:         uuid.NewString(),
			LessonID:   draft.LessonID,
			Version:    latest + 1,
			Source:     draft.Source,
			Difficulty: draft.Difficulty,
			Published:  draft.Published,
			Questions:  draft.Questions,
			CreatedAt:  utcNow(),
		}
		if q.Source == "" {
			q.Source = "seed"
		}
		if q.Difficulty == "" {
			q.Difficulty = models.DifficultyMedium
		}

		if _, err := c.exec(ctx, `
INSERT INTO quizzes (id, lesson_id, version, source, difficulty, published, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, q.ID, q.LessonID, q.Version, q.Source, string(q.Difficulty), q.Published, q.CreatedAt); err != nil {
			return err
		}

		for i, question := range q.Questions {
			options, err := json.Marshal(question.Options)
			if err != nil {
				return fmt.Errorf("encode options for %s: %w", question.QID, err)
			}
			if _, err := c.exec(ctx, `
INSERT INTO quiz_questions (quiz_id, position, qid, prompt, options, answer_index, explanation)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, q.ID, i, question.QID, question.Prompt, string(options), question.AnswerIndex, question.Explanation); err != nil {
				return err
			}
		}
		created = &q
		return nil
	})
	if err != nil {
		log.Error("failed to create quiz: %v", err)
		return nil, err
	}

	log.Info("created quiz %s lesson=%s version=%d", created.ID, created.LessonID, created.Version)
	return created, nil
}

func (r *quizRepository) LatestPublished(ctx context.Context, lessonID string) (*models.Quiz, error) {
	return r.findOne(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE lesson_id = ? AND published = ? ORDER BY version DESC LIMIT 1`, lessonID, true)
}

func (r *quizRepository) GetVersion(ctx context.Context, lessonID string, version int) (*models.Quiz, error) {
	return r.findOne(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE lesson_id = ? AND version = ?`, lessonID, version)
}

func (r *quizRepository) SetPublished(ctx context.Context, lessonID string, version int, published bool) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("setting published=%v on lesson %s version %d", published, lessonID, version)

	res, err := r.exec(ctx, `UPDATE quizzes SET published = ? WHERE lesson_id = ? AND version = ?`, published, lessonID, version)
	if err != nil {
		log.Error("failed to update quiz: %v", err)
		return err
	}
	return exactlyOne(res)
}

func (r *quizRepository) findOne(ctx context.Context, query string, args ...any) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")

	var (
		q          models.Quiz
		difficulty string
	)
	err := r.queryRow(ctx, query, args...).Scan(&q.ID, &q.LessonID, &q.Version, &q.Source, &difficulty, &q.Published, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load quiz: %v", err)
		return nil, err
	}
	q.Difficulty = models.Difficulty(difficulty)

	questions, err := r.questions(ctx, q.ID)
	if err != nil {
		log.Error("failed to load questions for quiz %s: %v", q.ID, err)
		return nil, err
	}
	q.Questions = questions
	return &q, nil
}

func (r *quizRepository) questions(ctx context.Context, quizID string) ([]models.Question, error) {
	rows, err := r.query(ctx, `
SELECT qid, prompt, options, answer_index, explanation
FROM quiz_questions
WHERE quiz_id = ?
ORDER BY position ASC
`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var (
			question models.Question
			options  string
		)
		if err := rows.Scan(&question.QID, &question.Prompt, &options, &question.AnswerIndex, &question.Explanation); err != nil {
			return nil, err
		}
		if question.Options, err = decodeStrings(options); err != nil {
			return nil, fmt.Errorf("decode options for %s: %w", question.QID, err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}
