package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

// QuizService manages quiz versions. Existing versions are never edited;
// a change is a new version.
type QuizService interface {
	CreateVersion(ctx context.Context, draft models.QuizDraft) (*models.Quiz, error)
	Publish(ctx context.Context, lessonID string, version int) (*models.Quiz, error)
	Unpublish(ctx context.Context, lessonID string, version int) error
	Latest(ctx context.Context, lessonID string) (*models.Quiz, error)
}

type quizService struct {
	quizzes repository.QuizRepository
}

// NewQuizService creates a new QuizService
func NewQuizService(quizzes repository.QuizRepository) QuizService {
	return &quizService{quizzes: quizzes}
}

func (s *quizService) CreateVersion(ctx context.Context, draft models.QuizDraft) (*models.Quiz, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_service").WithField("lesson_id", draft.LessonID)

	d, err := validateDraft(draft)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizzes.Create(ctx, d)
	if err != nil {
		log.Error("failed to create quiz version: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("created quiz version %d (published=%v, %d questions)", quiz.Version, quiz.Published, len(quiz.Questions))
	return quiz, nil
}

func (s *quizService) Publish(ctx context.Context, lessonID string, version int) (*models.Quiz, error) {
	if err := s.setPublished(ctx, lessonID, version, true); err != nil {
		return nil, err
	}
	quiz, err := s.quizzes.GetVersion(ctx, lessonID, version)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return quiz, nil
}

func (s *quizService) Unpublish(ctx context.Context, lessonID string, version int) error {
	return s.setPublished(ctx, lessonID, version, false)
}

func (s *quizService) setPublished(ctx context.Context, lessonID string, version int, published bool) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_service")

	existing, err := s.quizzes.GetVersion(ctx, lessonID, version)
	if err != nil {
		log.Error("failed to load quiz %s v%d: %v", lessonID, version, err)
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("quiz", fmt.Sprintf("%s v%d", lessonID, version))
	}
	if err := s.quizzes.SetPublished(ctx, lessonID, version, published); err != nil {
		log.Error("failed to update quiz %s v%d: %v", lessonID, version, err)
		return errors.NewInternalError(err)
	}
	log.Info("quiz %s v%d published=%v", lessonID, version, published)
	return nil
}

func (s *quizService) Latest(ctx context.Context, lessonID string) (*models.Quiz, error) {
	quiz, err := s.quizzes.LatestPublished(ctx, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		return nil, errors.NewQuizNotFoundError(lessonID)
	}
	return quiz, nil
}

func validateDraft(draft models.QuizDraft) (models.QuizDraft, error) {
	if strings.TrimSpace(draft.LessonID) == "" {
		return draft, errors.NewValidationError("lessonId", "required")
	}
	d, ok := models.ParseDifficulty(string(draft.Difficulty))
	if !ok {
		return draft, errors.NewValidationError("difficulty", "must be easy, medium or hard")
	}
	draft.Difficulty = d
	if len(draft.Questions) == 0 {
		return draft, errors.NewValidationError("questions", "at least one question is required")
	}

	seen := make(map[string]bool, len(draft.Questions))
	for i, q := range draft.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		switch {
		case strings.TrimSpace(q.QID) == "":
			return draft, errors.NewValidationError(field+".qid", "required")
		case seen[q.QID]:
			return draft, errors.NewValidationError(field+".qid", "duplicate qid "+q.QID)
		case len(q.Options) < 2:
			return draft, errors.NewValidationError(field+".options", "at least two options are required")
		case q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options):
			return draft, errors.NewValidationError(field+".answerIndex", "out of range")
		}
		seen[q.QID] = true
	}
	return draft, nil
}
