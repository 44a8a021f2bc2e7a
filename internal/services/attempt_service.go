package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/gamification"
	"github.com/vytor/questledger/internal/jobs"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

const (
	maxIdempotencyKeyLen = 128
	maxAnswers           = 500
)

// AttemptService scores quiz submissions and applies their rewards exactly once.
type AttemptService interface {
	Submit(ctx context.Context, userID string, req models.SubmitRequest) (*models.SubmitResult, error)
}

type attemptService struct {
	quizzes  repository.QuizRepository
	attempts repository.AttemptRepository
	uow      repository.UnitOfWork
	weekly   *WeeklyStatsAggregator
	queue    jobs.JobQueue
	guard    IdempotencyGuard
	now      func() time.Time
}

type AttemptOption func(*attemptService)

// WithAttemptClock overrides the submission clock.
func WithAttemptClock(now func() time.Time) AttemptOption {
	return func(s *attemptService) { s.now = now }
}

// WithJobQueue enables post-commit leaderboard invalidation.
func WithJobQueue(q jobs.JobQueue) AttemptOption {
	return func(s *attemptService) { s.queue = q }
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(
	quizzes repository.QuizRepository,
	attempts repository.AttemptRepository,
	uow repository.UnitOfWork,
	weekly *WeeklyStatsAggregator,
	opts ...AttemptOption,
) AttemptService {
	s := &attemptService{
		quizzes:  quizzes,
		attempts: attempts,
		uow:      uow,
		weekly:   weekly,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *attemptService) Submit(ctx context.Context, userID string, req models.SubmitRequest) (*models.SubmitResult, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_service").WithFields(map[string]any{
		"user_id":         userID,
		"lesson_id":       req.LessonID,
		"idempotency_key": req.IdempotencyKey,
	})
	ctx = logger.NewContext(ctx, log)
	log.Debug("received submission with %d answers", len(req.Answers))

	if err := validateSubmit(userID, req); err != nil {
		return nil, err
	}

	prior, err := s.guard.Check(ctx, s.attempts, userID, req.IdempotencyKey)
	if err != nil {
		log.Error("idempotency lookup failed: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if prior != nil {
		return prior, nil
	}

	quiz, err := s.quizzes.LatestPublished(ctx, req.LessonID)
	if err != nil {
		log.Error("quiz lookup failed: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		log.Warn("no published quiz")
		return nil, errors.NewQuizNotFoundError(req.LessonID)
	}

	answers, score := grade(quiz.Questions, req.Answers)
	total := len(quiz.Questions)
	rewards := gamification.Award(score, total, quiz.Difficulty)
	now := s.now().UTC()

	attempt := models.Attempt{
		ID:              uuid.NewString(),
		UserID:          userID,
		LessonID:        req.LessonID,
		QuizVersion:     quiz.Version,
		Difficulty:      quiz.Difficulty,
		Answers:         answers,
		Score:           score,
		TotalQuestions:  total,
		XPAwarded:       rewards.XP,
		CoinsAwarded:    rewards.Coins,
		DiamondsAwarded: rewards.Diamonds,
		TimeSpentSec:    req.TimeSpentSec,
		IdempotencyKey:  req.IdempotencyKey,
		CreatedAt:       now,
	}

	var (
		replay  *models.SubmitResult
		outcome *WeeklyOutcome
	)
	err = s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx) error {
		replay, outcome = nil, nil

		again, err := s.guard.Check(ctx, tx.Attempts(), userID, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if again != nil {
			replay = again
			return nil
		}

		outcome, err = s.commit(ctx, tx, attempt)
		return err
	})
	if err != nil {
		return s.resolveFailure(ctx, userID, req.IdempotencyKey, err)
	}
	if replay != nil {
		return replay, nil
	}

	log.Info("attempt %s committed: score=%d/%d xp=%d coins=%d diamonds=%d eligible=%v",
		attempt.ID, score, total, rewards.XP, rewards.Coins, rewards.Diamonds, outcome.Eligible)

	if s.queue != nil {
		if err := s.queue.EnqueueLeaderboardInvalidation(outcome.WeekStart); err != nil {
			log.Warn("failed to enqueue leaderboard invalidation for %s: %v", outcome.WeekStart, err)
		}
	}

	res := attempt.Result()
	return &res, nil
}

// commit loads the user, applies every delta and appends the attempt and its
// ledger rows. It runs inside the unit of work.
func (s *attemptService) commit(ctx context.Context, tx repository.Tx, attempt models.Attempt) (*WeeklyOutcome, error) {
	user, err := tx.Users().GetForUpdate(ctx, attempt.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewUserNotFoundError(attempt.UserID)
	}

	streak := gamification.NextStreak(gamification.Streak{
		Count:          user.StreakCount,
		LastActiveDate: user.LastActiveDate,
	}, attempt.CreatedAt)

	user.TotalXP += attempt.XPAwarded
	user.Level = gamification.Level(user.TotalXP)
	user.StreakCount = streak.Count
	user.LastActiveDate = streak.LastActiveDate
	user.Wallet.Coins += attempt.CoinsAwarded
	user.Wallet.Diamonds += attempt.DiamondsAwarded
	if err := tx.Users().Update(ctx, *user); err != nil {
		return nil, err
	}

	outcome, err := s.weekly.Apply(ctx, tx, WeeklyInput{
		UserID:       attempt.UserID,
		LessonID:     attempt.LessonID,
		At:           attempt.CreatedAt,
		Difficulty:   attempt.Difficulty,
		Total:        attempt.TotalQuestions,
		Score:        attempt.Score,
		XP:           attempt.XPAwarded,
		TimeSpentSec: attempt.TimeSpentSec,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Attempts().Insert(ctx, attempt, outcome.WeekStart); err != nil {
		return nil, err
	}

	// The diamonds row is written even at zero so every attempt has the same
	// ledger footprint.
	if err := tx.Wallet().Append(ctx,
		ledgerEntry(attempt, models.CurrencyCoins, attempt.CoinsAwarded, models.ReasonLessonComplete),
		ledgerEntry(attempt, models.CurrencyDiamonds, attempt.DiamondsAwarded, models.ReasonMasteryBonus),
	); err != nil {
		return nil, err
	}
	return outcome, nil
}

// resolveFailure maps a failed unit of work to the caller-facing error. A
// lost race on the idempotency key resolves to the winner's result.
func (s *attemptService) resolveFailure(ctx context.Context, userID, key string, err error) (*models.SubmitResult, error) {
	log := logger.FromContext(ctx)

	if db.IsUniqueViolation(err) {
		prior, lookupErr := s.guard.Check(ctx, s.attempts, userID, key)
		if lookupErr == nil && prior != nil {
			return prior, nil
		}
	}

	if appErr, ok := errors.As(err); ok {
		if appErr.Status >= 500 {
			log.Error("submission aborted: %v", err)
		} else {
			log.Warn("submission aborted: %v", err)
		}
		return nil, appErr
	}
	if db.IsConflict(err) {
		log.Warn("submission aborted after conflicts: %v", err)
		return nil, errors.NewConflictError(err)
	}
	log.Error("submission aborted: %v", err)
	return nil, errors.NewInternalError(err)
}

func ledgerEntry(a models.Attempt, currency models.Currency, amount int, reason string) models.WalletTransaction {
	return models.WalletTransaction{
		ID:        uuid.NewString(),
		UserID:    a.UserID,
		Type:      models.TransactionEarn,
		Currency:  currency,
		Amount:    amount,
		Reason:    reason,
		AttemptID: a.ID,
		CreatedAt: a.CreatedAt,
	}
}

// grade marks each answer against the quiz. Unknown qids are wrong, and a
// qid answered twice only counts its first answer.
func grade(questions []models.Question, input []models.AnswerInput) ([]models.AttemptAnswer, int) {
	byQID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byQID[q.QID] = q
	}

	seen := make(map[string]bool, len(input))
	answers := make([]models.AttemptAnswer, 0, len(input))
	score := 0
	for _, in := range input {
		q, known := byQID[in.QID]
		selected := -1
		if in.SelectedIndex != nil {
			selected = *in.SelectedIndex
		}
		correct := known && !seen[in.QID] && selected == q.AnswerIndex
		if known {
			seen[in.QID] = true
		}
		if correct {
			score++
		}
		answers = append(answers, models.AttemptAnswer{
			QID:           in.QID,
			SelectedIndex: selected,
			Correct:       correct,
		})
	}
	return answers, score
}

func validateSubmit(userID string, req models.SubmitRequest) error {
	if strings.TrimSpace(userID) == "" {
		return errors.NewUnauthorizedError("missing user identity")
	}

	var verr *errors.AppError
	add := func(field, reason string) {
		if verr == nil {
			verr = errors.NewValidationError(field, reason)
			return
		}
		verr = verr.WithDetail(field, reason)
	}

	if strings.TrimSpace(req.LessonID) == "" {
		add("lessonId", "required")
	}
	switch key := req.IdempotencyKey; {
	case strings.TrimSpace(key) == "":
		add("idempotencyKey", "required")
	case len(key) > maxIdempotencyKeyLen:
		add("idempotencyKey", fmt.Sprintf("must be at most %d characters", maxIdempotencyKeyLen))
	}
	if req.TimeSpentSec != nil && *req.TimeSpentSec < 0 {
		add("timeSpentSec", "must not be negative")
	}
	switch {
	case req.Answers == nil:
		add("answers", "required")
	case len(req.Answers) > maxAnswers:
		add("answers", fmt.Sprintf("must have at most %d entries", maxAnswers))
	}
	for i, a := range req.Answers {
		if strings.TrimSpace(a.QID) == "" {
			add(fmt.Sprintf("answers[%d].qid", i), "required")
		}
		switch {
		case a.SelectedIndex == nil:
			add(fmt.Sprintf("answers[%d].selectedIndex", i), "required")
		case *a.SelectedIndex < 0:
			add(fmt.Sprintf("answers[%d].selectedIndex", i), "must not be negative")
		}
	}

	if verr != nil {
		return verr
	}
	return nil
}
