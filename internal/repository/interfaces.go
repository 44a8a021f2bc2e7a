package repository

import (
	"context"

	"github.com/vytor/questledger/internal/models"
)

// UserRepository handles gamification state of accounts
type UserRepository interface {
	Create(ctx context.Context, id string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	// GetForUpdate reads the user and, where the store supports it, locks the row
	// for the rest of the transaction.
	GetForUpdate(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user models.User) error
}

// QuizRepository handles versioned quizzes
type QuizRepository interface {
	// Create stores a new version numbered latest+1 for the lesson.
	Create(ctx context.Context, draft models.QuizDraft) (*models.Quiz, error)
	LatestPublished(ctx context.Context, lessonID string) (*models.Quiz, error)
	GetVersion(ctx context.Context, lessonID string, version int) (*models.Quiz, error)
	SetPublished(ctx context.Context, lessonID string, version int, published bool) error
}

// AttemptRepository handles submitted attempts
type AttemptRepository interface {
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*models.Attempt, error)
	// CountForLessonInWeek counts the user's stored attempts on a lesson in the given week.
	CountForLessonInWeek(ctx context.Context, userID, lessonID, weekStart string) (int, error)
	Insert(ctx context.Context, attempt models.Attempt, weekStart string) error
}

// WalletRepository handles the append-only ledger
type WalletRepository interface {
	Append(ctx context.Context, entries ...models.WalletTransaction) error
	ListByUser(ctx context.Context, userID string) ([]models.WalletTransaction, error)
}

// WeeklyStatsRepository handles per-user weekly rollups
type WeeklyStatsRepository interface {
	// Ensure inserts a zeroed row for the key if none exists and returns the current row.
	Ensure(ctx context.Context, userID, weekStart string) (*models.UserWeeklyStats, error)
	Get(ctx context.Context, userID, weekStart string) (*models.UserWeeklyStats, error)
	Update(ctx context.Context, stats models.UserWeeklyStats) error
	ListByWeek(ctx context.Context, weekStart string) ([]models.UserWeeklyStats, error)
}

// Tx exposes repositories bound to one open transaction.
type Tx interface {
	Users() UserRepository
	Attempts() AttemptRepository
	Wallet() WalletRepository
	WeeklyStats() WeeklyStatsRepository
}

// UnitOfWork runs fn in a single atomic transaction. Everything written
// through tx is committed together or not at all.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
