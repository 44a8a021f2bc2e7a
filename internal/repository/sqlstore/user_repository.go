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

const userColumns = `id, total_xp, level, streak_count, last_active_date, coins, diamonds, created_at, updated_at`

type userRepository struct {
	conn
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(database *db.DB) repository.UserRepository {
	return &userRepository{conn: newConn(database)}
}

func (r *userRepository) Create(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("creating user: id=%s", id)

	now := utcNow()
	if _, err := r.exec(ctx, `
INSERT INTO users (id, total_xp, level, streak_count, coins, diamonds, created_at, updated_at)
VALUES (?, 0, 1, 0, 0, 0, ?, ?)
ON CONFLICT (id) DO NOTHING
`, id, now, now); err != nil {
		log.Error("failed to create user: %v", err)
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, id, "")
}

func (r *userRepository) GetForUpdate(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, id, r.forUpdate())
}

func (r *userRepository) get(ctx context.Context, id, suffix string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	var (
		u          models.User
		lastActive sql.NullString
	)
	err := r.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`+suffix, id).Scan(
		&u.ID, &u.TotalXP, &u.Level, &u.StreakCount, &lastActive,
		&u.Wallet.Coins, &u.Wallet.Diamonds, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	u.LastActiveDate = lastActive.String
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u models.User) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user: id=%s xp=%d level=%d streak=%d", u.ID, u.TotalXP, u.Level, u.StreakCount)

	res, err := r.exec(ctx, `
UPDATE users
SET total_xp = ?, level = ?, streak_count = ?, last_active_date = ?, coins = ?, diamonds = ?, updated_at = ?
WHERE id = ?
`, u.TotalXP, u.Level, u.StreakCount, nullString(u.LastActiveDate), u.Wallet.Coins, u.Wallet.Diamonds, utcNow(), u.ID)
	if err != nil {
		log.Error("failed to update user: %v", err)
		return err
	}
	return exactlyOne(res)
}
