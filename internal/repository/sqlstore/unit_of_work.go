package sqlstore

import (
	"context"
	"database/sql"

	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/repository"
)

type unitOfWork struct {
	db *db.DB
}

// NewUnitOfWork runs work on the database's transaction runner, which
// retries conflicts within its configured budget.
func NewUnitOfWork(database *db.DB) repository.UnitOfWork {
	return &unitOfWork{db: database}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return u.db.InTx(ctx, func(ctx context.Context, sqlTx *sql.Tx) error {
		return fn(ctx, newTxRepos(conn{q: sqlTx, dialect: u.db.Dialect()}))
	})
}

type txRepos struct {
	users    *userRepository
	attempts *attemptRepository
	wallet   *walletRepository
	weekly   *weeklyStatsRepository
}

func newTxRepos(c conn) *txRepos {
	return &txRepos{
		users:    &userRepository{conn: c},
		attempts: &attemptRepository{conn: c},
		wallet:   &walletRepository{conn: c},
		weekly:   &weeklyStatsRepository{conn: c},
	}
}

func (t *txRepos) Users() repository.UserRepository             { return t.users }
func (t *txRepos) Attempts() repository.AttemptRepository       { return t.attempts }
func (t *txRepos) Wallet() repository.WalletRepository          { return t.wallet }
func (t *txRepos) WeeklyStats() repository.WeeklyStatsRepository { return t.weekly }
