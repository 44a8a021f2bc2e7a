package sqlstore

import (
	"context"

	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

type walletRepository struct {
	conn
}

// NewWalletRepository creates a WalletRepository outside any transaction.
func NewWalletRepository(database *db.DB) repository.WalletRepository {
	return &walletRepository{conn: newConn(database)}
}

func (r *walletRepository) Append(ctx context.Context, entries ...models.WalletTransaction) error {
	log := logger.FromContext(ctx).WithPrefix("wallet_repo")

	for _, e := range entries {
		log.Debug("ledger %s %s %d (%s) user=%s", e.Type, e.Currency, e.Amount, e.Reason, e.UserID)
		if _, err := r.exec(ctx, `
INSERT INTO wallet_transactions (id, user_id, type, currency, amount, reason, attempt_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.UserID, string(e.Type), string(e.Currency), e.Amount, e.Reason, nullString(e.AttemptID), e.CreatedAt); err != nil {
			log.Error("failed to append ledger entry: %v", err)
			return err
		}
	}
	return nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID string) ([]models.WalletTransaction, error) {
	log := logger.FromContext(ctx).WithPrefix("wallet_repo")

	query, args, err := db.Builder(r.dialect).
		Select("id", "user_id", "type", "currency", "amount", "reason", "COALESCE(attempt_id, '')", "created_at").
		From("wallet_transactions").
		Where("user_id = ?", userID).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list ledger: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := []models.WalletTransaction{}
	for rows.Next() {
		var (
			e        models.WalletTransaction
			typ, cur string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &typ, &cur, &e.Amount, &e.Reason, &e.AttemptID, &e.CreatedAt); err != nil {
			log.Error("failed to scan ledger row: %v", err)
			return nil, err
		}
		e.Type = models.TransactionType(typ)
		e.Currency = models.Currency(cur)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
