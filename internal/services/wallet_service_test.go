package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
	"github.com/vytor/questledger/internal/repository/sqlstore"
	"github.com/vytor/questledger/internal/services"
	"github.com/vytor/questledger/internal/testutil"
)

func TestWalletService_ReconcileDetectsDrift(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.MustClose(t, database)
	ctx := context.Background()

	users := sqlstore.NewUserRepository(database)
	ledger := sqlstore.NewWalletRepository(database)
	u, err := users.Create(ctx, "user-1")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	err = sqlstore.NewUnitOfWork(database).Do(ctx, func(ctx context.Context, tx repository.Tx) error {
		return tx.Wallet().Append(ctx,
			models.WalletTransaction{ID: "t1", UserID: "user-1", Type: models.TransactionEarn, Currency: models.CurrencyCoins, Amount: 20, Reason: models.ReasonLessonComplete, CreatedAt: now},
			models.WalletTransaction{ID: "t2", UserID: "user-1", Type: models.TransactionSpend, Currency: models.CurrencyCoins, Amount: 5, Reason: "shop", CreatedAt: now.Add(time.Second)},
			models.WalletTransaction{ID: "t3", UserID: "user-1", Type: models.TransactionEarn, Currency: models.CurrencyDiamonds, Amount: 5, Reason: models.ReasonMasteryBonus, CreatedAt: now.Add(2 * time.Second)},
		)
	})
	require.NoError(t, err)

	svc := services.NewWalletService(users, ledger)

	rec, err := svc.Reconcile(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assert.Equal(t, models.Wallet{Coins: 15, Diamonds: 5}, rec.Ledger)
	assert.Equal(t, models.Wallet{}, rec.Balance)
	assert.Equal(t, 3, rec.Entries)

	u.Wallet = models.Wallet{Coins: 15, Diamonds: 5}
	require.NoError(t, users.Update(ctx, *u))

	rec, err = svc.Reconcile(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)

	txs, err := svc.Transactions(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, txs, 3)
	assert.Equal(t, "t1", txs[0].ID)
}

func TestWalletService_UnknownUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.MustClose(t, database)

	svc := services.NewWalletService(sqlstore.NewUserRepository(database), sqlstore.NewWalletRepository(database))
	_, err := svc.Reconcile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.Code(err))

	txs, err := svc.Transactions(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, txs)
}
