package services

import (
	"context"

	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

// WalletService exposes balances and checks them against the ledger.
type WalletService interface {
	Reconcile(ctx context.Context, userID string) (*models.WalletReconciliation, error)
	Transactions(ctx context.Context, userID string) ([]models.WalletTransaction, error)
}

type walletService struct {
	users  repository.UserRepository
	ledger repository.WalletRepository
}

// NewWalletService creates a new WalletService
func NewWalletService(users repository.UserRepository, ledger repository.WalletRepository) WalletService {
	return &walletService{users: users, ledger: ledger}
}

func (s *walletService) Reconcile(ctx context.Context, userID string) (*models.WalletReconciliation, error) {
	log := logger.FromContext(ctx).WithPrefix("wallet_service").WithField("user_id", userID)

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	entries, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load ledger: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var sums models.Wallet
	for _, e := range entries {
		switch e.Currency {
		case models.CurrencyCoins:
			sums.Coins += e.Signed()
		case models.CurrencyDiamonds:
			sums.Diamonds += e.Signed()
		}
	}

	rec := &models.WalletReconciliation{
		UserID:     userID,
		Balance:    user.Wallet,
		Ledger:     sums,
		Entries:    len(entries),
		Consistent: sums == user.Wallet,
	}
	if !rec.Consistent {
		log.Warn("wallet drift: balance=%+v ledger=%+v", user.Wallet, sums)
	}
	return rec, nil
}

func (s *walletService) Transactions(ctx context.Context, userID string) ([]models.WalletTransaction, error) {
	entries, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list wallet transactions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.WalletTransaction{}
	}
	return entries, nil
}
