package models

import "time"

type TransactionType string

const (
	TransactionEarn  TransactionType = "earn"
	TransactionSpend TransactionType = "spend"
)

type Currency string

const (
	CurrencyCoins    Currency = "coins"
	CurrencyDiamonds Currency = "diamonds"
)

const (
	ReasonLessonComplete = "lesson_complete"
	ReasonMasteryBonus   = "mastery_bonus"
)

// WalletTransaction is an append-only ledger row.
type WalletTransaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Type      TransactionType `json:"type"`
	Currency  Currency        `json:"currency"`
	Amount    int             `json:"amount"`
	Reason    string          `json:"reason"`
	AttemptID string          `json:"attemptId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Signed returns the amount as it affects the balance.
func (t WalletTransaction) Signed() int {
	if t.Type == TransactionSpend {
		return -t.Amount
	}
	return t.Amount
}

// WalletReconciliation compares the stored balance with the ledger sums.
type WalletReconciliation struct {
	UserID     string `json:"userId"`
	Balance    Wallet `json:"balance"`
	Ledger     Wallet `json:"ledger"`
	Entries    int    `json:"entries"`
	Consistent bool   `json:"consistent"`
}
