package api

import (
	"net/http"

	"github.com/vytor/questledger/internal/auth"
	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/models"
)

type walletResponse struct {
	*models.WalletReconciliation
	Transactions []models.WalletTransaction `json:"transactions"`
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handleError(w, r, errors.NewUnauthorizedError("missing user identity"))
		return
	}

	rec, err := s.Wallets.Reconcile(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	txs, err := s.Wallets.Transactions(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, walletResponse{WalletReconciliation: rec, Transactions: txs})
}
