package api

import (
	"context"

	"github.com/vytor/questledger/internal/auth"
	"github.com/vytor/questledger/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	Attempts      services.AttemptService
	Leaderboards  services.LeaderboardService
	Wallets       services.WalletService
	Verifier      auth.Verifier
	DB            Pinger
	ClientOrigins []string
}
