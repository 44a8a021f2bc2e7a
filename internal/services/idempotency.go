package services

import (
	"context"

	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

// IdempotencyGuard short-circuits submissions that were already processed.
// It is consulted once before scoring and again inside the transaction.
type IdempotencyGuard struct{}

// Check returns the stored result for (userID, key), or nil if none exists.
func (IdempotencyGuard) Check(ctx context.Context, attempts repository.AttemptRepository, userID, key string) (*models.SubmitResult, error) {
	prior, err := attempts.FindByIdempotencyKey(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, nil
	}
	logger.FromContext(ctx).Info("replaying attempt %s for idempotency key", prior.ID)
	res := prior.Result()
	res.Replayed = true
	return &res, nil
}
