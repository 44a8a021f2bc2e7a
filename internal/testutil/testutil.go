package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/logger"
)

// NewTestDB opens a private in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	ctx := logger.NewContext(context.Background(), logger.Discard())
	database, err := db.Open(ctx, db.Options{
		Driver:     string(db.SQLite),
		DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxRetries: 2,
		TxTimeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Clock is a settable time source for services under test.
type Clock struct {
	Now time.Time
}

func (c *Clock) Time() time.Time { return c.Now }

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) { c.Now = c.Now.Add(d) }
