package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/vytor/questledger/internal/logger"
)

// ErrConflict is returned by InTx after the retry budget is spent.
var ErrConflict = errors.New("transaction conflict")

// IsConflict reports whether err is a serialization or lock failure that a
// fresh transaction may not hit again.
func IsConflict(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// IsUniqueViolation reports whether err came from a unique or primary key constraint.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// InTx runs fn inside a transaction and commits it, retrying conflicts up to
// the configured budget. The transaction is detached from ctx cancellation and
// bounded by the transaction timeout instead, so it always ends in a commit
// or a full rollback.
func (db *DB) InTx(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("db")

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), db.txTimeout)
	defer cancel()

	var err error
	for attempt := 0; attempt <= db.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-txCtx.Done():
				return fmt.Errorf("%w: %v", ErrConflict, txCtx.Err())
			case <-time.After(time.Duration(attempt*attempt) * 10 * time.Millisecond):
			}
		}

		err = db.runTx(txCtx, fn)
		if err == nil {
			return nil
		}
		if !IsConflict(err) {
			return err
		}
		log.Warn("transaction conflict (attempt %d of %d): %v", attempt+1, db.maxRetries+1, err)
	}
	return fmt.Errorf("%w: %v", ErrConflict, err)
}

func (db *DB) runTx(ctx context.Context, fn func(context.Context, *sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("db")

	var opts *sql.TxOptions
	if db.dialect == Postgres {
		opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}
