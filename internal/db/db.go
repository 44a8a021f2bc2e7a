package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vytor/questledger/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

type Options struct {
	Driver     string
	DSN        string
	MaxRetries int
	TxTimeout  time.Duration
}

type DB struct {
	*sql.DB
	dialect    Dialect
	maxRetries int
	txTimeout  time.Duration
	log        *logger.Logger
}

// Open connects, verifies the connection and applies pending migrations.
func Open(ctx context.Context, opts Options) (*DB, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	dialect := Dialect(opts.Driver)
	var dsn string
	switch dialect {
	case SQLite:
		dsn = sqliteDSN(opts.DSN)
	case Postgres:
		dsn = opts.DSN
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}
	log.Info("opening %s database", dialect)

	sqlDB, err := sql.Open(string(dialect), dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	if dialect == SQLite {
		// One connection serializes writers; the pool queues everyone else.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		log.Error("database ping failed: %v", err)
		return nil, err
	}

	if opts.TxTimeout <= 0 {
		opts.TxTimeout = 10 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	db := &DB{
		DB:         sqlDB,
		dialect:    dialect,
		maxRetries: opts.MaxRetries,
		txTimeout:  opts.TxTimeout,
		log:        log,
	}

	log.Debug("applying migrations")
	if err := db.applyMigrations(ctx); err != nil {
		_ = sqlDB.Close()
		log.Error("failed to apply migrations: %v", err)
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_txlock=immediate"
}

// Dialect reports which SQL flavour the connection speaks.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Builder returns a squirrel builder with the dialect's placeholder format.
func (db *DB) Builder() squirrel.StatementBuilderType {
	return Builder(db.dialect)
}

// Rebind rewrites ? placeholders for the connection's dialect.
func (db *DB) Rebind(query string) string {
	return Rebind(db.dialect, query)
}

func Builder(d Dialect) squirrel.StatementBuilderType {
	if d == Postgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}
	out, err := squirrel.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return query
	}
	return out
}

func (db *DB) applyMigrations(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := db.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			db.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return err
		}
		db.log.Info("applying migration: %s", version)
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			db.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := db.ExecContext(ctx, db.Rebind(`INSERT INTO schema_migrations (version) VALUES (?)`), version); err != nil {
			return err
		}
		db.log.Info("migration %s applied successfully", version)
	}
	return nil
}

func (db *DB) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var v string
	err := db.QueryRowContext(ctx, db.Rebind(`SELECT version FROM schema_migrations WHERE version = ?`), version).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// AppliedMigrations lists applied migration versions in order.
func (db *DB) AppliedMigrations(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
