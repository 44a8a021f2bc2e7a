package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/questledger/internal/config"
	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Operator tool for the questledger store",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cfg := config.Load()
	rootCmd.PersistentFlags().String("driver", cfg.DBDriver, "database driver (sqlite3 or postgres), defaults to DB_DRIVER")
	rootCmd.PersistentFlags().String("dsn", cfg.DBDSN, "database DSN, defaults to DB_DSN")
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(tokenCmd)
}

// commandContext carries a logger sized by --verbose.
func commandContext(cmd *cobra.Command) context.Context {
	level := logger.WARN
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = logger.DEBUG
	}
	log := logger.New(logger.WithOutput(cmd.ErrOrStderr()), logger.WithLevel(level))
	logger.SetDefault(log)
	return logger.NewContext(cmd.Context(), log)
}

// openDB opens the store named by --driver/--dsn. Opening applies any
// pending migrations.
func openDB(ctx context.Context, cmd *cobra.Command) (*db.DB, error) {
	driver, _ := cmd.Flags().GetString("driver")
	dsn, _ := cmd.Flags().GetString("dsn")

	cfg := config.Load()
	database, err := db.Open(ctx, db.Options{
		Driver:     driver,
		DSN:        dsn,
		MaxRetries: cfg.TxMaxRetries,
		TxTimeout:  cfg.TxTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return database, nil
}
