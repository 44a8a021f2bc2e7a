package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/questledger/internal/api"
	"github.com/vytor/questledger/internal/auth"
	"github.com/vytor/questledger/internal/cache"
	"github.com/vytor/questledger/internal/config"
	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/jobs"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/repository/sqlstore"
	"github.com/vytor/questledger/internal/services"
	"github.com/vytor/questledger/internal/worker"
)

func main() {
	cfg := config.Load()

	format := logger.ParseFormat(cfg.LogFormat)
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(format),
		logger.WithColors(format == logger.FormatText),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("questledger server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s log_format=%s", cfg.LogLevel, cfg.LogFormat)
	log.Debug("redis_addr=%q cache_ttl=%s", cfg.RedisAddr, cfg.LeaderboardCacheTTL)
	log.Debug("tx_max_retries=%d tx_timeout=%s", cfg.TxMaxRetries, cfg.TxTimeout)
	log.Debug("worker_count=%d queue_size=%d", cfg.WorkerCount, cfg.QueueSize)
	log.Debug("engagement_floor_sec=%d eligible_xp_cap=%d", cfg.EngagementFloorSec, cfg.EligibleXPCap)

	ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), log))
	defer cancel()

	database, err := db.Open(ctx, db.Options{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DBDSN,
		MaxRetries: cfg.TxMaxRetries,
		TxTimeout:  cfg.TxTimeout,
	})
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	var leaderboardCache cache.LeaderboardCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("leaderboard cache disabled: %v", err)
		} else {
			defer client.Close()
			leaderboardCache = cache.NewRedisLeaderboardCache(client)
			log.Info("leaderboard cache enabled at %s", cfg.RedisAddr)
		}
	}

	users := sqlstore.NewUserRepository(database)
	quizzes := sqlstore.NewQuizRepository(database)
	attempts := sqlstore.NewAttemptRepository(database)
	wallet := sqlstore.NewWalletRepository(database)
	weekly := sqlstore.NewWeeklyStatsRepository(database)

	leaderboardService := services.NewLeaderboardService(weekly,
		services.WithLeaderboardCache(leaderboardCache, cfg.LeaderboardCacheTTL),
		services.WithLeaderboardLimits(services.LeaderboardLimits{
			Default: cfg.LeaderboardDefaultLimit,
			Max:     cfg.LeaderboardMaxLimit,
		}),
	)

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	pool.Start(ctx)

	attemptService := services.NewAttemptService(
		quizzes,
		attempts,
		sqlstore.NewUnitOfWork(database),
		services.NewWeeklyStatsAggregator(services.WeeklyPolicy{
			EngagementFloorSec: cfg.EngagementFloorSec,
			EligibleXPCap:      cfg.EligibleXPCap,
		}),
		services.WithJobQueue(jobs.NewWorkerQueue(pool, leaderboardService)),
	)

	srv := &api.Server{
		Attempts:      attemptService,
		Leaderboards:  leaderboardService,
		Wallets:       services.NewWalletService(users, wallet),
		Verifier:      auth.NewHMACVerifier(cfg.JWTSecret),
		DB:            database,
		ClientOrigins: cfg.ClientOrigins,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// In-flight submissions finish their transactions before the pool and
	// database go away.
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()
	cancel()

	log.Info("questledger server stopped")
}
