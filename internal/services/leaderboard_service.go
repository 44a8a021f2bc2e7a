package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vytor/questledger/internal/cache"
	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/gamification"
	"github.com/vytor/questledger/internal/leaderboard"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

// LeaderboardService ranks users for a week from the weekly rollups.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, q models.LeaderboardQuery) (*models.Leaderboard, error)
	// Invalidate drops every cached view of the week.
	Invalidate(ctx context.Context, weekStart string) error
}

// LeaderboardLimits bounds the number of entries a caller may request.
type LeaderboardLimits struct {
	Default int
	Max     int
}

func DefaultLeaderboardLimits() LeaderboardLimits {
	return LeaderboardLimits{Default: 50, Max: 100}
}

type leaderboardService struct {
	stats  repository.WeeklyStatsRepository
	cache  cache.LeaderboardCache
	ttl    time.Duration
	limits LeaderboardLimits
	now    func() time.Time
	group  singleflight.Group

	// generations counts invalidations per week. A computation only caches
	// its result if no invalidation happened while it was reading.
	mu          sync.Mutex
	generations map[string]uint64
}

type LeaderboardOption func(*leaderboardService)

func WithLeaderboardCache(c cache.LeaderboardCache, ttl time.Duration) LeaderboardOption {
	return func(s *leaderboardService) {
		s.cache = c
		s.ttl = ttl
	}
}

func WithLeaderboardLimits(l LeaderboardLimits) LeaderboardOption {
	return func(s *leaderboardService) { s.limits = l }
}

func WithLeaderboardClock(now func() time.Time) LeaderboardOption {
	return func(s *leaderboardService) { s.now = now }
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(stats repository.WeeklyStatsRepository, opts ...LeaderboardOption) LeaderboardService {
	s := &leaderboardService{
		stats:  stats,
		cache:  cache.Noop{},
		limits:      DefaultLeaderboardLimits(),
		now:         time.Now,
		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *leaderboardService) Leaderboard(ctx context.Context, q models.LeaderboardQuery) (*models.Leaderboard, error) {
	q, err := s.normalize(q)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithPrefix("leaderboard_service").WithFields(map[string]any{
		"week_start": q.WeekStart,
		"type":       q.Type,
		"limit":      q.Limit,
	})
	view := fmt.Sprintf("%s:%d", q.Type, q.Limit)

	entries, hit, err := s.cache.Get(ctx, q.WeekStart, view)
	if err != nil {
		log.Warn("cache read failed, computing: %v", err)
	}
	if hit {
		log.Debug("cache hit")
		return &models.Leaderboard{WeekStart: q.WeekStart, Type: q.Type, Entries: entries}, nil
	}

	gen := s.generation(q.WeekStart)
	key := fmt.Sprintf("%s|%s|%d", q.WeekStart, view, gen)
	v, err, shared := s.group.Do(key, func() (any, error) {
		// Joined callers share this work, so one caller's cancellation must not fail the rest.
		sctx := context.WithoutCancel(ctx)
		rows, err := s.stats.ListByWeek(sctx, q.WeekStart)
		if err != nil {
			return nil, err
		}
		ranked := leaderboard.Rank(q.Type, rows, q.Limit)
		if s.generation(q.WeekStart) != gen {
			log.Debug("week invalidated during computation, not caching")
			return ranked, nil
		}
		if err := s.cache.Set(sctx, q.WeekStart, view, ranked, s.ttl); err != nil {
			log.Warn("cache write failed: %v", err)
		}
		return ranked, nil
	})
	if err != nil {
		log.Error("failed to load weekly stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if shared {
		log.Debug("joined in-flight computation")
	}

	ranked := v.([]models.LeaderboardEntry)
	out := make([]models.LeaderboardEntry, len(ranked))
	copy(out, ranked)
	return &models.Leaderboard{WeekStart: q.WeekStart, Type: q.Type, Entries: out}, nil
}

// Invalidate bumps the week's generation before deleting cached views, so a
// computation already in flight in this process will not write back stale
// entries. Other instances sharing the cache can still do so until the TTL
// expires.
func (s *leaderboardService) Invalidate(ctx context.Context, weekStart string) error {
	s.mu.Lock()
	s.generations[weekStart]++
	s.mu.Unlock()
	return s.cache.Invalidate(ctx, weekStart)
}

func (s *leaderboardService) generation(weekStart string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[weekStart]
}

// normalize fills defaults and snaps weekStart to its Monday.
func (s *leaderboardService) normalize(q models.LeaderboardQuery) (models.LeaderboardQuery, error) {
	switch q.Type {
	case "":
		q.Type = models.LeaderboardGrowth
	case models.LeaderboardGrowth, models.LeaderboardMastery:
	default:
		return q, errors.NewValidationError("type", "must be growth or mastery")
	}

	if strings.TrimSpace(q.WeekStart) == "" {
		q.WeekStart = gamification.WeekKey(s.now())
	} else {
		week, err := gamification.NormalizeWeek(strings.TrimSpace(q.WeekStart))
		if err != nil {
			return q, errors.NewValidationError("weekStart", "must be a YYYY-MM-DD date")
		}
		q.WeekStart = week
	}

	switch {
	case q.Limit < 0:
		return q, errors.NewValidationError("limit", "must be positive")
	case q.Limit == 0:
		q.Limit = s.limits.Default
	case q.Limit > s.limits.Max:
		q.Limit = s.limits.Max
	}
	return q, nil
}
