package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/questledger/internal/db"
	"github.com/vytor/questledger/internal/logger"
	"github.com/vytor/questledger/internal/models"
	"github.com/vytor/questledger/internal/repository"
)

var weeklyColumns = []string{
	"user_id", "week_start", "lessons_completed", "questions_attempted", "questions_correct",
	"hard_perfect_count", "eligible_xp", "active_days", "last_active_day", "daily_cap_used",
	"suspicious_flags", "created_at", "updated_at",
}

type weeklyStatsRepository struct {
	conn
}

// NewWeeklyStatsRepository creates a WeeklyStatsRepository outside any transaction.
func NewWeeklyStatsRepository(database *db.DB) repository.WeeklyStatsRepository {
	return &weeklyStatsRepository{conn: newConn(database)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeekly(row rowScanner) (*models.UserWeeklyStats, error) {
	var (
		s         models.UserWeeklyStats
		lastDay   sql.NullString
		flagsJSON string
	)
	if err := row.Scan(
		&s.UserID, &s.WeekStart, &s.LessonsCompleted, &s.QuestionsAttempted, &s.QuestionsCorrect,
		&s.HardPerfectCount, &s.EligibleXP, &s.ActiveDays, &lastDay, &s.DailyCapUsed,
		&flagsJSON, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.LastActiveDay = lastDay.String
	flags, err := decodeStrings(flagsJSON)
	if err != nil {
		return nil, err
	}
	s.SuspiciousFlags = flags
	return &s, nil
}

// Ensure only sets key columns on insert; an existing row keeps its counters.
func (r *weeklyStatsRepository) Ensure(ctx context.Context, userID, weekStart string) (*models.UserWeeklyStats, error) {
	log := logger.FromContext(ctx).WithPrefix("weekly_stats_repo")

	now := utcNow()
	if _, err := r.exec(ctx, `
INSERT INTO user_weekly_stats (user_id, week_start, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id, week_start) DO NOTHING
`, userID, weekStart, now, now); err != nil {
		log.Error("failed to upsert weekly stats: %v", err)
		return nil, err
	}

	s, err := r.get(ctx, userID, weekStart, r.forUpdate())
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (r *weeklyStatsRepository) Get(ctx context.Context, userID, weekStart string) (*models.UserWeeklyStats, error) {
	return r.get(ctx, userID, weekStart, "")
}

func (r *weeklyStatsRepository) get(ctx context.Context, userID, weekStart, suffix string) (*models.UserWeeklyStats, error) {
	b := db.Builder(r.dialect).
		Select(weeklyColumns...).
		From("user_weekly_stats").
		Where(squirrel.Eq{"user_id": userID, "week_start": weekStart})
	if suffix != "" {
		b = b.Suffix(strings.TrimSpace(suffix))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	s, err := scanWeekly(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("weekly_stats_repo").Error("failed to get weekly stats: %v", err)
		return nil, err
	}
	return s, nil
}

func (r *weeklyStatsRepository) Update(ctx context.Context, s models.UserWeeklyStats) error {
	log := logger.FromContext(ctx).WithPrefix("weekly_stats_repo")
	log.Debug("updating weekly stats: user=%s week=%s lessons=%d eligible_xp=%d",
		s.UserID, s.WeekStart, s.LessonsCompleted, s.EligibleXP)

	flags, err := encodeStrings(s.SuspiciousFlags)
	if err != nil {
		return err
	}

	res, err := r.exec(ctx, `
UPDATE user_weekly_stats
SET lessons_completed = ?, questions_attempted = ?, questions_correct = ?, hard_perfect_count = ?,
    eligible_xp = ?, active_days = ?, last_active_day = ?, daily_cap_used = ?, suspicious_flags = ?,
    updated_at = ?
WHERE user_id = ? AND week_start = ?
`, s.LessonsCompleted, s.QuestionsAttempted, s.QuestionsCorrect, s.HardPerfectCount,
		s.EligibleXP, s.ActiveDays, nullString(s.LastActiveDay), s.DailyCapUsed, flags,
		utcNow(), s.UserID, s.WeekStart)
	if err != nil {
		log.Error("failed to update weekly stats: %v", err)
		return err
	}
	return exactlyOne(res)
}

func (r *weeklyStatsRepository) ListByWeek(ctx context.Context, weekStart string) ([]models.UserWeeklyStats, error) {
	log := logger.FromContext(ctx).WithPrefix("weekly_stats_repo")
	log.Debug("listing weekly stats for week %s", weekStart)

	query, args, err := db.Builder(r.dialect).
		Select(weeklyColumns...).
		From("user_weekly_stats").
		Where(squirrel.Eq{"week_start": weekStart}).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list weekly stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.UserWeeklyStats
	for rows.Next() {
		s, err := scanWeekly(rows)
		if err != nil {
			log.Error("failed to scan weekly stats row: %v", err)
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
