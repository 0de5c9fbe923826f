package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
	"github.com/echokeys/echokeys/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type leaderboardRepository struct {
	db *sql.DB
}

// NewLeaderboardRepository creates a new LeaderboardRepository implementation
func NewLeaderboardRepository(db *sql.DB) repository.LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Insert(ctx context.Context, entry models.LeaderboardEntry) error {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_repo")
	log.Debug("inserting entry: username=%s, wpm=%.1f, accuracy=%.1f",
		entry.Username, entry.WPM, entry.Accuracy)

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO leaderboard_entries (username, wpm, accuracy, challenge_id, created_at)
VALUES (?, ?, ?, ?, ?)
`, entry.Username, entry.WPM, entry.Accuracy, entry.ChallengeID, createdAt)
	if err != nil {
		log.Error("failed to insert leaderboard entry: %v", err)
	}
	return err
}

func (r *leaderboardRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_repo")
	log.Debug("fetching top entries: limit=%d", limit)

	if limit <= 0 {
		limit = 10
	}

	query := sqlBuilder.Select("id", "username", "wpm", "accuracy", "challenge_id", "created_at").
		From("leaderboard_entries").
		OrderBy("wpm DESC", "created_at ASC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.WPM, &e.Accuracy, &e.ChallengeID, &e.CreatedAt); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		e.Date = e.CreatedAt.Format("2006-01-02")
		entries = append(entries, e)
	}

	log.Debug("found %d leaderboard entries", len(entries))
	return entries, rows.Err()
}

func (r *leaderboardRepository) CountHigher(ctx context.Context, wpm float64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM leaderboard_entries WHERE wpm > ?
`, wpm).Scan(&count)
	if err != nil {
		log.Error("failed to count higher entries: %v", err)
		return 0, err
	}
	return count, nil
}
