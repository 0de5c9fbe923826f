package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
	"github.com/echokeys/echokeys/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context, username string) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting stats: username=%s", username)

	var s models.UserStats
	err := r.db.QueryRowContext(ctx, `
SELECT username, best_wpm, best_accuracy, total_games, streak, updated_at
FROM user_stats
WHERE username = ?
`, username).Scan(&s.Username, &s.BestWPM, &s.BestAccuracy, &s.TotalGames, &s.Streak, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stats yet for username=%s", username)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) Upsert(ctx context.Context, stats models.UserStats) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("upserting stats: username=%s, best_wpm=%.1f, total_games=%d",
		stats.Username, stats.BestWPM, stats.TotalGames)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO user_stats (username, best_wpm, best_accuracy, total_games, streak, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(username) DO UPDATE SET
    best_wpm = excluded.best_wpm,
    best_accuracy = excluded.best_accuracy,
    total_games = excluded.total_games,
    streak = excluded.streak,
    updated_at = excluded.updated_at
`, stats.Username, stats.BestWPM, stats.BestAccuracy, stats.TotalGames, stats.Streak, time.Now().UTC())
		if err != nil {
			log.Error("failed to upsert stats for %s: %v", stats.Username, err)
		}
		return err
	})
}
