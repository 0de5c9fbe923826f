package repository

import (
	"context"

	"github.com/echokeys/echokeys/internal/models"
)

// StatsRepository persists per-username stats records.
type StatsRepository interface {
	// Get returns the stats for a username, or nil when none exist yet.
	Get(ctx context.Context, username string) (*models.UserStats, error)
	// Upsert writes the full record, inserting or replacing by username.
	Upsert(ctx context.Context, stats models.UserStats) error
}

// LeaderboardRepository persists submitted results ordered by wpm.
type LeaderboardRepository interface {
	// Insert appends one entry; a user may appear any number of times.
	Insert(ctx context.Context, entry models.LeaderboardEntry) error
	// Top returns up to limit entries, highest wpm first, earliest first on ties.
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	// CountHigher counts entries with a wpm strictly above the given value.
	CountHigher(ctx context.Context, wpm float64) (int, error)
}
