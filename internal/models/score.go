package models

import "time"

// UserStats is the per-username stats record. BestWPM and BestAccuracy only
// ever increase; TotalGames grows by one per submitted result.
type UserStats struct {
	Username     string    `json:"-"`
	BestWPM      float64   `json:"bestWPM"`
	BestAccuracy float64   `json:"bestAccuracy"`
	TotalGames   int       `json:"totalGames"`
	Streak       int       `json:"streak"`
	UpdatedAt    time.Time `json:"-"`
}

// GameResult is a finished session as submitted by the client. It is consumed
// once to update stats and the leaderboard, never stored verbatim.
type GameResult struct {
	WPM         float64 `json:"wpm"`
	Accuracy    float64 `json:"accuracy"`
	TimeMs      int64   `json:"time"`
	ChallengeID string  `json:"challengeId"`
}

// LeaderboardEntry is one submitted result on the global leaderboard. A user
// can appear multiple times.
type LeaderboardEntry struct {
	ID          int64     `json:"-"`
	Username    string    `json:"username"`
	WPM         float64   `json:"wpm"`
	Accuracy    float64   `json:"accuracy"`
	Date        string    `json:"date"`
	ChallengeID string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// ScoreUpdate is the outcome of applying a GameResult.
type ScoreUpdate struct {
	NewHighScore bool `json:"newHighScore"`
	Rank         int  `json:"rank"`
}
