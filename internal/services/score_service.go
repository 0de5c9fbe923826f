package services

import (
	"context"
	"time"

	"github.com/echokeys/echokeys/internal/errors"
	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
	"github.com/echokeys/echokeys/internal/repository"
)

// ScoreService handles score submission and leaderboard reads
type ScoreService interface {
	GetUserStats(ctx context.Context, username string) (models.UserStats, error)
	SubmitScore(ctx context.Context, username string, result models.GameResult) (*models.ScoreUpdate, error)
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

type scoreService struct {
	statsRepo       repository.StatsRepository
	leaderboardRepo repository.LeaderboardRepository
}

// NewScoreService creates a new ScoreService
func NewScoreService(statsRepo repository.StatsRepository, leaderboardRepo repository.LeaderboardRepository) ScoreService {
	return &scoreService{statsRepo: statsRepo, leaderboardRepo: leaderboardRepo}
}

// GetUserStats returns a zero-valued record for users who have never played.
func (s *scoreService) GetUserStats(ctx context.Context, username string) (models.UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user stats: username=%s", username)

	stats, err := s.statsRepo.Get(ctx, username)
	if err != nil {
		log.Error("failed to get user stats: %v", err)
		return models.UserStats{}, errors.NewInternalError(err)
	}
	if stats == nil {
		return models.UserStats{Username: username}, nil
	}
	return *stats, nil
}

// SubmitScore applies one game result: raises the best-score maxima, bumps
// the counters, appends a leaderboard entry and computes the submission's
// rank among all recorded entries.
func (s *scoreService) SubmitScore(ctx context.Context, username string, result models.GameResult) (*models.ScoreUpdate, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"username":     username,
		"wpm":          result.WPM,
		"accuracy":     result.Accuracy,
		"challenge_id": result.ChallengeID,
	})
	log.Debug("submitting score")

	if result.WPM < 0 {
		return nil, errors.NewValidationError("wpm", "cannot be negative")
	}
	if result.Accuracy < 0 || result.Accuracy > 100 {
		return nil, errors.NewValidationError("accuracy", "must be between 0 and 100")
	}

	stats, err := s.GetUserStats(ctx, username)
	if err != nil {
		return nil, err
	}

	newHighScore := result.WPM > stats.BestWPM
	if newHighScore {
		stats.BestWPM = result.WPM
	}
	if result.Accuracy > stats.BestAccuracy {
		stats.BestAccuracy = result.Accuracy
	}
	stats.TotalGames++
	// TODO: track the last played date so streak resets after a missed day;
	// for now it counts submissions, not consecutive days.
	stats.Streak++
	stats.Username = username

	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		log.Error("failed to update user stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	entry := models.LeaderboardEntry{
		Username:    username,
		WPM:         result.WPM,
		Accuracy:    result.Accuracy,
		ChallengeID: result.ChallengeID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.leaderboardRepo.Insert(ctx, entry); err != nil {
		log.Error("failed to insert leaderboard entry: %v", err)
		return nil, errors.NewInternalError(err)
	}

	higher, err := s.leaderboardRepo.CountHigher(ctx, result.WPM)
	if err != nil {
		log.Error("failed to compute rank: %v", err)
		return nil, errors.NewInternalError(err)
	}
	rank := higher + 1

	log.Info("score submitted: new_high_score=%v, rank=%d", newHighScore, rank)
	return &models.ScoreUpdate{NewHighScore: newHighScore, Rank: rank}, nil
}

func (s *scoreService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting leaderboard: limit=%d", limit)

	if limit <= 0 {
		limit = 10
	}

	entries, err := s.leaderboardRepo.Top(ctx, limit)
	if err != nil {
		log.Error("failed to get leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return entries, nil
}
