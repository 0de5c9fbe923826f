package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echokeys/echokeys/internal/errors"
	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/models"
)

type initResponse struct {
	Type           string           `json:"type"`
	PostID         string           `json:"postId"`
	Username       string           `json:"username"`
	UserStats      models.UserStats `json:"userStats"`
	DailyChallenge models.Challenge `json:"dailyChallenge"`
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	postID := postIDFromContext(r.Context())
	if postID == "" {
		log.Warn("init request without post context")
		handleError(w, r, errors.NewBadRequestError("postId is required but missing from context"))
		return
	}

	username := usernameFromContext(r.Context())
	log = log.WithField("username", username)

	stats, err := s.ScoreService.GetUserStats(r.Context(), username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	daily := s.ChallengeService.Daily(r.Context())

	log.Debug("init complete: daily_challenge=%s", daily.ID)
	s.respondJSON(w, r, http.StatusOK, initResponse{
		Type:           "init",
		PostID:         postID,
		Username:       username,
		UserStats:      stats,
		DailyChallenge: daily,
	})
}

type challengeResponse struct {
	Challenge models.Challenge `json:"challenge"`
}

func (s *Server) handleChallengeByDifficulty(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	difficulty := chi.URLParam(r, "difficulty")
	log.Debug("challenge requested: difficulty=%s", difficulty)

	c, err := s.ChallengeService.ByDifficulty(r.Context(), difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, challengeResponse{Challenge: *c})
}

type submitScoreResponse struct {
	Type         string `json:"type"`
	PostID       string `json:"postId"`
	NewHighScore bool   `json:"newHighScore"`
	Rank         int    `json:"rank"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	postID := postIDFromContext(r.Context())
	if postID == "" {
		log.Warn("score submission without post context")
		handleError(w, r, errors.NewBadRequestError("postId is required"))
		return
	}

	var result models.GameResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		log.Warn("failed to decode game result: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid game result body"))
		return
	}

	username := usernameFromContext(r.Context())
	update, err := s.ScoreService.SubmitScore(r.Context(), username, result)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, submitScoreResponse{
		Type:         "submitScore",
		PostID:       postID,
		NewHighScore: update.NewHighScore,
		Rank:         update.Rank,
	})
}

type leaderboardResponse struct {
	Type        string                    `json:"type"`
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ScoreService.GetLeaderboard(r.Context(), s.LeaderboardLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	s.respondJSON(w, r, http.StatusOK, leaderboardResponse{
		Type:        "leaderboard",
		Leaderboard: entries,
	})
}
