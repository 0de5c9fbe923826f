package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/platform"
	"github.com/echokeys/echokeys/internal/services"
)

type Server struct {
	ChallengeService services.ChallengeService
	ScoreService     services.ScoreService
	Posts            platform.PostCreator
	LeaderboardLimit int
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(postContextMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/init", s.handleInit)
	r.Get("/api/challenge/{difficulty}", s.handleChallengeByDifficulty)
	r.Post("/api/submit-score", s.handleSubmitScore)
	r.Get("/api/leaderboard", s.handleLeaderboard)

	r.Post("/internal/on-app-install", s.handleAppInstall)
	r.Post("/internal/menu/post-create", s.handleMenuPostCreate)

	return r
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
